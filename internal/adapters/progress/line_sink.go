package progress

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rsksmart/safekit/internal/usecase"
)

// LineSink reports progress as plain lines, for terminals that cannot
// redraw a spinner such as CI logs
type LineSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewLineSink(out io.Writer) *LineSink {
	return &LineSink{out: out}
}

// OnProgress prints the message of events that start a stage; completion
// events carry no message and are skipped
func (s *LineSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%s] %s...\n", event.Stage, event.Message)
}

func (s *LineSink) Info(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, message)
}

func (s *LineSink) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "error: %s\n", message)
}

var _ usecase.ProgressSink = (*LineSink)(nil)
