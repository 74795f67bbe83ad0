package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewSpinnerSinkTo(&buf)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "instantiate", Message: "Resolving contracts", Spinner: true})
	assert.True(t, sink.spinner.Active())

	sink.Info("Using Safe 1.3.0")
	assert.True(t, sink.spinner.Active(), "spinner resumes after a message")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "instantiate"})
	assert.False(t, sink.spinner.Active())

	sink.Error("no code at address")
	assert.Contains(t, buf.String(), "Using Safe 1.3.0\n")
	assert.Contains(t, buf.String(), "no code at address\n")
}

func TestLineSink(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	sink := NewLineSink(&buf)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "verify", Message: "Checking contract code", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "verify"})
	sink.Info("4 contracts checked")
	sink.Error("no code at 0x40A2aCCbd92BCA938b02010E17A5b8929b49130D")

	assert.Equal(t, "[verify] Checking contract code...\n"+
		"4 contracts checked\n"+
		"error: no code at 0x40A2aCCbd92BCA938b02010E17A5b8929b49130D\n", buf.String())
}
