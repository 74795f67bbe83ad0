package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
)

// GetMasterCopy looks up the singleton a Safe proxy delegates to
type GetMasterCopy struct {
	client   ChainInfoClient
	progress ProgressSink
	log      *slog.Logger
}

// NewGetMasterCopy creates a new GetMasterCopy use case
func NewGetMasterCopy(client ChainInfoClient, progress ProgressSink, log *slog.Logger) *GetMasterCopy {
	return &GetMasterCopy{
		client:   client,
		progress: progress,
		log:      log,
	}
}

// Run asks the client gateway for the proxy's implementation address. Gateway
// failures and responses without an implementation both come back as a
// domain.ChainInfoUnavailableErr, logged at warn level and surfaced as a hint
// on the progress sink.
func (uc *GetMasterCopy) Run(ctx context.Context, proxy common.Address) (common.Address, error) {
	info, err := uc.client.GetSafeInfo(ctx, proxy)
	if err != nil {
		return uc.unavailable(proxy, err)
	}

	implementation, ok := info.ImplementationAddress()
	if !ok {
		return uc.unavailable(proxy, nil)
	}
	return implementation, nil
}

func (uc *GetMasterCopy) unavailable(proxy common.Address, cause error) (common.Address, error) {
	unavailable := domain.ChainInfoUnavailableErr{Proxy: proxy, Err: cause}
	uc.log.Warn(unavailable.Error())
	uc.progress.Info(fmt.Sprintf("The client gateway could not report the implementation of %s; check that it is a Safe proxy on the selected network", proxy.Hex()))
	return common.Address{}, unavailable
}
