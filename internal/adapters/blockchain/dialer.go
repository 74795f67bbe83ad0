package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
)

// Dialer opens ethclient connections and checks they reach the expected chain
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a new blockchain dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log}
}

// Dial connects to rpcURL. A non-zero expectedChainID must match the chain the node reports.
func (d *Dialer) Dial(ctx context.Context, rpcURL string, expectedChainID uint64) (usecase.ChainBackend, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	if err := VerifyChainID(ctx, client, expectedChainID); err != nil {
		client.Close()
		return nil, err
	}

	d.log.Debug("connected to RPC", "url", rpcURL, "chainId", expectedChainID)
	return client, nil
}

// chainIDReader is the part of a backend VerifyChainID needs
type chainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// VerifyChainID checks the node's chain ID; expected == 0 accepts any chain
func VerifyChainID(ctx context.Context, backend chainIDReader, expected uint64) error {
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expected != 0 && networkChainID.Uint64() != expected {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, expected, networkChainID.Uint64())
	}
	return nil
}

// Ensure the adapter implements the interface
var _ usecase.BackendDialer = (*Dialer)(nil)
