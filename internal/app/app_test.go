package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend records Close; any other call panics through the nil embedded interface
type stubBackend struct {
	usecase.ChainBackend
	closed bool
}

func (b *stubBackend) Close() { b.closed = true }

type stubDialer struct {
	backend *stubBackend
}

func (d stubDialer) Dial(context.Context, string, uint64) (usecase.ChainBackend, error) {
	return d.backend, nil
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, domain.ContractRole, uint64, string) (*domain.ResolvedDeployment, error) {
	return nil, domain.ErrDeploymentNotFound
}

func TestConnectClosesBackendOnFailure(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := &stubBackend{}
	a := &App{
		Config: &config.RuntimeConfig{
			Network:     &config.NetworkConfig{Key: "rsk_testnet", Network: config.NetworkInfo{ID: 31}},
			Settings:    config.EnvironmentSettings{RPCServiceURL: "http://localhost:4444"},
			SafeVersion: "1.3.0",
		},
		Dialer:               stubDialer{backend: backend},
		InstantiateContracts: usecase.NewInstantiateContracts(failingResolver{}, usecase.NewContractCache(), usecase.NopProgress{}, log),
	}

	got, nc, err := a.Connect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeploymentNotFound)
	assert.Nil(t, got)
	assert.Nil(t, nc)
	assert.True(t, backend.closed)
}
