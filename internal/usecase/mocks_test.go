package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/adapters/deployment"
	"github.com/rsksmart/safekit/internal/deployments"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockResolver is a mock implementation of DeploymentResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, role domain.ContractRole, chainID uint64, version string) (*domain.ResolvedDeployment, error) {
	args := m.Called(ctx, role, chainID, version)
	if fn, ok := args.Get(0).(func(context.Context, domain.ContractRole, uint64, string) (*domain.ResolvedDeployment, error)); ok {
		return fn(ctx, role, chainID, version)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedDeployment), args.Error(1)
}

// MockChainInfoClient is a mock implementation of ChainInfoClient
type MockChainInfoClient struct {
	mock.Mock
}

func (m *MockChainInfoClient) GetSafeInfo(ctx context.Context, address common.Address) (*domain.SafeInfo, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafeInfo), args.Error(1)
}

// MockGasPrice is a mock implementation of GasPriceProvider
type MockGasPrice struct {
	mock.Mock
}

func (m *MockGasPrice) GasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

// MockRegistry is a mock implementation of NetworkRegistry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) Lookup(key string) (*config.NetworkConfig, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.NetworkConfig), args.Error(1)
}

func (m *MockRegistry) LookupByChainID(chainID uint64) (*config.NetworkConfig, error) {
	args := m.Called(chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.NetworkConfig), args.Error(1)
}

func (m *MockRegistry) List() []*config.NetworkConfig {
	args := m.Called()
	return args.Get(0).([]*config.NetworkConfig)
}

// MockSelector is a mock implementation of NetworkSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectNetwork(ctx context.Context, networks []*config.NetworkConfig, current string) (*config.NetworkConfig, error) {
	args := m.Called(ctx, networks, current)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.NetworkConfig), args.Error(1)
}

// memoryConfigStore keeps the local config in memory
type memoryConfigStore struct {
	cfg   *config.LocalConfig
	saves int
}

func (s *memoryConfigStore) Exists() bool { return s.cfg != nil }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	cp := *s.cfg
	return &cp, nil
}

func (s *memoryConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	cp := *cfg
	s.cfg = &cp
	s.saves++
	return nil
}

func (s *memoryConfigStore) GetPath() string { return "/tmp/.safekit/config.local.json" }

// MockEstimator is a mock implementation of ethereum.GasEstimator
type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	args := m.Called(ctx, call)
	return args.Get(0).(uint64), args.Error(1)
}

// fakeBackend answers eth_call and eth_getCode from canned data. Any other
// ContractBackend method panics through the nil embedded interface.
type fakeBackend struct {
	bind.ContractBackend
	calls map[[4]byte][]byte
	code  map[common.Address][]byte
	err   error
}

func (b *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	var selector [4]byte
	copy(selector[:], call.Data)
	return b.calls[selector], nil
}

func (b *fakeBackend) CodeAt(_ context.Context, addr common.Address, _ *big.Int) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.code[addr], nil
}

// recordingProgress keeps the Info and Error messages a use case emits
type recordingProgress struct {
	usecase.NopProgress
	infos  []string
	errors []string
}

func (p *recordingProgress) Info(message string)  { p.infos = append(p.infos, message) }
func (p *recordingProgress) Error(message string) { p.errors = append(p.errors, message) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newResolver wires the real resolver over the embedded deployment assets
func newResolver(t *testing.T) *deployment.Resolver {
	t.Helper()
	registry, err := deployments.NewRegistry()
	require.NoError(t, err)
	local, err := deployment.NewPinnedSource()
	require.NoError(t, err)
	return deployment.NewResolver(registry, local, discardLogger())
}

// instantiate runs InstantiateContracts for a chain and returns the populated cache
func instantiate(t *testing.T, chainID uint64, version string) (*usecase.ContractCache, *usecase.NetworkContext) {
	t.Helper()
	cache := usecase.NewContractCache()
	uc := usecase.NewInstantiateContracts(newResolver(t), cache, usecase.NopProgress{}, discardLogger())
	nc, err := uc.Run(context.Background(), usecase.InstantiateContractsParams{
		ChainID:     chainID,
		SafeVersion: version,
	})
	require.NoError(t, err)
	return cache, nc
}
