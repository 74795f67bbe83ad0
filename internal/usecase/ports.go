package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
)

// NetworkRegistry gives access to the static network catalog
type NetworkRegistry interface {
	Lookup(key string) (*config.NetworkConfig, error)
	LookupByChainID(chainID uint64) (*config.NetworkConfig, error)
	List() []*config.NetworkConfig
}

// DeploymentResolver finds the deployment record serving a contract role on a chain
type DeploymentResolver interface {
	Resolve(ctx context.Context, role domain.ContractRole, chainID uint64, version string) (*domain.ResolvedDeployment, error)
}

// ChainBackend is the JSON-RPC surface the use cases need: contract calls,
// gas estimation and the chain ID reported by the node. Close releases the
// connection; callers that dial one own it.
type ChainBackend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// BackendDialer opens a ChainBackend against an RPC endpoint
type BackendDialer interface {
	Dial(ctx context.Context, rpcURL string, expectedChainID uint64) (ChainBackend, error)
}

// ChainInfoClient talks to the off-chain client gateway
type ChainInfoClient interface {
	GetSafeInfo(ctx context.Context, address common.Address) (*domain.SafeInfo, error)
}

// GasPriceProvider returns the gas price to use on the active network, in wei
type GasPriceProvider interface {
	GasPrice(ctx context.Context) (*big.Int, error)
}

// NetworkSelector handles interactive selection of networks
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []*config.NetworkConfig, current string) (*config.NetworkConfig, error)
}

// LocalConfigStore persists the per-workspace configuration
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
