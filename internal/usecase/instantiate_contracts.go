package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ContractInstance is a resolved deployment bound to a chain backend
type ContractInstance struct {
	Deployment *domain.ResolvedDeployment
	ABI        abi.ABI
	Contract   *bind.BoundContract
}

// NewContractInstance parses the deployment ABI and binds it at the resolved address
func NewContractInstance(deployment *domain.ResolvedDeployment, backend bind.ContractBackend) (*ContractInstance, error) {
	parsed, err := abi.JSON(bytes.NewReader(deployment.Record.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", deployment.Role, err)
	}
	return &ContractInstance{
		Deployment: deployment,
		ABI:        parsed,
		Contract:   bind.NewBoundContract(deployment.Address, parsed, backend, backend, backend),
	}, nil
}

func (c *ContractInstance) Address() common.Address { return c.Deployment.Address }

func (c *ContractInstance) Role() domain.ContractRole { return c.Deployment.Role }

// Pack encodes a call to one of the contract's methods
func (c *ContractInstance) Pack(method string, args ...interface{}) ([]byte, error) {
	data, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s.%s: %w", c.Deployment.Record.ContractName, method, err)
	}
	return data, nil
}

// NetworkContext is the set of Safe contracts instantiated for one chain.
// It is never mutated after InstantiateContracts returns it.
type NetworkContext struct {
	ChainID         uint64
	SafeVersion     string
	Singleton       *ContractInstance
	ProxyFactory    *ContractInstance
	FallbackHandler *ContractInstance
	MultiSend       *ContractInstance
}

// Instances lists the contracts in a stable order
func (n *NetworkContext) Instances() []*ContractInstance {
	return []*ContractInstance{n.Singleton, n.ProxyFactory, n.FallbackHandler, n.MultiSend}
}

// ContractCache holds the most recently instantiated NetworkContext.
// Stores replace the whole context; the last store wins.
type ContractCache struct {
	current atomic.Pointer[NetworkContext]
}

func NewContractCache() *ContractCache {
	return &ContractCache{}
}

// Store replaces the cached context
func (c *ContractCache) Store(nc *NetworkContext) {
	c.current.Store(nc)
}

// Current returns the cached context or ErrNotInitialized
func (c *ContractCache) Current() (*NetworkContext, error) {
	nc := c.current.Load()
	if nc == nil {
		return nil, domain.ErrNotInitialized
	}
	return nc, nil
}

func (c *ContractCache) Singleton() (*ContractInstance, error) {
	nc, err := c.Current()
	if err != nil {
		return nil, err
	}
	return nc.Singleton, nil
}

func (c *ContractCache) SingletonAddress() (common.Address, error) {
	return c.address(func(nc *NetworkContext) *ContractInstance { return nc.Singleton })
}

func (c *ContractCache) ProxyFactory() (*ContractInstance, error) {
	nc, err := c.Current()
	if err != nil {
		return nil, err
	}
	return nc.ProxyFactory, nil
}

func (c *ContractCache) FallbackHandlerAddress() (common.Address, error) {
	return c.address(func(nc *NetworkContext) *ContractInstance { return nc.FallbackHandler })
}

func (c *ContractCache) MultiSend() (*ContractInstance, error) {
	nc, err := c.Current()
	if err != nil {
		return nil, err
	}
	return nc.MultiSend, nil
}

func (c *ContractCache) MultiSendAddress() (common.Address, error) {
	return c.address(func(nc *NetworkContext) *ContractInstance { return nc.MultiSend })
}

func (c *ContractCache) address(pick func(*NetworkContext) *ContractInstance) (common.Address, error) {
	nc, err := c.Current()
	if err != nil {
		return common.Address{}, err
	}
	return pick(nc).Address(), nil
}

// InstantiateContractsParams contains parameters for instantiating the Safe contracts
type InstantiateContractsParams struct {
	Backend     bind.ContractBackend
	ChainID     uint64
	SafeVersion string
}

// InstantiateContracts resolves and binds every Safe contract role for a chain
type InstantiateContracts struct {
	resolver DeploymentResolver
	cache    *ContractCache
	progress ProgressSink
	log      *slog.Logger
}

// NewInstantiateContracts creates a new InstantiateContracts use case
func NewInstantiateContracts(
	resolver DeploymentResolver,
	cache *ContractCache,
	progress ProgressSink,
	log *slog.Logger,
) *InstantiateContracts {
	return &InstantiateContracts{
		resolver: resolver,
		cache:    cache,
		progress: progress,
		log:      log,
	}
}

// Run resolves the four roles concurrently. The cache is only updated once all of
// them succeeded; on failure it keeps whatever context it held before.
func (uc *InstantiateContracts) Run(ctx context.Context, params InstantiateContractsParams) (*NetworkContext, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "instantiate",
		Message: fmt.Sprintf("Resolving Safe contracts for chain %d", params.ChainID),
		Spinner: true,
	})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "instantiate"})

	nc := &NetworkContext{ChainID: params.ChainID, SafeVersion: params.SafeVersion}

	g, gctx := errgroup.WithContext(ctx)
	bindRole := func(slot **ContractInstance, role domain.ContractRole, version string) {
		g.Go(func() error {
			resolved, err := uc.resolver.Resolve(gctx, role, params.ChainID, version)
			if err != nil {
				return err
			}
			instance, err := NewContractInstance(resolved, params.Backend)
			if err != nil {
				return err
			}
			*slot = instance
			return nil
		})
	}

	bindRole(&nc.Singleton, domain.RoleSafeSingleton, params.SafeVersion)
	bindRole(&nc.ProxyFactory, domain.RoleProxyFactory, params.SafeVersion)
	bindRole(&nc.FallbackHandler, domain.RoleFallbackHandler, params.SafeVersion)
	// MultiSend is looked up without a version constraint
	bindRole(&nc.MultiSend, domain.RoleMultiSend, "")

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to instantiate Safe contracts for chain %d: %w", params.ChainID, err)
	}

	uc.cache.Store(nc)
	uc.log.Debug("instantiated Safe contracts",
		"chainId", params.ChainID,
		"singleton", nc.Singleton.Address().Hex(),
		"proxyFactory", nc.ProxyFactory.Address().Hex(),
		"fallbackHandler", nc.FallbackHandler.Address().Hex(),
		"multiSend", nc.MultiSend.Address().Hex())

	return nc, nil
}
