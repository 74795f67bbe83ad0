package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
)

// anyChain is never pinned, so resolving against it queries the registry by version only
const anyChain uint64 = 0

// ReadSafeParams contains parameters for reading a deployed Safe
type ReadSafeParams struct {
	Backend     bind.ContractBackend
	Address     common.Address
	SafeVersion string
}

// ReadSafe binds the Safe ABI for a version to an arbitrary Safe address and reads
// its configuration from the chain
type ReadSafe struct {
	resolver DeploymentResolver
	log      *slog.Logger
}

// NewReadSafe creates a new ReadSafe use case
func NewReadSafe(resolver DeploymentResolver, log *slog.Logger) *ReadSafe {
	return &ReadSafe{
		resolver: resolver,
		log:      log,
	}
}

// Instance returns a Safe contract handle at address, using the ABI resolved for version
func (uc *ReadSafe) Instance(ctx context.Context, backend bind.ContractBackend, address common.Address, version string) (*ContractInstance, error) {
	resolved, err := uc.resolver.Resolve(ctx, domain.RoleSafeSingleton, anyChain, version)
	if err != nil {
		return nil, err
	}
	// Same ABI, bound at the Safe instead of the singleton
	atSafe := *resolved
	atSafe.Address = address
	return NewContractInstance(&atSafe, backend)
}

// Run reads VERSION, owners, threshold and nonce
func (uc *ReadSafe) Run(ctx context.Context, params ReadSafeParams) (*domain.SafeState, error) {
	safe, err := uc.Instance(ctx, params.Backend, params.Address, params.SafeVersion)
	if err != nil {
		return nil, err
	}

	opts := &bind.CallOpts{Context: ctx}
	state := &domain.SafeState{Address: params.Address}

	if state.Version, err = call[string](safe, opts, "VERSION"); err != nil {
		return nil, err
	}
	if state.Owners, err = call[[]common.Address](safe, opts, "getOwners"); err != nil {
		return nil, err
	}
	if state.Threshold, err = call[*big.Int](safe, opts, "getThreshold"); err != nil {
		return nil, err
	}
	if state.Nonce, err = call[*big.Int](safe, opts, "nonce"); err != nil {
		return nil, err
	}

	uc.log.Debug("read Safe state", "address", params.Address.Hex(), "version", state.Version, "owners", len(state.Owners))
	return state, nil
}

func call[T any](instance *ContractInstance, opts *bind.CallOpts, method string) (T, error) {
	var zero T
	var out []interface{}
	if err := instance.Contract.Call(opts, &out, method); err != nil {
		return zero, fmt.Errorf("failed to call %s at %s: %w", method, instance.Address().Hex(), err)
	}
	if len(out) == 0 {
		return zero, fmt.Errorf("%s at %s returned no data", method, instance.Address().Hex())
	}
	value, ok := out[0].(T)
	if !ok {
		return zero, fmt.Errorf("%s at %s returned %T", method, instance.Address().Hex(), out[0])
	}
	return value, nil
}
