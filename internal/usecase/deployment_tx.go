package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rsksmart/safekit/internal/domain"
)

// GasSafetyFactor multiplies every raw deployment gas estimate
const GasSafetyFactor = 2

// DeploymentTxParams describes the Safe to deploy
type DeploymentTxParams struct {
	Owners    []common.Address
	Threshold uint64
	SaltNonce *big.Int
}

// BuildDeploymentTx encodes Safe proxy deployments against the cached contracts
type BuildDeploymentTx struct {
	cache    *ContractCache
	gasPrice GasPriceProvider
	log      *slog.Logger
}

// NewBuildDeploymentTx creates a new BuildDeploymentTx use case
func NewBuildDeploymentTx(cache *ContractCache, gasPrice GasPriceProvider, log *slog.Logger) *BuildDeploymentTx {
	return &BuildDeploymentTx{
		cache:    cache,
		gasPrice: gasPrice,
		log:      log,
	}
}

// Build encodes Safe.setup for the owners and threshold with the cached fallback
// handler, then wraps it in ProxyFactory.createProxyWithNonce against the cached
// singleton.
func (uc *BuildDeploymentTx) Build(params DeploymentTxParams) (*domain.DeploymentTx, error) {
	if err := validateOwners(params.Owners, params.Threshold); err != nil {
		return nil, err
	}

	nc, err := uc.cache.Current()
	if err != nil {
		return nil, err
	}

	salt := params.SaltNonce
	if salt == nil {
		salt = new(big.Int)
	}
	// the factory takes a uint256; out-of-range values would be wrapped when packed
	if salt.Sign() < 0 || salt.BitLen() > 256 {
		return nil, fmt.Errorf("salt nonce %s is outside the uint256 range", salt)
	}

	initializer, err := nc.Singleton.Pack("setup",
		params.Owners,
		new(big.Int).SetUint64(params.Threshold),
		common.Address{}, // to
		[]byte{},         // data
		nc.FallbackHandler.Address(),
		common.Address{}, // paymentToken
		big.NewInt(0),    // payment
		common.Address{}, // paymentReceiver
	)
	if err != nil {
		return nil, err
	}

	data, err := nc.ProxyFactory.Pack("createProxyWithNonce", nc.Singleton.Address(), initializer, salt)
	if err != nil {
		return nil, err
	}

	return &domain.DeploymentTx{
		Factory:     nc.ProxyFactory.Address(),
		Singleton:   nc.Singleton.Address(),
		Owners:      params.Owners,
		Threshold:   params.Threshold,
		SaltNonce:   salt,
		Initializer: initializer,
		Data:        data,
	}, nil
}

// EstimateGas returns GasSafetyFactor times the node's estimate for the deployment
func (uc *BuildDeploymentTx) EstimateGas(ctx context.Context, estimator ethereum.GasEstimator, tx *domain.DeploymentTx, from common.Address) (uint64, error) {
	factory := tx.Factory
	raw, err := estimator.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &factory,
		Data: tx.Data,
	})
	if err != nil {
		return 0, domain.GasEstimationErr{To: factory, Err: err}
	}

	uc.log.Debug("estimated Safe deployment gas", "raw", raw, "factor", GasSafetyFactor)
	return raw * GasSafetyFactor, nil
}

// EstimateDeploymentCost prices the doubled gas estimate at the network gas price
func (uc *BuildDeploymentTx) EstimateDeploymentCost(ctx context.Context, estimator ethereum.GasEstimator, tx *domain.DeploymentTx, from common.Address) (*domain.DeploymentCost, error) {
	gas, err := uc.EstimateGas(ctx, estimator, tx, from)
	if err != nil {
		return nil, err
	}

	price, err := uc.gasPrice.GasPrice(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DeploymentCost{
		Gas:      gas,
		GasPrice: price,
		Total:    new(big.Int).Mul(new(big.Int).SetUint64(gas), price),
	}, nil
}

func validateOwners(owners []common.Address, threshold uint64) error {
	if len(owners) == 0 {
		return fmt.Errorf("at least one owner is required")
	}
	seen := make(map[common.Address]struct{}, len(owners))
	for _, owner := range owners {
		if owner == (common.Address{}) {
			return fmt.Errorf("%w: owner cannot be the zero address", domain.ErrInvalidAddress)
		}
		if _, dup := seen[owner]; dup {
			return fmt.Errorf("duplicate owner %s", owner.Hex())
		}
		seen[owner] = struct{}{}
	}
	if threshold == 0 || threshold > uint64(len(owners)) {
		return fmt.Errorf("threshold must be between 1 and %d, got %d", len(owners), threshold)
	}
	return nil
}
