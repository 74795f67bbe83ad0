package usecase

import (
	"context"

	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
)

// ResolveContractParams contains parameters for resolving one role
type ResolveContractParams struct {
	Role domain.ContractRole
	// ChainID defaults to the active network
	ChainID uint64
	// Version defaults to the configured Safe version
	Version string
}

// ResolveContract resolves a single deployment record without touching the chain
type ResolveContract struct {
	resolver DeploymentResolver
	cfg      *config.RuntimeConfig
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(resolver DeploymentResolver, cfg *config.RuntimeConfig) *ResolveContract {
	return &ResolveContract{
		resolver: resolver,
		cfg:      cfg,
	}
}

// Run executes the use case
func (uc *ResolveContract) Run(ctx context.Context, params ResolveContractParams) (*domain.ResolvedDeployment, error) {
	chainID := params.ChainID
	if chainID == 0 {
		chainID = uc.cfg.ChainID()
	}

	version := params.Version
	if version == "" && params.Role != domain.RoleMultiSend {
		version = uc.cfg.SafeVersion
	}

	return uc.resolver.Resolve(ctx, params.Role, chainID, version)
}
