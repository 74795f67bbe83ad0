package deployment

import (
	"context"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/usecase"
)

const (
	RSKMainnetChainID uint64 = 30
	RSKTestnetChainID uint64 = 31
)

// L2SingletonConstraint selects the L2-compatible singleton; from 1.3.0 on it is used on every chain
const L2SingletonConstraint = ">= 1.3.0"

var useL2Singleton = mustConstraint(L2SingletonConstraint)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// Resolver picks a deployment source per chain and resolves role records through it
type Resolver struct {
	sources  map[uint64]Source
	fallback Source
	log      *slog.Logger
}

// NewResolver routes the RSK chains to the pinned table and everything else to the registry
func NewResolver(registry ExternalRegistry, local *LocalSource, log *slog.Logger) *Resolver {
	sources := map[uint64]Source{
		RSKMainnetChainID: local,
		RSKTestnetChainID: local,
	}
	return NewResolverWithSources(sources, NewExternalSource(registry), log)
}

// NewResolverWithSources builds a resolver from an explicit chain -> source table
func NewResolverWithSources(sources map[uint64]Source, fallback Source, log *slog.Logger) *Resolver {
	return &Resolver{
		sources:  sources,
		fallback: fallback,
		log:      log,
	}
}

// SourceFor returns the source that serves a chain
func (r *Resolver) SourceFor(chainID uint64) Source {
	if source, ok := r.sources[chainID]; ok {
		return source
	}
	return r.fallback
}

// UsesL2Singleton reports whether a Safe version must use the L2-compatible singleton
func UsesL2Singleton(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return useL2Singleton.Check(v)
}

// Resolve finds the record for role on chainID. A missing record is reported as
// domain.NoDeploymentErr; callers must not build a contract handle in that case.
func (r *Resolver) Resolve(ctx context.Context, role domain.ContractRole, chainID uint64, version string) (*domain.ResolvedDeployment, error) {
	served := role
	if role == domain.RoleSafeSingleton && UsesL2Singleton(version) {
		served = domain.RoleSafeSingletonL2
	}

	source := r.SourceFor(chainID)
	record, ok := source.Lookup(served, chainID, version)
	if !ok {
		r.log.Debug("no deployment found",
			"role", role, "served", served, "chainId", chainID, "version", version, "source", source.Kind())
		return nil, domain.NoDeploymentErr{Role: role, ChainID: chainID, Version: version, Available: source.Versions(served)}
	}

	resolved := &domain.ResolvedDeployment{
		RequestedRole: role,
		Role:          served,
		ChainID:       chainID,
		Source:        source.Kind(),
		Record:        record,
		Address:       record.AddressFor(chainID),
	}

	r.log.Debug("resolved deployment",
		"role", served, "chainId", chainID, "version", record.Version,
		"address", resolved.Address.Hex(), "source", resolved.Source)

	return resolved, nil
}

var _ usecase.DeploymentResolver = (*Resolver)(nil)
