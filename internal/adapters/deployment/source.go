package deployment

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rsksmart/safekit/internal/domain"
)

//go:embed pinned/*.json
var pinned embed.FS

// Source is one strategy for finding deployment records
type Source interface {
	Kind() domain.DeploymentSourceKind
	Lookup(role domain.ContractRole, chainID uint64, version string) (*domain.DeploymentRecord, bool)
	// Versions lists the versions the source can serve for role, newest first
	Versions(role domain.ContractRole) []string
}

// ExternalRegistry is the published registry of canonical deployments
type ExternalRegistry interface {
	Find(role domain.ContractRole, filter domain.DeploymentFilter) (*domain.DeploymentRecord, bool)
	Versions(role domain.ContractRole) []string
}

// LocalSource serves a fixed table of records deployed outside the canonical registry.
// It holds a single version per role and ignores the requested version and network.
type LocalSource struct {
	records map[domain.ContractRole]*domain.DeploymentRecord
}

var pinnedFiles = map[domain.ContractRole]string{
	domain.RoleSafeSingleton:   "pinned/gnosis_safe.json",
	domain.RoleSafeSingletonL2: "pinned/gnosis_safe.json",
	domain.RoleProxyFactory:    "pinned/proxy_factory.json",
	domain.RoleFallbackHandler: "pinned/compatibility_fallback_handler.json",
	domain.RoleMultiSend:       "pinned/multi_send_call_only.json",
}

// NewPinnedSource loads the records pinned for the RSK chains
func NewPinnedSource() (*LocalSource, error) {
	records := make(map[domain.ContractRole]*domain.DeploymentRecord, len(pinnedFiles))
	for role, file := range pinnedFiles {
		data, err := pinned.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read pinned deployment %s: %w", file, err)
		}
		var record domain.DeploymentRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to parse pinned deployment %s: %w", file, err)
		}
		records[role] = &record
	}
	return NewLocalSource(records), nil
}

// NewLocalSource wraps an explicit role table
func NewLocalSource(records map[domain.ContractRole]*domain.DeploymentRecord) *LocalSource {
	return &LocalSource{records: records}
}

func (s *LocalSource) Kind() domain.DeploymentSourceKind { return domain.SourceLocal }

// Lookup ignores chainID and version: each role has exactly one pinned record.
// TODO: key the table by chain ID if RSK mainnet and testnet ever need divergent records.
func (s *LocalSource) Lookup(role domain.ContractRole, _ uint64, _ string) (*domain.DeploymentRecord, bool) {
	record, ok := s.records[role]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

func (s *LocalSource) Versions(role domain.ContractRole) []string {
	if record, ok := s.records[role]; ok {
		return []string{record.Version}
	}
	return nil
}

// ExternalSource queries the canonical registry, first scoped to the chain and then
// network-agnostic.
type ExternalSource struct {
	registry ExternalRegistry
}

func NewExternalSource(registry ExternalRegistry) *ExternalSource {
	return &ExternalSource{registry: registry}
}

func (s *ExternalSource) Kind() domain.DeploymentSourceKind { return domain.SourceExternal }

func (s *ExternalSource) Lookup(role domain.ContractRole, chainID uint64, version string) (*domain.DeploymentRecord, bool) {
	if record, ok := s.registry.Find(role, domain.DeploymentFilter{
		Version: version,
		Network: strconv.FormatUint(chainID, 10),
	}); ok {
		return record, true
	}
	return s.registry.Find(role, domain.DeploymentFilter{Version: version})
}

func (s *ExternalSource) Versions(role domain.ContractRole) []string {
	return s.registry.Versions(role)
}

var (
	_ Source = (*LocalSource)(nil)
	_ Source = (*ExternalSource)(nil)
)
