// Package deployments is the registry of canonical Safe contract deployments.
//
// Records are stored per version under assets/ in the same JSON layout the Safe team
// publishes, and each role keeps its versions ordered newest first, so a lookup
// returns the most recent release that satisfies the filter.
package deployments

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	"github.com/Masterminds/semver/v3"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/samber/lo"
)

//go:embed assets
var assets embed.FS

// Asset paths per role, newest first
var catalog = map[domain.ContractRole][]string{
	domain.RoleSafeSingleton: {
		"v1.3.0/gnosis_safe.json",
		"v1.2.0/gnosis_safe.json",
		"v1.1.1/gnosis_safe.json",
	},
	domain.RoleSafeSingletonL2: {
		"v1.3.0/gnosis_safe_l2.json",
	},
	domain.RoleProxyFactory: {
		"v1.3.0/proxy_factory.json",
		"v1.1.1/proxy_factory.json",
	},
	domain.RoleFallbackHandler: {
		"v1.3.0/compatibility_fallback_handler.json",
		"v1.1.1/default_callback_handler.json",
	},
	domain.RoleMultiSend: {
		"v1.3.0/multi_send_call_only.json",
	},
}

// Registry serves deployment records filtered by version and network
type Registry struct {
	records map[domain.ContractRole][]*domain.DeploymentRecord
}

// NewRegistry loads the embedded deployment assets
func NewRegistry() (*Registry, error) {
	r := &Registry{records: make(map[domain.ContractRole][]*domain.DeploymentRecord, len(catalog))}
	for role, files := range catalog {
		for _, file := range files {
			record, err := loadRecord(path.Join("assets", file))
			if err != nil {
				return nil, err
			}
			r.records[role] = append(r.records[role], record)
		}
	}
	return r, nil
}

func loadRecord(name string) (*domain.DeploymentRecord, error) {
	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment asset %s: %w", name, err)
	}
	var record domain.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse deployment asset %s: %w", name, err)
	}
	return &record, nil
}

// Find returns a copy of the newest record for role matching the filter
func (r *Registry) Find(role domain.ContractRole, filter domain.DeploymentFilter) (*domain.DeploymentRecord, bool) {
	released := true
	if filter.Released != nil {
		released = *filter.Released
	}

	var constraint *semver.Constraints
	if filter.Version != "" {
		c, err := semver.NewConstraint(filter.Version)
		if err != nil {
			return nil, false
		}
		constraint = c
	}

	record, ok := lo.Find(r.records[role], func(d *domain.DeploymentRecord) bool {
		if d.Released != released {
			return false
		}
		if filter.Network != "" && !d.HasNetwork(filter.Network) {
			return false
		}
		if constraint == nil {
			return true
		}
		v, err := semver.NewVersion(d.Version)
		return err == nil && constraint.Check(v)
	})
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// Versions lists the versions known for a role, newest first
func (r *Registry) Versions(role domain.ContractRole) []string {
	return lo.Map(r.records[role], func(d *domain.DeploymentRecord, _ int) string { return d.Version })
}
