package network

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/samber/lo"
)

//go:embed catalog.toml
var defaultCatalog string

// catalogFile is the on-disk shape of catalog.toml
type catalogFile struct {
	Networks map[string]*config.NetworkConfig `toml:"networks"`
}

// Registry is the static catalog of supported networks
type Registry struct {
	networks      map[string]*config.NetworkConfig
	chainIDLookup map[uint64]string // chainID -> network key
}

// NewRegistry loads the embedded network catalog
func NewRegistry() (*Registry, error) {
	return LoadRegistry(strings.NewReader(defaultCatalog))
}

// LoadRegistry parses a TOML catalog. ${VAR} references in string values are expanded
// from the process environment.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var file catalogFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse network catalog: %w", err)
	}

	reg := &Registry{
		networks:      make(map[string]*config.NetworkConfig),
		chainIDLookup: make(map[uint64]string),
	}

	for key, network := range file.Networks {
		if err := checkEnvironmentKeys(md, key); err != nil {
			return nil, err
		}
		network.Key = key
		expandEnvironment(&network.Environment.Dev)
		expandEnvironment(&network.Environment.Staging)
		expandEnvironment(&network.Environment.Production)

		if existing, ok := reg.chainIDLookup[network.ChainID()]; ok {
			return nil, fmt.Errorf("networks %q and %q share chain ID %d", existing, key, network.ChainID())
		}
		reg.addNetwork(network)
	}

	return reg, nil
}

// checkEnvironmentKeys enforces that dev, staging and production define the same keys
func checkEnvironmentKeys(md toml.MetaData, network string) error {
	envs := []string{string(config.EnvDev), string(config.EnvStaging), string(config.EnvProduction)}
	keysByEnv := make(map[string][]string, len(envs))

	for _, key := range md.Keys() {
		if len(key) != 5 || key[0] != "networks" || key[1] != network || key[2] != "environment" {
			continue
		}
		keysByEnv[key[3]] = append(keysByEnv[key[3]], key[4])
	}

	reference := keysByEnv[envs[0]]
	sort.Strings(reference)
	for _, env := range envs {
		if !md.IsDefined("networks", network, "environment", env) {
			return fmt.Errorf("network %q: missing %s environment", network, env)
		}
		keys := keysByEnv[env]
		sort.Strings(keys)
		left, right := lo.Difference(reference, keys)
		if len(left) > 0 || len(right) > 0 {
			return fmt.Errorf("network %q: %s environment keys differ from %s (missing %v, extra %v)",
				network, env, envs[0], left, right)
		}
	}
	return nil
}

func expandEnvironment(s *config.EnvironmentSettings) {
	for _, field := range []*string{
		&s.ClientGatewayURL,
		&s.TxServiceURL,
		&s.SafeURL,
		&s.RPCServiceURL,
		&s.SafeAppsURL,
		&s.SafeAppsRPCServiceURL,
		&s.NetworkExplorerURL,
		&s.NetworkExplorerAPIURL,
	} {
		if strings.Contains(*field, "$") {
			*field = os.ExpandEnv(*field)
		}
	}
	if s.GasPriceOracle != nil && strings.Contains(s.GasPriceOracle.URL, "$") {
		s.GasPriceOracle.URL = os.ExpandEnv(s.GasPriceOracle.URL)
	}
}

// addNetwork adds a network configuration
func (r *Registry) addNetwork(network *config.NetworkConfig) {
	r.networks[network.Key] = network
	r.chainIDLookup[network.ChainID()] = network.Key
}

// Lookup resolves a network by catalog key (case-insensitive, '-' and '_' interchangeable)
// or by decimal chain ID.
func (r *Registry) Lookup(networkKey string) (*config.NetworkConfig, error) {
	if networkKey == "" {
		return nil, fmt.Errorf("network not specified")
	}

	if network, ok := r.networks[networkKey]; ok {
		return network, nil
	}

	normalized := strings.ReplaceAll(strings.ToLower(networkKey), "-", "_")
	if network, ok := r.networks[normalized]; ok {
		return network, nil
	}

	if chainID, err := strconv.ParseUint(networkKey, 10, 64); err == nil {
		return r.LookupByChainID(chainID)
	}

	return nil, domain.NetworkNotFoundErr{Key: networkKey, Available: r.Keys()}
}

// LookupByChainID retrieves a network by its chain ID
func (r *Registry) LookupByChainID(chainID uint64) (*config.NetworkConfig, error) {
	if key, ok := r.chainIDLookup[chainID]; ok {
		return r.networks[key], nil
	}
	return nil, domain.NetworkNotFoundErr{ChainID: chainID, Available: r.Keys()}
}

// List returns all networks ordered by chain ID
func (r *Registry) List() []*config.NetworkConfig {
	networks := lo.Values(r.networks)
	sort.Slice(networks, func(i, j int) bool {
		return networks[i].ChainID() < networks[j].ChainID()
	})
	return networks
}

// Keys returns the catalog keys ordered by chain ID
func (r *Registry) Keys() []string {
	return lo.Map(r.List(), func(n *config.NetworkConfig, _ int) string { return n.Key })
}
