package usecase

import (
	"context"

	"github.com/rsksmart/safekit/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents one catalog entry as seen from the active environment
type NetworkStatus struct {
	Key       string
	ChainID   uint64
	Label     string
	IsTestNet bool
	Symbol    string
	RPCURL    string
	Current   bool
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	registry NetworkRegistry
	cfg      *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(registry NetworkRegistry, cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		registry: registry,
		cfg:      cfg,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	catalog := uc.registry.List()

	networks := make([]NetworkStatus, 0, len(catalog))
	for _, network := range catalog {
		networks = append(networks, NetworkStatus{
			Key:       network.Key,
			ChainID:   network.ChainID(),
			Label:     network.Network.Label,
			IsTestNet: network.Network.IsTestNet,
			Symbol:    network.Network.NativeCoin.Symbol,
			RPCURL:    network.Environment.For(uc.cfg.Environment).RPCServiceURL,
			Current:   network.Key == uc.cfg.NetworkKey,
		})
	}

	return &ListNetworksResult{
		Networks: networks,
		Current:  uc.cfg.NetworkKey,
	}, nil
}
