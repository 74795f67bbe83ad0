package usecase

import (
	"context"

	"github.com/rsksmart/safekit/internal/domain/config"
)

// ShowNetworkResult is a network with the settings of the active environment resolved
type ShowNetworkResult struct {
	Network     *config.NetworkConfig
	Environment config.Environment
	Settings    config.EnvironmentSettings
	Active      bool
}

// ShowNetwork is a use case for inspecting one catalog entry
type ShowNetwork struct {
	registry NetworkRegistry
	cfg      *config.RuntimeConfig
}

// NewShowNetwork creates a new ShowNetwork use case
func NewShowNetwork(registry NetworkRegistry, cfg *config.RuntimeConfig) *ShowNetwork {
	return &ShowNetwork{
		registry: registry,
		cfg:      cfg,
	}
}

// Run shows the network named by key, or the active one when key is empty
func (uc *ShowNetwork) Run(ctx context.Context, key string) (*ShowNetworkResult, error) {
	if key == "" {
		return &ShowNetworkResult{
			Network:     uc.cfg.Network,
			Environment: uc.cfg.Environment,
			Settings:    uc.cfg.Settings,
			Active:      true,
		}, nil
	}

	network, err := uc.registry.Lookup(key)
	if err != nil {
		return nil, err
	}

	return &ShowNetworkResult{
		Network:     network,
		Environment: uc.cfg.Environment,
		Settings:    network.Environment.For(uc.cfg.Environment),
		Active:      network.Key == uc.cfg.NetworkKey,
	}, nil
}
