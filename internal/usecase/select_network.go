package usecase

import (
	"context"
	"fmt"

	"github.com/rsksmart/safekit/internal/domain/config"
)

// SelectNetworkResult contains the result of selecting a network
type SelectNetworkResult struct {
	Network    *config.NetworkConfig
	Previous   string
	ConfigPath string
}

// SelectNetwork prompts for a catalog network and persists it in the local config
type SelectNetwork struct {
	registry NetworkRegistry
	selector NetworkSelector
	store    LocalConfigStore
	cfg      *config.RuntimeConfig
}

// NewSelectNetwork creates a new SelectNetwork use case
func NewSelectNetwork(
	registry NetworkRegistry,
	selector NetworkSelector,
	store LocalConfigStore,
	cfg *config.RuntimeConfig,
) *SelectNetwork {
	return &SelectNetwork{
		registry: registry,
		selector: selector,
		store:    store,
		cfg:      cfg,
	}
}

// Run selects key directly when given, otherwise asks the selector
func (uc *SelectNetwork) Run(ctx context.Context, key string) (*SelectNetworkResult, error) {
	var (
		network *config.NetworkConfig
		err     error
	)
	if key != "" {
		network, err = uc.registry.Lookup(key)
	} else {
		network, err = uc.selector.SelectNetwork(ctx, uc.registry.List(), uc.cfg.NetworkKey)
	}
	if err != nil {
		return nil, err
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	previous := local.Network
	local.Network = network.Key
	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save local config: %w", err)
	}

	return &SelectNetworkResult{
		Network:    network,
		Previous:   previous,
		ConfigPath: uc.store.GetPath(),
	}, nil
}
