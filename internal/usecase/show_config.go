package usecase

import (
	"context"
	"fmt"

	"github.com/rsksmart/safekit/internal/domain/config"
)

// ShowConfigResult pairs the stored local config with the effective runtime
// config. Overridden lists stored keys whose value lost to a flag or a
// SAFEKIT_* variable.
type ShowConfigResult struct {
	Local      *config.LocalConfig
	Runtime    *config.RuntimeConfig
	ConfigPath string
	Exists     bool
	Overridden []config.ConfigKey
}

type ShowConfig struct {
	store    LocalConfigStore
	registry NetworkRegistry
	cfg      *config.RuntimeConfig
}

func NewShowConfig(store LocalConfigStore, registry NetworkRegistry, cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		store:    store,
		registry: registry,
		cfg:      cfg,
	}
}

func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	result := &ShowConfigResult{
		Local:      local,
		Runtime:    uc.cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     uc.store.Exists(),
	}
	for _, key := range config.ValidConfigKeys() {
		if stored := local.Get(key); stored != "" && !uc.effective(key, stored) {
			result.Overridden = append(result.Overridden, key)
		}
	}
	return result, nil
}

// effective reports whether the stored value is the one in use
func (uc *ShowConfig) effective(key config.ConfigKey, stored string) bool {
	switch key {
	case config.ConfigKeyNetwork:
		// the file may hold a chain id or an alias
		network, err := uc.registry.Lookup(stored)
		return err == nil && network.Key == uc.cfg.NetworkKey
	case config.ConfigKeyEnv:
		env, err := config.ParseEnvironment(stored)
		return err == nil && env == uc.cfg.Environment
	case config.ConfigKeySafeVersion:
		return stored == uc.cfg.SafeVersion
	default:
		return true
	}
}
