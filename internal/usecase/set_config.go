package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/samber/lo"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigStore
	registry NetworkRegistry
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, registry NetworkRegistry) *SetConfig {
	return &SetConfig{
		store:    store,
		registry: registry,
	}
}

// Run validates and stores a value. Values are normalized before saving:
// network keys and chain IDs become catalog keys, versions lose their "v".
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := parseKey(params.Key)
	if err != nil {
		return nil, err
	}

	value, err := uc.normalize(key, params.Value)
	if err != nil {
		return nil, err
	}

	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	local.Set(key, value)
	if err := uc.store.Save(ctx, local); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: local,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

func (uc *SetConfig) normalize(key config.ConfigKey, value string) (string, error) {
	switch key {
	case config.ConfigKeyNetwork:
		network, err := uc.registry.Lookup(value)
		if err != nil {
			return "", err
		}
		return network.Key, nil
	case config.ConfigKeyEnv:
		env, err := config.ParseEnvironment(value)
		if err != nil {
			return "", err
		}
		return string(env), nil
	case config.ConfigKeySafeVersion:
		v, err := semver.NewVersion(value)
		if err != nil {
			return "", fmt.Errorf("invalid safe version %q: %w", value, err)
		}
		return v.String(), nil
	}
	return value, nil
}

func parseKey(s string) (config.ConfigKey, error) {
	key, ok := config.ParseConfigKey(s)
	if !ok {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string {
			return string(k)
		})
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", s, strings.Join(validKeys, ", "))
	}
	return key, nil
}
