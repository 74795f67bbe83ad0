package config

import "strings"

// LocalConfig represents the persisted per-directory safekit configuration
type LocalConfig struct {
	Network     string `json:"network,omitempty" yaml:"network,omitempty"`
	Env         string `json:"env,omitempty" yaml:"env,omitempty"`
	SafeVersion string `json:"safe_version,omitempty" yaml:"safe_version,omitempty"`
}

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ConfigKey names a value that can be stored in the local config
type ConfigKey string

const (
	ConfigKeyNetwork     ConfigKey = "network"
	ConfigKeyEnv         ConfigKey = "env"
	ConfigKeySafeVersion ConfigKey = "safe_version"
)

var configKeyAliases = map[string]ConfigKey{
	"network":      ConfigKeyNetwork,
	"env":          ConfigKeyEnv,
	"environment":  ConfigKeyEnv,
	"safe_version": ConfigKeySafeVersion,
	"safe-version": ConfigKeySafeVersion,
	"version":      ConfigKeySafeVersion,
}

// ValidConfigKeys returns the canonical config keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{ConfigKeyNetwork, ConfigKeyEnv, ConfigKeySafeVersion}
}

// ParseConfigKey resolves a key or one of its aliases, case-insensitively
func ParseConfigKey(s string) (ConfigKey, bool) {
	key, ok := configKeyAliases[strings.ToLower(strings.TrimSpace(s))]
	return key, ok
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyEnv:
		return c.Env
	case ConfigKeySafeVersion:
		return c.SafeVersion
	}
	return ""
}

// Set stores value under key. An empty value clears it.
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyEnv:
		c.Env = value
	case ConfigKeySafeVersion:
		c.SafeVersion = value
	}
}
