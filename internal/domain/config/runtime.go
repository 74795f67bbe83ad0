package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration.
// It is resolved once at startup and never mutated afterwards.
type RuntimeConfig struct {
	// Core settings
	WorkDir string
	DataDir string

	// Active network and its deployment environment bundle
	NetworkKey  string
	Network     *NetworkConfig
	Environment Environment
	Settings    EnvironmentSettings

	// Safe contracts version used for singleton, proxy factory and fallback handler
	SafeVersion string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
}

// ChainID returns the active chain ID, or 0 when no network is selected
func (c *RuntimeConfig) ChainID() uint64 {
	if c.Network == nil {
		return 0
	}
	return c.Network.ChainID()
}
