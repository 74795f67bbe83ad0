package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix          = "SAFEKIT"
	DataDirName        = ".safekit"
	DefaultNetwork     = "rsk_testnet"
	DefaultSafeVersion = "1.3.0"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper, registry usecase.NetworkRegistry) (*config.RuntimeConfig, error) {
	workDir := v.GetString("work_dir")
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	env, err := config.ParseEnvironment(v.GetString("env"))
	if err != nil {
		return nil, err
	}

	networkKey := v.GetString("network")
	network, err := registry.Lookup(networkKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkKey, err)
	}

	// Overrides apply to the active environment only
	settings := network.Environment.For(env)
	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		settings.RPCServiceURL = rpcURL
	}
	if gatewayURL := v.GetString("gateway_url"); gatewayURL != "" {
		settings.ClientGatewayURL = gatewayURL
	}

	return &config.RuntimeConfig{
		WorkDir:        workDir,
		DataDir:        filepath.Join(workDir, DataDirName),
		NetworkKey:     network.Key,
		Network:        network,
		Environment:    env,
		Settings:       settings,
		SafeVersion:    v.GetString("safe_version"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}, nil
}

// LoadDotEnv loads .env and .env.local from workDir. Variables already set in
// the process environment are kept. It must run before the network catalog is
// loaded so catalog URLs can reference them.
func LoadDotEnv(workDir string) {
	envFiles := []string{
		filepath.Join(workDir, ".env"),
		filepath.Join(workDir, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// SetupViper creates and configures a viper instance. Precedence, highest
// first: flags, SAFEKIT_* environment, .safekit/config.local.json, defaults.
func SetupViper(workDir string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("work_dir", workDir)
	v.SetDefault("network", DefaultNetwork)
	v.SetDefault("env", string(config.EnvProduction))
	v.SetDefault("safe_version", DefaultSafeVersion)
	v.SetDefault("timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !isConfigFlag(f.Name) {
				return
			}
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

var configFlags = map[string]string{
	"network":         "network",
	"env":             "env",
	"safe-version":    "safe_version",
	"rpc-url":         "rpc_url",
	"gateway-url":     "gateway_url",
	"timeout":         "timeout",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
}

func isConfigFlag(name string) bool {
	_, ok := configFlags[name]
	return ok
}

func flagKey(name string) string {
	return configFlags[name]
}
