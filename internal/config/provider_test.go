package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsksmart/safekit/internal/adapters/network"
	"github.com/rsksmart/safekit/internal/domain"
	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *network.Registry {
	t.Helper()
	registry, err := network.NewRegistry()
	require.NoError(t, err)
	return registry
}

func TestProviderDefaults(t *testing.T) {
	workDir := t.TempDir()
	v := SetupViper(workDir, nil)

	cfg, err := Provider(v, newRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, workDir, cfg.WorkDir)
	assert.Equal(t, filepath.Join(workDir, ".safekit"), cfg.DataDir)
	assert.Equal(t, "rsk_testnet", cfg.NetworkKey)
	assert.Equal(t, uint64(31), cfg.ChainID())
	assert.Equal(t, config.EnvProduction, cfg.Environment)
	assert.Equal(t, cfg.Network.Environment.Production, cfg.Settings)
	assert.Equal(t, "1.3.0", cfg.SafeVersion)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.NonInteractive)
}

func TestProviderEnvironmentVariables(t *testing.T) {
	t.Setenv("SAFEKIT_NETWORK", "rsk-mainnet")
	t.Setenv("SAFEKIT_ENV", "staging")
	t.Setenv("SAFEKIT_SAFE_VERSION", "1.2.0")
	t.Setenv("SAFEKIT_RPC_URL", "http://127.0.0.1:4444")
	t.Setenv("SAFEKIT_TIMEOUT", "5s")

	cfg, err := Provider(SetupViper(t.TempDir(), nil), newRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, "rsk_mainnet", cfg.NetworkKey)
	assert.Equal(t, config.EnvStaging, cfg.Environment)
	assert.Equal(t, "1.2.0", cfg.SafeVersion)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "http://127.0.0.1:4444", cfg.Settings.RPCServiceURL)
	// Overrides never leak into the catalog
	assert.Equal(t, "https://public-node.rsk.co", cfg.Network.Environment.Staging.RPCServiceURL)
	assert.Equal(t, cfg.Network.Environment.Staging.ClientGatewayURL, cfg.Settings.ClientGatewayURL)
}

func TestProviderLocalConfigFile(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(workDir, ".safekit"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(workDir, ".safekit", "config.local.json"),
		[]byte(`{"network": "local", "env": "dev"}`),
		0644,
	))

	cfg, err := Provider(SetupViper(workDir, nil), newRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.NetworkKey)
	assert.Equal(t, uint64(4447), cfg.ChainID())
	assert.Equal(t, config.EnvDev, cfg.Environment)
}

func TestProviderFlags(t *testing.T) {
	t.Setenv("SAFEKIT_NETWORK", "local")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("network", "", "")
	cmd.Flags().String("gateway-url", "", "")
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().String("owner", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{
		"--network", "30",
		"--gateway-url", "http://127.0.0.1:8001/v1",
		"--non-interactive",
	}))

	v := SetupViper(t.TempDir(), cmd)
	cfg, err := Provider(v, newRegistry(t))
	require.NoError(t, err)

	// Flags beat the environment
	assert.Equal(t, "rsk_mainnet", cfg.NetworkKey)
	assert.Equal(t, "http://127.0.0.1:8001/v1", cfg.Settings.ClientGatewayURL)
	assert.True(t, cfg.NonInteractive)
	assert.False(t, v.IsSet("owner"))
}

func TestProviderErrors(t *testing.T) {
	t.Run("unknown network", func(t *testing.T) {
		t.Setenv("SAFEKIT_NETWORK", "goerli")
		_, err := Provider(SetupViper(t.TempDir(), nil), newRegistry(t))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Contains(t, err.Error(), "failed to resolve network goerli")
	})

	t.Run("unknown environment", func(t *testing.T) {
		t.Setenv("SAFEKIT_ENV", "qa")
		_, err := Provider(SetupViper(t.TempDir(), nil), newRegistry(t))
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	workDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env"), []byte("SAFEKIT_TEST_DOTENV=from-env\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".env.local"), []byte("SAFEKIT_TEST_DOTENV_LOCAL=from-local\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("SAFEKIT_TEST_DOTENV")
		os.Unsetenv("SAFEKIT_TEST_DOTENV_LOCAL")
	})

	LoadDotEnv(workDir)

	assert.Equal(t, "from-env", os.Getenv("SAFEKIT_TEST_DOTENV"))
	assert.Equal(t, "from-local", os.Getenv("SAFEKIT_TEST_DOTENV_LOCAL"))
}
