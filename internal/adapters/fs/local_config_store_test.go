package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalConfigStore(t *testing.T) *LocalConfigStoreAdapter {
	t.Helper()
	cfg := &config.RuntimeConfig{
		DataDir: filepath.Join(t.TempDir(), ".safekit"),
	}
	return NewLocalConfigStoreAdapter(cfg)
}

func TestLocalConfigStore_LoadMissing(t *testing.T) {
	store := newTestLocalConfigStore(t)

	assert.False(t, store.Exists())
	local, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLocalConfig(), local)
}

func TestLocalConfigStore_SaveAndLoad(t *testing.T) {
	store := newTestLocalConfigStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &config.LocalConfig{Network: "rsk_mainnet", SafeVersion: "1.3.0"}))
	assert.True(t, store.Exists())

	data, err := os.ReadFile(store.GetPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"network": "rsk_mainnet", "safe_version": "1.3.0"}`, string(data))

	local, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rsk_mainnet", local.Network)
	assert.Empty(t, local.Env)

	// Only the config file is left behind
	entries, err := os.ReadDir(filepath.Dir(store.GetPath()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, LocalConfigFile, entries[0].Name())
}

func TestLocalConfigStore_LoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key": `{"namespace": "default"}`,
		"malformed":   `{"network": `,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			store := newTestLocalConfigStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(store.GetPath()), 0755))
			require.NoError(t, os.WriteFile(store.GetPath(), []byte(content), 0644))

			_, err := store.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse")
		})
	}
}

func TestLocalConfigStore_LoadEmptyFile(t *testing.T) {
	store := newTestLocalConfigStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.GetPath()), 0755))
	require.NoError(t, os.WriteFile(store.GetPath(), []byte("\n"), 0644))

	local, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLocalConfig(), local)
}
