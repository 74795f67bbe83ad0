package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/rsksmart/safekit/internal/domain/config"
	"github.com/rsksmart/safekit/internal/usecase"
)

// LocalConfigFile is the name of the per-workspace settings file inside DataDir
const LocalConfigFile = "config.local.json"

// LocalConfigStoreAdapter keeps the workspace defaults (network, env,
// safe_version) that config set/remove and networks select edit
type LocalConfigStoreAdapter struct {
	path string
}

func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{path: filepath.Join(cfg.DataDir, LocalConfigFile)}
}

func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, iofs.ErrNotExist)
}

// Load returns an empty config when the file is missing. Unknown keys are an
// error so a misspelled key is not silently ignored.
func (s *LocalConfigStoreAdapter) Load(ctx context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	local := config.DefaultLocalConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return local, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(local); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return local, nil
}

// Save replaces the file through a rename so readers never see a partial write
func (s *LocalConfigStoreAdapter) Save(ctx context.Context, local *config.LocalConfig) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal local config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, LocalConfigFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write local config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write local config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write local config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.path
}

var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
