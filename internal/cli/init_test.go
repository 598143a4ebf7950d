package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/gpumon/internal/config"
	"github.com/voltlab/gpumon/internal/errors"
)

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)

	cfg := config.DefaultConfig()
	cfg.Backend = "mock"
	cfg.Interval = 2 * time.Second

	require.NoError(t, WriteConfig(path, cfg))

	// The written file starts with the header comment and round-trips
	// through the loader.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# gpumon configuration")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mock", loaded.Backend)
	assert.Equal(t, 2*time.Second, loaded.Interval)
	assert.Equal(t, config.CurrentConfigVersion, loaded.Version)
}

func TestInitNonInteractive(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	err := Init(InitOptions{NonInteractive: true})
	require.NoError(t, err)

	loaded, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)
}

func TestInitRefusesExistingWithoutForce(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	err := Init(InitOptions{NonInteractive: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestInitOverwritesWithForce(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend: nvidia\n"), 0644))

	err := Init(InitOptions{NonInteractive: true, Overwrite: true})
	require.NoError(t, err)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", loaded.Backend)
}
