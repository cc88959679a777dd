package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.False(t, cfg.Configured())
	assert.ErrorIs(t, cfg.Validate(), ErrNotConfigured)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path())

	want := &Config{DeviceName: "desktop", DatabasePath: "/data/clockbuster_desktop.db"}
	require.NoError(t, m.Save(want))

	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Configured())
	assert.NoError(t, got.Validate())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "device_name: desktop")
	assert.Contains(t, string(data), "database_path: /data/clockbuster_desktop.db")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device_name: [unterminated"), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)
	_, err = m.Load()
	assert.Error(t, err)
}

func TestNewManagerUsesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.yaml")
	t.Setenv(EnvConfigPath, path)

	m, err := NewManager("")
	require.NoError(t, err)
	assert.Equal(t, path, m.Path())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDatabasePath, "/tmp/override.db")
	t.Setenv(EnvDeviceName, "Work Laptop")

	cfg := &Config{DeviceName: "desktop", DatabasePath: "/data/clockbuster_desktop.db"}
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/override.db", cfg.DatabasePath)
	assert.Equal(t, "work laptop", cfg.DeviceName)
}

func TestApplyEnvIgnoresInvalidDevice(t *testing.T) {
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvDeviceName, "???")

	cfg := &Config{DeviceName: "desktop", DatabasePath: "/data/a.db"}
	cfg.ApplyEnv()

	assert.Equal(t, "desktop", cfg.DeviceName)
	assert.Equal(t, "/data/a.db", cfg.DatabasePath)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "Drive", "a.db"), ExpandTilde("~/Drive/a.db"))
	assert.Equal(t, "/abs/a.db", ExpandTilde("/abs/a.db"))
	assert.Equal(t, "~user/a.db", ExpandTilde("~user/a.db"))
}

func TestWithEnvLeavesReceiverUntouched(t *testing.T) {
	t.Setenv(EnvDatabasePath, "/tmp/override.db")
	t.Setenv(EnvDeviceName, "borrowed")

	saved := &Config{DeviceName: "desktop", DatabasePath: "/data/clockbuster_desktop.db"}
	view := saved.WithEnv()

	assert.Equal(t, "/tmp/override.db", view.DatabasePath)
	assert.Equal(t, "borrowed", view.DeviceName)
	assert.Equal(t, "desktop", saved.DeviceName)
	assert.Equal(t, "/data/clockbuster_desktop.db", saved.DatabasePath)
}
