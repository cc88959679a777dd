// Package config holds the per-device settings: which store file is active and what
// this device is called. Nothing in the store layer reads it; commands pass the path on
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JRDK92/Clockbuster/internal/parser"
)

// Environment overrides, also honoured when set through a .env file
const (
	EnvDatabasePath = "CLOCKBUSTER_DB"
	EnvDeviceName   = "CLOCKBUSTER_DEVICE"
	EnvConfigPath   = "CLOCKBUSTER_CONFIG"
)

// ErrNotConfigured means initial setup has not been run yet
var ErrNotConfigured = errors.New("clockbuster is not set up yet, run 'clockbuster init'")

// Config holds the settings of this device
type Config struct {
	DeviceName   string `yaml:"device_name"`
	DatabasePath string `yaml:"database_path"`
}

// Configured reports whether both settings are present
func (c *Config) Configured() bool {
	return c.DeviceName != "" && c.DatabasePath != ""
}

// Validate returns ErrNotConfigured when setup is incomplete
func (c *Config) Validate() error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return nil
}

// WithEnv returns a copy of cfg with the environment overrides applied. The receiver
// keeps the file contents so saving it never persists an override
func (c *Config) WithEnv() *Config {
	view := *c
	view.ApplyEnv()
	return &view
}

// ApplyEnv overlays CLOCKBUSTER_DB and CLOCKBUSTER_DEVICE onto cfg
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvDatabasePath)); v != "" {
		c.DatabasePath = ExpandTilde(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDeviceName)); v != "" {
		if name, err := parser.NormalizeDeviceName(v); err == nil {
			c.DeviceName = name
		}
	}
}

// Manager handles loading and saving the configuration file
type Manager struct {
	path string
}

// NewManager creates a manager for the file at path. An empty path selects
// CLOCKBUSTER_CONFIG, then the default location
func NewManager(path string) (*Manager, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Manager{path: ExpandTilde(path)}, nil
}

// DefaultPath returns <user config dir>/clockbuster/config.yaml
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, "clockbuster", "config.yaml"), nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.path
}

// Load reads the configuration. A missing file yields an empty Config and no error
func (m *Manager) Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", m.path, err)
	}
	cfg.DatabasePath = ExpandTilde(cfg.DatabasePath)

	return cfg, nil
}

// Save writes the configuration, creating its directory if needed
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
