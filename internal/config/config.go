// ABOUTME: Daytrack configuration management.
// ABOUTME: Handles data directory, color scheme preference, and store factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"daytrack/internal/storage"
)

// ColorScheme values accepted for the display preference.
const (
	SchemeLight = "light"
	SchemeDark  = "dark"
)

// Config stores daytrack configuration.
type Config struct {
	// DataDir is the root directory holding daytrack.db.
	// Supports ~ expansion. Defaults to ~/.local/share/daytrack.
	DataDir string `json:"data_dir,omitempty"`

	// ColorScheme is the display preference ("light" or "dark").
	// It travels with snapshot exports and is restored on import.
	ColorScheme string `json:"color_scheme,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// SetColorScheme validates and stores the color scheme preference.
func (c *Config) SetColorScheme(scheme string) error {
	if scheme != SchemeLight && scheme != SchemeDark {
		return fmt.Errorf("unknown color scheme: %q", scheme)
	}
	c.ColorScheme = scheme
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store under the configured data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "daytrack.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "daytrack", "config.json")
}

// Load reads config from disk. A missing file yields defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
