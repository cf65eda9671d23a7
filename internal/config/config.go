// Package config handles endowdb configuration: defaults for the store
// path and generation parameters, overridable per-invocation by flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all endowdb configuration.
type Config struct {
	Store StoreConfig `toml:"store"`
	Seed  SeedConfig  `toml:"seed"`
}

// StoreConfig holds database location settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// SeedConfig holds default synthetic generation parameters.
type SeedConfig struct {
	StartYear int   `toml:"start_year"`
	RNGSeed   int64 `toml:"rng_seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{Path: "endowment.db"},
		Seed:  SeedConfig{StartYear: 2006, RNGSeed: 42},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "endowdb")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "endowdb")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
