// Package config loads and persists srvburn settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all srvburn configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Budget  BudgetConfig  `toml:"budget"`
}

// GeneralConfig holds data-source and horizon preferences.
type GeneralConfig struct {
	HorizonDays int    `toml:"horizon_days"`
	MonthsAhead int    `toml:"months_ahead"`
	ServersFile string `toml:"servers_file,omitempty"`
	ServersURL  string `toml:"servers_url,omitempty"`
}

// DisplayConfig holds currency and locale settings.
type DisplayConfig struct {
	CurrencySymbol    string `toml:"currency_symbol"`
	Locale            string `toml:"locale"`
	MinFractionDigits int    `toml:"min_fraction_digits"`
	MaxFractionDigits int    `toml:"max_fraction_digits"`
}

// BudgetConfig holds budget tracking settings. A zero monthly budget
// disables the budget line.
type BudgetConfig struct {
	Monthly float64 `toml:"monthly,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HorizonDays: 365,
			MonthsAhead: 12,
			ServersFile: filepath.Join(Dir(), "servers.json"),
		},
		Display: DisplayConfig{
			CurrencySymbol:    "$",
			Locale:            "en",
			MinFractionDigits: 2,
			MaxFractionDigits: 2,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "srvburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "srvburn")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
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
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ExpandPath resolves a leading ~ to the user home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
