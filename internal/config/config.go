// Package config handles loading daykeep's config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the config.toml configuration file.
type Config struct {
	Data    Data    `toml:"data"`
	Sync    Sync    `toml:"sync"`
	Planner Planner `toml:"planner"`
}

// Data contains storage configuration.
type Data struct {
	// Dir is the data directory holding the databases. Defaults to
	// ~/.local/share/daykeep; the DAYKEEP_DATA_DIR environment variable
	// overrides both.
	Dir string `toml:"dir"`
}

// Sync contains remote sync configuration. Sync is disabled when
// Endpoint is empty.
type Sync struct {
	// Endpoint is the URL sync items are POSTed to.
	Endpoint string `toml:"endpoint"`

	// Interval is the periodic drain cadence, e.g. "30s".
	Interval duration `toml:"interval"`
}

// Planner contains capacity-planning defaults applied on first run.
// Once state exists, the in-state settings win.
type Planner struct {
	DailyCapacityMinutes int    `toml:"daily-capacity-minutes"`
	TaskAgingDays        int    `toml:"task-aging-days"`
	WorkdayStart         string `toml:"workday-start"`
	WorkdayEnd           string `toml:"workday-end"`
}

// duration wraps time.Duration for TOML decoding from strings.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// SyncInterval returns the configured drain interval, or zero when
// unset.
func (c *Config) SyncInterval() time.Duration {
	return time.Duration(c.Sync.Interval)
}

// DataDir returns the effective data directory: DAYKEEP_DATA_DIR, then
// the config value, then ~/.local/share/daykeep.
func (c *Config) DataDir() (string, error) {
	if dir := os.Getenv("DAYKEEP_DATA_DIR"); dir != "" {
		return dir, nil
	}
	if c.Data.Dir != "" {
		return c.Data.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "daykeep"), nil
}

// Load loads configuration from DAYKEEP_CONFIG if set, otherwise from
// ~/.config/daykeep/config.toml. Returns an empty config if no config
// file exists.
func Load() (*Config, error) {
	path := os.Getenv("DAYKEEP_CONFIG")
	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return loadConfigFile(path)
}

func defaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "daykeep", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &cfg, nil
}
