// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
	Sync     SyncConfig     `toml:"sync"`
}

// CalendarConfig holds the weekly grid settings.
type CalendarConfig struct {
	StartHour          int    `toml:"start_hour"`          // first visible hour, e.g. 6
	EndHour            int    `toml:"end_hour"`            // last visible hour, e.g. 21
	GranularityMinutes int    `toml:"granularity_minutes"` // slot size, must divide 60
	WeekStartsOn       string `toml:"week_starts_on"`      // "monday" or "sunday"
	TimeFormat         string `toml:"time_format"`         // "24h" or "12h"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// SyncConfig holds external calendar settings.
type SyncConfig struct {
	ICSURL string `toml:"ics_url"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Calendar: CalendarConfig{
			StartHour:          6,
			EndHour:            21,
			GranularityMinutes: 15,
			WeekStartsOn:       "monday",
			TimeFormat:         "24h",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timeaudit.db"
	}
	return filepath.Join(home, ".local", "share", "timeaudit", "timeaudit.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timeaudit", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TIMEAUDIT_START_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.StartHour = n
		}
	}
	if v := os.Getenv("TIMEAUDIT_END_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.EndHour = n
		}
	}
	if v := os.Getenv("TIMEAUDIT_GRANULARITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.GranularityMinutes = n
		}
	}
	if v := os.Getenv("TIMEAUDIT_WEEK_STARTS_ON"); v != "" {
		cfg.Calendar.WeekStartsOn = v
	}
	if v := os.Getenv("TIMEAUDIT_TIME_FORMAT"); v != "" {
		cfg.Calendar.TimeFormat = v
	}
	if v := os.Getenv("TIMEAUDIT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TIMEAUDIT_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("TIMEAUDIT_ICS_URL"); v != "" {
		cfg.Sync.ICSURL = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	cal := c.Calendar
	if cal.StartHour < 0 || cal.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23, got %d", cal.StartHour)
	}
	if cal.EndHour < 0 || cal.EndHour > 23 {
		return fmt.Errorf("end_hour must be between 0 and 23, got %d", cal.EndHour)
	}
	if cal.StartHour >= cal.EndHour {
		return errors.New("start_hour must be before end_hour")
	}
	if cal.GranularityMinutes <= 0 || 60%cal.GranularityMinutes != 0 {
		return fmt.Errorf("granularity_minutes must evenly divide 60, got %d", cal.GranularityMinutes)
	}
	switch strings.ToLower(cal.WeekStartsOn) {
	case "monday", "sunday":
	default:
		return fmt.Errorf("week_starts_on must be monday or sunday, got %q", cal.WeekStartsOn)
	}
	switch cal.TimeFormat {
	case "24h", "12h":
	default:
		return fmt.Errorf("time_format must be 24h or 12h, got %q", cal.TimeFormat)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// WeekStart returns the configured first day of the week.
func (c *Config) WeekStart() time.Weekday {
	if strings.EqualFold(c.Calendar.WeekStartsOn, "sunday") {
		return time.Sunday
	}
	return time.Monday
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
