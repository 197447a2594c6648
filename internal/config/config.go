// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/huddlehq/huddle/internal/event"
	"github.com/huddlehq/huddle/internal/recurrence"
)

// Upper bounds accepted by Validate.
const (
	maxOccurrenceCount  = 100
	maxMonthlyLookahead = 120
	maxEventsPerCell    = 10
)

// Config holds the application configuration.
type Config struct {
	Recurrence RecurrenceConfig `toml:"recurrence"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Storage    StorageConfig    `toml:"storage"`
	UI         UIConfig         `toml:"ui"`
}

// RecurrenceConfig holds occurrence projection settings.
type RecurrenceConfig struct {
	OccurrenceCount  int `toml:"occurrence_count"`  // occurrences shown per recurring event
	MonthlyLookahead int `toml:"monthly_lookahead"` // months searched for a monthly match
}

// CalendarConfig holds calendar grid settings.
type CalendarConfig struct {
	MaxEventsPerCell int    `toml:"max_events_per_cell"`
	DefaultType      string `toml:"default_type"` // "Lightning", "Regular" or "Special"
	// ShowHiddenCount adds a "+N more" line to cells that dropped events.
	ShowHiddenCount  bool   `toml:"show_hidden_count"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Recurrence: RecurrenceConfig{
			OccurrenceCount:  recurrence.DefaultCount,
			MonthlyLookahead: recurrence.MonthlyLookahead,
		},
		Calendar: CalendarConfig{
			MaxEventsPerCell: 3,
			DefaultType:      string(event.TypeRegular),
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "huddle.db"
	}
	return filepath.Join(home, ".local", "share", "huddle", "huddle.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "huddle", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

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
			return nil
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
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HUDDLE_OCCURRENCE_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HUDDLE_OCCURRENCE_COUNT: %w", err)
		}
		cfg.Recurrence.OccurrenceCount = n
	}
	if v := os.Getenv("HUDDLE_MONTHLY_LOOKAHEAD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HUDDLE_MONTHLY_LOOKAHEAD: %w", err)
		}
		cfg.Recurrence.MonthlyLookahead = n
	}
	if v := os.Getenv("HUDDLE_DEFAULT_TYPE"); v != "" {
		cfg.Calendar.DefaultType = v
	}
	if v := os.Getenv("HUDDLE_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("HUDDLE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
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
	if c.Recurrence.OccurrenceCount < 1 || c.Recurrence.OccurrenceCount > maxOccurrenceCount {
		return fmt.Errorf("occurrence_count must be between 1 and %d, got %d", maxOccurrenceCount, c.Recurrence.OccurrenceCount)
	}
	if c.Recurrence.MonthlyLookahead < 1 || c.Recurrence.MonthlyLookahead > maxMonthlyLookahead {
		return fmt.Errorf("monthly_lookahead must be between 1 and %d, got %d", maxMonthlyLookahead, c.Recurrence.MonthlyLookahead)
	}
	if c.Calendar.MaxEventsPerCell < 1 || c.Calendar.MaxEventsPerCell > maxEventsPerCell {
		return fmt.Errorf("max_events_per_cell must be between 1 and %d, got %d", maxEventsPerCell, c.Calendar.MaxEventsPerCell)
	}
	if _, err := event.ParseType(c.Calendar.DefaultType); err != nil {
		return fmt.Errorf("default_type: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// DefaultType returns the configured default event type.
// Call only on a validated config.
func (c *Config) DefaultType() event.Type {
	t, _ := event.ParseType(c.Calendar.DefaultType)
	return t
}

// Engine returns a recurrence engine using the configured lookahead.
func (c *Config) Engine() *recurrence.Engine {
	return recurrence.NewEngine(c.Recurrence.MonthlyLookahead)
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
