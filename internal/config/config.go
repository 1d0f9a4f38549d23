// Package config loads application settings from a YAML file via Viper,
// falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/yurim-dev/healthmate/internal/model"
	"github.com/yurim-dev/healthmate/internal/reminder"
)

// MealWindow is a configurable meal time window in HH:MM bounds.
// The window is half-open: [Start, End).
type MealWindow struct {
	Start string `mapstructure:"start" yaml:"start"`
	End   string `mapstructure:"end" yaml:"end"`
}

// Config is the top-level application configuration.
type Config struct {
	// UserID namespaces the persisted collections.
	UserID string `mapstructure:"user_id" yaml:"user_id"`

	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// ReminderLimit caps the generated reminder list.
	ReminderLimit int `mapstructure:"reminder_limit" yaml:"reminder_limit"`

	// MealWindows overrides the meal time windows, keyed by meal type.
	MealWindows map[string]MealWindow `mapstructure:"meal_windows" yaml:"meal_windows"`

	// SlotHours overrides the nominal hour of each medication time slot.
	SlotHours map[string]int `mapstructure:"slot_hours" yaml:"slot_hours"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/healthmate/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "healthmate", "config.yaml")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		UserID:        "default",
		DBPath:        filepath.Join(home, ".config", "healthmate", "healthmate.db"),
		ReminderLimit: reminder.DefaultLimit,
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultConfig()
	v.SetDefault("user_id", defaults.UserID)
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("reminder_limit", defaults.ReminderLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Generator builds a reminder generator from the configuration, applying
// defaults for any window or slot hour not overridden.
func (c *Config) Generator() *reminder.Generator {
	g := reminder.NewGenerator()
	if c.ReminderLimit > 0 {
		g.Limit = c.ReminderLimit
	}

	for key, w := range c.MealWindows {
		start, okStart := minuteOfDay(w.Start)
		end, okEnd := minuteOfDay(w.End)
		if !okStart || !okEnd || end <= start {
			continue
		}
		g.Windows[model.MealType(key)] = reminder.Window{Start: start, End: end}
	}

	for key, hour := range c.SlotHours {
		if hour < 0 || hour > 23 {
			continue
		}
		g.SlotHours[model.TimeSlot(key)] = hour
	}

	return g
}

// minuteOfDay parses an HH:MM string into minutes since midnight.
func minuteOfDay(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
