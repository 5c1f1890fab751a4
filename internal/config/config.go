// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all phonebook configuration.
type Config struct {
	Birthdays Birthdays `yaml:"birthdays"`
	Display   Display   `yaml:"display"`
	Log       Log       `yaml:"log"`
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	HorizonDays int `yaml:"horizon_days"`
}

// Display holds terminal output settings.
type Display struct {
	Prompt string `yaml:"prompt"`
	Color  string `yaml:"color"` // "auto" | "always" | "never"
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "off" | "debug" | "info" | "warn" | "error"
	Path  string `yaml:"path"`  // Empty means stderr.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Birthdays: Birthdays{
			HorizonDays: 7,
		},
		Display: Display{
			Prompt: "Enter a command: ",
			Color:  "auto",
		},
		Log: Log{
			Level: "off",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Birthdays.HorizonDays < 0 {
		return fmt.Errorf("config: birthdays.horizon_days must be non-negative, got %d", c.Birthdays.HorizonDays)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
		// valid
	default:
		return fmt.Errorf("config: display.color must be \"auto\", \"always\" or \"never\", got %q", c.Display.Color)
	}
	switch c.Log.Level {
	case "off", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of off, debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// envOverrides lists the supported environment variables. Unset variables
// leave their pointer nil.
type envOverrides struct {
	HorizonDays *int    `env:"PHONEBOOK_HORIZON_DAYS"`
	Prompt      *string `env:"PHONEBOOK_PROMPT"`
	Color       *string `env:"PHONEBOOK_COLOR"`
	LogLevel    *string `env:"PHONEBOOK_LOG_LEVEL"`
	LogPath     *string `env:"PHONEBOOK_LOG_PATH"`
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PHONEBOOK_HORIZON_DAYS, PHONEBOOK_PROMPT, PHONEBOOK_COLOR,
// PHONEBOOK_LOG_LEVEL, PHONEBOOK_LOG_PATH.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: parsing environment: %w", err)
	}
	c.merge(&rawConfig{
		Birthdays: &rawBirthdays{HorizonDays: o.HorizonDays},
		Display:   &rawDisplay{Prompt: o.Prompt, Color: o.Color},
		Log:       &rawLog{Level: o.LogLevel, Path: o.LogPath},
	})
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Display   *rawDisplay   `yaml:"display"`
	Log       *rawLog       `yaml:"log"`
}

type rawBirthdays struct {
	HorizonDays *int `yaml:"horizon_days"`
}

type rawDisplay struct {
	Prompt *string `yaml:"prompt"`
	Color  *string `yaml:"color"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	Path  *string `yaml:"path"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Birthdays != nil {
		if layer.Birthdays.HorizonDays != nil {
			c.Birthdays.HorizonDays = *layer.Birthdays.HorizonDays
		}
	}
	if layer.Display != nil {
		if layer.Display.Prompt != nil {
			c.Display.Prompt = *layer.Display.Prompt
		}
		if layer.Display.Color != nil {
			c.Display.Color = *layer.Display.Color
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Path != nil {
			c.Log.Path = *layer.Log.Path
		}
	}
}
