// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Defaults applied by MergeWithDefaults and FromEnv.
const (
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
	DefaultPulseTTL      = "10m"
	DefaultPruneSchedule = "*/5 * * * *"
	DefaultBatchWorkers  = 4
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, CLI flags or defaults.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	LogLevel    string `json:"log_level,omitempty"`    // logrus level name

	// Journal extraction
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key; empty uses the local lexicon
	GeminiModel string `json:"gemini_model,omitempty"` // Overrides the default extraction model

	// Pulse readings
	PulseTTL      string `json:"pulse_ttl,omitempty"`      // Go duration, e.g. "10m"
	PruneSchedule string `json:"prune_schedule,omitempty"` // cron spec for pruning expired readings

	// CLI
	BatchWorkers int `json:"batch_workers,omitempty"` // Parallel scorers for the batch command
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables.
// Unset variables leave fields empty so a config file or defaults can fill them.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		PulseTTL:      os.Getenv("PULSE_TTL"),
		PruneSchedule: os.Getenv("PULSE_PRUNE_SCHEDULE"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command being run.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.BatchWorkers < 0 {
		return fmt.Errorf("config error: 'batch_workers' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}

	if c.PulseTTL != "" {
		ttl, err := time.ParseDuration(c.PulseTTL)
		if err != nil {
			return fmt.Errorf("config error: invalid 'pulse_ttl': %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("config error: 'pulse_ttl' must be positive")
		}
	}

	if c.PruneSchedule != "" {
		if _, err := cron.ParseStandard(c.PruneSchedule); err != nil {
			return fmt.Errorf("config error: invalid 'prune_schedule': %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	result.LogLevel = firstNonEmpty(result.LogLevel, defaults.LogLevel, DefaultLogLevel)
	result.PulseTTL = firstNonEmpty(result.PulseTTL, defaults.PulseTTL, DefaultPulseTTL)
	result.PruneSchedule = firstNonEmpty(result.PruneSchedule, defaults.PruneSchedule, DefaultPruneSchedule)

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = defaults.BatchWorkers
	}
	if result.BatchWorkers == 0 {
		result.BatchWorkers = DefaultBatchWorkers
	}

	return result
}

// PulseTTLDuration returns the parsed pulse TTL, falling back to the default.
func (c *Config) PulseTTLDuration() time.Duration {
	if ttl, err := time.ParseDuration(c.PulseTTL); err == nil && ttl > 0 {
		return ttl
	}
	ttl, _ := time.ParseDuration(DefaultPulseTTL)
	return ttl
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
