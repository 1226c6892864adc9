package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all CLI configuration.
type Config struct {
	Logging LogConfig
	Fetch   FetchConfig
	Limits  LimitsConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SIFT_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"SIFT_LOG_DEV" default:"false"`
}

// FetchConfig holds remote fetching configuration.
type FetchConfig struct {
	Timeout           time.Duration `envconfig:"SIFT_FETCH_TIMEOUT" default:"30s"`
	UserAgent         string        `envconfig:"SIFT_USER_AGENT" default:"sift/1.0"`
	MaxRetries        int           `envconfig:"SIFT_FETCH_RETRIES" default:"3"`
	RequestsPerSecond float64       `envconfig:"SIFT_FETCH_RPS" default:"4"`
	Burst             int           `envconfig:"SIFT_FETCH_BURST" default:"2"`
}

// LimitsConfig holds input size limits.
type LimitsConfig struct {
	MaxBodyBytes int64 `envconfig:"SIFT_MAX_BODY_BYTES" default:"10485760"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Fetch: FetchConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "sift/1.0",
			MaxRetries:        3,
			RequestsPerSecond: 4,
			Burst:             2,
		},
		Limits: LimitsConfig{
			MaxBodyBytes: 10 << 20,
		},
	}
}
