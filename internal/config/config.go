// Package config provides environment-driven configuration.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"

	"notary-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// HTTPAddr is the API listen address
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// RedisAddr enables the Redis cache when set; empty falls back to the
	// in-memory cache
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// GoogleMapsAPIKey enables live distance lookups; empty means every
	// travel calculation takes the documented fallback path
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`

	// BaseLocation is the driving origin for travel fees
	BaseLocation string `env:"BASE_LOCATION" envDefault:"Texas City, TX 77591"`

	// BaseZIP appears in travel transparency notes
	BaseZIP string `env:"BASE_ZIP" envDefault:"77591"`

	// RateFile optionally replaces the compiled-in rate table (HCL)
	RateFile string `env:"RATE_FILE"`

	// QuoteStoreDir enables the file-backed quote audit store when set
	QuoteStoreDir string `env:"QUOTE_STORE_DIR"`

	// Logging contains logging configuration
	Logging logging.Config
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
