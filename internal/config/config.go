package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port               string `env:"PORT" envDefault:"8080"`
	Environment        string `env:"ENVIRONMENT" envDefault:"production"`
	FirestoreProject   string `env:"FIRESTORE_PROJECT_ID"`
	ScenariosFile      string `env:"SCENARIOS_FILE"`
	CacheTTLMinutes    int    `env:"CACHE_TTL_MINUTES" envDefault:"60"`
	BodyLimitMB        int    `env:"BODY_LIMIT_MB" envDefault:"4"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`
}

// Load reads configuration from the environment, after loading a .env file
// if one exists in the working directory. Invalid values are fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  Could not read .env: %v", err)
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if cfg.FirestoreProject == "" {
		log.Println("ℹ️  FIRESTORE_PROJECT_ID not set, scenario mirror disabled")
	}
	return cfg
}

// Parse reads and validates configuration from the environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CacheTTLMinutes <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_MINUTES must be positive, got %d", cfg.CacheTTLMinutes)
	}
	if cfg.BodyLimitMB <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", cfg.BodyLimitMB)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimitPerMinute)
	}
	return cfg, nil
}

// CacheTTL is the lifetime of a memoized forecast.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}
