package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/robert-malhotra/cbers4asat/pkg/client"
	"github.com/robert-malhotra/cbers4asat/pkg/query"
)

// Prefix is prepended to every environment variable name.
const Prefix = "CBERS4ASAT_"

// DefaultUserAgent names the tool and the request contract it speaks.
const DefaultUserAgent = "cbers4asat/" + query.ContractVersion

// Config holds all application configuration.
type Config struct {
	STACURL     string        `env:"STAC_URL"`    // defaults to client.DefaultBaseURL
	CatalogURL  string        `env:"CATALOG_URL"` // defaults to client.DefaultCatalogURL
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"1"`
	RateLimit   float64       `env:"RATE_LIMIT" envDefault:"0"` // requests per second, 0 disables
	UserAgent   string        `env:"USER_AGENT"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogConsole  bool          `env:"LOG_CONSOLE" envDefault:"true"`
}

// Load reads configuration from CBERS4ASAT_* environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, err
	}
	if cfg.STACURL == "" {
		cfg.STACURL = client.DefaultBaseURL
	}
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = client.DefaultCatalogURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no command can run with.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%sTIMEOUT must be positive, got %s", Prefix, c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%sCONCURRENCY must be at least 1, got %d", Prefix, c.Concurrency)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%sRATE_LIMIT cannot be negative, got %g", Prefix, c.RateLimit)
	}
	return nil
}
