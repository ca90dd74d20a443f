// Package config loads the pcs configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Providers are the accepted values of Config.Provider.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
)

type Config struct {
	LogLevel string `env:"FOLIO_LOG_LEVEL" envDefault:"warn"`
	Env      string `env:"FOLIO_ENV" envDefault:"prod"`
	Currency string `env:"FOLIO_CURRENCY" envDefault:"USD"`

	Transactions string `env:"FOLIO_TRANSACTIONS" envDefault:"transactions.jsonl"`
	Accounts     string `env:"FOLIO_ACCOUNTS"`
	Relief       string `env:"FOLIO_RELIEF" envDefault:"average"`

	Provider    string        `env:"FOLIO_PROVIDER" envDefault:"yahoo"`
	EODHDAPIKey string        `env:"EODHD_API_KEY" envDefault:"demo"`
	HTTPTimeout time.Duration `env:"FOLIO_HTTP_TIMEOUT" envDefault:"30s"`
	CacheTTL    time.Duration `env:"FOLIO_CACHE_TTL" envDefault:"15m"`
	RateLimit   float64       `env:"FOLIO_RATE_LIMIT" envDefault:"2"`
}

// Load reads the .env files, if any, then the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values env cannot check.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderYahoo, ProviderEODHD:
	default:
		return fmt.Errorf("unknown provider %q, want %s or %s", c.Provider, ProviderYahoo, ProviderEODHD)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid currency %q", c.Currency)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("invalid cache ttl %v", c.CacheTTL)
	}
	return nil
}
