// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Validation errors wrap ErrInvalidConfig; loading errors wrap ErrLoadConfig.
package config

import (
	"fmt"
	"math"
	"runtime"

	"github.com/okian/talentmatch/internal/domain/scoring"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":4000".
	Addr string `koanf:"addr"`

	// StoreDriver selects the record store: memory, sqlite or postgres.
	StoreDriver string `koanf:"store_driver"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// PostgresDSN is the connection string used by the postgres driver.
	PostgresDSN string `koanf:"postgres_dsn"`

	// SeedEnabled loads sample data into empty collections on startup.
	SeedEnabled bool `koanf:"seed_enabled"`

	// SeedFile points to a YAML dataset; empty means the embedded sample data.
	SeedFile string `koanf:"seed_file"`

	// DefaultLimit is used when a matches call does not pass a usable limit.
	DefaultLimit int `koanf:"default_limit"`

	// TopLimit is the fixed size of the top-matches shortcut.
	TopLimit int `koanf:"top_limit"`

	// MaxLimit caps GET .../matches?limit.
	MaxLimit int `koanf:"max_limit"`

	// ScoreWorkers bounds the goroutines scoring candidates of one call. 0 or 1 scores sequentially.
	ScoreWorkers int `koanf:"score_workers"`

	// Weights overrides individual dimension weights, keyed by dimension name.
	Weights map[string]float64 `koanf:"weights"`

	// ExperienceBands replaces the stepped experience bands when set.
	ExperienceBands []scoring.Band `koanf:"experience_bands"`

	// RateLimitRPS is the sustained API request rate; 0 disables limiting.
	RateLimitRPS float64 `koanf:"rate_limit_rps"`

	// RateLimitBurst is the token bucket size of the API limiter.
	RateLimitBurst int `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":4000",
		StoreDriver:    DriverMemory,
		SQLitePath:     "talentmatch.db",
		SeedEnabled:    true,
		DefaultLimit:   10,
		TopLimit:       3,
		MaxLimit:       100,
		ScoreWorkers:   runtime.NumCPU(),
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return invalid("log_format must be text or json, got %q", c.LogFormat)
	case c.DefaultLimit < 1:
		return invalid("default_limit must be at least 1, got %d", c.DefaultLimit)
	case c.TopLimit < 1:
		return invalid("top_limit must be at least 1, got %d", c.TopLimit)
	case c.MaxLimit < c.DefaultLimit:
		return invalid("max_limit (%d) must not be below default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	case c.ScoreWorkers < 0:
		return invalid("score_workers must not be negative, got %d", c.ScoreWorkers)
	case c.RateLimitRPS < 0:
		return invalid("rate_limit_rps must not be negative")
	case c.RateLimitRPS > 0 && c.RateLimitBurst < 1:
		return invalid("rate_limit_burst must be at least 1 when rate limiting is enabled")
	}

	switch c.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return invalid("sqlite_path must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return invalid("postgres_dsn must be set for the postgres driver")
		}
	default:
		return invalid("unknown store_driver %q", c.StoreDriver)
	}

	for name, w := range c.Weights {
		if _, ok := scoring.ParseDimension(name); !ok {
			return invalid("unknown scoring dimension %q", name)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return invalid("weight of %s must be a non-negative number", name)
		}
	}
	for _, b := range c.ExperienceBands {
		if b.MinYears < 0 || b.Multiplier < 0 || b.Multiplier > 1 {
			return invalid("experience band {min_years: %v, multiplier: %v} out of range", b.MinYears, b.Multiplier)
		}
	}
	return nil
}

// ScoringConfig converts the weight overrides and bands into an engine configuration.
// Dimensions without an override keep their default weight.
func (c *Config) ScoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	for name, w := range c.Weights {
		if d, ok := scoring.ParseDimension(name); ok {
			cfg.Weights[d] = w
		}
	}
	if len(c.ExperienceBands) > 0 {
		cfg.ExperienceBands = append([]scoring.Band(nil), c.ExperienceBands...)
	}
	return cfg
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
