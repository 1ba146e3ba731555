// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit"`

	// SeedFile is an optional YAML file of teams, drivers, parts, tracks and users
	// loaded at startup.
	SeedFile string `koanf:"seed_file"`

	// ReadHeaderTimeoutMS bounds how long the server waits for request headers.
	ReadHeaderTimeoutMS int `koanf:"read_header_timeout_ms"`

	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// RequireAuth puts every write route behind HTTP Basic auth checked
	// against the seeded users.
	RequireAuth bool `koanf:"require_auth"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MaxStandingsLimit:   100,
		ReadHeaderTimeoutMS: 5_000,
		ShutdownTimeoutMS:   10_000,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxStandingsLimit < 1:
		return fmt.Errorf("%w: max_standings_limit must be at least 1, got %d", ErrInvalidConfig, c.MaxStandingsLimit)
	case c.ReadHeaderTimeoutMS < 0:
		return fmt.Errorf("%w: read_header_timeout_ms must not be negative", ErrInvalidConfig)
	case c.ShutdownTimeoutMS < 0:
		return fmt.Errorf("%w: shutdown_timeout_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ReadHeaderTimeout returns ReadHeaderTimeoutMS as a duration.
func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.ReadHeaderTimeoutMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
