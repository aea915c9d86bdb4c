// Package config loads settings for the FinTrack terminal client.
package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

// Config holds runtime settings for the FinTrack CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API.
//   - SessionDir: directory holding the saved session token.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	SessionDir     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.SessionDir = ".fintrack"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any), the environment and the flags in args. Later
// sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the server URL is absolute and the timeout positive.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, errors.New("server url must be absolute, e.g. http://localhost:8080"))
	}
	if c.SessionDir == "" {
		errs = append(errs, errors.New("session dir is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	return errors.Join(errs...)
}
