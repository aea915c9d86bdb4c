package config

import (
	"fmt"
	"os"
	"time"
)

// parseEnv overlays FINTRACK_SERVER_URL, FINTRACK_SESSION_DIR and
// FINTRACK_REQUEST_TIMEOUT.
func parseEnv(cfg *Config) error {
	if v := os.Getenv("FINTRACK_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("FINTRACK_SESSION_DIR"); v != "" {
		cfg.SessionDir = v
	}
	if v := os.Getenv("FINTRACK_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FINTRACK_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
