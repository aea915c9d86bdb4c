package config

import (
	"github.com/dmitrijs2005/fintrack/internal/filex"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// FileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so the file can give the timeout either as "10s" or as
// integer nanoseconds.
type FileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	SessionDir     string         `json:"session_dir" yaml:"session_dir"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// parseFile overlays cfg with the non-empty values found in path. An empty
// path means there is no file to read.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	var fc FileConfig
	if err := filex.DecodeFile(path, &fc); err != nil {
		return err
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.SessionDir != "" {
		cfg.SessionDir = fc.SessionDir
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
