package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          base URL of the server API
//	-session-dir string directory for the saved session
//	-timeout duration  per-request timeout (e.g. "5s")
//
// Note: args are filtered with flagx.FilterArgs so that flags belonging to
// other layers do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-session-dir", "-timeout"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "session directory")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
