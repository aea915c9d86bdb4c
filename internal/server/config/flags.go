package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string         HTTP bind address (e.g. ":8080")
//	-g string         gRPC bind address; empty disables gRPC
//	-storage string   memory, postgres, dynamodb or redis
//	-d string         PostgreSQL DSN
//	-r string         Redis URL
//	-s string         token signing secret
//	-t duration       token lifetime (e.g. "168h")
//	-bcrypt-cost int  password hashing cost
//	-metrics bool     expose /metrics
//	-log-level string log level
//
// args is filtered with flagx.FilterArgs first so flags that belong to other
// layers (-c) do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-g", "-storage", "-d", "-r", "-s", "-t", "-bcrypt-cost", "-metrics", "-log-level",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token lifetime")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.MetricsEnabled, "metrics", config.MetricsEnabled, "expose /metrics")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	return fs.Parse(args)
}
