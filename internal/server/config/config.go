// Package config handles configuration for the server component:
// defaults, an optional JSON/YAML file, FINTRACK_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
)

// Storage backends understood by the repository manager.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageDynamoDB = "dynamodb"
	StorageRedis    = "redis"
)

// DefaultTokenTTL is the lifetime of a session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// DefaultBcryptCost matches the work factor the tracker has always used.
const DefaultBcryptCost = 10

// Config holds runtime settings for the FinTrack server.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses; an empty GRPCAddr disables gRPC.
//   - Storage: one of memory, postgres, dynamodb, redis.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - RedisURL: redis:// URL.
//   - DynamoUsersTable / DynamoExpensesTable / AWSRegion / AWSEndpoint: DynamoDB settings.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Required, never logged.
//   - TokenTTL: session token lifetime.
//   - BcryptCost: password hashing work factor.
//   - MetricsEnabled: expose /metrics.
//   - LogLevel: debug, info, warn or error.
//   - CORSAllowedOrigins: origins allowed for cross-origin calls.
type Config struct {
	HTTPAddr            string
	GRPCAddr            string
	Storage             string
	DatabaseDSN         string
	RedisURL            string
	DynamoUsersTable    string
	DynamoExpensesTable string
	AWSRegion           string
	AWSEndpoint         string
	SecretKey           string
	TokenTTL            time.Duration
	BcryptCost          int
	MetricsEnabled      bool
	LogLevel            string
	CORSAllowedOrigins  []string
}

// LoadDefaults populates Config with development defaults. There is no
// default secret: it has to come from a file, the environment or a flag.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.Storage = StorageMemory
	c.DatabaseDSN = ""
	c.RedisURL = ""
	c.DynamoUsersTable = "fintrack-users"
	c.DynamoExpensesTable = "fintrack-expenses"
	c.AWSRegion = "us-east-1"
	c.AWSEndpoint = ""
	c.SecretKey = ""
	c.TokenTTL = DefaultTokenTTL
	c.BcryptCost = DefaultBcryptCost
	c.MetricsEnabled = true
	c.LogLevel = "info"
	c.CORSAllowedOrigins = []string{"*"}
}

// LoadConfig builds a Config from defaults, then overlays the config file
// named by -c/-config (or FINTRACK_CONFIG), the environment and finally the
// flags found in args (usually os.Args[1:]).
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

// Validate reports configuration that the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			errs = append(errs, errors.New("database dsn is required for postgres storage"))
		}
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis url is required for redis storage"))
		}
	case StorageDynamoDB:
		if c.DynamoUsersTable == "" || c.DynamoExpensesTable == "" {
			errs = append(errs, errors.New("dynamodb table names are required"))
		}
		if c.AWSRegion == "" {
			errs = append(errs, errors.New("aws region is required for dynamodb storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage))
	}

	return errors.Join(errs...)
}

// LogValue renders the configuration for logs with secrets left out.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("http_addr", c.HTTPAddr),
		slog.String("grpc_addr", c.GRPCAddr),
		slog.String("storage", c.Storage),
		slog.Bool("database_dsn_set", c.DatabaseDSN != ""),
		slog.Bool("redis_url_set", c.RedisURL != ""),
		slog.String("dynamo_users_table", c.DynamoUsersTable),
		slog.String("dynamo_expenses_table", c.DynamoExpensesTable),
		slog.String("aws_region", c.AWSRegion),
		slog.Duration("token_ttl", c.TokenTTL),
		slog.Int("bcrypt_cost", c.BcryptCost),
		slog.Bool("metrics", c.MetricsEnabled),
		slog.String("log_level", c.LogLevel),
	)
}
