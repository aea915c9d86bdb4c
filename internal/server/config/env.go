package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays FINTRACK_* environment variables. JWT_SECRET is honored
// as a fallback for the signing secret.
func parseEnv(config *Config) error {
	lookup := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	lookup("FINTRACK_HTTP_ADDR", &config.HTTPAddr)
	lookup("FINTRACK_GRPC_ADDR", &config.GRPCAddr)
	lookup("FINTRACK_STORAGE", &config.Storage)
	lookup("FINTRACK_DATABASE_DSN", &config.DatabaseDSN)
	lookup("FINTRACK_REDIS_URL", &config.RedisURL)
	lookup("FINTRACK_DYNAMO_USERS_TABLE", &config.DynamoUsersTable)
	lookup("FINTRACK_DYNAMO_EXPENSES_TABLE", &config.DynamoExpensesTable)
	lookup("FINTRACK_AWS_REGION", &config.AWSRegion)
	lookup("FINTRACK_AWS_ENDPOINT", &config.AWSEndpoint)
	lookup("FINTRACK_LOG_LEVEL", &config.LogLevel)
	lookup("JWT_SECRET", &config.SecretKey)
	lookup("FINTRACK_SECRET_KEY", &config.SecretKey)

	if v := os.Getenv("FINTRACK_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FINTRACK_TOKEN_TTL: %w", err)
		}
		config.TokenTTL = d
	}
	if v := os.Getenv("FINTRACK_BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FINTRACK_BCRYPT_COST: %w", err)
		}
		config.BcryptCost = n
	}
	if v := os.Getenv("FINTRACK_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FINTRACK_METRICS: %w", err)
		}
		config.MetricsEnabled = b
	}
	if v := os.Getenv("FINTRACK_CORS_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
