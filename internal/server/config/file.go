package config

import (
	"github.com/dmitrijs2005/fintrack/internal/filex"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. It is only
// used for decoding; non-zero values are copied onto the runtime Config.
type FileConfig struct {
	HTTPAddr            string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr            string         `json:"grpc_addr" yaml:"grpc_addr"`
	Storage             string         `json:"storage" yaml:"storage"`
	DatabaseDSN         string         `json:"database_dsn" yaml:"database_dsn"`
	RedisURL            string         `json:"redis_url" yaml:"redis_url"`
	DynamoUsersTable    string         `json:"dynamo_users_table" yaml:"dynamo_users_table"`
	DynamoExpensesTable string         `json:"dynamo_expenses_table" yaml:"dynamo_expenses_table"`
	AWSRegion           string         `json:"aws_region" yaml:"aws_region"`
	AWSEndpoint         string         `json:"aws_endpoint" yaml:"aws_endpoint"`
	SecretKey           string         `json:"secret_key" yaml:"secret_key"`
	TokenTTL            timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	BcryptCost          int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	MetricsEnabled      *bool          `json:"metrics_enabled" yaml:"metrics_enabled"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	CORSAllowedOrigins  []string       `json:"cors_allowed_origins" yaml:"cors_allowed_origins"`
}

// parseFile overlays values from the JSON or YAML file at path. An empty
// path is a no-op.
func parseFile(config *Config, path string) error {
	if path == "" {
		return nil
	}

	fc := &FileConfig{}
	if err := filex.DecodeFile(path, fc); err != nil {
		return err
	}

	setString(&config.HTTPAddr, fc.HTTPAddr)
	setString(&config.GRPCAddr, fc.GRPCAddr)
	setString(&config.Storage, fc.Storage)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.RedisURL, fc.RedisURL)
	setString(&config.DynamoUsersTable, fc.DynamoUsersTable)
	setString(&config.DynamoExpensesTable, fc.DynamoExpensesTable)
	setString(&config.AWSRegion, fc.AWSRegion)
	setString(&config.AWSEndpoint, fc.AWSEndpoint)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.LogLevel, fc.LogLevel)

	if fc.TokenTTL.Duration != 0 {
		config.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.BcryptCost != 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if fc.MetricsEnabled != nil {
		config.MetricsEnabled = *fc.MetricsEnabled
	}
	if len(fc.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
