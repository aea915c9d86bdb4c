package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(*Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", "", "-storage", "postgres", "-d", "db",
				"-r", "redis://r", "-s", "secret", "-t", "1h", "-bcrypt-cost", "12",
				"-metrics=false", "-log-level", "warn",
			},
			expected: func(c *Config) {
				c.HTTPAddr = "127.0.0.1:9090"
				c.GRPCAddr = ""
				c.Storage = "postgres"
				c.DatabaseDSN = "db"
				c.RedisURL = "redis://r"
				c.SecretKey = "secret"
				c.TokenTTL = time.Hour
				c.BcryptCost = 12
				c.MetricsEnabled = false
				c.LogLevel = "warn"
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "file.json", "-x", "1", "-s", "k"},
			expected: func(c *Config) { c.SecretKey = "k" },
		},
		{
			name:    "invalid duration",
			args:    []string{"-t", "forever"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Config
			got.LoadDefaults()

			err := parseFlags(&got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var want Config
			want.LoadDefaults()
			tt.expected(&want)
			assert.Equal(t, want, got)
		})
	}
}
