package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"grpc_addr": ":6000",
		"storage": "redis",
		"redis_url": "redis://localhost:6379/0",
		"token_ttl": "30m",
		"cors_allowed_origins": ["https://app.example"]
	}`), 0o600))

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c, path))

	assert.Equal(t, ":6000", c.GRPCAddr)
	assert.Equal(t, StorageRedis, c.Storage)
	assert.Equal(t, "redis://localhost:6379/0", c.RedisURL)
	assert.Equal(t, 30*time.Minute, c.TokenTTL)
	assert.Equal(t, []string{"https://app.example"}, c.CORSAllowedOrigins)
	assert.Equal(t, ":8080", c.HTTPAddr, "absent keys keep defaults")
	assert.True(t, c.MetricsEnabled)
}

func TestParseFile_EmptyPath(t *testing.T) {
	var c Config
	c.LoadDefaults()
	want := c

	require.NoError(t, parseFile(&c, ""))
	assert.Equal(t, want, c)
}

func TestParseFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storage":`), 0o600))

	var c Config
	assert.Error(t, parseFile(&c, path))
}
