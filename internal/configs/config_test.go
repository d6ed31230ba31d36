package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/discovery")

	t.Cleanup(func() { os.Unsetenv("APP_NAME") })
	cfg, err := LoadConfig(writeEnv(t, "APP_NAME=discovery-test\n"))
	require.NoError(t, err)

	assert.Equal(t, "discovery-test", cfg.AppName)
	assert.Equal(t, "8084", cfg.Rest.PORT)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, 10000, cfg.Discovery.MaxViews)
	assert.Equal(t, 30*time.Minute, cfg.Discovery.ViewIdleTTL)
	assert.Equal(t, 1, cfg.Discovery.FetchRetries)
	assert.False(t, cfg.FluentBit.Enabled)
	assert.Equal(t, "debug", cfg.StdoutLogger.Level)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/discovery")
	path := writeEnv(t, `
REDIS_ADDR=localhost:6379
REDIS_PAGE_TTL=45s
CORS_ALLOWED_ORIGINS=http://localhost:5173, ,https://bloghead.de
DISCOVERY_MAX_VIEWS=12
DISCOVERY_VIEW_IDLE_TTL=5m
HTTP_REQUEST_TIMEOUT=oops
FLUENTBIT_ENABLED=true
`)
	t.Cleanup(func() {
		for _, key := range []string{"REDIS_ADDR", "REDIS_PAGE_TTL", "CORS_ALLOWED_ORIGINS", "DISCOVERY_MAX_VIEWS",
			"DISCOVERY_VIEW_IDLE_TTL", "HTTP_REQUEST_TIMEOUT", "FLUENTBIT_ENABLED"} {
			os.Unsetenv(key)
		}
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 45*time.Second, cfg.Redis.PageTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://bloghead.de"}, cfg.Rest.AllowedOrigins)
	assert.Equal(t, 12, cfg.Discovery.MaxViews)
	assert.Equal(t, 5*time.Minute, cfg.Discovery.ViewIdleTTL)
	assert.Equal(t, 30*time.Second, cfg.Rest.RequestTimeout, "malformed duration falls back to default")
	assert.False(t, cfg.FluentBit.Enabled, "fluent bit without host is disabled")
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := LoadConfig(writeEnv(t, ""))
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("explicit env file missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
		assert.Error(t, err)
	})

	t.Run("non positive view limit", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/discovery")
		t.Setenv("DISCOVERY_MAX_VIEWS", "0")
		_, err := LoadConfig(writeEnv(t, ""))
		assert.ErrorContains(t, err, "DISCOVERY_MAX_VIEWS")
	})
}
