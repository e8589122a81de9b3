package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "POSTGRES_DSN", "REDIS_ADDR", "PAGINATION_DEFAULT_LIMIT", "PAGINATION_MAX_LIMIT", "HTTP_REQUEST_TIMEOUT_SECONDS", "CONFIG_FILE", "AMQP_URL", "AMQP_QUEUE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.True(t, cfg.Logger.Development)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL())
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Empty(t, cfg.AMQP.URL)
	assert.Equal(t, "record_events", cfg.AMQP.Queue)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/records")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("PAGINATION_DEFAULT_LIMIT", "20")
	t.Setenv("PAGINATION_MAX_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.App.IsProduction())
	assert.False(t, cfg.Logger.Development)
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.Equal(t, "postgres://localhost/records", cfg.Postgres.DSN)
	assert.False(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 20, cfg.Pagination.MaxLimit)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "x")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfigFileUnderEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	content := "PORT: 9100\nREDIS_ADDR: cache:6379\nPAGINATION_MAX_LIMIT: 250\nPOSTGRES_RUN_MIGRATIONS: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "env-cache:6379")
	t.Setenv("PAGINATION_MAX_LIMIT", "")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.App.Port)
	assert.Equal(t, "env-cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 250, cfg.Pagination.MaxLimit)
	assert.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
