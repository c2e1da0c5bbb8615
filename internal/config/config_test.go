package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DIRECTORY_SOURCE", "")
	t.Setenv("DIRECTORY_PATH", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceJSON, cfg.Directory.Source)
	assert.Equal(t, "Employee_List.json", cfg.Directory.Path)
	assert.True(t, cfg.Directory.Preload)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, uint32(3), cfg.Breaker.MaxFailures)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DIRECTORY_SOURCE", "CSV")
	t.Setenv("DIRECTORY_PATH", "/data/employees.csv")
	t.Setenv("DIRECTORY_PRELOAD", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("HTTP_RATE_LIMIT_RPS", "2.5")
	t.Setenv("LOG_FORMAT", "Console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Directory.Source)
	assert.Equal(t, "/data/employees.csv", cfg.Directory.Path)
	assert.False(t, cfg.Directory.Preload)
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.InDelta(t, 2.5, cfg.App.RateLimitRPS, 0.0001)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoad_RejectsUnknownSource(t *testing.T) {
	t.Setenv("DIRECTORY_SOURCE", "mongodb")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DIRECTORY_SOURCE")
}

func TestValidate_RemoteSourcesNeedEndpoints(t *testing.T) {
	cfg := &Config{Directory: DirectoryConfig{Source: SourcePostgres}}
	assert.Error(t, cfg.Validate())

	cfg.Postgres.DSN = "postgres://localhost/hr"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.UsesPostgres())

	cfg = &Config{Directory: DirectoryConfig{Source: SourceRedis}}
	assert.Error(t, cfg.Validate())
	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "first")

	_, err := Load()
	require.Error(t, err)
}
