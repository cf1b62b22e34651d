package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 5, cfg.RateLimit.ImportRequests)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_IMPORT_WINDOW", "30s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.ImportWindow)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 0, cfg.Redis.DB)
}
