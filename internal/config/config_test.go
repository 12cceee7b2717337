// file: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "production") // skip .env loading

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "templates", cfg.Server.TemplateDir)
	assert.Equal(t, "static", cfg.Server.StaticDir)
	assert.Equal(t, "https://insidelab.up.railway.app/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, 2, cfg.Backend.MaxRetries)
	assert.Equal(t, "memory", cfg.Cache.Provider)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Features.DegradedMode)
	assert.False(t, cfg.Features.OfflineSearch)
	assert.True(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_MAX_RETRIES", "5")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("FEATURE_OFFLINE_SEARCH", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Backend.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Features.OfflineSearch)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLogDefaultsPerEnvironment(t *testing.T) {
	assert.Equal(t, "info", defaultLogLevel("production"))
	assert.Equal(t, "json", defaultLogFormat("production"))
	assert.Equal(t, "debug", defaultLogLevel("development"))
	assert.Equal(t, "console", defaultLogFormat("development"))
}

func TestValidateRejectsBadBackendURL(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("BACKEND_BASE_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresRedisURL(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("CACHE_PROVIDER", "redis")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvHelpersIgnoreUnparsable(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	t.Setenv("SOME_BOOL", "not-a-bool")
	t.Setenv("SOME_DURATION", "not-a-duration")

	assert.Equal(t, 7, getIntEnv("SOME_INT", 7))
	assert.True(t, getBoolEnv("SOME_BOOL", true))
	assert.Equal(t, time.Second, getDurationEnv("SOME_DURATION", time.Second))
}
