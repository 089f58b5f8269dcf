package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_FOOTBALL_KEY", "API_FOOTBALL_BASE_URL", "API_FOOTBALL_HOST",
		"API_TIMEOUT_SECONDS", "API_REQUESTS_PER_MINUTE", "LOG_LEVEL",
		"MOCK_API_HOST", "MOCK_API_PORT", "MOCK_API_KEY", "CORS_ALLOW_ORIGINS",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultAPIHost, cfg.APIHost)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultRequestsPerMinute, cfg.RequestsPerMinute)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "127.0.0.1:8090", cfg.MockAddr())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_FOOTBALL_KEY", "  secret  ")
	t.Setenv("API_FOOTBALL_BASE_URL", "http://localhost:8090/")
	t.Setenv("API_FOOTBALL_HOST", "localhost")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("API_REQUESTS_PER_MINUTE", "0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://localhost:8090", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0, cfg.RequestsPerMinute)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"API_FOOTBALL_BASE_URL": "not a url",
		"API_TIMEOUT_SECONDS":   "-5",
		"LOG_LEVEL":             "verbose",
		"MOCK_API_PORT":         "70000",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.True(t, apperr.IsConfig(err))
		})
	}
}

func TestRequireAPIKey_Missing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.RequireAPIKey()
	require.Error(t, err)
	assert.True(t, apperr.IsConfig(err))
	assert.Contains(t, err.Error(), "API_FOOTBALL_KEY")
}
