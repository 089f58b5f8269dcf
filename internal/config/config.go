// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/predict and cmd/mockapi.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

// --------------------------------------------------------------------------
// Defaults — the public RapidAPI deployment of API-Football v3
// --------------------------------------------------------------------------

const (
	DefaultBaseURL           = "https://api-football-v1.p.rapidapi.com/v3"
	DefaultAPIHost           = "api-football-v1.p.rapidapi.com"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultRequestsPerMinute = 30
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API-Football
	APIKey            string
	BaseURL           string        `validate:"required,url"`
	APIHost           string        // sent as x-rapidapi-host; empty for direct api-sports hosts
	RequestTimeout    time.Duration `validate:"gt=0"`
	RequestsPerMinute int           `validate:"gte=0"` // 0 = unlimited

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Mock API server
	MockHost string
	MockPort int    `validate:"gt=0,lte=65535"`
	MockKey  string // when set, requests must carry it

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (mock server)
	RateLimitEnabled  bool
	RateLimitRequests int           `validate:"gt=0"`
	RateLimitWindow   time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from environment variables with sensible defaults.
// The API key is not required here; commands that call the provider check it
// with RequireAPIKey.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:            strings.TrimSpace(envOr("API_FOOTBALL_KEY", "")),
		BaseURL:           strings.TrimRight(envOr("API_FOOTBALL_BASE_URL", DefaultBaseURL), "/"),
		APIHost:           envOr("API_FOOTBALL_HOST", DefaultAPIHost),
		RequestTimeout:    time.Duration(envInt("API_TIMEOUT_SECONDS", int(DefaultRequestTimeout/time.Second))) * time.Second,
		RequestsPerMinute: envInt("API_REQUESTS_PER_MINUTE", DefaultRequestsPerMinute),

		LogLevel: strings.ToLower(envOr("LOG_LEVEL", "warn")),

		MockHost: envOr("MOCK_API_HOST", "127.0.0.1"),
		MockPort: envInt("MOCK_API_PORT", 8090),
		MockKey:  envOr("MOCK_API_KEY", ""),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, crerr.Wrapf(apperr.ErrConfig, "%v", err)
	}
	return cfg, nil
}

// RequireAPIKey fails when API_FOOTBALL_KEY is absent.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return crerr.Wrap(apperr.ErrConfig, "API_FOOTBALL_KEY must be set (environment or .env)")
	}
	return nil
}

// MockAddr is the listen address of the mock API server.
func (c *Config) MockAddr() string {
	return fmt.Sprintf("%s:%d", c.MockHost, c.MockPort)
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
