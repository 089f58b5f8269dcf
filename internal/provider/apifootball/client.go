// Package apifootball provides the HTTP client for the API-Football v3
// service (RapidAPI or direct api-sports hosts).
//
// API-Football uses a subscription key header for auth and wraps every
// payload in the same envelope: {"errors": ..., "results": n, "response": ...}.
// A request is issued once; there is no retry. Failures come back as one of
// three kinds (network, HTTP status, JSON decoding) so the caller can report
// them accurately.
package apifootball

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

const (
	defaultBaseURL = "https://api-football-v1.p.rapidapi.com/v3"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20

	headerKey  = "x-rapidapi-key"
	headerHost = "x-rapidapi-host"
)

// ClientConfig configures NewClient. Only APIKey is required.
type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	APIHost           string
	Timeout           time.Duration
	RequestsPerMinute int // 0 = unlimited
	Logger            *slog.Logger
}

// Client is the HTTP client for API-Football endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an API-Football client with an optional rate limit.
func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Copy the caller's client so the default timeout never leaks into it.
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiHost:    strings.TrimSpace(cfg.APIHost),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// envelope is the common API-Football response wrapper. Errors is an empty
// array on success and an object ({"token": "..."}) or non-empty array on
// failure.
type envelope struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response json.RawMessage `json:"response"`
}

// get performs a rate-limited GET request and returns the envelope's
// response field.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Tag(crerr.Wrap(err, "rate limit wait"), apperr.ErrNetwork)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "create request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(headerKey, c.apiKey)
	if c.apiHost != "" {
		req.Header.Set(headerHost, c.apiHost)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Tag(crerr.Wrapf(err, "http request %s", path), apperr.ErrNetwork)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Tag(crerr.Wrapf(err, "read response body %s", path), apperr.ErrNetwork)
	}

	c.logger.DebugContext(ctx, "api-football request",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, crerr.Wrapf(apperr.ErrHTTPStatus, "API-Football %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, apperr.Tag(crerr.Wrapf(err, "decode %s response", path), apperr.ErrDecode)
	}
	if msg := providerErrors(env.Errors); msg != "" {
		return nil, crerr.Wrapf(apperr.ErrProviderErrors, "API-Football %s: %s", path, msg)
	}
	if len(env.Response) == 0 {
		return nil, crerr.Wrapf(apperr.ErrMissingField, "API-Football %s: response field", path)
	}

	return env.Response, nil
}

// providerErrors flattens the envelope's errors field into a message, or
// returns "" when there are none.
func providerErrors(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("[]")) || bytes.Equal(raw, []byte("{}")) {
		return ""
	}

	var byKey map[string]interface{}
	if err := sonic.Unmarshal(raw, &byKey); err == nil {
		parts := make([]string, 0, len(byKey))
		for key, val := range byKey {
			parts = append(parts, key+": "+stringify(val))
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}

	var list []interface{}
	if err := sonic.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, val := range list {
			parts = append(parts, stringify(val))
		}
		return strings.Join(parts, "; ")
	}

	return truncate(raw, 200)
}

func stringify(val interface{}) string {
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

// truncate returns a truncated string for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
