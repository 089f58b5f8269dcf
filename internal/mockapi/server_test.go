package mockapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-predict/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins:  []string{"*"},
		RateLimitEnabled:  false,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

type decodedEnvelope struct {
	Get        string            `json:"get"`
	Parameters map[string]string `json:"parameters"`
	Errors     interface{}       `json:"errors"`
	Results    int               `json:"results"`
	Response   interface{}       `json:"response"`
}

func serve(t *testing.T, router http.Handler, target string, header http.Header) (*httptest.ResponseRecorder, decodedEnvelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env decodedEnvelope
	if rec.Code == http.StatusOK {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func newRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	ds, err := DefaultDataset()
	require.NoError(t, err)
	return NewRouter(ds, cfg)
}

func TestDefaultDataset_Indexes(t *testing.T) {
	t.Parallel()

	ds, err := DefaultDataset()
	require.NoError(t, err)

	assert.Len(t, ds.FindLeagues(0), 3)
	assert.Len(t, ds.FindLeagues(39), 1)
	assert.Len(t, ds.FindFixtures(39, 2024, "2024-01-15"), 2)
	assert.Len(t, ds.FindFixtures(140, 2024, "2024-01-15"), 1)
	assert.Empty(t, ds.FindFixtures(39, 2023, "2024-01-15"))
	assert.Len(t, ds.FixtureStatistics(1001), 2)
	assert.Nil(t, ds.FixtureStatistics(1002))
	assert.NotNil(t, ds.FindTeamStatistics(33, 39, 2024))
	assert.Nil(t, ds.FindTeamStatistics(50, 39, 2024))
}

func TestParseDataset_RejectsBadJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseDataset([]byte(`{"leagues": [`))
	require.Error(t, err)
}

func TestRouter_Leagues(t *testing.T) {
	t.Parallel()

	rec, env := serve(t, newRouter(t, testConfig()), "/leagues", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "leagues", env.Get)
	assert.Equal(t, 3, env.Results)
	assert.Equal(t, []interface{}{}, env.Errors)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}

func TestRouter_FixturesFilters(t *testing.T) {
	t.Parallel()

	router := newRouter(t, testConfig())

	rec, env := serve(t, router, "/fixtures?league=39&season=2024&date=2024-01-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.Results)
	assert.Equal(t, "39", env.Parameters["league"])

	_, none := serve(t, router, "/fixtures?league=39&season=2024&date=2024-01-16", nil)
	assert.Equal(t, 0, none.Results)
	assert.Equal(t, []interface{}{}, none.Response)
}

func TestRouter_ParameterErrors(t *testing.T) {
	t.Parallel()

	router := newRouter(t, testConfig())

	cases := map[string]string{
		"/fixtures?league=abc":                  "league",
		"/fixtures?date=2024-13-01":             "date",
		"/fixtures?season=2024":                 "league",
		"/fixtures/statistics":                  "fixture",
		"/teams/statistics?team=33&season=2024": "league",
	}

	for target, field := range cases {
		t.Run(target, func(t *testing.T) {
			rec, env := serve(t, router, target, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			errs, ok := env.Errors.(map[string]interface{})
			require.True(t, ok, "errors should be an object, got %T", env.Errors)
			assert.Contains(t, errs, field)
			assert.Equal(t, 0, env.Results)
		})
	}
}

func TestRouter_TeamStatistics(t *testing.T) {
	t.Parallel()

	router := newRouter(t, testConfig())

	rec, env := serve(t, router, "/teams/statistics?team=33&league=39&season=2024", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	obj, ok := env.Response.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "LWDWW", obj["form"])

	_, missing := serve(t, router, "/teams/statistics?team=50&league=39&season=2024", nil)
	assert.Equal(t, []interface{}{}, missing.Response)
}

func TestRouter_APIKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MockKey = "secret"
	router := newRouter(t, cfg)

	rec, _ := serve(t, router, "/leagues", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := serve(t, router, "/leagues", http.Header{"X-Rapidapi-Key": {"wrong"}})
	require.Equal(t, http.StatusOK, rec.Code)
	errs, ok := env.Errors.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "token")

	rec, env = serve(t, router, "/leagues", http.Header{"X-Rapidapi-Key": {"secret"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, env.Results)

	health, _ := serve(t, router, "/health", nil)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Hour
	router := newRouter(t, cfg)

	rec, _ := serve(t, router, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, router, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
