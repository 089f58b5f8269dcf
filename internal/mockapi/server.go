// Package mockapi serves a small API-Football v3 look-alike from an embedded
// dataset, so the CLI can be run and tested without a subscription key.
//
// Only the four endpoints the CLI calls are implemented, with the same query
// parameters, envelope and error conventions as the real service.
package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/albapepper/scoracle-predict/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(ds *Dataset, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-RapidAPI-Key", "X-RapidAPI-Host"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := &handler{ds: ds}

	r.Get("/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(APIKeyMiddleware(cfg.MockKey))

		r.Get("/leagues", h.leagues)
		r.Get("/fixtures", h.fixtures)
		r.Get("/fixtures/statistics", h.fixtureStatistics)
		r.Get("/teams/statistics", h.teamStatistics)
	})

	return r
}

type handler struct {
	ds *Dataset
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"leagues":  len(h.ds.Leagues),
		"fixtures": len(h.ds.Fixtures),
	})
}

func (h *handler) leagues(w http.ResponseWriter, r *http.Request) {
	params := newParamReader(r)
	id := params.optionalInt("id")
	if params.failed() {
		writeProviderErrors(w, r, params.errs)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope(r, h.ds.FindLeagues(id)))
}

func (h *handler) fixtures(w http.ResponseWriter, r *http.Request) {
	params := newParamReader(r)
	league := params.optionalInt("league")
	season := params.optionalInt("season")
	date := params.optionalDate("date")
	if season > 0 && league == 0 {
		params.fail("league", "The League field is required when Season is present.")
	}
	if params.failed() {
		writeProviderErrors(w, r, params.errs)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope(r, h.ds.FindFixtures(league, season, date)))
}

func (h *handler) fixtureStatistics(w http.ResponseWriter, r *http.Request) {
	params := newParamReader(r)
	fixture := params.requiredInt("fixture")
	if params.failed() {
		writeProviderErrors(w, r, params.errs)
		return
	}

	writeJSON(w, http.StatusOK, listEnvelope(r, h.ds.FixtureStatistics(fixture)))
}

func (h *handler) teamStatistics(w http.ResponseWriter, r *http.Request) {
	params := newParamReader(r)
	team := params.requiredInt("team")
	league := params.requiredInt("league")
	season := params.requiredInt("season")
	if params.failed() {
		writeProviderErrors(w, r, params.errs)
		return
	}

	// API-Football answers an empty array, not an object, for unknown teams.
	raw := h.ds.FindTeamStatistics(team, league, season)
	if raw == nil {
		writeJSON(w, http.StatusOK, listEnvelope(r, nil))
		return
	}
	writeJSON(w, http.StatusOK, objectEnvelope(r, raw))
}

// --------------------------------------------------------------------------
// Query parameter parsing with API-Football style messages
// --------------------------------------------------------------------------

type paramReader struct {
	r    *http.Request
	errs map[string]string
}

func newParamReader(r *http.Request) *paramReader {
	return &paramReader{r: r, errs: make(map[string]string)}
}

func (p *paramReader) fail(key, msg string) {
	p.errs[key] = msg
}

func (p *paramReader) failed() bool {
	return len(p.errs) > 0
}

func (p *paramReader) optionalInt(key string) int {
	v := p.r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.fail(key, "The "+titled(key)+" field must contain an integer.")
		return 0
	}
	return n
}

func (p *paramReader) requiredInt(key string) int {
	if p.r.URL.Query().Get(key) == "" {
		p.fail(key, "The "+titled(key)+" field is required.")
		return 0
	}
	return p.optionalInt(key)
}

func (p *paramReader) optionalDate(key string) string {
	v := p.r.URL.Query().Get(key)
	if v == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		p.fail(key, "The "+titled(key)+" field must contain a valid date, the correct format is YYYY-MM-DD.")
		return ""
	}
	return v
}

func titled(key string) string {
	if key == "" {
		return key
	}
	b := []byte(key)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
