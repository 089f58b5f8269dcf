package apperr

import (
	"net/url"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"date", crerr.Wrapf(ErrInvalidDate, "parse %q", "2024-13-01"), "invalid_input"},
		{"league", crerr.Wrap(ErrInvalidLeagueID, "abc"), "invalid_input"},
		{"status", crerr.Wrapf(ErrHTTPStatus, "GET /leagues returned %d", 500), "fetch"},
		{"network", Tag(&url.Error{Op: "Get", URL: "http://x", Err: crerr.New("timeout")}, ErrNetwork), "fetch"},
		{"decode", Tag(crerr.New("unexpected end of input"), ErrDecode), "parse"},
		{"missing", crerr.Wrap(ErrMissingField, "fixtures.wins.total"), "parse"},
		{"config", crerr.Wrap(ErrConfig, "API_FOOTBALL_KEY must be set"), "config"},
		{"other", crerr.New("boom"), "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.err))
		})
	}
}

func TestTag_KeepsFetchKindsDistinct(t *testing.T) {
	t.Parallel()

	network := Tag(crerr.New("dial tcp: connection refused"), ErrNetwork)
	assert.True(t, crerr.Is(network, ErrNetwork))
	assert.False(t, crerr.Is(network, ErrHTTPStatus))
	assert.False(t, crerr.Is(network, ErrDecode))
	assert.Contains(t, network.Error(), "connection refused")

	decode := Tag(crerr.New("invalid char"), ErrDecode)
	assert.True(t, IsParse(decode))
	assert.False(t, IsFetch(decode))

	assert.Nil(t, Tag(nil, ErrNetwork))
}
