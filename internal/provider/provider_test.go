package provider

import (
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

func TestExtractValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"nil", nil, 0, false},
		{"float", float64(12), 12, true},
		{"int", 7, 7, true},
		{"numeric string", " 3.5 ", 3.5, true},
		{"word", "many", 0, false},
		{"nested total", map[string]interface{}{"home": 8.0, "away": 7.0, "total": 15.0}, 15, true},
		{"nested all", map[string]interface{}{"all": "4"}, 4, true},
		{"nested null total", map[string]interface{}{"total": nil}, 0, false},
		{"bool", true, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractValue(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractMetric(t *testing.T) {
	t.Parallel()

	pct := ExtractMetric("55%")
	assert.True(t, pct.Available)
	assert.True(t, pct.Percent)
	assert.Equal(t, 55.0, pct.Value)
	assert.Equal(t, "55%", pct.String())

	zero := ExtractMetric(float64(0))
	assert.True(t, zero.Available)
	assert.Equal(t, "0", zero.String())

	missing := ExtractMetric(nil)
	assert.False(t, missing.Available)
	assert.Equal(t, Unavailable, missing.String())

	text := ExtractMetric("n/a yet")
	assert.False(t, text.Available)
	assert.Equal(t, "n/a yet", text.String())

	xg := ExtractMetric("1.87")
	assert.True(t, xg.Available)
	assert.False(t, xg.Percent)
	assert.Equal(t, "1.87", xg.String())
}

func TestMatchStatisticsSet_PreservesOrderAndMissingKeys(t *testing.T) {
	t.Parallel()

	set := NewMatchStatisticsSet(TeamRef{ID: 33, Name: "Manchester United"})
	set.Add("Shots on Goal", ExtractMetric(float64(6)))
	set.Add("Ball Possession", ExtractMetric("55%"))
	set.Add("Yellow Cards", ExtractMetric(nil))
	set.Add("Shots on Goal", ExtractMetric(float64(7)))
	set.Add("  ", ExtractMetric(float64(1)))

	assert.Equal(t, []string{"Shots on Goal", "Ball Possession", "Yellow Cards"}, set.Order)
	assert.Equal(t, 7.0, set.Get("Shots on Goal").Value)
	assert.False(t, set.Get("Yellow Cards").Available)
	assert.False(t, set.Get("Corner Kicks").Available)
}

func TestParseForm(t *testing.T) {
	t.Parallel()

	form, err := ParseForm("LWDWW")
	require.NoError(t, err)
	assert.Equal(t, FormRecord{Win, Win, Draw, Win, Loss}, form)
	assert.Equal(t, "WWDWL", form.String())
	assert.Equal(t, FormSummary{Wins: 3, Draws: 1, Losses: 1}, form.Summary())

	lower, err := ParseForm(" l w ")
	require.NoError(t, err)
	assert.Equal(t, FormRecord{Win, Loss}, lower)

	empty, err := ParseForm("")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, FormSummary{}, empty.Summary())
}

func TestParseForm_RejectsUnknownSymbols(t *testing.T) {
	t.Parallel()

	_, err := ParseForm("WWX")
	require.Error(t, err)
	assert.True(t, crerr.Is(err, apperr.ErrMalformedForm))
	assert.True(t, apperr.IsParse(err))
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, Win.Valid())
	assert.False(t, Outcome('X').Valid())
	assert.Equal(t, "Draw", Draw.String())
	assert.Equal(t, "Outcome(X)", Outcome('X').String())
}

func TestTeamSeasonStats_Played(t *testing.T) {
	t.Parallel()

	s := TeamSeasonStats{Wins: 10, Draws: 5, Losses: 3}
	assert.Equal(t, 18, s.Played())
}
