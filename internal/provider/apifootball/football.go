package apifootball

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/albapepper/scoracle-predict/internal/apperr"
	"github.com/albapepper/scoracle-predict/internal/provider"
)

// --------------------------------------------------------------------------
// Leagues
// --------------------------------------------------------------------------

type afLeagueRaw struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// Leagues lists every league the subscription can see.
func (c *Client) Leagues(ctx context.Context) ([]provider.League, error) {
	data, err := c.get(ctx, "/leagues", nil)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch leagues")
	}

	items, err := decodeList(data, "/leagues")
	if err != nil {
		return nil, err
	}

	leagues := make([]provider.League, 0, len(items))
	for _, raw := range items {
		var l afLeagueRaw
		if err := sonic.Unmarshal(raw, &l); err != nil {
			c.logger.WarnContext(ctx, "decode league", "error", err)
			continue
		}
		if l.League.ID == 0 && l.League.Name == "" {
			c.logger.WarnContext(ctx, "skip league without id or name")
			continue
		}
		leagues = append(leagues, provider.League{
			ID:      l.League.ID,
			Name:    l.League.Name,
			Type:    l.League.Type,
			Country: l.Country.Name,
		})
	}
	return leagues, nil
}

// --------------------------------------------------------------------------
// Fixtures
// --------------------------------------------------------------------------

type afTeamRaw struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type afFixtureRaw struct {
	Fixture struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int `json:"id"`
		Season int `json:"season"`
	} `json:"league"`
	Teams struct {
		Home afTeamRaw `json:"home"`
		Away afTeamRaw `json:"away"`
	} `json:"teams"`
}

// Fixtures lists a league's fixtures on date for season.
func (c *Client) Fixtures(ctx context.Context, leagueID, season int, date time.Time) ([]provider.Fixture, error) {
	data, err := c.get(ctx, "/fixtures", url.Values{
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
		"date":   {date.Format("2006-01-02")},
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch fixtures league=%d season=%d", leagueID, season)
	}

	items, err := decodeList(data, "/fixtures")
	if err != nil {
		return nil, err
	}

	fixtures := make([]provider.Fixture, 0, len(items))
	for _, raw := range items {
		var f afFixtureRaw
		if err := sonic.Unmarshal(raw, &f); err != nil {
			c.logger.WarnContext(ctx, "decode fixture", "error", err)
			continue
		}
		if f.Fixture.ID == 0 || f.Teams.Home.ID == 0 || f.Teams.Away.ID == 0 {
			c.logger.WarnContext(ctx, "skip fixture with missing ids", "fixture_id", f.Fixture.ID)
			continue
		}
		fixtures = append(fixtures, normalizeFixture(f))
	}
	return fixtures, nil
}

func normalizeFixture(raw afFixtureRaw) provider.Fixture {
	fx := provider.Fixture{
		ID:       raw.Fixture.ID,
		Status:   raw.Fixture.Status.Short,
		LeagueID: raw.League.ID,
		Season:   raw.League.Season,
		Home:     provider.TeamRef{ID: raw.Teams.Home.ID, Name: raw.Teams.Home.Name},
		Away:     provider.TeamRef{ID: raw.Teams.Away.ID, Name: raw.Teams.Away.Name},
	}
	if kickoff, err := time.Parse(time.RFC3339, raw.Fixture.Date); err == nil {
		fx.Kickoff = kickoff
	}
	return fx
}

// --------------------------------------------------------------------------
// Fixture statistics
// --------------------------------------------------------------------------

type afStatisticsRaw struct {
	Team       afTeamRaw `json:"team"`
	Statistics []struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	} `json:"statistics"`
}

// FixtureStatistics returns each team's statistics for a fixture. An empty
// slice means the provider has none yet. Null values come back as
// unavailable metrics.
func (c *Client) FixtureStatistics(ctx context.Context, fixtureID int) ([]provider.MatchStatisticsSet, error) {
	data, err := c.get(ctx, "/fixtures/statistics", url.Values{
		"fixture": {strconv.Itoa(fixtureID)},
	})
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch statistics fixture=%d", fixtureID)
	}

	items, err := decodeList(data, "/fixtures/statistics")
	if err != nil {
		return nil, err
	}

	sets := make([]provider.MatchStatisticsSet, 0, len(items))
	for _, raw := range items {
		var s afStatisticsRaw
		if err := sonic.Unmarshal(raw, &s); err != nil {
			c.logger.WarnContext(ctx, "decode team statistics", "fixture_id", fixtureID, "error", err)
			continue
		}
		sets = append(sets, normalizeStatistics(s))
	}
	return sets, nil
}

func normalizeStatistics(raw afStatisticsRaw) provider.MatchStatisticsSet {
	set := provider.NewMatchStatisticsSet(provider.TeamRef{ID: raw.Team.ID, Name: raw.Team.Name})
	for _, stat := range raw.Statistics {
		set.Add(stat.Type, provider.ExtractMetric(stat.Value))
	}
	return set
}

// --------------------------------------------------------------------------
// Team season statistics
// --------------------------------------------------------------------------

// TeamStatistics returns a team's season record and form in a league. The
// record fields are required; a payload missing any of them fails with
// apperr.ErrMissingField rather than defaulting to zero.
func (c *Client) TeamStatistics(ctx context.Context, teamID, leagueID, season int) (provider.TeamSeason, error) {
	data, err := c.get(ctx, "/teams/statistics", url.Values{
		"team":   {strconv.Itoa(teamID)},
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
	})
	if err != nil {
		return provider.TeamSeason{}, crerr.Wrapf(err, "fetch team statistics team=%d", teamID)
	}

	// The provider answers "response": [] (sometimes {}) when it has nothing
	// for the team.
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return provider.TeamSeason{}, crerr.Wrapf(apperr.ErrNoData, "team statistics team=%d league=%d season=%d", teamID, leagueID, season)
	}

	var payload map[string]interface{}
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return provider.TeamSeason{}, apperr.Tag(crerr.Wrapf(err, "decode team statistics team=%d", teamID), apperr.ErrDecode)
	}
	if len(payload) == 0 {
		return provider.TeamSeason{}, crerr.Wrapf(apperr.ErrNoData, "team statistics team=%d league=%d season=%d", teamID, leagueID, season)
	}

	ts, err := normalizeTeamSeason(payload)
	if err != nil {
		return provider.TeamSeason{}, crerr.Wrapf(err, "team statistics team=%d", teamID)
	}
	if ts.Team.ID == 0 {
		ts.Team.ID = teamID
	}
	if ts.LeagueID == 0 {
		ts.LeagueID = leagueID
	}
	if ts.Season == 0 {
		ts.Season = season
	}
	return ts, nil
}

// normalizeTeamSeason maps a /teams/statistics payload. Counts are read from
// fixtures.{wins,draws,loses}.total and goals from
// goals.{for,against}.total.total.
func normalizeTeamSeason(payload map[string]interface{}) (provider.TeamSeason, error) {
	var ts provider.TeamSeason

	if id, ok := provider.ExtractValue(lookup(payload, "team", "id")); ok {
		ts.Team.ID = int(id)
	}
	if name, ok := lookup(payload, "team", "name").(string); ok {
		ts.Team.Name = name
	}
	if id, ok := provider.ExtractValue(lookup(payload, "league", "id")); ok {
		ts.LeagueID = int(id)
	}
	if season, ok := provider.ExtractValue(lookup(payload, "league", "season")); ok {
		ts.Season = int(season)
	}

	counts := []struct {
		path []string
		dst  *int
	}{
		{[]string{"fixtures", "wins"}, &ts.Stats.Wins},
		{[]string{"fixtures", "draws"}, &ts.Stats.Draws},
		{[]string{"fixtures", "loses"}, &ts.Stats.Losses},
	}
	for _, field := range counts {
		v, ok := provider.ExtractValue(lookup(payload, field.path...))
		if !ok {
			return ts, crerr.Wrapf(apperr.ErrMissingField, "%s.total", strings.Join(field.path, "."))
		}
		*field.dst = int(v)
	}

	goals := []struct {
		path []string
		dst  *float64
	}{
		{[]string{"goals", "for", "total"}, &ts.Stats.GoalsFor},
		{[]string{"goals", "against", "total"}, &ts.Stats.GoalsAgainst},
	}
	for _, field := range goals {
		v, ok := provider.ExtractValue(lookup(payload, field.path...))
		if !ok {
			return ts, crerr.Wrapf(apperr.ErrMissingField, "%s.total", strings.Join(field.path, "."))
		}
		*field.dst = v
	}

	raw, _ := lookup(payload, "form").(string)
	form, err := provider.ParseForm(raw)
	if err != nil {
		return ts, err
	}
	ts.Form = form

	return ts, nil
}

// lookup walks nested JSON objects. It returns nil when any step is missing
// or not an object.
func lookup(m map[string]interface{}, path ...string) interface{} {
	var cur interface{} = m
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// decodeList splits a response array into items. A non-array response is a
// decode failure.
func decodeList(data []byte, path string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, apperr.Tag(crerr.Wrapf(err, "decode %s list", path), apperr.ErrDecode)
	}
	return items, nil
}
