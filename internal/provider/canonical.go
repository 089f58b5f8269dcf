// Package provider defines canonical data types that football data providers
// normalize into. These structs are the contract between the provider client
// and everything downstream of it: the predictor reads them, the console
// prints them.
//
// Raw payloads never cross this boundary. A provider maps its JSON into these
// types as soon as it is decoded, turning missing values into explicit
// "unavailable" markers instead of zeroes.
package provider

import (
	"strconv"
	"strings"
	"time"
)

// League is one competition the provider can list fixtures for.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Country string `json:"country,omitempty"`
}

// TeamRef identifies a team inside a fixture or statistics payload.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Fixture is a scheduled or played match.
type Fixture struct {
	ID       int       `json:"id"`
	Kickoff  time.Time `json:"kickoff"`
	Status   string    `json:"status,omitempty"` // provider short code: NS, FT, ...
	LeagueID int       `json:"league_id"`
	Season   int       `json:"season"`
	Home     TeamRef   `json:"home"`
	Away     TeamRef   `json:"away"`
}

// TeamSeasonStats holds a team's cumulative record for a competition season.
// Counts and goal totals are never negative.
type TeamSeasonStats struct {
	Wins         int     `json:"wins" validate:"gte=0"`
	Draws        int     `json:"draws" validate:"gte=0"`
	Losses       int     `json:"losses" validate:"gte=0"`
	GoalsFor     float64 `json:"goals_for" validate:"gte=0"`
	GoalsAgainst float64 `json:"goals_against" validate:"gte=0"`
}

// Played is the number of matches the record covers.
func (s TeamSeasonStats) Played() int {
	return s.Wins + s.Draws + s.Losses
}

// TeamSeason bundles what the predictor needs about one side.
type TeamSeason struct {
	Team     TeamRef         `json:"team"`
	LeagueID int             `json:"league_id"`
	Season   int             `json:"season"`
	Stats    TeamSeasonStats `json:"stats"`
	Form     FormRecord      `json:"form"`
}

// --------------------------------------------------------------------------
// Match statistics
// --------------------------------------------------------------------------

// Unavailable is how a metric the provider did not report is displayed.
const Unavailable = "N/A"

// Metric is a single reported statistic. Available is false when the
// provider sent null or a value that could not be read as a number, so that
// "0" and "not reported" stay distinguishable.
type Metric struct {
	Value     float64 `json:"value"`
	Percent   bool    `json:"percent,omitempty"`
	Available bool    `json:"available"`
	Raw       string  `json:"raw,omitempty"`
}

// String renders the metric for display.
func (m Metric) String() string {
	if !m.Available {
		if m.Raw != "" {
			return m.Raw
		}
		return Unavailable
	}
	s := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if m.Percent {
		return s + "%"
	}
	return s
}

// MatchStatisticsSet is one team's statistics for one fixture. Order keeps
// the metric names in the order the provider listed them.
type MatchStatisticsSet struct {
	Team    TeamRef           `json:"team"`
	Metrics map[string]Metric `json:"metrics"`
	Order   []string          `json:"order"`
}

// NewMatchStatisticsSet returns an empty set for team.
func NewMatchStatisticsSet(team TeamRef) MatchStatisticsSet {
	return MatchStatisticsSet{
		Team:    team,
		Metrics: make(map[string]Metric),
	}
}

// Add records a metric. A repeated name keeps its first position but takes
// the latest value.
func (s *MatchStatisticsSet) Add(name string, m Metric) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if s.Metrics == nil {
		s.Metrics = make(map[string]Metric)
	}
	if _, exists := s.Metrics[name]; !exists {
		s.Order = append(s.Order, name)
	}
	s.Metrics[name] = m
}

// Get returns the metric named name. A name the provider never sent comes
// back unavailable.
func (s MatchStatisticsSet) Get(name string) Metric {
	if m, ok := s.Metrics[name]; ok {
		return m
	}
	return Metric{}
}
