package mockapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

//go:embed data/dataset.json
var defaultDataset []byte

// Dataset holds API-Football shaped items, indexed for the query parameters
// the mock endpoints filter on. Items are served back byte for byte.
type Dataset struct {
	Leagues        []json.RawMessage            `json:"leagues"`
	Fixtures       []json.RawMessage            `json:"fixtures"`
	Statistics     map[string][]json.RawMessage `json:"statistics"` // keyed by fixture id
	TeamStatistics []json.RawMessage            `json:"team_statistics"`

	leagueIDs    []int
	fixtureIndex []fixtureKey
	teamIndex    map[teamKey]json.RawMessage
}

type fixtureKey struct {
	LeagueID int
	Season   int
	Date     string // YYYY-MM-DD
}

type teamKey struct {
	TeamID   int
	LeagueID int
	Season   int
}

// DefaultDataset parses the embedded sample data.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(defaultDataset)
}

// ParseDataset decodes and indexes a dataset document.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := sonic.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.index(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) index() error {
	ds.leagueIDs = make([]int, len(ds.Leagues))
	for i, raw := range ds.Leagues {
		var head struct {
			League struct {
				ID int `json:"id"`
			} `json:"league"`
		}
		if err := sonic.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("decode league %d: %w", i, err)
		}
		ds.leagueIDs[i] = head.League.ID
	}

	ds.fixtureIndex = make([]fixtureKey, len(ds.Fixtures))
	for i, raw := range ds.Fixtures {
		var head struct {
			Fixture struct {
				Date string `json:"date"`
			} `json:"fixture"`
			League struct {
				ID     int `json:"id"`
				Season int `json:"season"`
			} `json:"league"`
		}
		if err := sonic.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("decode fixture %d: %w", i, err)
		}
		date, _, _ := strings.Cut(head.Fixture.Date, "T")
		ds.fixtureIndex[i] = fixtureKey{LeagueID: head.League.ID, Season: head.League.Season, Date: date}
	}

	ds.teamIndex = make(map[teamKey]json.RawMessage, len(ds.TeamStatistics))
	for i, raw := range ds.TeamStatistics {
		var head struct {
			Team struct {
				ID int `json:"id"`
			} `json:"team"`
			League struct {
				ID     int `json:"id"`
				Season int `json:"season"`
			} `json:"league"`
		}
		if err := sonic.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("decode team statistics %d: %w", i, err)
		}
		ds.teamIndex[teamKey{TeamID: head.Team.ID, LeagueID: head.League.ID, Season: head.League.Season}] = raw
	}

	if ds.Statistics == nil {
		ds.Statistics = make(map[string][]json.RawMessage)
	}
	return nil
}

// FindLeagues returns every league, or only the one with id when id > 0.
func (ds *Dataset) FindLeagues(id int) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(ds.Leagues))
	for i, raw := range ds.Leagues {
		if id > 0 && ds.leagueIDs[i] != id {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// FindFixtures filters fixtures by league, season and date. Zero values and
// an empty date match anything.
func (ds *Dataset) FindFixtures(leagueID, season int, date string) []json.RawMessage {
	out := make([]json.RawMessage, 0)
	for i, raw := range ds.Fixtures {
		key := ds.fixtureIndex[i]
		if leagueID > 0 && key.LeagueID != leagueID {
			continue
		}
		if season > 0 && key.Season != season {
			continue
		}
		if date != "" && key.Date != date {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// FixtureStatistics returns the per-team statistics of a fixture, or nil.
func (ds *Dataset) FixtureStatistics(fixtureID int) []json.RawMessage {
	return ds.Statistics[strconv.Itoa(fixtureID)]
}

// FindTeamStatistics returns a team's season statistics object, or nil.
func (ds *Dataset) FindTeamStatistics(teamID, leagueID, season int) json.RawMessage {
	return ds.teamIndex[teamKey{TeamID: teamID, LeagueID: leagueID, Season: season}]
}
