// Package console runs the interactive prediction session: it asks for a
// date and a league, lists that day's matches with their statistics and
// prints a predicted outcome for each one.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/albapepper/scoracle-predict/internal/apperr"
	"github.com/albapepper/scoracle-predict/internal/predict"
	"github.com/albapepper/scoracle-predict/internal/provider"
	"github.com/albapepper/scoracle-predict/internal/validate"
)

const (
	datePrompt   = "Enter the date (YYYY-MM-DD) to get matches (leave blank for today): "
	leaguePrompt = "\nEnter the League ID you want to get matches for (e.g., 3 for Europa League): "
)

// Source is the football data the session reads. The API-Football client
// satisfies it.
type Source interface {
	Leagues(ctx context.Context) ([]provider.League, error)
	Fixtures(ctx context.Context, leagueID, season int, date time.Time) ([]provider.Fixture, error)
	FixtureStatistics(ctx context.Context, fixtureID int) ([]provider.MatchStatisticsSet, error)
	TeamStatistics(ctx context.Context, teamID, leagueID, season int) (provider.TeamSeason, error)
}

// Session is one run of the prompt/print loop. In and Out are usually stdin
// and stdout; logs go to Logger so they never interleave with prompts.
type Session struct {
	In     io.Reader
	Out    io.Writer
	Source Source
	Now    func() time.Time
	Logger *slog.Logger

	lines <-chan string
}

// Run walks through date selection, league selection and the match report.
// Provider failures are reported on Out and end the current step; Run then
// returns nil. Only cancellation of ctx is returned as an error.
func (s *Session) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.In, done)

	date, ok := s.askDate(ctx)
	if !ok {
		return ctx.Err()
	}

	leagues, err := s.Source.Leagues(ctx)
	if err != nil {
		return s.report(ctx, "Could not fetch leagues", err)
	}

	s.printf("\nAvailable Leagues:\n")
	for _, l := range leagues {
		s.printf("%d: %s (%s)\n", l.ID, l.Name, l.Country)
	}

	leagueID, ok := s.askLeague(ctx)
	if !ok {
		return ctx.Err()
	}
	if !containsLeague(leagues, leagueID) {
		s.printf("League ID not found.\n")
		return nil
	}

	season := validate.Season(date)
	day := validate.FormatDate(date)
	s.Logger.DebugContext(ctx, "fetching fixtures", "league_id", leagueID, "season", season, "date", day)

	fixtures, err := s.Source.Fixtures(ctx, leagueID, season, date)
	if err != nil {
		return s.report(ctx, "Could not fetch matches", err)
	}
	if len(fixtures) == 0 {
		s.printf("No matches found for %s in the selected league.\n", day)
		return nil
	}

	for _, fx := range fixtures {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMatch(ctx, fx, leagueID, season)
	}
	return ctx.Err()
}

// askDate prompts until a valid date is entered. ok is false at end of input
// or once ctx is done.
func (s *Session) askDate(ctx context.Context) (time.Time, bool) {
	for {
		line, ok := s.prompt(ctx, datePrompt)
		if !ok {
			return time.Time{}, false
		}
		date, err := validate.Date(line, s.Now())
		if err == nil {
			return date, true
		}
		s.Logger.Debug("rejected date", "input", line, "error", err)
		s.printf("Invalid date. Please use the YYYY-MM-DD format.\n")
	}
}

// askLeague prompts until a numeric league ID is entered.
func (s *Session) askLeague(ctx context.Context) (int, bool) {
	for {
		line, ok := s.prompt(ctx, leaguePrompt)
		if !ok {
			return 0, false
		}
		id, err := validate.LeagueID(line)
		if err == nil {
			return id, true
		}
		s.Logger.Debug("rejected league id", "input", line, "error", err)
		s.printf("Invalid League ID. Please enter a numeric value.\n")
	}
}

// printMatch reports one fixture. Requests are issued one after another.
func (s *Session) printMatch(ctx context.Context, fx provider.Fixture, leagueID, season int) {
	s.printf("\nMatch: %s vs %s\n", fx.Home.Name, fx.Away.Name)

	sets, err := s.Source.FixtureStatistics(ctx, fx.ID)
	switch {
	case err != nil:
		s.failure("Could not fetch match statistics", err)
	case len(sets) == 0:
		s.printf("No statistics available for this match yet.\n")
	default:
		for _, set := range sets {
			s.printf("\nStatistics for %s:\n", set.Team.Name)
			for _, name := range set.Order {
				s.printf("  %s: %s\n", name, set.Get(name))
			}
		}
	}

	home, err := s.Source.TeamStatistics(ctx, fx.Home.ID, leagueID, season)
	if err != nil {
		s.unpredictable(fx.Home.Name, err)
		return
	}
	away, err := s.Source.TeamStatistics(ctx, fx.Away.ID, leagueID, season)
	if err != nil {
		s.unpredictable(fx.Away.Name, err)
		return
	}

	result, err := predict.Predict(home.Stats, away.Stats, home.Form, away.Form)
	if err != nil {
		s.unpredictable(fx.Home.Name+" vs "+fx.Away.Name, err)
		return
	}
	s.printf("\nPrediction: %s\n", result.Summary())
	s.printf("  %s season: %s\n", fx.Home.Name, seasonLine(home.Stats))
	s.printf("  %s form: %s\n", fx.Home.Name, formLine(home.Form))
	s.printf("  %s season: %s\n", fx.Away.Name, seasonLine(away.Stats))
	s.printf("  %s form: %s\n", fx.Away.Name, formLine(away.Form))
}

func (s *Session) unpredictable(subject string, err error) {
	s.Logger.Info("prediction skipped", "subject", subject, "kind", apperr.Kind(err), "error", err)
	s.printf("Team statistics not available for prediction.\n")
	s.printf("  reason (%s): %s\n", subject, describe(err))
}

// report prints a failure that ends the session. A cancelled context wins
// over the provider error.
func (s *Session) report(ctx context.Context, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s.failure(what, err)
	return nil
}

func (s *Session) failure(what string, err error) {
	s.Logger.Warn(strings.ToLower(what), "kind", apperr.Kind(err), "error", err)
	s.printf("%s: %s\n", what, describe(err))
}

// prompt prints text and waits for the next input line. ok is false at end
// of input or when ctx is done, whichever comes first.
func (s *Session) prompt(ctx context.Context, text string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	s.printf("%s", text)
	select {
	case <-ctx.Done():
		s.printf("\n")
		return "", false
	case line, open := <-s.lines:
		if !open || ctx.Err() != nil {
			s.printf("\n")
			return "", false
		}
		return line, true
	}
}

// readLines scans r on its own goroutine so a blocked read never holds up
// cancellation. The channel is closed at end of input.
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Out, format, args...)
}

func containsLeague(leagues []provider.League, id int) bool {
	for _, l := range leagues {
		if l.ID == id {
			return true
		}
	}
	return false
}

// seasonLine renders the record the prediction was scored from.
func seasonLine(st provider.TeamSeasonStats) string {
	return fmt.Sprintf("%d played, %dW %dD %dL, goals %s-%s", st.Played(), st.Wins, st.Draws, st.Losses,
		strconv.FormatFloat(st.GoalsFor, 'f', -1, 64), strconv.FormatFloat(st.GoalsAgainst, 'f', -1, 64))
}

// formLine renders a form record with its tally, or N/A when it is empty.
func formLine(form provider.FormRecord) string {
	if len(form) == 0 {
		return provider.Unavailable
	}
	sum := form.Summary()
	return fmt.Sprintf("%s (%dW %dD %dL, latest first)", form, sum.Wins, sum.Draws, sum.Losses)
}

// describe turns an error into a short user-facing explanation.
func describe(err error) string {
	switch {
	case apperr.IsFetch(err):
		return "request to the data provider failed: " + err.Error()
	case crerr.Is(err, apperr.ErrNoData):
		return "the provider has no data for this team and season"
	case apperr.IsParse(err):
		return "unexpected data from the provider: " + err.Error()
	case apperr.IsInvalidInput(err):
		return "statistics are invalid: " + err.Error()
	default:
		return err.Error()
	}
}
