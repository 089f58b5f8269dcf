// Package predict scores a fixture from both teams' season records and recent
// form and names the more likely outcome.
//
// Each side's score is a weighted sum of its season counts and goal totals
// plus a bonus from its form, using the same per-outcome weights. There is no
// normalisation by matches played and no home-advantage term. Identical inputs
// always give identical scores.
package predict

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/scoracle-predict/internal/apperr"
	"github.com/albapepper/scoracle-predict/internal/provider"
)

// Scoring weights.
const (
	WinWeight          = 3.0
	DrawWeight         = 1.0
	LossWeight         = -1.0
	GoalsForWeight     = 0.5
	GoalsAgainstWeight = -0.5
)

// Verdict is the predicted outcome category of a fixture.
type Verdict int

const (
	Draw Verdict = iota
	HomeWin
	AwayWin
)

func (v Verdict) String() string {
	switch v {
	case HomeWin:
		return "HomeWin"
	case AwayWin:
		return "AwayWin"
	default:
		return "Draw"
	}
}

// Result is a computed prediction. It is not stored anywhere.
type Result struct {
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
	Verdict   Verdict `json:"verdict"`
}

// Summary renders the result as a sentence, leading with the favoured side's
// score.
func (r Result) Summary() string {
	switch r.Verdict {
	case HomeWin:
		return fmt.Sprintf("Home team is more likely to win (%.1f vs %.1f)", r.HomeScore, r.AwayScore)
	case AwayWin:
		return fmt.Sprintf("Away team is more likely to win (%.1f vs %.1f)", r.AwayScore, r.HomeScore)
	default:
		return fmt.Sprintf("The match is likely to be a draw (%.1f vs %.1f)", r.HomeScore, r.AwayScore)
	}
}

var validate = validator.New()

// Predict scores both sides and compares them. Equal scores are a Draw;
// otherwise the strictly higher side wins.
func Predict(home, away provider.TeamSeasonStats, homeForm, awayForm provider.FormRecord) (Result, error) {
	if err := checkSide("home", home, homeForm); err != nil {
		return Result{}, err
	}
	if err := checkSide("away", away, awayForm); err != nil {
		return Result{}, err
	}

	r := Result{
		HomeScore: Score(home, homeForm),
		AwayScore: Score(away, awayForm),
	}
	switch {
	case r.HomeScore > r.AwayScore:
		r.Verdict = HomeWin
	case r.AwayScore > r.HomeScore:
		r.Verdict = AwayWin
	default:
		r.Verdict = Draw
	}
	return r, nil
}

// Score is one side's season score plus its form bonus. Inputs are assumed
// valid; Predict checks them.
func Score(stats provider.TeamSeasonStats, form provider.FormRecord) float64 {
	season := WinWeight*float64(stats.Wins) +
		DrawWeight*float64(stats.Draws) +
		LossWeight*float64(stats.Losses) +
		GoalsForWeight*stats.GoalsFor +
		GoalsAgainstWeight*stats.GoalsAgainst
	return season + FormBonus(form)
}

// FormBonus sums the outcome weights over form. An empty form is worth 0.
func FormBonus(form provider.FormRecord) float64 {
	var bonus float64
	for _, o := range form {
		switch o {
		case provider.Win:
			bonus += WinWeight
		case provider.Draw:
			bonus += DrawWeight
		case provider.Loss:
			bonus += LossWeight
		}
	}
	return bonus
}

func checkSide(side string, stats provider.TeamSeasonStats, form provider.FormRecord) error {
	if err := validate.Struct(stats); err != nil {
		return crerr.Wrapf(apperr.ErrInvalidInput, "%s season stats: %v", side, err)
	}
	for i, o := range form {
		if !o.Valid() {
			return crerr.Wrapf(apperr.ErrInvalidInput, "%s form: %s at position %d", side, o, i)
		}
	}
	return nil
}
