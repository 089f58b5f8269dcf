// Package validate checks user input before any request is issued.
package validate

import (
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

// DateLayout is the only accepted date format (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

var v = validator.New()

// Date parses a YYYY-MM-DD date. Blank input means today: the calendar date
// of now, in now's location. Month 13, day 32 and dates like Feb 30 are
// rejected.
func Date(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}

	date, err := time.ParseInLocation(DateLayout, input, now.Location())
	if err != nil {
		return time.Time{}, crerr.Wrapf(apperr.ErrInvalidDate, "%q is not a YYYY-MM-DD date", input)
	}
	return date, nil
}

// LeagueID parses a non-negative integer league identifier. Signs, spaces
// inside the number and non-digits are rejected.
func LeagueID(input string) (int, error) {
	input = strings.TrimSpace(input)
	if err := v.Var(input, "required,number"); err != nil {
		return 0, crerr.Wrapf(apperr.ErrInvalidLeagueID, "%q is not a non-negative integer", input)
	}
	id, err := strconv.Atoi(input)
	if err != nil {
		return 0, crerr.Wrapf(apperr.ErrInvalidLeagueID, "%q is out of range", input)
	}
	return id, nil
}

// Season is the season year queried for a match date.
func Season(date time.Time) int {
	return date.Year()
}

// FormatDate renders a date the way the provider expects it.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
