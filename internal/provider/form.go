package provider

import (
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/albapepper/scoracle-predict/internal/apperr"
)

// Outcome is the result of one match from a team's point of view.
type Outcome byte

const (
	Win  Outcome = 'W'
	Draw Outcome = 'D'
	Loss Outcome = 'L'
)

// Valid reports whether o is one of Win, Draw or Loss.
func (o Outcome) Valid() bool {
	return o == Win || o == Draw || o == Loss
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Draw:
		return "Draw"
	case Loss:
		return "Loss"
	default:
		return "Outcome(" + string(rune(o)) + ")"
	}
}

// FormRecord is a team's recent outcomes, most recent first.
type FormRecord []Outcome

// FormSummary counts the outcomes of a FormRecord.
type FormSummary struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// ParseForm reads a provider form string such as "WWDLW". Providers write
// the oldest result first; the returned record is reversed so the latest
// match comes first. Whitespace is ignored and a blank string yields an
// empty record.
func ParseForm(raw string) (FormRecord, error) {
	symbols := strings.Join(strings.Fields(strings.ToUpper(raw)), "")
	form := make(FormRecord, len(symbols))
	for i := 0; i < len(symbols); i++ {
		o := Outcome(symbols[i])
		if !o.Valid() {
			return nil, crerr.Wrapf(apperr.ErrMalformedForm, "symbol %q at position %d of %q", symbols[i], i, raw)
		}
		form[len(symbols)-1-i] = o
	}
	return form, nil
}

// Summary counts wins, draws and losses. Symbols outside the three outcomes
// are not counted.
func (f FormRecord) Summary() FormSummary {
	var s FormSummary
	for _, o := range f {
		switch o {
		case Win:
			s.Wins++
		case Draw:
			s.Draws++
		case Loss:
			s.Losses++
		}
	}
	return s
}

// String renders the record as symbols, most recent first.
func (f FormRecord) String() string {
	b := make([]byte, len(f))
	for i, o := range f {
		b[i] = byte(o)
	}
	return string(b)
}
