// Package apperr defines the error taxonomy shared by the validators, the
// API-Football client, the predictor and the console session.
//
// Four kinds are surfaced to the user: invalid input, fetch failures, parse
// failures and configuration errors. Each concrete sentinel belongs to exactly
// one kind; callers classify with the Is* helpers instead of comparing
// sentinels one by one.
package apperr

import (
	crerr "github.com/cockroachdb/errors"
)

// Invalid input.
var (
	ErrInvalidInput    = crerr.New("invalid input")
	ErrInvalidDate     = crerr.New("invalid date")
	ErrInvalidLeagueID = crerr.New("invalid league id")
)

// Fetch failures. Network, status and provider-reported errors stay distinct
// so the console can say which one happened.
var (
	ErrNetwork        = crerr.New("network failure")
	ErrHTTPStatus     = crerr.New("unexpected http status")
	ErrProviderErrors = crerr.New("provider reported errors")
)

// Parse failures.
var (
	ErrDecode        = crerr.New("malformed json")
	ErrMissingField  = crerr.New("missing field")
	ErrMalformedForm = crerr.New("malformed form")
	ErrNoData        = crerr.New("no data")
)

// ErrConfig is fatal at startup.
var ErrConfig = crerr.New("configuration error")

// IsInvalidInput reports whether err came from input validation.
func IsInvalidInput(err error) bool {
	return crerr.IsAny(err, ErrInvalidInput, ErrInvalidDate, ErrInvalidLeagueID)
}

// IsFetch reports whether err is a network, status or provider failure.
func IsFetch(err error) bool {
	return crerr.IsAny(err, ErrNetwork, ErrHTTPStatus, ErrProviderErrors)
}

// IsParse reports whether err came from decoding or mapping a payload.
func IsParse(err error) bool {
	return crerr.IsAny(err, ErrDecode, ErrMissingField, ErrMalformedForm, ErrNoData)
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return crerr.Is(err, ErrConfig)
}

// Kind names the taxonomy bucket of err, for log attributes and messages.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidInput(err):
		return "invalid_input"
	case IsFetch(err):
		return "fetch"
	case IsParse(err):
		return "parse"
	case IsConfig(err):
		return "config"
	default:
		return "unknown"
	}
}

// Tag attaches sentinel to cause so that errors.Is matches sentinel while the
// message and chain of cause are kept.
func Tag(cause, sentinel error) error {
	if cause == nil {
		return nil
	}
	return crerr.Mark(cause, sentinel)
}
