package model

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound means no line in a source matched the expected
// keyword+separator pattern; the source is unusable as-is.
var ErrHeaderNotFound = errors.New("header row not found")

// ErrEmptySeries means a series has zero periods after filtering and
// intersection. Analytics degrade to zeros rather than failing on it.
var ErrEmptySeries = errors.New("series has no periods")

// SourceError is a recoverable acquisition failure: network, HTTP status, or
// archive extraction. Callers fall back to the next source on it.
type SourceError struct {
	Source     string // source key, e.g. dataset ID or URL
	StatusCode int    // HTTP status when applicable, else 0
	Message    string
	Err        error
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("source %s unavailable: %s (status %d)", e.Source, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("source %s unavailable: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error { return e.Err }

// MissingColumnError means a required canonical series (Market, Momentum)
// cannot be constructed from the available columns. Fatal for that series,
// never for the rest of the set.
type MissingColumnError struct {
	Label      string   // canonical label being resolved
	Candidates []string // column names that were tried
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column for %q not found (tried %v)", e.Label, e.Candidates)
}
