package model

import (
	"fmt"
	"time"
)

// PeriodFormat is the wire format for a monthly period.
const PeriodFormat = "200601" // YYYYMM

// Period represents a calendar month with no finer granularity.
// It is the index type for all return tables and series.
type Period struct {
	y int
	m time.Month
}

// NewPeriod returns a normalized Period for the given year and month.
// Out-of-range months roll over the year, matching time.Date semantics.
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{y: t.Year(), m: t.Month()}
}

// ParsePeriod parses a strict 6-digit YYYYMM token.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodFormat, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q want format YYYYMM: %w", s, err)
	}
	return Period{y: t.Year(), m: t.Month()}, nil
}

// MustParsePeriod is like ParsePeriod but panics on error.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Year returns the calendar year.
func (p Period) Year() int { return p.y }

// Month returns the calendar month.
func (p Period) Month() time.Month { return p.m }

// String formats the period in its YYYYMM wire format.
func (p Period) String() string { return p.time().Format(PeriodFormat) }

// ISO formats the period as YYYY-MM for presentation.
func (p Period) ISO() string { return p.time().Format("2006-01") }

// Next returns the following month.
func (p Period) Next() Period { return NewPeriod(p.y, p.m+1) }

// Before reports whether p is chronologically before x.
func (p Period) Before(x Period) bool {
	return p.y < x.y || (p.y == x.y && p.m < x.m)
}

// After reports whether p is chronologically after x.
func (p Period) After(x Period) bool { return x.Before(p) }

func (p Period) time() time.Time {
	return time.Date(p.y, p.m, 1, 0, 0, 0, 0, time.UTC)
}

// MarshalJSON encodes the period as a "YYYY-MM" JSON string.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.ISO() + `"`), nil
}

// UnmarshalJSON accepts either "YYYY-MM" or "YYYYMM".
func (p *Period) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid period json %s", s)
	}
	s = s[1 : len(s)-1]
	if t, err := time.Parse("2006-01", s); err == nil {
		*p = Period{y: t.Year(), m: t.Month()}
		return nil
	}
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
