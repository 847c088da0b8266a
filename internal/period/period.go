// Package period maps calendar dates to the aggregation windows used by the
// statistics view: Monday–Saturday weeks (Sundays roll forward into the
// following week) and calendar months.
package period

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// compactLayout accepts dates as the KMA API returns them (no separators).
const compactLayout = "20060102"

// ErrMalformedDate reports a date string that is not a valid calendar date in
// either the hyphenated or compact form.
var ErrMalformedDate = errors.New("malformed date")

// Window is an inclusive date range in canonical YYYY-MM-DD form. It is
// comparable and used directly as an aggregation map key.
type Window struct {
	Start string
	End   string
}

// ParseDate parses a hyphenated (2024-01-08) or compact (20240108) calendar
// date. All dates are normalized to the hyphenated form elsewhere.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(compactLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// Normalize returns the canonical hyphenated form of a date string.
func Normalize(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

// Compact returns the separator-free form used by the KMA API.
func Compact(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(compactLayout), nil
}

// WeekWindow returns the Monday–Saturday window a date belongs to. A Sunday
// is attributed to the upcoming week, so its own date falls outside the
// returned range; the store is closed Sundays and Sunday revenue counts
// toward the week that follows.
func WeekWindow(s string) (Window, error) {
	t, err := ParseDate(s)
	if err != nil {
		return Window{}, err
	}

	var monday time.Time
	if t.Weekday() == time.Sunday {
		monday = t.AddDate(0, 0, 1)
	} else {
		monday = t.AddDate(0, 0, -(int(t.Weekday()) - 1))
	}
	saturday := monday.AddDate(0, 0, 5)

	return Window{
		Start: monday.Format(dateLayout),
		End:   saturday.Format(dateLayout),
	}, nil
}

// MonthWindow returns the first and last day of the date's calendar month.
func MonthWindow(s string) (Window, error) {
	t, err := ParseDate(s)
	if err != nil {
		return Window{}, err
	}

	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return Window{
		Start: first.Format(dateLayout),
		End:   last.Format(dateLayout),
	}, nil
}
