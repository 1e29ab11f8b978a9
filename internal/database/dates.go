package database

import (
	"errors"
	"fmt"
	"time"
)

// DayFormat is the canonical YYYY-MM-DD layout used for the date column.
const DayFormat = "2006-01-02"

// ErrBadDate marks a date string that is not YYYY-MM-DD.
var ErrBadDate = errors.New("invalid date")

// ParseDay parses a YYYY-MM-DD date string.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrBadDate, s)
	}
	return d, nil
}

// FormatDay formats a time as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// MakeRangeID renders a date range descriptor for query results.
// Single day: "2021-01-01". Range: "2021-01-01 to 2021-01-31".
func MakeRangeID(start, end string) string {
	if start == end {
		return start
	}
	return start + " to " + end
}
