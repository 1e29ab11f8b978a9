// Package query answers aggregation queries over the canonical store and
// the place hierarchy: point-in-time cumulative totals, date-range deltas,
// and hierarchical breakdowns.
package query

import (
	"errors"
	"fmt"

	"covidtrack/internal/database"
)

// ErrInvalidRange marks a caller-supplied date range whose start is after
// its end, or a filter mixing an exact date with a range.
var ErrInvalidRange = errors.New("invalid date range")

// Filter is the optional query narrowing. Date is exclusive with
// Start/End; all place names match case-insensitively.
type Filter struct {
	Date  string // exact day, YYYY-MM-DD
	Start string // range start, requires End
	End   string // range end, requires Start

	Continent string
	Country   string
	State     string
	County    string
}

// Scalar is a query result record: summed counts labeled with the
// resolved place and date scope.
type Scalar struct {
	Place     string `json:"place,omitempty"`
	Date      string `json:"date,omitempty"`
	DateRange string `json:"date_range,omitempty"`
	Confirmed int64  `json:"confirmed"`
	Deaths    int64  `json:"deaths"`
	Recovered int64  `json:"recovered"`
}

// Node is one level of a breakdown tree.
type Node struct {
	Name      string  `json:"name"`
	Confirmed int64   `json:"confirmed"`
	Deaths    int64   `json:"deaths"`
	Recovered int64   `json:"recovered"`
	Children  []*Node `json:"children,omitempty"`
}

// Engine computes query results. It keeps no state between queries;
// hierarchy membership is re-resolved from the store every time, so
// concurrent queries are safe.
type Engine struct {
	db *database.DB
}

// New creates an Engine over the given store.
func New(db *database.DB) *Engine {
	return &Engine{db: db}
}

// dateScope is the resolved date narrowing of one query.
type dateScope struct {
	date     string // day whose cumulative totals are summed
	baseline string // range mode: day whose totals are subtracted
	isRange  bool
	label    string
}

// resolveDates turns the filter's date fields into a concrete scope.
// With no date filter the scope defaults to the latest ingested day.
func (e *Engine) resolveDates(f Filter) (dateScope, error) {
	hasRange := f.Start != "" || f.End != ""
	if f.Date != "" && hasRange {
		return dateScope{}, fmt.Errorf("%w: date and date range are exclusive", ErrInvalidRange)
	}

	if f.Date != "" {
		if _, err := database.ParseDay(f.Date); err != nil {
			return dateScope{}, err
		}
		return dateScope{date: f.Date, label: f.Date}, nil
	}

	if hasRange {
		if f.Start == "" || f.End == "" {
			return dateScope{}, fmt.Errorf("%w: both start and end are required", ErrInvalidRange)
		}
		start, err := database.ParseDay(f.Start)
		if err != nil {
			return dateScope{}, err
		}
		end, err := database.ParseDay(f.End)
		if err != nil {
			return dateScope{}, err
		}
		if start.After(end) {
			return dateScope{}, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, f.Start, f.End)
		}

		// Deltas are measured against the last day strictly before the
		// range, so the range's own first day counts toward the delta.
		baseline, err := e.db.LatestDateBefore(f.Start)
		if err != nil {
			return dateScope{}, fmt.Errorf("resolving range baseline: %w", err)
		}
		if baseline == "" {
			// Nothing precedes the range. Measure against its own first
			// day, so pre-range cumulative history never reads as new.
			baseline = f.Start
		}
		return dateScope{
			date:     f.End,
			baseline: baseline,
			isRange:  true,
			label:    database.MakeRangeID(f.Start, f.End),
		}, nil
	}

	latest, err := e.db.LatestDate()
	if err != nil {
		return dateScope{}, fmt.Errorf("resolving latest date: %w", err)
	}
	return dateScope{date: latest, label: latest}, nil
}

// placeFilter converts the query filter to the store's place predicate.
func placeFilter(f Filter) database.PlaceFilter {
	return database.PlaceFilter{
		Continent: f.Continent,
		Country:   f.Country,
		State:     f.State,
		County:    f.County,
	}
}

// placeLabel names the scope of a result: the most specific supplied
// place filter, or "Global".
func placeLabel(f Filter) string {
	switch {
	case f.County != "":
		return f.County
	case f.State != "":
		return f.State
	case f.Country != "":
		return f.Country
	case f.Continent != "":
		return f.Continent
	}
	return "Global"
}

// Totals computes the scalar result for a filter: cumulative totals for a
// single day, or the zero-clamped delta over a date range. An empty store
// or an unmatched filter yields zeros, never an error.
func (e *Engine) Totals(f Filter) (*Scalar, error) {
	scope, err := e.resolveDates(f)
	if err != nil {
		return nil, err
	}

	s := &Scalar{Place: placeLabel(f)}
	if scope.isRange {
		s.DateRange = scope.label
	} else {
		s.Date = scope.label
	}
	if scope.date == "" {
		// Empty store; the zero result distinguishes "no data" from failure.
		return s, nil
	}

	total, err := e.db.SumTotals(scope.date, placeFilter(f))
	if err != nil {
		return nil, fmt.Errorf("summing totals for %s: %w", scope.date, err)
	}

	if scope.isRange {
		base, err := e.db.SumTotals(scope.baseline, placeFilter(f))
		if err != nil {
			return nil, fmt.Errorf("summing baseline for %s: %w", scope.baseline, err)
		}
		total = subClamped(total, base)
	}

	s.Confirmed = total.Confirmed
	s.Deaths = total.Deaths
	s.Recovered = total.Recovered
	return s, nil
}

// subClamped subtracts per field, clamping at zero: a late data correction
// must never surface as a negative delta.
func subClamped(a, b database.Totals) database.Totals {
	return database.Totals{
		Confirmed: clamp(a.Confirmed - b.Confirmed),
		Deaths:    clamp(a.Deaths - b.Deaths),
		Recovered: clamp(a.Recovered - b.Recovered),
	}
}

func clamp(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
