package query

import (
	"errors"
	"path/filepath"
	"testing"

	"covidtrack/internal/database"
	"covidtrack/internal/places"
)

func strPtr(s string) *string { return &s }

func intPtr(n int64) *int64 { return &n }

func insertDay(t *testing.T, db *database.DB, date string, points []database.DataPoint) {
	t.Helper()
	batch, err := db.BeginIngest()
	if err != nil {
		t.Fatalf("failed to begin ingest: %v", err)
	}
	if err := batch.InsertDay(date, points); err != nil {
		t.Fatalf("failed to insert day: %v", err)
	}
	if err := batch.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

// newTestEngine builds a two-day store with US county detail and two
// European countries, hierarchy included.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	insertDay(t, db, "2021-03-01", []database.DataPoint{
		{Country: "US", Province: strPtr("California"), USCountyName: strPtr("Alameda"), Confirmed: 40, Deaths: 2},
		{Country: "US", Province: strPtr("California"), USCountyName: strPtr("Orange"), Confirmed: 60, Deaths: 3},
		{Country: "US", Province: strPtr("Texas"), USCountyName: strPtr("Travis"), Confirmed: 30, Deaths: 1},
		{Country: "France", Confirmed: 100, Deaths: 5, Recovered: intPtr(50)},
		{Country: "Germany", Confirmed: 200, Deaths: 10},
	})
	insertDay(t, db, "2021-03-02", []database.DataPoint{
		{Country: "US", Province: strPtr("California"), USCountyName: strPtr("Alameda"), Confirmed: 50, Deaths: 2},
		{Country: "US", Province: strPtr("California"), USCountyName: strPtr("Orange"), Confirmed: 65, Deaths: 3},
		{Country: "US", Province: strPtr("Texas"), USCountyName: strPtr("Travis"), Confirmed: 35, Deaths: 1},
		{Country: "France", Confirmed: 150, Deaths: 7, Recovered: intPtr(60)},
		// Germany reports a downward correction on day two.
		{Country: "Germany", Confirmed: 190, Deaths: 12},
	})

	if _, err := places.NewBuilder(db).Build(); err != nil {
		t.Fatalf("failed to build hierarchy: %v", err)
	}
	return New(db)
}

func TestTotalsExactDate(t *testing.T) {
	e := newTestEngine(t)

	s, err := e.Totals(Filter{Date: "2021-03-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Confirmed != 490 || s.Deaths != 25 || s.Recovered != 60 {
		t.Errorf("unexpected global totals: %+v", s)
	}
	if s.Place != "Global" {
		t.Errorf("expected place Global, got %q", s.Place)
	}
	if s.Date != "2021-03-02" || s.DateRange != "" {
		t.Errorf("unexpected date labels: %+v", s)
	}
}

func TestTotalsDefaultsToLatest(t *testing.T) {
	e := newTestEngine(t)

	latest, err := e.Totals(Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exact, _ := e.Totals(Filter{Date: "2021-03-02"})
	if latest.Confirmed != exact.Confirmed || latest.Deaths != exact.Deaths {
		t.Errorf("latest %+v != exact %+v", latest, exact)
	}
	if latest.Date != "2021-03-02" {
		t.Errorf("expected resolved latest date, got %q", latest.Date)
	}
}

func TestTotalsRangeDelta(t *testing.T) {
	e := newTestEngine(t)

	s, err := e.Totals(Filter{Start: "2021-03-02", End: "2021-03-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Delta against the last day before the range start.
	if s.Confirmed != 60 || s.Deaths != 4 || s.Recovered != 10 {
		t.Errorf("unexpected range delta: %+v", s)
	}
	if s.DateRange != "2021-03-02" || s.Date != "" {
		t.Errorf("unexpected date labels: %+v", s)
	}
}

// Range delta must equal end totals minus pre-start totals per field.
func TestTotalsRangeDeltaConsistency(t *testing.T) {
	e := newTestEngine(t)

	end, _ := e.Totals(Filter{Date: "2021-03-02", Country: "France"})
	before, _ := e.Totals(Filter{Date: "2021-03-01", Country: "France"})
	ranged, _ := e.Totals(Filter{Start: "2021-03-02", End: "2021-03-02", Country: "France"})

	if ranged.Confirmed != end.Confirmed-before.Confirmed {
		t.Errorf("confirmed delta %d != %d - %d", ranged.Confirmed, end.Confirmed, before.Confirmed)
	}
	if ranged.Confirmed != 50 {
		t.Errorf("expected confirmed delta 50, got %d", ranged.Confirmed)
	}
}

func TestTotalsRangeClampsNegativeDelta(t *testing.T) {
	e := newTestEngine(t)

	s, err := e.Totals(Filter{Start: "2021-03-02", End: "2021-03-02", Country: "Germany"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Germany's correction would be -10; it must surface as 0.
	if s.Confirmed != 0 {
		t.Errorf("expected clamped confirmed 0, got %d", s.Confirmed)
	}
	if s.Deaths != 2 {
		t.Errorf("expected deaths delta 2, got %d", s.Deaths)
	}
}

// A range opening on the first stored day measures against that day
// itself, so cumulative history predating the store never counts as new.
func TestTotalsRangeFromFirstStoredDay(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	insertDay(t, db, "2021-03-01", []database.DataPoint{
		{Country: "Testland", Confirmed: 100, Deaths: 2},
	})
	insertDay(t, db, "2021-03-02", []database.DataPoint{
		{Country: "Testland", Confirmed: 150, Deaths: 3},
	})
	e := New(db)

	s, err := e.Totals(Filter{Start: "2021-03-01", End: "2021-03-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Confirmed != 50 || s.Deaths != 1 {
		t.Errorf("expected delta 50/1 over the span, got %d/%d", s.Confirmed, s.Deaths)
	}

	// A single-day range on the first stored day has nothing to measure
	// against, so its delta is zero.
	first, err := e.Totals(Filter{Start: "2021-03-01", End: "2021-03-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Confirmed != 0 {
		t.Errorf("expected zero delta for the first day, got %d", first.Confirmed)
	}

	tree, err := e.Breakdown(Filter{Start: "2021-03-01", End: "2021-03-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Confirmed != 50 {
		t.Errorf("expected breakdown delta 50, got %d", tree.Confirmed)
	}
}

func TestTotalsInvalidRanges(t *testing.T) {
	e := newTestEngine(t)

	cases := []Filter{
		{Start: "2021-03-02", End: "2021-03-01"},
		{Start: "2021-03-01"},
		{End: "2021-03-02"},
		{Date: "2021-03-01", Start: "2021-03-01", End: "2021-03-02"},
	}
	for _, f := range cases {
		if _, err := e.Totals(f); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("filter %+v: expected ErrInvalidRange, got %v", f, err)
		}
	}

	if _, err := e.Totals(Filter{Date: "not-a-date"}); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestTotalsPlaceFilters(t *testing.T) {
	e := newTestEngine(t)

	country, _ := e.Totals(Filter{Date: "2021-03-02", Country: "france"})
	if country.Confirmed != 150 {
		t.Errorf("expected case-insensitive country total 150, got %d", country.Confirmed)
	}
	if country.Place != "france" {
		t.Errorf("expected place label from filter, got %q", country.Place)
	}

	state, _ := e.Totals(Filter{Date: "2021-03-02", State: "California"})
	if state.Confirmed != 115 {
		t.Errorf("expected state total 115, got %d", state.Confirmed)
	}

	continent, _ := e.Totals(Filter{Date: "2021-03-02", Continent: "Europe"})
	if continent.Confirmed != 340 {
		t.Errorf("expected continent total 340, got %d", continent.Confirmed)
	}

	none, err := e.Totals(Filter{Date: "2021-03-02", Country: "Atlantis"})
	if err != nil {
		t.Fatalf("unmatched filter must not error: %v", err)
	}
	if none.Confirmed != 0 {
		t.Errorf("expected zero result, got %+v", none)
	}
}

func TestTotalsEmptyStore(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := New(db).Totals(Filter{})
	if err != nil {
		t.Fatalf("empty store must not error: %v", err)
	}
	if s.Confirmed != 0 || s.Deaths != 0 || s.Recovered != 0 {
		t.Errorf("expected zero totals, got %+v", s)
	}
}

func TestBreakdownTree(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.Breakdown(Filter{Date: "2021-03-02"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Place != "Global" || tree.Confirmed != 490 {
		t.Errorf("unexpected root: %+v", tree.Scalar)
	}
	// Europe and North America.
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 continents, got %d", len(tree.Children))
	}
	// Children are name-ordered.
	if tree.Children[0].Name != "Europe" || tree.Children[1].Name != "North America" {
		t.Errorf("unexpected continent order: %q, %q", tree.Children[0].Name, tree.Children[1].Name)
	}

	europe := tree.Children[0]
	if europe.Confirmed != 340 || europe.Deaths != 19 {
		t.Errorf("unexpected Europe totals: %+v", europe)
	}
}

// Drill-down: state totals must equal the sum of their county children.
func TestBreakdownDrillDownConsistency(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.Breakdown(Filter{Date: "2021-03-02", Country: "US", State: "California"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Place != "California" {
		t.Errorf("expected drill-down to California, got %q", tree.Place)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 county children, got %d", len(tree.Children))
	}

	var sum int64
	for _, c := range tree.Children {
		sum += c.Confirmed
	}
	if sum != tree.Confirmed {
		t.Errorf("county sum %d != state total %d", sum, tree.Confirmed)
	}

	scalar, _ := e.Totals(Filter{Date: "2021-03-02", Country: "US", State: "California"})
	if scalar.Confirmed != tree.Confirmed {
		t.Errorf("breakdown total %d != scalar total %d", tree.Confirmed, scalar.Confirmed)
	}
}

// The deepest supplied filter wins even when a coarser filter is also set.
func TestBreakdownCountyFilterWins(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.Breakdown(Filter{Date: "2021-03-02", State: "California", County: "Travis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Travis is under Texas; the county filter still wins.
	if tree.Place != "Travis" || tree.Confirmed != 35 {
		t.Errorf("expected Travis node, got %+v", tree.Scalar)
	}
}

// An unmatched deep filter falls back to the best resolvable ancestor.
func TestBreakdownFallbackToAncestor(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.Breakdown(Filter{Date: "2021-03-02", State: "California", County: "Nowhere"})
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if tree.Place != "California" {
		t.Errorf("expected fallback to California, got %q", tree.Place)
	}

	tree, _ = e.Breakdown(Filter{Date: "2021-03-02", Country: "Atlantis"})
	if tree.Place != "Global" {
		t.Errorf("expected fallback to Global, got %q", tree.Place)
	}
}

func TestBreakdownRangeClamps(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.Breakdown(Filter{Start: "2021-03-02", End: "2021-03-02", Country: "Germany"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Place != "Germany" {
		t.Errorf("expected Germany node, got %q", tree.Place)
	}
	if tree.Confirmed != 0 {
		t.Errorf("expected clamped delta 0, got %d", tree.Confirmed)
	}
	if tree.DateRange != "2021-03-02" {
		t.Errorf("unexpected range label %q", tree.DateRange)
	}
}

func TestPlaceTree(t *testing.T) {
	e := newTestEngine(t)

	tree, err := e.PlaceTree()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 continents, got %d", len(tree))
	}

	var northAmerica *Place
	for _, c := range tree {
		if c.Name == "North America" {
			northAmerica = c
		}
	}
	if northAmerica == nil {
		t.Fatal("expected North America in tree")
	}
	if len(northAmerica.Children) != 1 || northAmerica.Children[0].Name != "US" {
		t.Fatalf("expected US under North America, got %+v", northAmerica.Children)
	}
	us := northAmerica.Children[0]
	if len(us.Children) != 2 {
		t.Errorf("expected 2 states under US, got %d", len(us.Children))
	}
}
