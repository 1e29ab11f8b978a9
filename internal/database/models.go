package database

// DataPoint is one reported row of a daily snapshot: cumulative counts for
// a place as of a calendar day. Optional fields are pointers so that "not
// reported" stays distinguishable from "reported as zero".
type DataPoint struct {
	ID                int64
	Date              string // YYYY-MM-DD
	USCountyID        *string
	USCountyName      *string
	Province          *string
	Country           string
	Confirmed         int64
	Deaths            int64
	Recovered         *int64
	Active            *int64
	IncidentRate      *float64
	CaseFatalityRatio *float64
	Lat               *float64
	Lon               *float64
}

// PlaceKey is a distinct (country, province, county) triple observed in the
// canonical store.
type PlaceKey struct {
	Country  string
	Province *string
	County   *string
}

// Totals holds summed cumulative counts.
type Totals struct {
	Confirmed int64
	Deaths    int64
	Recovered int64
}

// PlaceFilter narrows a totals query to a subtree of the place hierarchy.
// All fields are optional; matching is case-insensitive exact equality.
type PlaceFilter struct {
	Continent string
	Country   string
	State     string
	County    string
}

// CountRow is a data point projection used to fold breakdown trees.
type CountRow struct {
	Country      string
	Province     *string
	USCountyName *string
	Confirmed    int64
	Deaths       int64
	Recovered    int64
}

// Continent is a top-level node of the place hierarchy.
type Continent struct {
	ID   int64
	Name string
}

// Country is a place hierarchy node owned by a continent.
type Country struct {
	ID          int64
	Name        string
	ContinentID int64
}

// State is a place hierarchy node owned by a country.
type State struct {
	ID        int64
	Name      string
	CountryID int64
}

// County is a place hierarchy node owned by a state. Only recorded for US
// rows, where the snapshots carry Admin2 names.
type County struct {
	ID      int64
	Name    string
	StateID int64
}

// Stats contains aggregate database statistics.
type Stats struct {
	DataPoints int
	Days       int
	Continents int
	Countries  int
	States     int
	Counties   int
}
