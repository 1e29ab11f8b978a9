// Package snapshot parses JHU CSSE daily report CSVs into normalized rows.
//
// The report format drifted over the years: column names changed
// (Province/State became Province_State), optional columns appeared and
// disappeared. The reader is tolerant of all of that; the only hard failure
// is an unreadable file.
package snapshot

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound marks a snapshot file that does not exist. Callers treat it
// as "skip this day", not as a failure.
var ErrNotFound = errors.New("snapshot file not found")

// Row is one normalized report line. Optional fields are nil when the
// source column is missing or blank, so "not reported" never collapses
// into "reported as zero".
type Row struct {
	USCountyID        *string // FIPS code, US rows only
	USCountyName      *string // Admin2 column, US rows only
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

// FileName returns the daily report file name for a calendar day.
func FileName(day time.Time) string {
	return day.Format("01-02-2006") + ".csv"
}

// PathFor returns the full snapshot path for a calendar day.
func PathFor(dir string, day time.Time) string {
	return filepath.Join(dir, FileName(day))
}

// Read parses one daily report file. A missing file yields ErrNotFound.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		// pick returns the first non-blank value among candidate
		// columns, current format name first.
		pick := func(names ...string) string {
			for _, name := range names {
				i, ok := col[name]
				if !ok || i >= len(rec) {
					continue
				}
				if v := strings.TrimSpace(rec[i]); v != "" {
					return v
				}
			}
			return ""
		}

		rows = append(rows, Row{
			USCountyID:        optString(pick("FIPS")),
			USCountyName:      optString(pick("Admin2")),
			Province:          optString(pick("Province_State", "Province/State")),
			Country:           pick("Country_Region", "Country/Region"),
			Confirmed:         count(pick("Confirmed")),
			Deaths:            count(pick("Deaths")),
			Recovered:         optInt(pick("Recovered")),
			Active:            optInt(pick("Active")),
			IncidentRate:      optFloat(pick("Incident_Rate", "Incidence_Rate")),
			CaseFatalityRatio: optFloat(pick("Case_Fatality_Ratio", "Case-Fatality_Ratio")),
			Lat:               optFloat(pick("Lat", "Latitude")),
			Lon:               optFloat(pick("Long_", "Longitude")),
		})
	}
	return rows, nil
}

// count parses a required cumulative counter, defaulting to 0. Some report
// vintages carry counts as floats ("123.0").
func count(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(s string) *int64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int64(f)
	return &n
}

func optFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
