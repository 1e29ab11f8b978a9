package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// ExistingDates returns the set of dates that already have data points.
func (db *DB) ExistingDates() (map[string]struct{}, error) {
	rows, err := db.conn.Query("SELECT DISTINCT date FROM data_points")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make(map[string]struct{})
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates[d] = struct{}{}
	}
	return dates, rows.Err()
}

// HasDate reports whether any data point exists for the given date.
func (db *DB) HasDate(date string) (bool, error) {
	var n int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM data_points WHERE date = ?", date,
	).Scan(&n)
	return n > 0, err
}

// CountForDate returns the number of data points stored for a date.
func (db *DB) CountForDate(date string) (int, error) {
	var n int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM data_points WHERE date = ?", date,
	).Scan(&n)
	return n, err
}

// LatestDate returns the most recent date in the store, or "" when empty.
func (db *DB) LatestDate() (string, error) {
	var d sql.NullString
	if err := db.conn.QueryRow("SELECT MAX(date) FROM data_points").Scan(&d); err != nil {
		return "", err
	}
	return d.String, nil
}

// LatestDateBefore returns the most recent date strictly before the given
// date, or "" when no earlier data exists.
func (db *DB) LatestDateBefore(date string) (string, error) {
	var d sql.NullString
	err := db.conn.QueryRow(
		"SELECT MAX(date) FROM data_points WHERE date < ?", date,
	).Scan(&d)
	if err != nil {
		return "", err
	}
	return d.String, nil
}

// IngestBatch is an open transaction accumulating per-day bulk inserts.
// Committing every few dozen days bounds how much work a crash can lose.
type IngestBatch struct {
	tx   *sql.Tx
	stmt *sql.Stmt
}

// BeginIngest opens a transaction for bulk data point inserts.
func (db *DB) BeginIngest() (*IngestBatch, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin ingest batch: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO data_points (
		date, us_county_id, us_county_name, province, country,
		confirmed, deaths, recovered, active,
		incident_rate, case_fatality_ratio, lat, lon
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &IngestBatch{tx: tx, stmt: stmt}, nil
}

// InsertDay inserts all rows for one calendar day.
func (b *IngestBatch) InsertDay(date string, points []DataPoint) error {
	for _, p := range points {
		_, err := b.stmt.Exec(
			date, p.USCountyID, p.USCountyName, p.Province, p.Country,
			p.Confirmed, p.Deaths, p.Recovered, p.Active,
			p.IncidentRate, p.CaseFatalityRatio, p.Lat, p.Lon,
		)
		if err != nil {
			return fmt.Errorf("inserting data point for %s: %w", date, err)
		}
	}
	return nil
}

// Commit closes the batch, making its days durable.
func (b *IngestBatch) Commit() error {
	b.stmt.Close()
	return b.tx.Commit()
}

// Rollback discards the batch.
func (b *IngestBatch) Rollback() error {
	b.stmt.Close()
	return b.tx.Rollback()
}

// DistinctPlaces returns the distinct (country, province, county) triples
// observed across all ingested days.
func (db *DB) DistinctPlaces() ([]PlaceKey, error) {
	rows, err := db.conn.Query(
		"SELECT DISTINCT country, province, us_county_name FROM data_points",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []PlaceKey
	for rows.Next() {
		var p PlaceKey
		if err := rows.Scan(&p.Country, &p.Province, &p.County); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// SumTotals sums confirmed/deaths/recovered over the rows of one date,
// narrowed by the place filter. Missing recovered counts contribute zero.
// An empty match yields zero totals, not an error.
func (db *DB) SumTotals(date string, f PlaceFilter) (Totals, error) {
	query := `SELECT
		COALESCE(SUM(confirmed), 0),
		COALESCE(SUM(deaths), 0),
		COALESCE(SUM(COALESCE(recovered, 0)), 0)
		FROM data_points WHERE date = ?`
	args := []any{date}

	where, filterArgs := placeWhere(f)
	query += where
	args = append(args, filterArgs...)

	var t Totals
	err := db.conn.QueryRow(query, args...).Scan(&t.Confirmed, &t.Deaths, &t.Recovered)
	if err != nil {
		return Totals{}, err
	}
	return t, nil
}

// placeWhere builds the WHERE fragment for a place filter. Continent
// membership is resolved through the hierarchy tables.
func placeWhere(f PlaceFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.County != "" {
		clauses = append(clauses, "us_county_name = ? COLLATE NOCASE")
		args = append(args, f.County)
	}
	if f.State != "" {
		clauses = append(clauses, "province = ? COLLATE NOCASE")
		args = append(args, f.State)
	}
	if f.Country != "" {
		clauses = append(clauses, "country = ? COLLATE NOCASE")
		args = append(args, f.Country)
	}
	if f.Continent != "" {
		clauses = append(clauses, `country IN (
			SELECT c.name FROM countries c
			JOIN continents ct ON c.continent_id = ct.id
			WHERE ct.name = ? COLLATE NOCASE)`)
		args = append(args, f.Continent)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// CountRowsForDate returns the count projection of all rows for one date,
// used to fold breakdown trees.
func (db *DB) CountRowsForDate(date string) ([]CountRow, error) {
	rows, err := db.conn.Query(
		`SELECT country, province, us_county_name,
			confirmed, deaths, COALESCE(recovered, 0)
		FROM data_points WHERE date = ?`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountRow
	for rows.Next() {
		var r CountRow
		if err := rows.Scan(&r.Country, &r.Province, &r.USCountyName,
			&r.Confirmed, &r.Deaths, &r.Recovered); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
