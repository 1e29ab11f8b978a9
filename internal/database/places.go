package database

import (
	"database/sql"
	"fmt"
)

// PlaceTx is an open transaction for hierarchy upserts. The whole build
// pass runs inside one transaction and commits once at the end, so a crash
// mid-pass is recovered by simply re-running the build.
type PlaceTx struct {
	tx *sql.Tx
}

// BeginPlaces opens a transaction for place hierarchy writes.
func (db *DB) BeginPlaces() (*PlaceTx, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin place transaction: %w", err)
	}
	return &PlaceTx{tx: tx}, nil
}

// InsertContinent upserts a continent by name and returns its id.
func (t *PlaceTx) InsertContinent(name string) (int64, error) {
	if _, err := t.tx.Exec(
		"INSERT OR IGNORE INTO continents (name) VALUES (?)", name,
	); err != nil {
		return 0, err
	}
	var id int64
	err := t.tx.QueryRow("SELECT id FROM continents WHERE name = ?", name).Scan(&id)
	return id, err
}

// InsertCountry upserts a country by name and returns its id.
func (t *PlaceTx) InsertCountry(name string, continentID int64) (int64, error) {
	if _, err := t.tx.Exec(
		"INSERT OR IGNORE INTO countries (name, continent_id) VALUES (?, ?)",
		name, continentID,
	); err != nil {
		return 0, err
	}
	var id int64
	err := t.tx.QueryRow("SELECT id FROM countries WHERE name = ?", name).Scan(&id)
	return id, err
}

// InsertState upserts a state scoped to its owning country and returns its id.
func (t *PlaceTx) InsertState(name string, countryID int64) (int64, error) {
	if _, err := t.tx.Exec(
		"INSERT OR IGNORE INTO states (name, country_id) VALUES (?, ?)",
		name, countryID,
	); err != nil {
		return 0, err
	}
	var id int64
	err := t.tx.QueryRow(
		"SELECT id FROM states WHERE name = ? AND country_id = ?", name, countryID,
	).Scan(&id)
	return id, err
}

// InsertCounty upserts a county scoped to its owning state and returns its id.
func (t *PlaceTx) InsertCounty(name string, stateID int64) (int64, error) {
	if _, err := t.tx.Exec(
		"INSERT OR IGNORE INTO counties (name, state_id) VALUES (?, ?)",
		name, stateID,
	); err != nil {
		return 0, err
	}
	var id int64
	err := t.tx.QueryRow(
		"SELECT id FROM counties WHERE name = ? AND state_id = ?", name, stateID,
	).Scan(&id)
	return id, err
}

// Commit makes the hierarchy writes durable.
func (t *PlaceTx) Commit() error {
	return t.tx.Commit()
}

// Rollback discards the hierarchy writes.
func (t *PlaceTx) Rollback() error {
	return t.tx.Rollback()
}

// AllContinents returns every continent row.
func (db *DB) AllContinents() ([]Continent, error) {
	rows, err := db.conn.Query("SELECT id, name FROM continents ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Continent
	for rows.Next() {
		var c Continent
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllCountries returns every country row.
func (db *DB) AllCountries() ([]Country, error) {
	rows, err := db.conn.Query("SELECT id, name, continent_id FROM countries ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name, &c.ContinentID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AllStates returns every state row.
func (db *DB) AllStates() ([]State, error) {
	rows, err := db.conn.Query("SELECT id, name, country_id FROM states ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []State
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllCounties returns every county row.
func (db *DB) AllCounties() ([]County, error) {
	rows, err := db.conn.Query("SELECT id, name, state_id FROM counties ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []County
	for rows.Next() {
		var c County
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ContinentByCountry maps each known country name to its continent name.
func (db *DB) ContinentByCountry() (map[string]string, error) {
	rows, err := db.conn.Query(`
		SELECT c.name, ct.name FROM countries c
		JOIN continents ct ON c.continent_id = ct.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var country, continent string
		if err := rows.Scan(&country, &continent); err != nil {
			return nil, err
		}
		m[country] = continent
	}
	return m, rows.Err()
}
