package database

// GetStats returns aggregate counts for the status command.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM data_points", &stats.DataPoints},
		{"SELECT COUNT(DISTINCT date) FROM data_points", &stats.Days},
		{"SELECT COUNT(*) FROM continents", &stats.Continents},
		{"SELECT COUNT(*) FROM countries", &stats.Countries},
		{"SELECT COUNT(*) FROM states", &stats.States},
		{"SELECT COUNT(*) FROM counties", &stats.Counties},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}
