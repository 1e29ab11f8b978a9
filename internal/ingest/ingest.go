// Package ingest loads daily snapshot CSVs into the canonical store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"covidtrack/internal/database"
	"covidtrack/internal/snapshot"
)

// Options configures an ingestion run.
type Options struct {
	SnapshotDir string
	StartDate   time.Time
	EndDate     time.Time
	// BatchDays is how many processed days share one transaction. A crash
	// loses at most a partial batch, never the whole run.
	BatchDays int
}

// Result summarizes an ingestion run.
type Result struct {
	DaysInserted int
	DaysSkipped  int // already in the store
	DaysMissing  int // no snapshot file
	RowsInserted int
}

// Ingester runs the per-day ingestion loop. Re-running over the same span
// is a no-op for already-populated days.
type Ingester struct {
	db   *database.DB
	opts Options
}

// New creates an Ingester.
func New(db *database.DB, opts Options) *Ingester {
	if opts.BatchDays < 1 {
		opts.BatchDays = 30
	}
	return &Ingester{db: db, opts: opts}
}

// Run ingests every day of the configured span, inclusive. Days already in
// the store and days without a snapshot file are skipped. The context is
// checked between days; cancelling mid-batch loses only uncommitted days,
// which the next run picks up again.
func (ing *Ingester) Run(ctx context.Context) (*Result, error) {
	if ing.opts.EndDate.Before(ing.opts.StartDate) {
		return nil, fmt.Errorf("ingestion span starts after it ends: %s > %s",
			database.FormatDay(ing.opts.StartDate), database.FormatDay(ing.opts.EndDate))
	}

	existing, err := ing.db.ExistingDates()
	if err != nil {
		return nil, fmt.Errorf("loading existing dates: %w", err)
	}

	batch, err := ing.db.BeginIngest()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	inBatch := 0
	for day := ing.opts.StartDate; !day.After(ing.opts.EndDate); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			batch.Rollback()
			return res, err
		}

		date := database.FormatDay(day)
		if _, ok := existing[date]; ok {
			res.DaysSkipped++
			continue
		}

		path := snapshot.PathFor(ing.opts.SnapshotDir, day)
		rows, err := snapshot.Read(path)
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				log.Printf("no snapshot for %s, skipping", date)
				res.DaysMissing++
				continue
			}
			batch.Rollback()
			return res, fmt.Errorf("reading snapshot for %s: %w", date, err)
		}

		if err := batch.InsertDay(date, toDataPoints(rows)); err != nil {
			batch.Rollback()
			return res, err
		}
		res.DaysInserted++
		res.RowsInserted += len(rows)
		inBatch++

		if inBatch%ing.opts.BatchDays == 0 {
			if err := batch.Commit(); err != nil {
				return res, fmt.Errorf("committing batch ending %s: %w", date, err)
			}
			log.Printf("ingested through %s (%d rows so far)", date, res.RowsInserted)
			batch, err = ing.db.BeginIngest()
			if err != nil {
				return res, err
			}
		}
	}

	if err := batch.Commit(); err != nil {
		return res, fmt.Errorf("committing final batch: %w", err)
	}

	log.Printf("ingestion done: %d days inserted, %d skipped, %d missing, %d rows",
		res.DaysInserted, res.DaysSkipped, res.DaysMissing, res.RowsInserted)
	return res, nil
}

// toDataPoints converts snapshot rows to store rows.
func toDataPoints(rows []snapshot.Row) []database.DataPoint {
	points := make([]database.DataPoint, len(rows))
	for i, r := range rows {
		points[i] = database.DataPoint{
			USCountyID:        r.USCountyID,
			USCountyName:      r.USCountyName,
			Province:          r.Province,
			Country:           r.Country,
			Confirmed:         r.Confirmed,
			Deaths:            r.Deaths,
			Recovered:         r.Recovered,
			Active:            r.Active,
			IncidentRate:      r.IncidentRate,
			CaseFatalityRatio: r.CaseFatalityRatio,
			Lat:               r.Lat,
			Lon:               r.Lon,
		}
	}
	return points
}
