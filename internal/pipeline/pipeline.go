// Package pipeline orchestrates the startup data passes: snapshot
// ingestion followed by the place hierarchy build. Both passes are
// idempotent, so the pipeline is safe to run on every start.
package pipeline

import (
	"context"
	"fmt"

	"covidtrack/internal/config"
	"covidtrack/internal/database"
	"covidtrack/internal/ingest"
	"covidtrack/internal/places"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Pipeline runs ingestion and hierarchy derivation in order. The two
// passes must stay sequential: the builder scans what ingestion wrote.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes ingestion, then the hierarchy build.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}

	step := p.runIngest(ctx)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	r.Steps = append(r.Steps, p.runPlaces())
	return r
}

func (p *Pipeline) runIngest(ctx context.Context) StepResult {
	step := StepResult{Name: "Ingest"}

	start, err := database.ParseDay(p.cfg.Snapshots.StartDate)
	if err != nil {
		step.Err = err
		return step
	}
	end, err := database.ParseDay(p.cfg.Snapshots.EndDate)
	if err != nil {
		step.Err = err
		return step
	}

	res, err := ingest.New(p.db, ingest.Options{
		SnapshotDir: p.cfg.GetSnapshotDir(),
		StartDate:   start,
		EndDate:     end,
		BatchDays:   p.cfg.Snapshots.BatchDays,
	}).Run(ctx)
	if err != nil {
		step.Err = err
		return step
	}

	step.Summary = fmt.Sprintf("%d days inserted (%d rows), %d already present, %d without snapshot",
		res.DaysInserted, res.RowsInserted, res.DaysSkipped, res.DaysMissing)
	return step
}

func (p *Pipeline) runPlaces() StepResult {
	step := StepResult{Name: "Places"}

	res, err := places.NewBuilder(p.db).Build()
	if err != nil {
		step.Err = err
		return step
	}

	step.Summary = fmt.Sprintf("%d triples scanned, %d new continents, %d countries, %d states, %d counties",
		res.Scanned, res.Continents, res.Countries, res.States, res.Counties)
	return step
}
