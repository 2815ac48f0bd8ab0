package celldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/dggs/internal/batch"
	"github.com/banshee-data/dggs/internal/isea"
	"github.com/banshee-data/dggs/internal/monitoring"
)

// ErrRunNotFound is returned when a run id is not in the database.
var ErrRunNotFound = errors.New("run not found")

// Run describes one stored batch projection.
type Run struct {
	RunID      string `json:"run_id"`
	Proj       string `json:"proj"`
	Output     string `json:"output"`
	Aperture   int    `json:"aperture"`
	Resolution int    `json:"resolution"`
	Samples    int    `json:"samples"`
	Skipped    int    `json:"skipped"`
	CreatedAt  int64  `json:"created_at"`
}

// Created returns CreatedAt as a time.
func (r Run) Created() time.Time { return time.Unix(0, r.CreatedAt) }

// RecordRun stores the results of a batch run made with cfg under a new run
// id, one row per successfully projected sample. proj is the option string
// the grid was built from and is kept for reference.
func (db *DB) RecordRun(ctx context.Context, cfg isea.GridConfig, proj string, results []batch.Result) (*Run, error) {
	run := &Run{
		RunID:      uuid.New().String(),
		Proj:       proj,
		Output:     cfg.Output.String(),
		Aperture:   cfg.Aperture,
		Resolution: cfg.Resolution,
		Samples:    len(results),
		CreatedAt:  time.Now().UnixNano(),
	}
	for _, r := range results {
		if r.Err != nil {
			run.Skipped++
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, proj, output, aperture, resolution, samples, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Proj, run.Output, run.Aperture, run.Resolution, run.Samples, run.Skipped, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cell_hits (run_id, sample, lon_deg, lat_deg, triangle, quad, d, i, serial)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer stmt.Close()

	stored := 0
	for n, r := range results {
		if r.Err != nil {
			continue
		}
		lon, lat := r.Point.Degrees()
		c := r.Cell
		if _, err := stmt.ExecContext(ctx, run.RunID, n, lon, lat, c.Triangle, c.Quad, c.D, c.I, int64(c.Serial)); err != nil {
			return nil, fmt.Errorf("failed to insert cell hit %d: %w", n, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	monitoring.RecordCellsStored(stored)
	logf("stored run %s: %d cell hits (%d skipped)", run.RunID, stored, run.Skipped)
	return run, nil
}

const runColumns = `run_id, proj, output, aperture, resolution, samples, skipped, created_at`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var r Run
	if err := row.Scan(&r.RunID, &r.Proj, &r.Output, &r.Aperture, &r.Resolution, &r.Samples, &r.Skipped, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Runs lists every stored run, newest first.
func (db *DB) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run by id, or ErrRunNotFound.
func (db *DB) GetRun(ctx context.Context, runID string) (*Run, error) {
	r, err := scanRun(db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	return r, nil
}

// DeleteRun removes a run and its cell hits.
func (db *DB) DeleteRun(ctx context.Context, runID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
