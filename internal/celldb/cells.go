package celldb

import (
	"context"
	"fmt"
)

// CellCount is the number of samples of a run that fell in one cell.
type CellCount struct {
	Serial uint64 `json:"serial"`
	Quad   int    `json:"quad"`
	D      int    `json:"d"`
	I      int    `json:"i"`
	Hits   int    `json:"hits"`
}

// Hit is one stored sample.
type Hit struct {
	Sample   int     `json:"sample"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Triangle int     `json:"triangle"`
	Serial   uint64  `json:"serial"`
}

// CellCounts returns the occupied cells of a run, busiest first and then by
// serial. limit <= 0 returns every cell.
func (db *DB) CellCounts(ctx context.Context, runID string, limit int) ([]CellCount, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
		SELECT serial, quad, d, i, COUNT(*) AS hits
		FROM cell_hits
		WHERE run_id = ?
		GROUP BY serial, quad, d, i
		ORDER BY hits DESC, serial ASC
		LIMIT ?`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("query cell counts: %w", err)
	}
	defer rows.Close()

	var counts []CellCount
	for rows.Next() {
		var c CellCount
		var serial int64
		if err := rows.Scan(&serial, &c.Quad, &c.D, &c.I, &c.Hits); err != nil {
			return nil, fmt.Errorf("scan cell count: %w", err)
		}
		c.Serial = uint64(serial)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CellHits returns the samples of a run that fell in the cell with the given
// serial, in sample order.
func (db *DB) CellHits(ctx context.Context, runID string, serial uint64) ([]Hit, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT sample, lon_deg, lat_deg, triangle, serial
		FROM cell_hits
		WHERE run_id = ? AND serial = ?
		ORDER BY sample`, runID, int64(serial))
	if err != nil {
		return nil, fmt.Errorf("query cell hits: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var s int64
		if err := rows.Scan(&h.Sample, &h.Lon, &h.Lat, &h.Triangle, &s); err != nil {
			return nil, fmt.Errorf("scan cell hit: %w", err)
		}
		h.Serial = uint64(s)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
