// Package batch projects many points through one grid using a bounded pool of
// workers, and reads and writes the point sets as GeoJSON or plain text.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/dggs/internal/isea"
	"github.com/banshee-data/dggs/internal/monitoring"
)

var logf = monitoring.Prefixed("batch")

const defaultChunkSize = 256

// Sample is one input point with whatever identity it carried in.
type Sample struct {
	Point      isea.GeoPoint
	ID         interface{}
	Properties map[string]interface{}
}

// Result pairs a sample with its address in the grid's output form and its
// cell. Err is set only for skipped samples.
type Result struct {
	Sample
	Address isea.Address
	Cell    isea.Cell
	Err     error
}

// Options controls a Run. The zero value uses one worker per CPU and stops
// at the first sample that fails to project.
type Options struct {
	Workers   int
	ChunkSize int
	// SkipInvalid records per-sample failures in Result.Err instead of
	// aborting the run.
	SkipInvalid bool
}

// GetWorkers returns Workers or GOMAXPROCS when unset.
func (o Options) GetWorkers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// GetChunkSize returns ChunkSize or 256 when unset.
func (o Options) GetChunkSize() int {
	if o.ChunkSize <= 0 {
		return defaultChunkSize
	}
	return o.ChunkSize
}

// Run projects every sample through g. Results are in input order. The run
// stops early when ctx is cancelled, returning the context's error.
func Run(ctx context.Context, g *isea.Grid, samples []Sample, opts Options) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(samples))
	form := g.Config().Output.String()

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.GetWorkers())

	chunk := opts.GetChunkSize()
	for lo := 0; lo < len(samples); lo += chunk {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+chunk, len(samples))
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := project(g, samples[i], &results[i]); err != nil {
					monitoring.RecordGeometryError()
					if !opts.SkipInvalid {
						return fmt.Errorf("sample %d %v: %w", i, samples[i].Point, err)
					}
					results[i].Err = err
					continue
				}
				monitoring.RecordTransform(form)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// A cancellation noticed before any chunk was scheduled leaves no worker
	// to report it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	monitoring.ObserveBatch(elapsed)

	skipped := 0
	for i := range results {
		if results[i].Err != nil {
			skipped++
		}
	}
	logf("projected %d samples as %s in %v (%d skipped)", len(samples)-skipped, form, elapsed, skipped)
	return results, nil
}

func project(g *isea.Grid, s Sample, r *Result) error {
	r.Sample = s
	addr, cell, err := g.Resolve(s.Point)
	if err != nil {
		return err
	}
	r.Address = addr
	r.Cell = cell
	return nil
}
