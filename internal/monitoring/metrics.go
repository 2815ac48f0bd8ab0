package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry = prometheus.NewRegistry()

	transforms = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dggs",
		Name:      "transforms_total",
		Help:      "Points projected, by output form.",
	}, []string{"form"})

	geometryErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dggs",
		Name:      "geometry_errors_total",
		Help:      "Points that no icosahedron face accepted.",
	})

	batchSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dggs",
		Name:      "batch_duration_seconds",
		Help:      "Wall time of a batch projection run.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	cellsStored = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dggs",
		Name:      "cells_stored_total",
		Help:      "Cell hits written to the cell index.",
	})
)

func init() {
	registry.MustRegister(transforms, geometryErrors, batchSeconds, cellsStored)
}

// Registry returns the private registry holding the transform metrics.
func Registry() *prometheus.Registry { return registry }

// RecordTransform counts one successful projection in the named form.
func RecordTransform(form string) { transforms.WithLabelValues(form).Inc() }

// RecordGeometryError counts one point that failed to project.
func RecordGeometryError() { geometryErrors.Inc() }

// ObserveBatch records how long a batch took.
func ObserveBatch(d time.Duration) { batchSeconds.Observe(d.Seconds()) }

// RecordCellsStored counts rows written to the cell index.
func RecordCellsStored(n int) { cellsStored.Add(float64(n)) }
