// SPDX-License-Identifier: MIT

// Package telemetry exports tile construction events as Prometheus metrics.
package telemetry

import (
	"time"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/tot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "sparsetot"
	subsystem = "tot"
)

// Observer implements tot.Observer on top of Prometheus collectors.
// Safe for concurrent use, as the engine's worker pool requires.
type Observer struct {
	tilesBuilt    prometheus.Counter
	tilesSkipped  prometheus.Counter
	elements      prometheus.Counter
	buildDuration prometheus.Histogram
}

var _ tot.Observer = (*Observer)(nil)

// NewObserver registers the engine collectors on reg.
// Panics if they are already registered on reg (promauto semantics).
func NewObserver(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)

	return &Observer{
		// tilesBuilt counts inner tiles produced.
		tilesBuilt: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tiles_built_total",
			Help:      "Inner tiles built",
		}),
		// tilesSkipped counts outer indices sparsified away entirely.
		tilesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tiles_skipped_total",
			Help:      "Outer indices without a map entry, built as no tile",
		}),
		elements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tile_elements_total",
			Help:      "Dependent indices covered by built tiles",
		}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tile_build_seconds",
			Help:      "Time to build one inner tile",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

// TileBuilt implements tot.Observer.
func (o *Observer) TileBuilt(_ index.Index, elements int, d time.Duration) {
	o.tilesBuilt.Inc()
	o.elements.Add(float64(elements))
	o.buildDuration.Observe(d.Seconds())
}

// TileSkipped implements tot.Observer.
func (o *Observer) TileSkipped(index.Index) {
	o.tilesSkipped.Inc()
}
