// SPDX-License-Identifier: MIT

// Package tot: functional configuration of the construction engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Notes:
//   - Deterministic output: worker count never changes the result, only
//     how fast it is produced.
//   - Options hold no global state; every Build resolves its own copy.
package tot

import (
	"io"
	"log/slog"
	"maps"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/tensor"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWorkers builds tiles sequentially.
	DefaultWorkers = 1

	// DefaultConsumeSource keeps the source reusable: every tile is a deep copy.
	DefaultConsumeSource = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid = "tot: WithWorkers: n must be >= 1"
	panicModeMapInvalid = "tot: WithModeMap: modes must be non-negative"
	panicOffsetNil      = "tot: WithOffsetFunc: f must be non-nil"
	panicLoggerNil      = "tot: WithLogger: logger must be non-nil"
	panicObserverNil    = "tot: WithObserver: observer must be non-nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error); rank-dependent checks happen in Build.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	modeMap      map[int]int       // destination ind mode → source mode; nil = identity
	workers      int               // DefaultWorkers
	outer        *index.Domain     // restrict outer indices; nil = every map key
	consume      bool              // DefaultConsumeSource
	offset       tensor.OffsetFunc // tensor.RowMajorOffset
	customOffset bool              // offset set by the caller
	logger       *slog.Logger      // discard by default
	observer     Observer          // no-op by default
}

// ---------- Constructors (WithX) ----------

// WithModeMap sets the destination-to-source independent mode map:
// m[k] = s sends destination independent mode k to source mode s. Source
// modes absent from the map's values become the dependent (inner) modes in
// increasing order. Required when the map's independent rank is below the
// source's; otherwise it must permute the leading source modes.
// Panics on negative modes.
func WithModeMap(m map[int]int) Option {
	for k, v := range m {
		if k < 0 || v < 0 {
			panic(panicModeMapInvalid)
		}
	}
	cp := maps.Clone(m)

	return func(o *Options) { o.modeMap = cp }
}

// WithWorkers builds up to n tiles concurrently.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithOuterDomain restricts construction to the outer indices in d.
// Indices of d absent from the map are skipped (reported to the Observer);
// map keys outside d are ignored.
func WithOuterDomain(d index.Domain) Option {
	return func(o *Options) { o.outer = &d }
}

// WithConsumeSource declares the source will not be reused after Build.
// When the source is a tensor.BlockSource, the mode map is the identity and
// a Domain covers the whole dependent block, the tile is a view sharing the
// source storage instead of a copy.
func WithConsumeSource() Option {
	return func(o *Options) { o.consume = true }
}

// WithOffsetFunc sets the local-coordinate → storage offset mapping of every
// built tile. Tiles with a custom offset are always copies.
// Panics on nil.
func WithOffsetFunc(f tensor.OffsetFunc) Option {
	if f == nil {
		panic(panicOffsetNil)
	}

	return func(o *Options) { o.offset, o.customOffset = f, true }
}

// WithLogger sets the structured logger for build summaries (Debug level).
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// WithObserver sets the per-tile instrumentation hook.
// Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserverNil)
	}

	return func(o *Options) { o.observer = obs }
}

// gatherOptions applies user setters on top of defaults; last writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		workers:  DefaultWorkers,
		consume:  DefaultConsumeSource,
		offset:   tensor.RowMajorOffset,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
