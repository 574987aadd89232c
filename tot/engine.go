// SPDX-License-Identifier: MIT

package tot

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/katalvlaran/sparsetot/tensor"
	"golang.org/x/sync/errgroup"
)

// job is one outer index to build.
type job struct {
	ind index.Index
	dom index.Domain
}

// engine is one resolved build: validated inputs plus options.
type engine struct {
	sm   *sparsemap.SparseMap
	src  tensor.Source
	opts Options
	pl   *plan
}

// newEngine validates every input before anything is allocated.
// Stage 1 (Validate): nil inputs, then ranks and mode map (resolve).
// Stage 2 (Validate): outer-domain rank against the map.
// An empty unranked map skips rank checks: it yields no tiles.
func newEngine(sm *sparsemap.SparseMap, src tensor.Source, opts ...Option) (*engine, error) {
	if sm == nil || src == nil {
		return nil, fmt.Errorf("tot: sparse map or source: %w", ErrNilInput)
	}
	o := gatherOptions(opts...)

	p, q, modeMap := sm.IndRank(), sm.DepRank(), o.modeMap
	if !sm.Ranked() {
		// Nothing to build; plan over the source's own split.
		p, q, modeMap = src.IndRank(), src.DepRank(), nil
	}
	pl, err := resolve(p, q, src.IndRank(), src.Rank(), modeMap)
	if err != nil {
		return nil, err
	}
	if o.outer != nil && !o.outer.Empty() && o.outer.Rank() != p {
		return nil, fmt.Errorf("tot: outer domain rank %d != map ind rank %d: %w", o.outer.Rank(), p, ErrRankMismatch)
	}

	return &engine{sm: sm, src: src, opts: o, pl: pl}, nil
}

// jobs lists the outer indices to build in index order, reporting skipped
// ones to the observer.
func (e *engine) jobs() (todo []job, skipped int) {
	if e.opts.outer == nil {
		todo = make([]job, 0, e.sm.Len())
		for ind, dom := range e.sm.All() {
			todo = append(todo, job{ind: ind, dom: dom})
		}
		return todo, 0
	}
	for ind := range e.opts.outer.All() {
		dom, err := e.sm.At(ind)
		if err != nil {
			// Absent from the map: sparsified away, no tile.
			e.opts.observer.TileSkipped(ind)
			skipped++
			continue
		}
		todo = append(todo, job{ind: ind, dom: dom})
	}

	return todo, skipped
}

// makeTile builds the inner tile of one outer index.
// Stage 1 (View): consumed block sources share a full, identity-mapped block.
// Stage 2 (Allocate): zero tile shaped by the Domain's result extents.
// Stage 3 (Copy): every member read at its combined coordinate; zeros skipped.
func (e *engine) makeTile(j job) (*tensor.Tile, error) {
	start := time.Now()
	if e.opts.consume && e.pl.identity && !e.opts.customOffset {
		if bs, ok := e.src.(tensor.BlockSource); ok {
			if blk, ok := bs.Block(j.ind); ok && j.dom.CoversBox(blk.Extents()) {
				e.opts.observer.TileBuilt(j.ind, j.dom.Len(), time.Since(start))
				return blk, nil
			}
		}
	}

	tile, err := tensor.NewTile(j.dom, e.opts.offset)
	if err != nil {
		return nil, fmt.Errorf("tot: tile %s: %w", j.ind, err)
	}
	outer := j.ind.Values()
	for ieidx := range j.dom.All() {
		coord := index.Of(e.pl.combine(outer, ieidx.Values())...)
		v, err := e.src.At(coord)
		if err != nil {
			return nil, fmt.Errorf("tot: tile %s element %s: %w", j.ind, ieidx, err)
		}
		if v == 0 {
			continue
		}
		if err := tile.Set(ieidx, v); err != nil {
			return nil, fmt.Errorf("tot: tile %s element %s: %w", j.ind, ieidx, err)
		}
	}
	e.opts.observer.TileBuilt(j.ind, j.dom.Len(), time.Since(start))

	return tile, nil
}

// run builds every job, staging results. Nothing is returned unless every
// tile succeeded and ctx is still live.
func (e *engine) run(ctx context.Context, todo []job) ([]*tensor.Tile, error) {
	staged := make([]*tensor.Tile, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.workers)
	for k, j := range todo {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := e.makeTile(j)
			if err != nil {
				return err
			}
			staged[k] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return staged, nil
}

// Build constructs the tensor of tensors of src sparsified by sm: one inner
// tile per outer index of sm holding exactly the dependent elements of its
// Domain. Outer indices absent from sm have no tile.
//
// Returns ErrNilInput, ErrRankMismatch or ErrModeMap before allocating any
// tile, the source's error for an unreadable element, or ctx.Err() when
// cancelled. On any error no container is returned.
func Build(ctx context.Context, sm *sparsemap.SparseMap, src tensor.Source, opts ...Option) (*tensor.ToT, error) {
	e, err := newEngine(sm, src, opts...)
	if err != nil {
		return nil, err
	}
	out := tensor.NewToTWithRank(e.pl.indRank)
	if err := e.publish(ctx, out); err != nil {
		return nil, err
	}

	return out, nil
}

// BuildInto is Build writing into a caller-supplied container. Tiles are
// inserted only after all of them were built; an Insert failure (for example
// a duplicate key already held by dst) stops publication at that tile.
func BuildInto(ctx context.Context, dst tensor.Inserter, sm *sparsemap.SparseMap, src tensor.Source, opts ...Option) error {
	if dst == nil {
		return fmt.Errorf("tot.BuildInto: destination: %w", ErrNilInput)
	}
	e, err := newEngine(sm, src, opts...)
	if err != nil {
		return err
	}

	return e.publish(ctx, dst)
}

// publish builds all tiles then inserts them in outer-index order.
func (e *engine) publish(ctx context.Context, dst tensor.Inserter) error {
	start := time.Now()
	todo, skipped := e.jobs()
	tiles, err := e.run(ctx, todo)
	if err != nil {
		e.opts.logger.Debug("tot: build aborted", "mode", e.pl.mode, "tiles", len(todo), "err", err)
		return err
	}
	views := 0
	for k, j := range todo {
		if tiles[k].IsView() {
			views++
		}
		if err := dst.Insert(j.ind, tiles[k]); err != nil {
			return fmt.Errorf("tot: publish %s: %w", j.ind, err)
		}
	}
	e.opts.logger.Debug("tot: build",
		"mode", e.pl.mode,
		"tiles", len(todo),
		"skipped", skipped,
		"views", views,
		"workers", e.opts.workers,
		"elapsed", time.Since(start),
	)

	return nil
}

// MakeTile builds the inner tile of a single outer index ind.
// Returns ErrNotFound if ind has no entry in sm, otherwise the same
// validation errors as Build.
func MakeTile(sm *sparsemap.SparseMap, src tensor.Source, ind index.Index, opts ...Option) (*tensor.Tile, error) {
	e, err := newEngine(sm, src, opts...)
	if err != nil {
		return nil, err
	}
	dom, err := sm.At(ind)
	if err != nil {
		return nil, fmt.Errorf("tot.MakeTile: %w", err)
	}

	return e.makeTile(job{ind: ind, dom: dom})
}
