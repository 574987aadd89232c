// SPDX-License-Identifier: MIT

package tiling

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/katalvlaran/sparsetot/index"
)

// TiledRange partitions every mode of a tensor into contiguous tiles.
// The zero value is the rank-0 range: one scalar tile holding one element.
type TiledRange struct {
	bounds [][]int // bounds[m] strictly ascending, len >= 2
}

// New builds a TiledRange from one boundary list per mode.
// Stage 1 (Validate): each list has >= 2 entries, starts >= 0, strictly ascends.
// Stage 2 (Finalize): deep-copy the lists.
// Returns ErrBadBoundaries on invalid input.
// Complexity: O(Σ len(bounds[m])).
func New(bounds ...[]int) (TiledRange, error) {
	out := make([][]int, len(bounds))
	for m, b := range bounds {
		if len(b) < 2 || b[0] < 0 {
			return TiledRange{}, fmt.Errorf("tiling.New: mode %d %v: %w", m, b, ErrBadBoundaries)
		}
		for k := 1; k < len(b); k++ {
			if b[k] <= b[k-1] {
				return TiledRange{}, fmt.Errorf("tiling.New: mode %d %v not ascending: %w", m, b, ErrBadBoundaries)
			}
		}
		out[m] = slices.Clone(b)
	}

	return TiledRange{bounds: out}, nil
}

// Uniform builds a range where every mode spans [0, extents[m]) cut into
// tiles of at most size elements (the last tile may be shorter).
// Panics if size <= 0 (programmer error); returns ErrBadBoundaries for
// non-positive extents.
func Uniform(size int, extents ...int) (TiledRange, error) {
	if size <= 0 {
		panic("tiling: Uniform: size must be > 0")
	}
	bounds := make([][]int, len(extents))
	for m, ext := range extents {
		if ext <= 0 {
			return TiledRange{}, fmt.Errorf("tiling.Uniform: mode %d extent %d: %w", m, ext, ErrBadBoundaries)
		}
		b := []int{0}
		for off := size; off < ext; off += size {
			b = append(b, off)
		}
		bounds[m] = append(b, ext)
	}

	return TiledRange{bounds: bounds}, nil
}

// Rank returns the number of modes.
func (tr TiledRange) Rank() int {
	return len(tr.bounds)
}

// Extents returns the element count per mode.
func (tr TiledRange) Extents() []int {
	out := make([]int, len(tr.bounds))
	for m, b := range tr.bounds {
		out[m] = b[len(b)-1] - b[0]
	}

	return out
}

// TileExtents returns the tile count per mode.
func (tr TiledRange) TileExtents() []int {
	out := make([]int, len(tr.bounds))
	for m, b := range tr.bounds {
		out[m] = len(b) - 1
	}

	return out
}

// ElementToTile returns the tile holding element e.
// Returns ErrRankMismatch on rank disagreement, ErrOutOfRange if any
// coordinate falls outside its mode's span.
// Complexity: O(r log t).
func (tr TiledRange) ElementToTile(e index.Index) (index.Index, error) {
	if e.Rank() != len(tr.bounds) {
		return index.Index{}, fmt.Errorf("TiledRange.ElementToTile%s: rank %d != %d: %w",
			e, e.Rank(), len(tr.bounds), ErrRankMismatch)
	}
	vals := e.Values()
	for m, v := range vals {
		b := tr.bounds[m]
		if v < b[0] || v >= b[len(b)-1] {
			return index.Index{}, fmt.Errorf("TiledRange.ElementToTile%s: mode %d outside [%d,%d): %w",
				e, m, b[0], b[len(b)-1], ErrOutOfRange)
		}
		// first boundary strictly greater than v, minus one
		vals[m] = sort.SearchInts(b, v+1) - 1
	}

	return index.Of(vals...), nil
}

// TileBounds returns the half-open element box [lo, hi) of tile t.
// Returns ErrRankMismatch or ErrOutOfRange for an invalid tile index.
func (tr TiledRange) TileBounds(t index.Index) (lo, hi []int, err error) {
	if t.Rank() != len(tr.bounds) {
		return nil, nil, fmt.Errorf("TiledRange.TileBounds%s: rank %d != %d: %w",
			t, t.Rank(), len(tr.bounds), ErrRankMismatch)
	}
	lo = make([]int, len(tr.bounds))
	hi = make([]int, len(tr.bounds))
	for m, k := range t.Values() {
		if k >= len(tr.bounds[m])-1 {
			return nil, nil, fmt.Errorf("TiledRange.TileBounds%s: mode %d has %d tiles: %w",
				t, m, len(tr.bounds[m])-1, ErrOutOfRange)
		}
		lo[m], hi[m] = tr.bounds[m][k], tr.bounds[m][k+1]
	}

	return lo, hi, nil
}

// TileElements returns an iterator over every element of tile t in
// row-major order.
// Returns ErrRankMismatch or ErrOutOfRange for an invalid tile index.
func (tr TiledRange) TileElements(t index.Index) (iter.Seq[index.Index], error) {
	lo, hi, err := tr.TileBounds(t)
	if err != nil {
		return nil, err
	}

	return box(lo, hi), nil
}

// Tiles iterates every tile index in row-major order.
func (tr TiledRange) Tiles() iter.Seq[index.Index] {
	lo := make([]int, len(tr.bounds))

	return box(lo, tr.TileExtents())
}

// box iterates the integer points of [lo, hi) in row-major order.
// A zero-rank box yields the scalar index once; an empty box yields nothing.
func box(lo, hi []int) iter.Seq[index.Index] {
	return func(yield func(index.Index) bool) {
		for m := range lo {
			if hi[m] <= lo[m] {
				return
			}
		}
		cur := slices.Clone(lo)
		for {
			if !yield(index.Of(cur...)) {
				return
			}
			// odometer increment, last mode fastest
			m := len(cur) - 1
			for ; m >= 0; m-- {
				cur[m]++
				if cur[m] < hi[m] {
					break
				}
				cur[m] = lo[m]
			}
			if m < 0 {
				return
			}
		}
	}
}

// Equal reports whether both ranges have identical boundaries.
func (tr TiledRange) Equal(o TiledRange) bool {
	return slices.EqualFunc(tr.bounds, o.bounds, func(a, b []int) bool {
		return slices.Equal(a, b)
	})
}

// String implements fmt.Stringer.
func (tr TiledRange) String() string {
	return fmt.Sprintf("TiledRange%v", tr.bounds)
}
