// SPDX-License-Identifier: MIT
// Package tensor: collaborator contracts and the offset utility.
//
// The construction engine depends only on the interfaces in this file:
//   - Source        element access keyed by a combined coordinate, plus
//     enumeration of stored coordinates.
//   - BlockSource   optional capability: contiguous dependent block of one
//     independent index, shared without copying.
//   - Inserter      the output container, one fully-formed tile per key.
//   - OffsetFunc    local coordinate + tile extents → storage offset.

package tensor

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/sparsetot/index"
)

// Source is a tensor addressable by combined coordinates whose first
// IndRank() modes are independent and last DepRank() modes dependent.
// Implementations must be safe for concurrent reads.
type Source interface {
	// IndRank returns the number of independent (outer) modes.
	IndRank() int
	// DepRank returns the number of dependent (inner) modes.
	DepRank() int
	// Rank returns IndRank()+DepRank().
	Rank() int
	// At returns the element at coord; unstored elements read as 0.
	// Returns ErrRankMismatch or ErrOutOfRange for invalid coordinates.
	At(coord index.Index) (float64, error)
	// Coordinates iterates the stored (non-zero) coordinates in index order.
	Coordinates() iter.Seq[index.Index]
}

// BlockSource is a Source that can expose the full dependent block of one
// independent index as a Tile sharing its storage.
type BlockSource interface {
	Source
	// Block returns a view Tile over the dependent block of ind, or false if
	// ind is outside the tensor.
	Block(ind index.Index) (*Tile, bool)
}

// Inserter receives finished inner tiles keyed by independent index.
type Inserter interface {
	Insert(ind index.Index, t *Tile) error
}

// OffsetFunc maps a locally zero-based tile coordinate and the tile extents
// to a flat storage offset in [0, Π extents). It must be a bijection on
// the tile box and free of side effects.
type OffsetFunc func(local index.Index, extents []int) (int, error)

// RowMajorOffset is the default OffsetFunc: last mode varies fastest.
// Returns ErrRankMismatch or ErrOutOfRange for coordinates outside extents.
// Complexity: O(r).
func RowMajorOffset(local index.Index, extents []int) (int, error) {
	if local.Rank() != len(extents) {
		return 0, fmt.Errorf("tensor.RowMajorOffset%s: rank %d != %d: %w",
			local, local.Rank(), len(extents), ErrRankMismatch)
	}
	off := 0
	for m, v := range local.Values() {
		if v >= extents[m] {
			return 0, fmt.Errorf("tensor.RowMajorOffset%s: mode %d extent %d: %w",
				local, m, extents[m], ErrOutOfRange)
		}
		off = off*extents[m] + v
	}

	return off, nil
}

// ColumnMajorOffset is the alternative OffsetFunc: first mode varies fastest.
// Complexity: O(r).
func ColumnMajorOffset(local index.Index, extents []int) (int, error) {
	if local.Rank() != len(extents) {
		return 0, fmt.Errorf("tensor.ColumnMajorOffset%s: rank %d != %d: %w",
			local, local.Rank(), len(extents), ErrRankMismatch)
	}
	vals := local.Values()
	off := 0
	for m := len(vals) - 1; m >= 0; m-- {
		if vals[m] >= extents[m] {
			return 0, fmt.Errorf("tensor.ColumnMajorOffset%s: mode %d extent %d: %w",
				local, m, extents[m], ErrOutOfRange)
		}
		off = off*extents[m] + vals[m]
	}

	return off, nil
}

// volume returns Π extents (1 for rank 0).
func volume(extents []int) int {
	n := 1
	for _, e := range extents {
		n *= e
	}

	return n
}

// checkFinite rejects NaN and ±Inf.
func checkFinite(op string, coord index.Index, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s%s: %v: %w", op, coord, v, ErrNaNInf)
	}

	return nil
}
