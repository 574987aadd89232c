// SPDX-License-Identifier: MIT

// Package tensor - Dense storage (row-major) & block views.
//
// Purpose:
//   - Provide an N-mode row-major buffer with the explicit offset formula
//     Σ coord[m]·stride[m], last mode fastest.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose the dependent block of one independent index as a no-copy Tile
//     (Block), which is contiguous because independent modes lead.
//
// Complexity quicksheet:
//   - NewDense: O(Π shape) zero-init; At/Set: O(r); Block: O(Π dep shape) for the Domain.

package tensor

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/katalvlaran/sparsetot/index"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxBlock = "Block" // method tag used in error wrappers
)

// denseErrorf wraps an error with a uniform Dense context and the coordinate.
func denseErrorf(method string, coord index.Index, err error) error {
	return fmt.Errorf("Dense.%s%s: %w", method, coord, err)
}

// Dense is a concrete row-major tensor.
//   - shape holds the extent of every mode, independent modes first.
//   - data is a flat buffer of length Π shape.
type Dense struct {
	indRank int       // leading modes that are independent
	shape   []int     // extent per mode (> 0)
	strides []int     // row-major strides, strides[last] == 1
	data    []float64 // contiguous row-major storage
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ BlockSource  = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates a zero tensor with the given shape whose first indRank
// modes are independent.
// Stage 1 (Validate): 0 <= indRank <= len(shape), every extent > 0.
// Stage 2 (Prepare): derive strides and allocate the flat buffer.
// Returns ErrShape on invalid input.
// Complexity: O(Π shape) time and memory.
func NewDense(indRank int, shape ...int) (*Dense, error) {
	if indRank < 0 || indRank > len(shape) {
		return nil, fmt.Errorf("tensor.NewDense: indRank %d for rank %d: %w", indRank, len(shape), ErrShape)
	}
	for m, e := range shape {
		if e <= 0 {
			return nil, fmt.Errorf("tensor.NewDense: mode %d extent %d: %w", m, e, ErrShape)
		}
	}
	strides := make([]int, len(shape))
	step := 1
	for m := len(shape) - 1; m >= 0; m-- {
		strides[m] = step
		step *= shape[m]
	}

	return &Dense{
		indRank: indRank,
		shape:   slices.Clone(shape),
		strides: strides,
		data:    make([]float64, step),
	}, nil
}

// IndRank returns the number of independent modes.
func (d *Dense) IndRank() int { return d.indRank }

// DepRank returns the number of dependent modes.
func (d *Dense) DepRank() int { return len(d.shape) - d.indRank }

// Rank returns the total number of modes.
func (d *Dense) Rank() int { return len(d.shape) }

// Shape returns a copy of the extents.
func (d *Dense) Shape() []int { return slices.Clone(d.shape) }

// offsetOf computes the flat position of coord.
// Stage 1 (Validate): rank, then 0 <= coord[m] < shape[m].
// Stage 2 (Execute): accumulate coord[m]·strides[m].
func (d *Dense) offsetOf(method string, coord index.Index) (int, error) {
	if coord.Rank() != len(d.shape) {
		return 0, denseErrorf(method, coord, ErrRankMismatch)
	}
	off := 0
	for m, v := range coord.Values() {
		if v >= d.shape[m] {
			return 0, denseErrorf(method, coord, ErrOutOfRange)
		}
		off += v * d.strides[m]
	}

	return off, nil
}

// At retrieves the element at coord.
// Returns ErrRankMismatch or ErrOutOfRange.
// Complexity: O(r).
func (d *Dense) At(coord index.Index) (float64, error) {
	off, err := d.offsetOf(ctxAt, coord)
	if err != nil {
		return 0, err
	}

	return d.data[off], nil
}

// Set assigns v at coord.
// Returns ErrRankMismatch, ErrOutOfRange or ErrNaNInf.
// Complexity: O(r).
func (d *Dense) Set(coord index.Index, v float64) error {
	if err := checkFinite("Dense."+ctxSet, coord, v); err != nil {
		return err
	}
	off, err := d.offsetOf(ctxSet, coord)
	if err != nil {
		return err
	}
	d.data[off] = v

	return nil
}

// Coordinates iterates the non-zero coordinates in row-major order, which
// is index order for a fixed rank.
func (d *Dense) Coordinates() iter.Seq[index.Index] {
	return func(yield func(index.Index) bool) {
		cur := make([]int, len(d.shape))
		for _, v := range d.data {
			if v != 0 && !yield(index.Of(cur...)) {
				return
			}
			for m := len(cur) - 1; m >= 0; m-- {
				cur[m]++
				if cur[m] < d.shape[m] {
					break
				}
				cur[m] = 0
			}
		}
	}
}

// Block returns a view Tile over the dependent block of ind. The Tile's
// Domain is the full dependent box and its storage is a window of d:
// writes through either are visible in both.
// Returns false when ind has the wrong rank or lies outside the tensor.
// Complexity: O(Π dep shape) to materialize the box Domain.
func (d *Dense) Block(ind index.Index) (*Tile, bool) {
	if ind.Rank() != d.indRank {
		return nil, false
	}
	coord := ind.Concat(index.Of(make([]int, d.DepRank())...))
	off, err := d.offsetOf(ctxBlock, coord)
	if err != nil {
		return nil, false
	}
	depShape := slices.Clone(d.shape[d.indRank:])
	size := volume(depShape)

	// Full slice expression caps the window so appends can never spill over.
	return newView(depShape, d.data[off:off+size:off+size]), true
}

// Clone returns a deep copy.
// Complexity: O(Π shape).
func (d *Dense) Clone() *Dense {
	return &Dense{
		indRank: d.indRank,
		shape:   slices.Clone(d.shape),
		strides: slices.Clone(d.strides),
		data:    slices.Clone(d.data),
	}
}

// String implements fmt.Stringer: shape header then the flat data.
func (d *Dense) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dense%v/%d[", d.shape, d.indRank)
	for k, v := range d.data {
		if k > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", v)
	}
	b.WriteByte(']')

	return b.String()
}
