// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/katalvlaran/sparsetot/index"
)

// Element is one stored (coordinate, value) pair.
type Element struct {
	Coord index.Index
	Value float64
}

// Sparse is a coordinate-format tensor holding only non-zero elements.
// Coordinates are kept sorted, so Coordinates and All are deterministic.
// Reads are safe for concurrent use; Set is not.
type Sparse struct {
	indRank, depRank int
	coords           []index.Index // sorted ascending, unique
	vals             []float64     // vals[k] belongs to coords[k], never 0
}

var _ Source = (*Sparse)(nil)

// NewSparse returns an empty sparse tensor with the given rank split.
// Returns ErrShape for negative ranks.
func NewSparse(indRank, depRank int) (*Sparse, error) {
	if indRank < 0 || depRank < 0 {
		return nil, fmt.Errorf("tensor.NewSparse(%d,%d): %w", indRank, depRank, ErrShape)
	}

	return &Sparse{indRank: indRank, depRank: depRank}, nil
}

// FromElements builds a sparse tensor from elements. Zero values are not
// stored. Returns ErrShape, ErrRankMismatch, ErrNaNInf, or ErrDuplicate
// when a coordinate appears twice.
// Complexity: O(N log N).
func FromElements(indRank, depRank int, elems ...Element) (*Sparse, error) {
	s, err := NewSparse(indRank, depRank)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(elems)
	slices.SortStableFunc(sorted, func(a, b Element) int { return a.Coord.Compare(b.Coord) })
	for k, e := range sorted {
		if err := s.check("FromElements", e.Coord); err != nil {
			return nil, err
		}
		if err := checkFinite("tensor.FromElements", e.Coord, e.Value); err != nil {
			return nil, err
		}
		if k > 0 && sorted[k-1].Coord.Equal(e.Coord) {
			return nil, fmt.Errorf("tensor.FromElements%s: %w", e.Coord, ErrDuplicate)
		}
		if e.Value == 0 {
			continue
		}
		s.coords = append(s.coords, e.Coord)
		s.vals = append(s.vals, e.Value)
	}

	return s, nil
}

// IndRank returns the number of independent modes.
func (s *Sparse) IndRank() int { return s.indRank }

// DepRank returns the number of dependent modes.
func (s *Sparse) DepRank() int { return s.depRank }

// Rank returns IndRank()+DepRank().
func (s *Sparse) Rank() int { return s.indRank + s.depRank }

// Len returns the number of stored elements.
func (s *Sparse) Len() int { return len(s.coords) }

func (s *Sparse) check(op string, coord index.Index) error {
	if coord.Rank() != s.Rank() {
		return fmt.Errorf("Sparse.%s%s: rank %d != %d: %w", op, coord, coord.Rank(), s.Rank(), ErrRankMismatch)
	}

	return nil
}

func (s *Sparse) search(coord index.Index) (int, bool) {
	pos := sort.Search(len(s.coords), func(k int) bool {
		return s.coords[k].Compare(coord) >= 0
	})

	return pos, pos < len(s.coords) && s.coords[pos].Equal(coord)
}

// At returns the element at coord, 0 when not stored.
// Returns ErrRankMismatch on rank disagreement.
// Complexity: O(r log N).
func (s *Sparse) At(coord index.Index) (float64, error) {
	if err := s.check("At", coord); err != nil {
		return 0, err
	}
	if pos, ok := s.search(coord); ok {
		return s.vals[pos], nil
	}

	return 0, nil
}

// Set stores v at coord; setting 0 removes the element.
// Returns ErrRankMismatch or ErrNaNInf without modifying the tensor.
// Complexity: O(N) for the sorted insertion.
func (s *Sparse) Set(coord index.Index, v float64) error {
	if err := s.check("Set", coord); err != nil {
		return err
	}
	if err := checkFinite("Sparse.Set", coord, v); err != nil {
		return err
	}
	pos, ok := s.search(coord)
	switch {
	case ok && v == 0:
		s.coords = slices.Delete(s.coords, pos, pos+1)
		s.vals = slices.Delete(s.vals, pos, pos+1)
	case ok:
		s.vals[pos] = v
	case v != 0:
		s.coords = slices.Insert(s.coords, pos, coord)
		s.vals = slices.Insert(s.vals, pos, v)
	}

	return nil
}

// Coordinates iterates the stored coordinates in index order.
func (s *Sparse) Coordinates() iter.Seq[index.Index] {
	return slices.Values(s.coords)
}

// All iterates stored (coordinate, value) pairs in index order.
func (s *Sparse) All() iter.Seq2[index.Index, float64] {
	return func(yield func(index.Index, float64) bool) {
		for k, c := range s.coords {
			if !yield(c, s.vals[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (s *Sparse) Clone() *Sparse {
	return &Sparse{
		indRank: s.indRank,
		depRank: s.depRank,
		coords:  slices.Clone(s.coords),
		vals:    slices.Clone(s.vals),
	}
}
