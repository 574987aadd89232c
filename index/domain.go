// SPDX-License-Identifier: MIT
// Package index: Domain, the ordered set of equal-rank indices.
//
// Representation:
//   - members: sorted ascending by Index.Compare, no duplicates (flat set).
//   - modes:   per-mode sorted distinct coordinates seen in members; this is
//     the "mode map" that defines the inner-tile geometry (ResultExtents,
//     ResultIndex).
//
// Every mutation rebuilds the touched slices instead of writing in place,
// so a copied Domain value never observes later inserts into another copy.

package index

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Domain is a deduplicated set of indices sharing one rank.
// The zero value is an empty Domain with no established rank.
type Domain struct {
	rank    int     // rank of every member; meaningful only when len(members) > 0
	members []Index // sorted, unique
	modes   [][]int // modes[m] = sorted distinct coordinates of mode m
}

// NewDomain builds a Domain from the given members (duplicates collapse).
// Returns ErrRankMismatch if members disagree on rank.
// Complexity: O(n·r·log n), one sort instead of n inserts.
func NewDomain(members ...Index) (Domain, error) {
	if len(members) == 0 {
		return Domain{}, nil
	}
	rank := members[0].Rank()
	for _, idx := range members[1:] {
		if idx.Rank() != rank {
			return Domain{}, fmt.Errorf("NewDomain%s: rank %d != domain rank %d: %w",
				idx, idx.Rank(), rank, ErrRankMismatch)
		}
	}
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, Index.Compare)
	sorted = slices.Clip(slices.CompactFunc(sorted, Index.Equal))

	return fromSorted(rank, sorted), nil
}

// MustDomain is NewDomain that panics on error; for literals.
func MustDomain(members ...Index) Domain {
	d, err := NewDomain(members...)
	if err != nil {
		panic(err.Error())
	}

	return d
}

// Rank returns the rank of the members, or 0 for an empty Domain.
// A return of 0 therefore does not imply the Domain holds the scalar index.
// Complexity: O(1).
func (d Domain) Rank() int {
	if len(d.members) == 0 {
		return 0
	}

	return d.rank
}

// Len returns the number of indices in the Domain (its cardinality).
// Complexity: O(1).
func (d Domain) Len() int {
	return len(d.members)
}

// Empty reports whether the Domain has no members.
func (d Domain) Empty() bool {
	return len(d.members) == 0
}

// search returns the insertion position of idx and whether it is present.
func (d Domain) search(idx Index) (int, bool) {
	pos := sort.Search(len(d.members), func(k int) bool {
		return d.members[k].Compare(idx) >= 0
	})

	return pos, pos < len(d.members) && d.members[pos].Equal(idx)
}

// Contains reports whether idx is a member.
// Complexity: O(r log n).
func (d Domain) Contains(idx Index) bool {
	_, ok := d.search(idx)

	return ok
}

// Insert adds idx to the Domain; a no-op if already present.
// Stage 1 (Validate): rank must match when the Domain is non-empty.
// Stage 2 (Execute): copy-on-write insertion into members and mode map.
// Returns ErrRankMismatch on rank disagreement; the Domain is unchanged.
// Complexity: O(n + r·k) where k is the largest per-mode value count.
func (d *Domain) Insert(idx Index) error {
	if len(d.members) > 0 && idx.Rank() != d.rank {
		return fmt.Errorf("Domain.Insert%s: rank %d != domain rank %d: %w",
			idx, idx.Rank(), d.rank, ErrRankMismatch)
	}
	pos, ok := d.search(idx)
	if ok {
		return nil
	}

	// Members: Clip forces a fresh backing array.
	d.members = slices.Insert(slices.Clip(d.members), pos, idx)

	// Mode map: fresh outer slice, fresh inner slice for every changed mode.
	if len(d.members) == 1 {
		d.rank = idx.Rank()
		d.modes = make([][]int, d.rank)
	} else {
		d.modes = slices.Clone(d.modes)
	}
	for m, v := range idx.vals {
		vpos, found := slices.BinarySearch(d.modes[m], v)
		if found {
			continue
		}
		d.modes[m] = slices.Insert(slices.Clip(d.modes[m]), vpos, v)
	}

	return nil
}

// At returns the i-th member in sorted order.
// Returns ErrOutOfRange if i is not in [0, Len()).
// Complexity: O(1).
func (d Domain) At(i int) (Index, error) {
	if i < 0 || i >= len(d.members) {
		return Index{}, fmt.Errorf("Domain.At(%d) size=%d: %w", i, len(d.members), ErrOutOfRange)
	}

	return d.members[i], nil
}

// All iterates the members in sorted order.
func (d Domain) All() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for _, idx := range d.members {
			if !yield(idx) {
				return
			}
		}
	}
}

// Members returns the members in sorted order as a fresh slice.
// Complexity: O(n).
func (d Domain) Members() []Index {
	return slices.Clone(d.members)
}

// Clone returns an independent copy. Because Insert is copy-on-write a plain
// assignment is already safe; Clone additionally drops shared capacity.
// Complexity: O(n + r·k).
func (d Domain) Clone() Domain {
	out := Domain{rank: d.rank, members: slices.Clone(d.members)}
	if d.modes != nil {
		out.modes = make([][]int, len(d.modes))
		for m := range d.modes {
			out.modes[m] = slices.Clone(d.modes[m])
		}
	}

	return out
}

// Equal reports whether both Domains hold the same set of indices.
// Complexity: O(n·r).
func (d Domain) Equal(o Domain) bool {
	if len(d.members) != len(o.members) {
		return false
	}
	for k := range d.members {
		if !d.members[k].Equal(o.members[k]) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer: "{(0, 0), (0, 1)}".
func (d Domain) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for k, idx := range d.members {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteString(idx.String())
	}
	b.WriteByte('}')

	return b.String()
}
