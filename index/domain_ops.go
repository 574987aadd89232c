// SPDX-License-Identifier: MIT
// Package index: set algebra and inner-tile geometry on Domain.
//
// All operations here are pure: receivers and arguments are never modified
// and the returned Domain owns fresh storage.

package index

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// fromSorted builds a Domain from members already sorted and unique.
// It adopts members and derives the mode map.
// Complexity: O(n·r·log n).
func fromSorted(rank int, members []Index) Domain {
	if len(members) == 0 {
		return Domain{}
	}
	modes := make([][]int, rank)
	for m := range modes {
		vals := make([]int, len(members))
		for k, idx := range members {
			vals[k] = idx.vals[m]
		}
		// Mode 0 is already ascending in a sorted member list.
		if m > 0 {
			slices.Sort(vals)
		}
		modes[m] = slices.Clip(slices.Compact(vals))
	}

	return Domain{rank: rank, members: members, modes: modes}
}

// Union returns the Domain holding every index present in d or o.
// An empty operand contributes nothing and imposes no rank.
// Returns ErrRankMismatch if both are non-empty with different ranks.
// Complexity: O((n+m)·r) merge of two sorted sequences.
func (d Domain) Union(o Domain) (Domain, error) {
	switch {
	case o.Empty():
		return d.Clone(), nil
	case d.Empty():
		return o.Clone(), nil
	case d.rank != o.rank:
		return Domain{}, fmt.Errorf("Domain.Union: rank %d vs %d: %w", d.rank, o.rank, ErrRankMismatch)
	}

	out := make([]Index, 0, len(d.members)+len(o.members))
	i, j := 0, 0
	for i < len(d.members) && j < len(o.members) {
		switch c := d.members[i].Compare(o.members[j]); {
		case c < 0:
			out = append(out, d.members[i])
			i++
		case c > 0:
			out = append(out, o.members[j])
			j++
		default: // present in both; keep one
			out = append(out, d.members[i])
			i++
			j++
		}
	}
	out = append(out, d.members[i:]...)
	out = append(out, o.members[j:]...)

	return fromSorted(d.rank, out), nil
}

// Intersection returns the Domain holding every index present in both d and o.
// The intersection with an empty Domain is empty.
// Returns ErrRankMismatch if both are non-empty with different ranks.
// Complexity: O((n+m)·r).
func (d Domain) Intersection(o Domain) (Domain, error) {
	if d.Empty() || o.Empty() {
		return Domain{}, nil
	}
	if d.rank != o.rank {
		return Domain{}, fmt.Errorf("Domain.Intersection: rank %d vs %d: %w", d.rank, o.rank, ErrRankMismatch)
	}

	var out []Index
	i, j := 0, 0
	for i < len(d.members) && j < len(o.members) {
		switch c := d.members[i].Compare(o.members[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, d.members[i])
			i++
			j++
		}
	}

	return fromSorted(d.rank, out), nil
}

// Product returns the Cartesian product of d and o: every concatenation
// (a, b) with a in d and b in o, of rank d.Rank()+o.Rank().
// The product with an empty Domain is empty.
// Complexity: O(n·m·(rd+ro)).
func (d Domain) Product(o Domain) Domain {
	if d.Empty() || o.Empty() {
		return Domain{}
	}
	out := make([]Index, 0, len(d.members)*len(o.members))
	for _, a := range d.members {
		for _, b := range o.members {
			// Lexicographic order of (a, b) follows from both inputs being sorted.
			out = append(out, a.Concat(b))
		}
	}

	return fromSorted(d.rank+o.rank, out)
}

// Inject returns a Domain whose members are d's members with extra modes
// pinned: injections[mode] = value is inserted as that mode of the result.
// The result rank is Rank()+len(injections); every injected mode must be in
// [0, result rank) or ErrOutOfRange is returned. Negative values yield
// ErrNegativeValue. Injecting into an empty Domain returns an empty Domain.
// Complexity: O(n·(r+j)).
func (d Domain) Inject(injections map[int]int) (Domain, error) {
	if d.Empty() {
		return Domain{}, nil
	}
	outRank := d.rank + len(injections)
	for mode, v := range injections {
		if mode < 0 || mode >= outRank {
			return Domain{}, fmt.Errorf("Domain.Inject: mode %d not in [0, %d): %w", mode, outRank, ErrOutOfRange)
		}
		if v < 0 {
			return Domain{}, fmt.Errorf("Domain.Inject: mode %d value %d: %w", mode, v, ErrNegativeValue)
		}
	}

	var out Domain
	for _, idx := range d.members {
		vals := make([]int, outRank)
		for m, k := 0, 0; m < outRank; m++ {
			if v, ok := injections[m]; ok {
				vals[m] = v
				continue
			}
			vals[m] = idx.vals[k]
			k++
		}
		// Order can change when injected modes precede free ones; Insert re-sorts.
		if err := out.Insert(wrap(vals)); err != nil {
			return Domain{}, err
		}
	}

	return out, nil
}

// ResultExtents returns, per mode, the number of distinct coordinates the
// members take: the minimal bounding shape of the dense inner tile formed
// from this Domain. Empty Domain → nil.
// Complexity: O(r).
func (d Domain) ResultExtents() []int {
	if d.Empty() {
		return nil
	}
	out := make([]int, d.rank)
	for m := range d.modes {
		out[m] = len(d.modes[m])
	}

	return out
}

// ResultIndex maps an index of the original coordinate space to its locally
// zero-based coordinate in the inner tile: mode m's value becomes its rank
// among the distinct mode-m values of the Domain.
// Returns ErrRankMismatch on rank disagreement, ErrNotInDomain if any mode
// value is not taken by some member (including the empty Domain case).
// Complexity: O(r log k).
func (d Domain) ResultIndex(old Index) (Index, error) {
	if d.Empty() {
		return Index{}, fmt.Errorf("Domain.ResultIndex%s: empty domain: %w", old, ErrNotInDomain)
	}
	if old.Rank() != d.rank {
		return Index{}, fmt.Errorf("Domain.ResultIndex%s: rank %d != %d: %w", old, old.Rank(), d.rank, ErrRankMismatch)
	}
	out := make([]int, d.rank)
	for m, v := range old.vals {
		pos, found := slices.BinarySearch(d.modes[m], v)
		if !found {
			return Index{}, fmt.Errorf("Domain.ResultIndex%s: mode %d: %w", old, m, ErrNotInDomain)
		}
		out[m] = pos
	}

	return wrap(out), nil
}

// Box returns the Domain of every index in [0, extents) in row-major order,
// i.e. the members of a fully dense block. A zero-length extents yields the
// Domain holding only the scalar index. Any non-positive extent yields an
// empty Domain.
// Complexity: O(Π extents · r).
func Box(extents ...int) Domain {
	size := 1
	for _, e := range extents {
		if e <= 0 {
			return Domain{}
		}
		size *= e
	}
	members := make([]Index, 0, size)
	cur := make([]int, len(extents))
	for k := 0; k < size; k++ {
		members = append(members, wrap(slices.Clone(cur)))
		for m := len(cur) - 1; m >= 0; m-- {
			cur[m]++
			if cur[m] < extents[m] {
				break
			}
			cur[m] = 0
		}
	}

	return fromSorted(len(extents), members)
}

// CoversBox reports whether d holds every index of [0, extents) and nothing
// else, the condition under which an inner tile can share a dense block.
// Complexity: O(r).
func (d Domain) CoversBox(extents []int) bool {
	if d.Empty() || d.rank != len(extents) {
		return false
	}
	size := 1
	for m, e := range extents {
		vals := d.modes[m]
		if len(vals) != e || vals[len(vals)-1] != e-1 {
			return false
		}
		size *= e
	}

	return len(d.members) == size
}

// Hash returns a 64-bit content fingerprint. Equal Domains hash equally.
// Complexity: O(n·r).
func (d Domain) Hash() uint64 {
	h := xxhash.New()
	hashDomain(h, d)

	return h.Sum64()
}

// HashInto feeds the Domain's content into an existing digest; used by
// containers that fingerprint many Domains.
func (d Domain) HashInto(h *xxhash.Digest) {
	hashDomain(h, d)
}

func hashDomain(h *xxhash.Digest, d Domain) {
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:]) // Digest.Write never fails
	}
	put(d.Rank())
	put(len(d.members))
	for _, idx := range d.members {
		for _, v := range idx.vals {
			put(v)
		}
	}
}

// HashInto feeds the index into an existing digest.
func (i Index) HashInto(h *xxhash.Digest) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(i.vals)))
	_, _ = h.Write(buf[:])
	for _, v := range i.vals {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
}
