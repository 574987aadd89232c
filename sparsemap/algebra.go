// SPDX-License-Identifier: MIT
// Package sparsemap: pure algebra over SparseMaps.
//
// Every operation validates ranks first and only then builds a fresh result,
// so a failed call leaves no partial state anywhere.

package sparsemap

import (
	"fmt"

	"github.com/katalvlaran/sparsetot/index"
)

// bothRanked reports whether the rank comparison between s and o is meaningful.
func bothRanked(s, o *SparseMap) bool {
	return s.ranked && o.ranked && !s.Empty() && !o.Empty()
}

// withRanks returns an empty result, ranked only when the inputs were.
func withRanks(indRank, depRank int, ranked bool) *SparseMap {
	if !ranked {
		return New()
	}

	return NewWithRanks(indRank, depRank)
}

// Compose returns the relational composition of s (L→M) with other (M→N):
// for every l, the union over m in s[l] of other[m]. Independent indices
// whose composed Domain is empty are absent from the result.
// Returns ErrDomainMismatch if s.DepRank() != other.IndRank() when both maps
// have fixed ranks.
// Complexity: O(Σ_l Σ_{m∈s[l]} (log n' + |other[m]|)).
func (s *SparseMap) Compose(other *SparseMap) (*SparseMap, error) {
	if s.ranked && other.ranked && s.depRank != other.indRank {
		return nil, fmt.Errorf("SparseMap.Compose: dep rank %d != other ind rank %d: %w",
			s.depRank, other.indRank, ErrDomainMismatch)
	}
	out := withRanks(s.indRank, other.depRank, s.ranked && other.ranked)

	for _, e := range s.entries {
		var acc index.Domain
		for m := range e.dom.All() {
			pos, ok := other.search(m)
			if !ok {
				continue // m is sparsified away in other
			}
			u, err := acc.Union(other.entries[pos].dom)
			if err != nil {
				return nil, err
			}
			acc = u
		}
		if acc.Empty() {
			continue
		}
		// s.entries is sorted, so appending keeps out sorted.
		out.entries = append(out.entries, entry{ind: e.ind, dom: acc})
	}
	fixRanks(out)

	return out, nil
}

// fixRanks marks a result built by direct appends as ranked from its content.
func fixRanks(out *SparseMap) {
	if out.ranked || len(out.entries) == 0 {
		return
	}
	out.indRank = out.entries[0].ind.Rank()
	out.depRank = out.entries[0].dom.Rank()
	out.ranked = true
}

// Inverse returns the map dep → {ind : dep ∈ s[ind]}.
// Inverse(Inverse(s)) equals s.
// Complexity: O(N·r·log N), N = Σ|D|.
func (s *SparseMap) Inverse() *SparseMap {
	if len(s.entries) == 0 {
		return withRanks(s.depRank, s.indRank, s.ranked)
	}
	var pairs []pair
	for _, e := range s.entries {
		for dep := range e.dom.All() {
			pairs = append(pairs, pair{ind: dep, dep: e.ind})
		}
	}
	// Ranks are consistent by construction; fromPairs cannot fail.
	out, _ := fromPairs(s.depRank, s.indRank, pairs)

	return out
}

// Union returns the map whose Domain for every independent index is the
// union of its Domains in s and o. An empty operand contributes nothing.
// Returns ErrRankMismatch if the maps disagree on either rank.
// Complexity: O((n+n')·|D|) merge.
func (s *SparseMap) Union(o *SparseMap) (*SparseMap, error) {
	switch {
	case o.Empty():
		return s.Clone(), nil
	case s.Empty():
		return o.Clone(), nil
	}
	if err := sameRanks("Union", s, o); err != nil {
		return nil, err
	}

	out := NewWithRanks(s.indRank, s.depRank)
	out.entries = make([]entry, 0, len(s.entries)+len(o.entries))
	i, j := 0, 0
	for i < len(s.entries) && j < len(o.entries) {
		a, b := s.entries[i], o.entries[j]
		switch c := a.ind.Compare(b.ind); {
		case c < 0:
			out.entries = append(out.entries, a)
			i++
		case c > 0:
			out.entries = append(out.entries, b)
			j++
		default:
			u, err := a.dom.Union(b.dom)
			if err != nil {
				return nil, err
			}
			out.entries = append(out.entries, entry{ind: a.ind, dom: u})
			i++
			j++
		}
	}
	out.entries = append(out.entries, s.entries[i:]...)
	out.entries = append(out.entries, o.entries[j:]...)

	return out, nil
}

// sameRanks validates that two non-empty maps share both ranks.
func sameRanks(op string, s, o *SparseMap) error {
	if !bothRanked(s, o) {
		return nil
	}
	if s.indRank != o.indRank || s.depRank != o.depRank {
		return fmt.Errorf("SparseMap.%s: ranks (%d,%d) vs (%d,%d): %w",
			op, s.indRank, s.depRank, o.indRank, o.depRank, ErrRankMismatch)
	}

	return nil
}

// Intersection returns the map holding, for independent indices present in
// both maps, the intersection of their Domains; empty intersections drop
// the key. Intersecting with an empty map yields an empty map.
// Returns ErrRankMismatch if the maps disagree on either rank.
// Complexity: O((n+n')·|D|).
func (s *SparseMap) Intersection(o *SparseMap) (*SparseMap, error) {
	if s.Empty() || o.Empty() {
		return withRanks(s.indRank, s.depRank, s.ranked), nil
	}
	if err := sameRanks("Intersection", s, o); err != nil {
		return nil, err
	}

	out := NewWithRanks(s.indRank, s.depRank)
	i, j := 0, 0
	for i < len(s.entries) && j < len(o.entries) {
		a, b := s.entries[i], o.entries[j]
		switch c := a.ind.Compare(b.ind); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			in, err := a.dom.Intersection(b.dom)
			if err != nil {
				return nil, err
			}
			if !in.Empty() {
				out.entries = append(out.entries, entry{ind: a.ind, dom: in})
			}
			i++
			j++
		}
	}

	return out, nil
}

// Product returns, for independent indices present in both maps, the
// Cartesian product of their Domains (dependent rank s.DepRank()+o.DepRank()).
// Returns ErrRankMismatch if the independent ranks differ.
// Complexity: O(Σ |D|·|D'|).
func (s *SparseMap) Product(o *SparseMap) (*SparseMap, error) {
	if s.Empty() || o.Empty() {
		return New(), nil
	}
	if s.indRank != o.indRank {
		return nil, fmt.Errorf("SparseMap.Product: ind ranks %d vs %d: %w", s.indRank, o.indRank, ErrRankMismatch)
	}

	out := NewWithRanks(s.indRank, s.depRank+o.depRank)
	for _, e := range s.entries {
		pos, ok := o.search(e.ind)
		if !ok {
			continue
		}
		p := e.dom.Product(o.entries[pos].dom)
		out.entries = append(out.entries, entry{ind: e.ind, dom: p})
	}

	return out, nil
}

// DirectProduct returns the map keyed by every concatenation (a, b) of an
// independent index a of s and b of o, whose Domain is s[a] × o[b].
// Ranks add on both sides. Either operand empty → empty result.
// Complexity: O(n·n'·|D|·|D'|).
func (s *SparseMap) DirectProduct(o *SparseMap) *SparseMap {
	if s.Empty() || o.Empty() {
		return New()
	}
	out := NewWithRanks(s.indRank+o.indRank, s.depRank+o.depRank)
	out.entries = make([]entry, 0, len(s.entries)*len(o.entries))
	for _, a := range s.entries {
		for _, b := range o.entries {
			// (a, b) order follows from both inputs being sorted.
			out.entries = append(out.entries, entry{
				ind: a.ind.Concat(b.ind),
				dom: a.dom.Product(b.dom),
			})
		}
	}

	return out
}

// MakePairMap builds a pair map from an index→dependent map lia (independent
// rank 1) and an index→index map lij: every (i, j) with j ∈ lij[i] maps to
// lia[i] ∪ lia[j].
// Returns ErrRankMismatch if lia's independent rank is not 1 or lij's ranks
// differ from it, ErrNotFound if i or j has no entry in lia.
// Complexity: O(Σ_{i,j} (|lia[i]| + |lia[j]|)).
func MakePairMap(lia, lij *SparseMap) (*SparseMap, error) {
	if lia.ranked && lia.indRank != 1 {
		return nil, fmt.Errorf("sparsemap.MakePairMap: lia ind rank %d != 1: %w", lia.indRank, ErrRankMismatch)
	}
	if lij.ranked && lia.ranked && (lij.indRank != lia.indRank || lij.depRank != lia.indRank) {
		return nil, fmt.Errorf("sparsemap.MakePairMap: lij ranks (%d,%d) vs lia ind rank %d: %w",
			lij.indRank, lij.depRank, lia.indRank, ErrRankMismatch)
	}

	out := New()
	for _, e := range lij.entries {
		di, err := lia.At(e.ind)
		if err != nil {
			return nil, fmt.Errorf("sparsemap.MakePairMap: i=%s: %w", e.ind, err)
		}
		for j := range e.dom.All() {
			dj, err := lia.At(j)
			if err != nil {
				return nil, fmt.Errorf("sparsemap.MakePairMap: j=%s: %w", j, err)
			}
			u, err := di.Union(dj)
			if err != nil {
				return nil, err
			}
			key := e.ind.Concat(j)
			for dep := range u.All() {
				if err := out.AddToDomain(key, dep); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}
