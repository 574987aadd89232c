// SPDX-License-Identifier: MIT

package sparsemap

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/katalvlaran/sparsetot/index"
)

// Entry is one (independent index, dependent Domain) pair.
type Entry struct {
	Ind index.Index  // independent index
	Dep index.Domain // dependent indices coupled to Ind
}

// entry is the stored form; kept sorted by ind.
type entry struct {
	ind index.Index
	dom index.Domain
}

// SparseMap maps independent indices to non-empty Domains of dependent indices.
// The zero value is an empty, unranked map ready for use.
type SparseMap struct {
	indRank int     // rank of every independent index (valid when ranked)
	depRank int     // rank of every dependent index (valid when ranked)
	ranked  bool    // ranks fixed by first insertion or NewWithRanks
	entries []entry // sorted ascending by ind, unique, each dom non-empty
}

// New returns an empty SparseMap whose ranks are fixed by the first insertion.
func New() *SparseMap {
	return &SparseMap{}
}

// NewWithRanks returns an empty SparseMap with both ranks fixed up front.
// Panics on negative ranks (programmer error).
func NewWithRanks(indRank, depRank int) *SparseMap {
	if indRank < 0 || depRank < 0 {
		panic("sparsemap: NewWithRanks: ranks must be non-negative")
	}

	return &SparseMap{indRank: indRank, depRank: depRank, ranked: true}
}

// FromEntries builds a SparseMap from entries. Entries with an empty Domain
// are dropped; repeated independent indices merge their Domains.
// Returns ErrRankMismatch on inconsistent ranks.
// Complexity: O(Σ|D|·(n + |D|)).
func FromEntries(entries ...Entry) (*SparseMap, error) {
	sm := New()
	for _, e := range entries {
		for dep := range e.Dep.All() {
			if err := sm.AddToDomain(e.Ind, dep); err != nil {
				return nil, err
			}
		}
	}

	return sm, nil
}

// MustFromEntries is FromEntries that panics on error; for literals.
func MustFromEntries(entries ...Entry) *SparseMap {
	sm, err := FromEntries(entries...)
	if err != nil {
		panic(err.Error())
	}

	return sm
}

// search returns the position of ind in entries and whether it is present.
func (s *SparseMap) search(ind index.Index) (int, bool) {
	pos := sort.Search(len(s.entries), func(k int) bool {
		return s.entries[k].ind.Compare(ind) >= 0
	})

	return pos, pos < len(s.entries) && s.entries[pos].ind.Equal(ind)
}

// checkRanks validates (ind, dep) against the map's fixed ranks.
func (s *SparseMap) checkRanks(op string, ind, dep index.Index) error {
	if !s.ranked {
		return nil
	}
	if ind.Rank() != s.indRank {
		return fmt.Errorf("SparseMap.%s: independent %s rank %d != %d: %w",
			op, ind, ind.Rank(), s.indRank, ErrRankMismatch)
	}
	if dep.Rank() != s.depRank {
		return fmt.Errorf("SparseMap.%s: dependent %s rank %d != %d: %w",
			op, dep, dep.Rank(), s.depRank, ErrRankMismatch)
	}

	return nil
}

// AddToDomain inserts dep into the Domain of ind, creating the entry if ind
// is new. The first call on an unranked map fixes both ranks.
// Stage 1 (Validate): ranks of ind and dep against IndRank/DepRank.
// Stage 2 (Execute): sorted insertion of the entry or of dep into its Domain.
// Returns ErrRankMismatch without modifying the map.
// Complexity: O(n + |D|) for the sorted insertions.
func (s *SparseMap) AddToDomain(ind, dep index.Index) error {
	if err := s.checkRanks("AddToDomain", ind, dep); err != nil {
		return err
	}
	if !s.ranked {
		s.indRank, s.depRank, s.ranked = ind.Rank(), dep.Rank(), true
	}

	pos, ok := s.search(ind)
	if ok {
		// Ranks already validated, so Insert cannot fail here.
		return s.entries[pos].dom.Insert(dep)
	}
	dom := index.MustDomain(dep)
	s.entries = slices.Insert(s.entries, pos, entry{ind: ind, dom: dom})

	return nil
}

// At returns the Domain of ind.
// Returns ErrRankMismatch if ind's rank differs from IndRank() on a ranked
// map, ErrNotFound if ind is absent.
// The returned Domain is a value; inserting into it never changes the map.
// Complexity: O(r log n).
func (s *SparseMap) At(ind index.Index) (index.Domain, error) {
	if s.ranked && ind.Rank() != s.indRank {
		return index.Domain{}, fmt.Errorf("SparseMap.At%s: rank %d != %d: %w",
			ind, ind.Rank(), s.indRank, ErrRankMismatch)
	}
	pos, ok := s.search(ind)
	if !ok {
		return index.Domain{}, fmt.Errorf("SparseMap.At%s: %w", ind, ErrNotFound)
	}

	return s.entries[pos].dom, nil
}

// Contains reports whether ind has an entry.
// Complexity: O(r log n).
func (s *SparseMap) Contains(ind index.Index) bool {
	_, ok := s.search(ind)

	return ok
}

// Len returns the number of independent indices.
func (s *SparseMap) Len() int {
	return len(s.entries)
}

// Empty reports whether the map holds zero independent-index entries.
func (s *SparseMap) Empty() bool {
	return len(s.entries) == 0
}

// IndRank returns the independent rank, 0 for an unranked map.
func (s *SparseMap) IndRank() int {
	return s.indRank
}

// DepRank returns the dependent rank, 0 for an unranked map.
func (s *SparseMap) DepRank() int {
	return s.depRank
}

// Ranked reports whether the ranks have been fixed.
func (s *SparseMap) Ranked() bool {
	return s.ranked
}

// Entry returns the i-th entry in independent-index order.
// Returns index.ErrOutOfRange if i is not in [0, Len()).
func (s *SparseMap) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, fmt.Errorf("SparseMap.Entry(%d) size=%d: %w", i, len(s.entries), index.ErrOutOfRange)
	}

	return Entry{Ind: s.entries[i].ind, Dep: s.entries[i].dom}, nil
}

// All iterates (independent index, Domain) pairs in independent-index order.
// The order is identical across repeated iterations of the same map.
func (s *SparseMap) All() iter.Seq2[index.Index, index.Domain] {
	return func(yield func(index.Index, index.Domain) bool) {
		for _, e := range s.entries {
			if !yield(e.ind, e.dom) {
				return
			}
		}
	}
}

// Keys returns the independent indices in order as a fresh slice.
func (s *SparseMap) Keys() []index.Index {
	out := make([]index.Index, len(s.entries))
	for k, e := range s.entries {
		out[k] = e.ind
	}

	return out
}

// Clone returns an independent copy.
// Complexity: O(n) (Domains are copy-on-write values).
func (s *SparseMap) Clone() *SparseMap {
	out := *s
	out.entries = slices.Clone(s.entries)

	return &out
}

// Equal reports whether both maps hold the same (ind, Domain) pairs.
// Ranks of empty maps are not compared.
func (s *SparseMap) Equal(o *SparseMap) bool {
	if len(s.entries) != len(o.entries) {
		return false
	}
	for k := range s.entries {
		if !s.entries[k].ind.Equal(o.entries[k].ind) || !s.entries[k].dom.Equal(o.entries[k].dom) {
			return false
		}
	}

	return true
}

// Hash returns a content fingerprint; Equal maps hash equally.
// Complexity: O(Σ|D|·r).
func (s *SparseMap) Hash() uint64 {
	h := xxhash.New()
	for _, e := range s.entries {
		e.ind.HashInto(h)
		e.dom.HashInto(h)
	}

	return h.Sum64()
}

// String implements fmt.Stringer: "{(0) : {(0), (1)}, (1) : {(1)}}".
func (s *SparseMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for k, e := range s.entries {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.ind.String())
		b.WriteString(" : ")
		b.WriteString(e.dom.String())
	}
	b.WriteByte('}')

	return b.String()
}

// FromCoordinates builds a SparseMap from combined coordinates by splitting
// each into (first indRank modes, remaining modes). Typically fed with the
// stored coordinates of a sparse tensor.
// Returns ErrRankMismatch if a coordinate has fewer than indRank modes or
// coordinates disagree on rank.
// Complexity: O(N·r·log N).
func FromCoordinates(coords iter.Seq[index.Index], indRank int) (*SparseMap, error) {
	if indRank < 0 {
		return nil, fmt.Errorf("sparsemap.FromCoordinates: indRank %d: %w", indRank, index.ErrOutOfRange)
	}
	var pairs []pair
	rank := -1
	for c := range coords {
		if rank < 0 {
			rank = c.Rank()
		}
		if c.Rank() < indRank || c.Rank() != rank {
			return nil, fmt.Errorf("sparsemap.FromCoordinates: %s against indRank %d, rank %d: %w",
				c, indRank, rank, ErrRankMismatch)
		}
		vals := c.Values()
		pairs = append(pairs, pair{ind: index.Of(vals[:indRank]...), dep: index.Of(vals[indRank:]...)})
	}
	if len(pairs) == 0 {
		return New(), nil
	}

	return fromPairs(indRank, rank-indRank, pairs)
}

// pair is one (ind, dep) coupling awaiting bulk construction.
type pair struct {
	ind, dep index.Index
}

// fromPairs groups pairs by independent index and builds each Domain with a
// single sort. Reorders pairs.
// Complexity: O(N·r·log N).
func fromPairs(indRank, depRank int, pairs []pair) (*SparseMap, error) {
	out := NewWithRanks(indRank, depRank)
	slices.SortFunc(pairs, func(a, b pair) int { return a.ind.Compare(b.ind) })
	for lo := 0; lo < len(pairs); {
		hi := lo + 1
		for hi < len(pairs) && pairs[hi].ind.Equal(pairs[lo].ind) {
			hi++
		}
		deps := make([]index.Index, hi-lo)
		for k := range deps {
			deps[k] = pairs[lo+k].dep
		}
		dom, err := index.NewDomain(deps...)
		if err != nil {
			return nil, err
		}
		out.entries = append(out.entries, entry{ind: pairs[lo].ind, dom: dom})
		lo = hi
	}

	return out, nil
}
