// SPDX-License-Identifier: MIT

package tensor

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/katalvlaran/sparsetot/index"
)

// ToT is a tensor of tensors: an ordered container of inner tiles keyed by
// independent index. Independent indices without a tile are absent, never
// represented by an empty tile.
//
// All methods are safe for concurrent use; mu guards keys and tiles.
type ToT struct {
	mu      sync.RWMutex
	indRank int           // fixed by NewToT or the first Insert
	ranked  bool          // whether indRank is fixed
	keys    []index.Index // sorted ascending, unique
	tiles   []*Tile       // tiles[k] belongs to keys[k]
}

var (
	_ Inserter       = (*ToT)(nil)
	_ json.Marshaler = (*ToT)(nil)
)

// NewToT returns an empty container whose independent rank is fixed by the
// first Insert.
func NewToT() *ToT {
	return &ToT{}
}

// NewToTWithRank returns an empty container with the independent rank fixed.
// Panics on a negative rank (programmer error).
func NewToTWithRank(indRank int) *ToT {
	if indRank < 0 {
		panic("tensor: NewToTWithRank: rank must be non-negative")
	}

	return &ToT{indRank: indRank, ranked: true}
}

func (c *ToT) search(ind index.Index) (int, bool) {
	pos := sort.Search(len(c.keys), func(k int) bool {
		return c.keys[k].Compare(ind) >= 0
	})

	return pos, pos < len(c.keys) && c.keys[pos].Equal(ind)
}

// Insert stores t as the inner tile of ind. The container takes t as is;
// callers must not mutate it afterwards.
// Returns ErrNilTile, ErrRankMismatch, or ErrDuplicate if ind already has a tile.
// Complexity: O(n) for the sorted insertion.
func (c *ToT) Insert(ind index.Index, t *Tile) error {
	if t == nil {
		return fmt.Errorf("ToT.Insert%s: %w", ind, ErrNilTile)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ranked && ind.Rank() != c.indRank {
		return fmt.Errorf("ToT.Insert%s: rank %d != %d: %w", ind, ind.Rank(), c.indRank, ErrRankMismatch)
	}
	pos, ok := c.search(ind)
	if ok {
		return fmt.Errorf("ToT.Insert%s: %w", ind, ErrDuplicate)
	}
	if !c.ranked {
		c.indRank, c.ranked = ind.Rank(), true
	}
	c.keys = slices.Insert(c.keys, pos, ind)
	c.tiles = slices.Insert(c.tiles, pos, t)

	return nil
}

// Tile returns the inner tile of ind and whether it exists.
func (c *ToT) Tile(ind index.Index) (*Tile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.search(ind)
	if !ok {
		return nil, false
	}

	return c.tiles[pos], true
}

// Element returns the value at dependent index dep of ind's tile, given in
// original dependent coordinates.
// Returns ErrNoTile if ind has no tile, ErrNotInDomain if dep was
// sparsified away.
func (c *ToT) Element(ind, dep index.Index) (float64, error) {
	t, ok := c.Tile(ind)
	if !ok {
		return 0, fmt.Errorf("ToT.Element%s: %w", ind, ErrNoTile)
	}

	return t.At(dep)
}

// Len returns the number of inner tiles.
func (c *ToT) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.keys)
}

// IndRank returns the independent rank, 0 while unfixed.
func (c *ToT) IndRank() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.indRank
}

// Keys returns the independent indices holding a tile, in order.
func (c *ToT) Keys() []index.Index {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.keys)
}

// All iterates (independent index, tile) in index order over a snapshot
// taken when iteration starts.
func (c *ToT) All() iter.Seq2[index.Index, *Tile] {
	return func(yield func(index.Index, *Tile) bool) {
		c.mu.RLock()
		keys, tiles := slices.Clone(c.keys), slices.Clone(c.tiles)
		c.mu.RUnlock()

		for k := range keys {
			if !yield(keys[k], tiles[k]) {
				return
			}
		}
	}
}

// Elements iterates every non-zero element as (ind ++ dep, value), tiles in
// index order and members in Domain order. Zeros, whether sparsified away or
// simply unstored, are skipped.
func (c *ToT) Elements() iter.Seq2[index.Index, float64] {
	return func(yield func(index.Index, float64) bool) {
		for ind, t := range c.All() {
			for dep, v := range t.All() {
				if v == 0 {
					continue
				}
				if !yield(ind.Concat(dep), v) {
					return
				}
			}
		}
	}
}

// NNZ returns the number of non-zero elements across all tiles.
func (c *ToT) NNZ() int {
	n := 0
	for range c.Elements() {
		n++
	}

	return n
}

// tileJSON is the export form of one inner tile.
type tileJSON struct {
	Ind     []int   `json:"ind"`
	Extents []int   `json:"extents"`
	Domain  [][]int `json:"domain"`
	Data    *Tile   `json:"data"`
}

// MarshalJSON encodes the container as an ordered list of
// {ind, extents, domain, data} objects.
func (c *ToT) MarshalJSON() ([]byte, error) {
	out := make([]tileJSON, 0, c.Len())
	for ind, t := range c.All() {
		members := make([][]int, 0, t.Domain().Len())
		for dep := range t.Domain().All() {
			members = append(members, dep.Values())
		}
		out = append(out, tileJSON{
			Ind:     ind.Values(),
			Extents: t.Extents(),
			Domain:  members,
			Data:    t,
		})
	}

	return json.Marshal(out)
}

// String implements fmt.Stringer: "ToT{(0): Tile[2][1, 2]}".
func (c *ToT) String() string {
	var b strings.Builder
	b.WriteString("ToT{")
	first := true
	for ind, t := range c.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(ind.String())
		b.WriteString(": ")
		b.WriteString(t.String())
	}
	b.WriteByte('}')

	return b.String()
}
