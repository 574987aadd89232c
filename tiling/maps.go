// SPDX-License-Identifier: MIT
// Package tiling: SparseMap conversions between element and tile granularity.

package tiling

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
)

// TileIndependent returns a map whose independent indices are the tiles of
// tr holding sm's independent elements; Domains of independent elements in
// the same tile merge.
// Returns ErrRankMismatch if tr.Rank() != sm.IndRank() (non-empty sm).
// Complexity: O(Σ|D|·(r log t + n)).
func TileIndependent(sm *sparsemap.SparseMap, tr TiledRange) (*sparsemap.SparseMap, error) {
	if err := checkRank("TileIndependent", sm, sm.IndRank(), tr); err != nil {
		return nil, err
	}
	out := sparsemap.New()
	for ind, d := range sm.All() {
		t, err := tr.ElementToTile(ind)
		if err != nil {
			return nil, err
		}
		for dep := range d.All() {
			if err := out.AddToDomain(t, dep); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// TileDependent returns a map whose Domains hold the tiles of tr covering
// sm's dependent elements.
// Returns ErrRankMismatch if tr.Rank() != sm.DepRank() (non-empty sm).
func TileDependent(sm *sparsemap.SparseMap, tr TiledRange) (*sparsemap.SparseMap, error) {
	if err := checkRank("TileDependent", sm, sm.DepRank(), tr); err != nil {
		return nil, err
	}
	out := sparsemap.New()
	for ind, d := range sm.All() {
		for dep := range d.All() {
			t, err := tr.ElementToTile(dep)
			if err != nil {
				return nil, err
			}
			if err := out.AddToDomain(ind, t); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// Tile converts both sides of sm: independent through indTR, dependent
// through depTR.
func Tile(sm *sparsemap.SparseMap, indTR, depTR TiledRange) (*sparsemap.SparseMap, error) {
	mid, err := TileIndependent(sm, indTR)
	if err != nil {
		return nil, err
	}

	return TileDependent(mid, depTR)
}

// UntileIndependent expands every independent tile index of sm into each
// element of that tile, all sharing the tile's Domain.
// Returns ErrRankMismatch or ErrOutOfRange for tiles not in tr.
func UntileIndependent(sm *sparsemap.SparseMap, tr TiledRange) (*sparsemap.SparseMap, error) {
	if err := checkRank("UntileIndependent", sm, sm.IndRank(), tr); err != nil {
		return nil, err
	}
	out := sparsemap.New()
	for t, d := range sm.All() {
		elems, err := tr.TileElements(t)
		if err != nil {
			return nil, err
		}
		for e := range elems {
			for dep := range d.All() {
				if err := out.AddToDomain(e, dep); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// UntileDependent expands every dependent tile index into each of its elements.
func UntileDependent(sm *sparsemap.SparseMap, tr TiledRange) (*sparsemap.SparseMap, error) {
	if err := checkRank("UntileDependent", sm, sm.DepRank(), tr); err != nil {
		return nil, err
	}
	out := sparsemap.New()
	for ind, d := range sm.All() {
		for t := range d.All() {
			elems, err := tr.TileElements(t)
			if err != nil {
				return nil, err
			}
			for e := range elems {
				if err := out.AddToDomain(ind, e); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// Group is one tile of a TiledRange with the elements that fell into it.
type Group struct {
	Tile     index.Index  // tile index in tr
	Elements index.Domain // elements of the input inside Tile
}

// GroupByTile buckets element indices by their tile in tr. Groups come out
// in tile order; only tiles receiving at least one element appear.
// Returns ErrRankMismatch or ErrOutOfRange for elements outside tr.
// Complexity: O(N·(r log t + g)).
func GroupByTile(elems []index.Index, tr TiledRange) ([]Group, error) {
	pos := make(map[string]int)
	var groups []Group
	for _, e := range elems {
		t, err := tr.ElementToTile(e)
		if err != nil {
			return nil, err
		}
		k, seen := pos[t.Key()]
		if !seen {
			k = len(groups)
			pos[t.Key()] = k
			groups = append(groups, Group{Tile: t})
		}
		if err := groups[k].Elements.Insert(e); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(groups, func(a, b Group) int { return a.Tile.Compare(b.Tile) })

	return groups, nil
}

// checkRank validates a TiledRange against one side of a non-empty map.
func checkRank(op string, sm *sparsemap.SparseMap, rank int, tr TiledRange) error {
	if sm.Empty() || rank == tr.Rank() {
		return nil
	}

	return fmt.Errorf("tiling.%s: map rank %d != range rank %d: %w", op, rank, tr.Rank(), ErrRankMismatch)
}
