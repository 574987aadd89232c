// SPDX-License-Identifier: MIT

package tot

import (
	"context"
	"fmt"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/katalvlaran/sparsetot/tensor"
	"github.com/katalvlaran/sparsetot/tiling"
)

// Block is the tensor of tensors built for one outer tile.
type Block struct {
	Tile index.Index // tile index in the outer TiledRange
	ToT  *tensor.ToT // inner tiles of the outer indices inside Tile
}

// BuildTiled groups the map's outer indices by the tiles of outer and builds
// one tensor of tensors per outer tile, in tile order. Outer tiles holding
// no map entry produce no Block.
// Returns ErrRankMismatch if outer.Rank() differs from the map's independent
// rank, tiling.ErrOutOfRange for map keys outside outer, and otherwise the
// errors of Build. A WithOuterDomain option is overridden per tile.
func BuildTiled(ctx context.Context, sm *sparsemap.SparseMap, src tensor.Source, outer tiling.TiledRange, opts ...Option) ([]Block, error) {
	if sm == nil || src == nil {
		return nil, fmt.Errorf("tot.BuildTiled: %w", ErrNilInput)
	}
	if sm.Empty() {
		return nil, nil
	}
	if outer.Rank() != sm.IndRank() {
		return nil, fmt.Errorf("tot.BuildTiled: range rank %d != map ind rank %d: %w",
			outer.Rank(), sm.IndRank(), ErrRankMismatch)
	}
	groups, err := tiling.GroupByTile(sm.Keys(), outer)
	if err != nil {
		return nil, fmt.Errorf("tot.BuildTiled: %w", err)
	}

	// Validate once up front so a bad mode map fails before any tile is built.
	if _, err := newEngine(sm, src, opts...); err != nil {
		return nil, err
	}
	out := make([]Block, 0, len(groups))
	for _, g := range groups {
		t, err := Build(ctx, sm, src, append(opts[:len(opts):len(opts)], WithOuterDomain(g.Elements))...)
		if err != nil {
			return nil, fmt.Errorf("tot.BuildTiled: tile %s: %w", g.Tile, err)
		}
		out = append(out, Block{Tile: g.Tile, ToT: t})
	}

	return out, nil
}
