// SPDX-License-Identifier: MIT

package tot

import (
	"fmt"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/tensor"
)

// Flatten scatters the non-zero elements of t back into a sparse tensor
// with the source rank split (srcInd, srcDep), undoing the mode map given
// through WithModeMap (identity when absent). Building from a sparse tensor
// with the map derived from its own coordinates and flattening the result
// reproduces the tensor exactly.
// Returns ErrNilInput, tensor.ErrShape for a negative rank, or
// ErrRankMismatch / ErrModeMap as Build would for the same ranks and map.
func Flatten(t *tensor.ToT, srcInd, srcDep int, opts ...Option) (*tensor.Sparse, error) {
	if t == nil {
		return nil, fmt.Errorf("tot.Flatten: %w", ErrNilInput)
	}
	if srcInd < 0 || srcDep < 0 {
		return nil, fmt.Errorf("tot.Flatten: ranks (%d, %d): %w", srcInd, srcDep, tensor.ErrShape)
	}
	if t.Len() == 0 {
		return tensor.NewSparse(srcInd, srcDep)
	}
	o := gatherOptions(opts...)
	p := t.IndRank()
	pl, err := resolve(p, srcInd+srcDep-p, srcInd, srcInd+srcDep, o.modeMap)
	if err != nil {
		return nil, err
	}
	var elems []tensor.Element
	for ind, tile := range t.All() {
		if tile.Rank() != pl.depRank {
			return nil, fmt.Errorf("tot.Flatten: tile %s rank %d != %d: %w", ind, tile.Rank(), pl.depRank, ErrRankMismatch)
		}
		outer := ind.Values()
		for dep, v := range tile.All() {
			if v == 0 {
				continue
			}
			coord := index.Of(pl.combine(outer, dep.Values())...)
			elems = append(elems, tensor.Element{Coord: coord, Value: v})
		}
	}

	return tensor.FromElements(srcInd, srcDep, elems...)
}
