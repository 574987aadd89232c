// SPDX-License-Identifier: MIT
// Package tot: mode-map resolution.
//
// A plan fixes, before any allocation, how a (outer, inner) index pair is
// scattered into a combined source coordinate:
//
//	combined[indModes[k]] = outer[k]   k in [0, p)
//	combined[depModes[j]] = inner[j]   j in [0, q)
//
// depModes lists the source modes absent from indModes, ascending.

package tot

import (
	"fmt"
	"slices"
)

// Construction modes.
const (
	modeEqualRank   = "equal-rank"
	modeReducedRank = "reduced-rank"
)

type plan struct {
	indRank  int   // p: destination independent rank
	depRank  int   // q: destination dependent rank
	indModes []int // source mode of each destination independent mode
	depModes []int // source mode of each destination dependent mode
	identity bool  // indModes == [0, p) and depModes == [p, p+q)
	mode     string
}

// resolve validates ranks and the mode map.
// Stage 1 (Validate ranks): all non-negative, p+q == srcRank, p <= srcInd.
// Stage 2 (Resolve map): identity in equal-rank mode when none is given;
// required in reduced-rank mode; keys exactly [0, p), values distinct
// independent source modes.
// Stage 3 (Finalize): derive dependent source modes.
func resolve(p, q, srcInd, srcRank int, modeMap map[int]int) (*plan, error) {
	if p < 0 || q < 0 || srcInd < 0 || srcInd > srcRank {
		return nil, fmt.Errorf("tot: ranks %d+%d against source %d/%d: %w", p, q, srcInd, srcRank, ErrRankMismatch)
	}
	if p+q != srcRank {
		return nil, fmt.Errorf("tot: map ranks %d+%d != source rank %d: %w", p, q, srcRank, ErrRankMismatch)
	}
	if p > srcInd {
		return nil, fmt.Errorf("tot: map ind rank %d > source ind rank %d: %w", p, srcInd, ErrRankMismatch)
	}
	pl := &plan{indRank: p, depRank: q, mode: modeEqualRank}
	if p < srcInd {
		pl.mode = modeReducedRank
	}

	switch {
	case modeMap == nil && pl.mode == modeReducedRank:
		return nil, fmt.Errorf("tot: %s build (%d < %d) needs a mode map: %w", pl.mode, p, srcInd, ErrModeMap)
	case modeMap == nil:
		pl.indModes = make([]int, p)
		for k := range pl.indModes {
			pl.indModes[k] = k
		}
	default:
		if len(modeMap) != p {
			return nil, fmt.Errorf("tot: mode map has %d entries, want %d: %w", len(modeMap), p, ErrModeMap)
		}
		pl.indModes = make([]int, p)
		seen := make([]bool, srcInd)
		for k := 0; k < p; k++ {
			s, ok := modeMap[k]
			if !ok {
				return nil, fmt.Errorf("tot: mode map misses destination mode %d: %w", k, ErrModeMap)
			}
			if s >= srcInd || seen[s] {
				return nil, fmt.Errorf("tot: mode map %d→%d not a distinct independent source mode: %w", k, s, ErrModeMap)
			}
			seen[s] = true
			pl.indModes[k] = s
		}
	}

	used := make([]bool, srcRank)
	for _, s := range pl.indModes {
		used[s] = true
	}
	pl.depModes = make([]int, 0, q)
	for s := 0; s < srcRank; s++ {
		if !used[s] {
			pl.depModes = append(pl.depModes, s)
		}
	}
	pl.identity = slices.Equal(pl.indModes, seq(0, p)) && slices.Equal(pl.depModes, seq(p, p+q))

	return pl, nil
}

// seq returns [lo, hi).
func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for v := lo; v < hi; v++ {
		out = append(out, v)
	}

	return out
}

// combine scatters an outer and an inner coordinate into source order.
func (pl *plan) combine(outer, inner []int) []int {
	out := make([]int, pl.indRank+pl.depRank)
	for k, s := range pl.indModes {
		out[s] = outer[k]
	}
	for j, s := range pl.depModes {
		out[s] = inner[j]
	}

	return out
}
