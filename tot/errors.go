// SPDX-License-Identifier: MIT
// Package tot: sentinel error set.
// Validation failures are reported before any tile storage is allocated;
// a failed Build publishes nothing.

package tot

import (
	"errors"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
)

var (
	// ErrModeMap indicates a missing or malformed mode map: required in
	// reduced-rank mode, and when given it must send every destination
	// independent mode to a distinct independent source mode.
	ErrModeMap = errors.New("tot: invalid mode map")

	// ErrNilInput indicates a nil SparseMap, source tensor or destination.
	ErrNilInput = errors.New("tot: nil input")
)

// Re-exported sentinels so callers can match engine failures directly.
var (
	// ErrRankMismatch: map ranks disagree with the source rank split, or an
	// outer index disagrees with the map's independent rank.
	ErrRankMismatch = index.ErrRankMismatch

	// ErrNotFound: MakeTile asked for an independent index absent from the map.
	ErrNotFound = sparsemap.ErrNotFound
)
