// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// Every exported operation returns these sentinels, possibly wrapped with
// call-site context via %w; tests match them with errors.Is.

package tensor

import (
	"errors"

	"github.com/katalvlaran/sparsetot/index"
)

var (
	// ErrShape is returned when a requested shape or rank split is invalid
	// (non-positive extent, negative rank, independent rank above rank).
	ErrShape = errors.New("tensor: invalid shape")

	// ErrDuplicate indicates a coordinate given twice to FromElements or an
	// independent index inserted twice into a ToT.
	ErrDuplicate = errors.New("tensor: duplicate coordinate")

	// ErrNaNInf signals a NaN or ±Inf value passed to Set; stored elements
	// are always finite.
	ErrNaNInf = errors.New("tensor: NaN or Inf value")

	// ErrNilTile indicates a nil *Tile passed to ToT.Insert.
	ErrNilTile = errors.New("tensor: nil tile")

	// ErrNoTile indicates a lookup of an independent index with no inner tile.
	ErrNoTile = errors.New("tensor: no tile for independent index")
)

// Re-exported index sentinels so callers can match without importing index.
var (
	// ErrRankMismatch: coordinate rank differs from the tensor or tile rank.
	ErrRankMismatch = index.ErrRankMismatch

	// ErrOutOfRange: coordinate outside the tensor or tile extents.
	ErrOutOfRange = index.ErrOutOfRange

	// ErrNotInDomain: dependent index not a member of a tile's Domain.
	ErrNotInDomain = index.ErrNotInDomain
)
