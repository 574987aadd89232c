// SPDX-License-Identifier: MIT
// Package tiling: sentinel error set.

package tiling

import (
	"errors"

	"github.com/katalvlaran/sparsetot/index"
)

// ErrBadBoundaries is returned by New when a mode's boundaries are not a
// strictly ascending list of at least two non-negative offsets.
var ErrBadBoundaries = errors.New("tiling: invalid tile boundaries")

// Re-exported index sentinels.
var (
	// ErrRankMismatch: range rank differs from the index or map rank.
	ErrRankMismatch = index.ErrRankMismatch

	// ErrOutOfRange: element or tile coordinate outside the range.
	ErrOutOfRange = index.ErrOutOfRange
)
