// SPDX-License-Identifier: MIT
// Package index: sentinel error set.
// All exported operations return these sentinels (possibly wrapped with
// call-site context via %w); tests match them with errors.Is.

package index

import "errors"

var (
	// ErrRankMismatch is returned when two indices, an index and a Domain,
	// or two Domains disagree on rank where equal rank is required.
	ErrRankMismatch = errors.New("index: rank mismatch")

	// ErrOutOfRange indicates a mode or position outside the valid range,
	// e.g. Index.At(mode) with mode >= Rank().
	ErrOutOfRange = errors.New("index: out of range")

	// ErrNegativeValue indicates a negative coordinate passed to a constructor.
	// Coordinates are non-negative by definition.
	ErrNegativeValue = errors.New("index: negative coordinate")

	// ErrNotInDomain indicates an index whose per-mode values are not covered
	// by the Domain it is being mapped through (ResultIndex).
	ErrNotInDomain = errors.New("index: index not in domain")
)
