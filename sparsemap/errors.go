// SPDX-License-Identifier: MIT
// Package sparsemap: sentinel error set.
// Messages are prefixed "sparsemap: ..."; call sites wrap with %w and callers
// match with errors.Is.

package sparsemap

import (
	"errors"

	"github.com/katalvlaran/sparsetot/index"
)

var (
	// ErrNotFound is returned by At when the independent index is absent.
	ErrNotFound = errors.New("sparsemap: independent index not found")

	// ErrDomainMismatch is returned by Compose when the left map's dependent
	// rank differs from the right map's independent rank.
	ErrDomainMismatch = errors.New("sparsemap: domain mismatch")
)

// ErrRankMismatch is the index package sentinel, re-exported so callers of
// this package need not import index to match it.
var ErrRankMismatch = index.ErrRankMismatch
