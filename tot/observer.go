// SPDX-License-Identifier: MIT

package tot

import (
	"time"

	"github.com/katalvlaran/sparsetot/index"
)

// Observer receives per-tile events from Build. Calls may arrive from
// several goroutines when WithWorkers(n > 1) is set; implementations must
// be safe for concurrent use. Events fire as tiles finish, before the build
// is known to succeed.
type Observer interface {
	// TileBuilt reports one finished inner tile: its outer index, the number
	// of Domain members it covers, and the time spent building it.
	TileBuilt(ind index.Index, elements int, d time.Duration)
	// TileSkipped reports an outer index that produced no tile because the
	// map has no entry for it.
	TileSkipped(ind index.Index)
}

type nopObserver struct{}

func (nopObserver) TileBuilt(index.Index, int, time.Duration) {}
func (nopObserver) TileSkipped(index.Index)                   {}
