// SPDX-License-Identifier: MIT
// Package tensor - Tile, the dense inner tensor of one independent index.
//
// Purpose:
//   - Hold the surviving dependent elements of one independent index in a
//     locally zero-based dense buffer.
//   - Stay self-describing: the Domain it was built from travels with it,
//     so lookups by original dependent coordinate need no outside state.
//
// Geometry:
//   - extents = Domain.ResultExtents() (distinct values per mode).
//   - original coordinate → Domain.ResultIndex → local → OffsetFunc → data.
//   - Box positions whose original coordinate is not a Domain member stay 0.
//
// Complexity quicksheet:
//   - NewTile: O(Π extents); At/Set: O(r log k); AtLocal/SetLocal: O(r); Clone: O(Π extents).

package tensor

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/katalvlaran/sparsetot/index"
)

// Tile is a dense inner tile.
type Tile struct {
	extents []int        // per-mode size of the local box
	data    []float64    // flat storage, len == Π extents
	domain  index.Domain // dependent indices this tile was built for
	offset  OffsetFunc   // local coordinate → data position
	view    bool         // data aliases another tensor's storage
}

// Compile-time assertions.
var (
	_ fmt.Stringer   = (*Tile)(nil)
	_ json.Marshaler = (*Tile)(nil)
)

// NewTile allocates a zero tile shaped by dom. A nil offset selects
// RowMajorOffset. An empty Domain yields ErrShape: an independent index
// without dependent elements has no tile at all.
// Complexity: O(Π extents).
func NewTile(dom index.Domain, offset OffsetFunc) (*Tile, error) {
	if dom.Empty() {
		return nil, fmt.Errorf("tensor.NewTile: empty domain: %w", ErrShape)
	}
	if offset == nil {
		offset = RowMajorOffset
	}
	ext := dom.ResultExtents()

	return &Tile{extents: ext, data: make([]float64, volume(ext)), domain: dom, offset: offset}, nil
}

// newView wraps existing storage as a row-major tile over a full box.
func newView(extents []int, data []float64) *Tile {
	return &Tile{
		extents: extents,
		data:    data,
		domain:  index.Box(extents...),
		offset:  RowMajorOffset,
		view:    true,
	}
}

// Extents returns a copy of the per-mode sizes.
func (t *Tile) Extents() []int {
	return slices.Clone(t.extents)
}

// Rank returns the number of dependent modes.
func (t *Tile) Rank() int {
	return len(t.extents)
}

// Size returns the number of stored slots (Π extents).
func (t *Tile) Size() int {
	return len(t.data)
}

// Domain returns the dependent indices the tile was built for.
func (t *Tile) Domain() index.Domain {
	return t.domain
}

// IsView reports whether the tile shares storage with its source tensor.
// Writes through a view tile are visible in the source and vice versa.
func (t *Tile) IsView() bool {
	return t.view
}

// Data returns a copy of the flat storage in OffsetFunc order.
func (t *Tile) Data() []float64 {
	return slices.Clone(t.data)
}

// pos resolves a local coordinate to a data position.
func (t *Tile) pos(op string, local index.Index) (int, error) {
	p, err := t.offset(local, t.extents)
	if err != nil {
		return 0, fmt.Errorf("Tile.%s: %w", op, err)
	}
	if p < 0 || p >= len(t.data) {
		return 0, fmt.Errorf("Tile.%s%s: offset %d size %d: %w", op, local, p, len(t.data), ErrOutOfRange)
	}

	return p, nil
}

// AtLocal returns the value at a locally zero-based coordinate.
// Returns ErrRankMismatch or ErrOutOfRange for coordinates outside the box.
func (t *Tile) AtLocal(local index.Index) (float64, error) {
	p, err := t.pos("AtLocal", local)
	if err != nil {
		return 0, err
	}

	return t.data[p], nil
}

// SetLocal writes v at a locally zero-based coordinate.
// Returns ErrRankMismatch, ErrOutOfRange or ErrNaNInf.
func (t *Tile) SetLocal(local index.Index, v float64) error {
	if err := checkFinite("Tile.SetLocal", local, v); err != nil {
		return err
	}
	p, err := t.pos("SetLocal", local)
	if err != nil {
		return err
	}
	t.data[p] = v

	return nil
}

// local maps an original dependent coordinate through the Domain.
func (t *Tile) local(op string, dep index.Index) (index.Index, error) {
	if !t.domain.Contains(dep) {
		return index.Index{}, fmt.Errorf("Tile.%s%s: %w", op, dep, ErrNotInDomain)
	}

	return t.domain.ResultIndex(dep)
}

// At returns the value of a dependent index given in original coordinates.
// Returns ErrNotInDomain if dep is not one of the tile's Domain members.
func (t *Tile) At(dep index.Index) (float64, error) {
	l, err := t.local("At", dep)
	if err != nil {
		return 0, err
	}

	return t.AtLocal(l)
}

// Set writes v for a dependent index given in original coordinates.
// Returns ErrNotInDomain or ErrNaNInf.
func (t *Tile) Set(dep index.Index, v float64) error {
	l, err := t.local("Set", dep)
	if err != nil {
		return err
	}

	return t.SetLocal(l, v)
}

// All iterates (original dependent index, value) over the Domain members in
// Domain order, zeros included.
func (t *Tile) All() iter.Seq2[index.Index, float64] {
	return func(yield func(index.Index, float64) bool) {
		for dep := range t.domain.All() {
			v, err := t.At(dep)
			if err != nil {
				return // unreachable: every member maps inside the box
			}
			if !yield(dep, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy that never aliases t, even when t is a view.
// Complexity: O(Π extents).
func (t *Tile) Clone() *Tile {
	return &Tile{
		extents: slices.Clone(t.extents),
		data:    slices.Clone(t.data),
		domain:  t.domain,
		offset:  t.offset,
	}
}

// Equal reports whether both tiles share Domain, extents and logical values.
// Storage order (OffsetFunc) is not compared.
func (t *Tile) Equal(o *Tile) bool {
	if !slices.Equal(t.extents, o.extents) || !t.domain.Equal(o.domain) {
		return false
	}
	for dep, v := range t.All() {
		w, err := o.At(dep)
		if err != nil || w != v {
			return false
		}
	}

	return true
}

// nested renders the local box as nested slices, row-major, one level per
// mode; a rank-0 tile renders as its scalar.
func (t *Tile) nested() any {
	if len(t.extents) == 0 {
		v, _ := t.AtLocal(index.Index{})
		return v
	}
	cur := make([]int, 0, len(t.extents))
	var walk func(m int) any
	walk = func(m int) any {
		if m == len(t.extents)-1 {
			row := make([]float64, t.extents[m])
			for k := range row {
				// Coordinates stay inside the box, so AtLocal cannot fail.
				row[k], _ = t.AtLocal(index.Of(append(cur, k)...))
			}
			return row
		}
		out := make([]any, t.extents[m])
		for k := range out {
			cur = append(cur, k)
			out[k] = walk(m + 1)
			cur = cur[:len(cur)-1]
		}
		return out
	}

	return walk(0)
}

// MarshalJSON encodes the tile as nested arrays in local row-major order.
func (t *Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.nested())
}

// String implements fmt.Stringer: "Tile[2][1, 2]", extents then flat data.
func (t *Tile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tile%v[", t.extents)
	for k, v := range t.data {
		if k > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", v)
	}
	b.WriteByte(']')

	return b.String()
}
