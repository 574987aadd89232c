// SPDX-License-Identifier: MIT

package index

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Index is an ordered tuple of non-negative coordinates, one per mode.
// The zero value is the rank-0 (scalar) index.
// Index never exposes its backing slice, so copies may share storage safely.
type Index struct {
	vals []int // coordinate per mode; never mutated after construction
}

// New builds an Index from the given coordinates.
// Returns ErrNegativeValue if any coordinate is negative.
// Complexity: O(r).
func New(vals ...int) (Index, error) {
	for mode, v := range vals {
		if v < 0 {
			return Index{}, fmt.Errorf("index.New: mode %d value %d: %w", mode, v, ErrNegativeValue)
		}
	}
	if len(vals) == 0 {
		return Index{}, nil
	}
	cp := make([]int, len(vals))
	copy(cp, vals)

	return Index{vals: cp}, nil
}

// Of is like New but panics on a negative coordinate.
// Intended for literals in code and tests where the values are known.
func Of(vals ...int) Index {
	idx, err := New(vals...)
	if err != nil {
		panic(err.Error())
	}

	return idx
}

// From converts a slice of any integer type into an Index.
// Returns ErrNegativeValue for negative inputs and ErrOutOfRange for
// unsigned inputs that do not fit in an int.
// Complexity: O(r).
func From[T constraints.Integer](vals []T) (Index, error) {
	out := make([]int, len(vals))
	for mode, v := range vals {
		if v < 0 {
			return Index{}, fmt.Errorf("index.From: mode %d value %d: %w", mode, v, ErrNegativeValue)
		}
		if v > 0 && uint64(v) > math.MaxInt {
			return Index{}, fmt.Errorf("index.From: mode %d value %d: %w", mode, v, ErrOutOfRange)
		}
		out[mode] = int(v)
	}
	if len(out) == 0 {
		return Index{}, nil
	}

	return Index{vals: out}, nil
}

// wrap adopts vals without validation or copy. Callers must own vals.
func wrap(vals []int) Index {
	if len(vals) == 0 {
		return Index{}
	}

	return Index{vals: vals}
}

// Rank returns the number of modes.
// Complexity: O(1).
func (i Index) Rank() int {
	return len(i.vals)
}

// At returns the coordinate of the given mode (value_at).
// Returns ErrOutOfRange if mode < 0 or mode >= Rank().
// Complexity: O(1).
func (i Index) At(mode int) (int, error) {
	if mode < 0 || mode >= len(i.vals) {
		return 0, fmt.Errorf("Index.At(%d) rank=%d: %w", mode, len(i.vals), ErrOutOfRange)
	}

	return i.vals[mode], nil
}

// Values returns a copy of the coordinates.
// Complexity: O(r).
func (i Index) Values() []int {
	out := make([]int, len(i.vals))
	copy(out, i.vals)

	return out
}

// Compare orders indices by rank first, then lexicographically with mode 0
// most significant. Returns -1, 0 or +1.
// Complexity: O(r).
func (i Index) Compare(j Index) int {
	if len(i.vals) != len(j.vals) {
		if len(i.vals) < len(j.vals) {
			return -1
		}
		return 1
	}
	for m := range i.vals {
		switch {
		case i.vals[m] < j.vals[m]:
			return -1
		case i.vals[m] > j.vals[m]:
			return 1
		}
	}

	return 0
}

// Equal reports whether both indices have the same rank and coordinates.
func (i Index) Equal(j Index) bool {
	return i.Compare(j) == 0
}

// Less reports whether i orders strictly before j.
func (i Index) Less(j Index) bool {
	return i.Compare(j) < 0
}

// Concat returns the index formed by i's modes followed by j's modes.
// Complexity: O(ri + rj).
func (i Index) Concat(j Index) Index {
	out := make([]int, 0, len(i.vals)+len(j.vals))
	out = append(out, i.vals...)
	out = append(out, j.vals...)

	return wrap(out)
}

// Key returns a compact string uniquely identifying the index (rank and
// coordinates). Suitable as a Go map key.
// Complexity: O(r).
func (i Index) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(i.vals)))
	for _, v := range i.vals {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v))
	}

	return b.String()
}

// String implements fmt.Stringer: "(1, 2)"; the scalar index prints "()".
func (i Index) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for m, v := range i.vals {
		if m > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(')')

	return b.String()
}
