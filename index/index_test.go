// Package index_test contains unit tests for Index.
package index_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/stretchr/testify/require"
)

// TestNewRejectsNegative ensures constructors refuse negative coordinates.
func TestNewRejectsNegative(t *testing.T) {
	_, err := index.New(0, -1)                     // second mode negative
	require.ErrorIs(t, err, index.ErrNegativeValue) // expect ErrNegativeValue

	_, err = index.From([]int64{3, -2})
	require.ErrorIs(t, err, index.ErrNegativeValue)

	require.Panics(t, func() { index.Of(-5) }) // literal helper panics
}

// TestFromGeneric checks conversion from other integer widths.
func TestFromGeneric(t *testing.T) {
	idx, err := index.From([]uint8{1, 2, 3})
	require.NoError(t, err)
	require.True(t, idx.Equal(index.Of(1, 2, 3)))

	scalar, err := index.From([]int32{})
	require.NoError(t, err)
	require.Equal(t, 0, scalar.Rank()) // rank 0 is the scalar index

	_, err = index.From([]int64{2, -1})
	require.ErrorIs(t, err, index.ErrNegativeValue)

	_, err = index.From([]uint64{0, 1 << 63})
	require.ErrorIs(t, err, index.ErrOutOfRange)

	edge, err := index.From([]uint64{math.MaxInt})
	require.NoError(t, err)
	require.True(t, edge.Equal(index.Of(math.MaxInt)))
}

// TestRankAndAt verifies rank() and value_at(mode).
func TestRankAndAt(t *testing.T) {
	idx := index.Of(4, 5)
	require.Equal(t, 2, idx.Rank())

	v, err := idx.At(1)
	require.NoError(t, err)
	require.Equal(t, 5, v)

	_, err = idx.At(2) // mode == rank
	require.ErrorIs(t, err, index.ErrOutOfRange)
	_, err = idx.At(-1)
	require.ErrorIs(t, err, index.ErrOutOfRange)

	_, err = index.Of().At(0) // scalar has no modes
	require.ErrorIs(t, err, index.ErrOutOfRange)
}

// TestValuesIsCopy ensures callers cannot mutate an Index through Values.
func TestValuesIsCopy(t *testing.T) {
	idx := index.Of(1, 2)
	vals := idx.Values()
	vals[0] = 99 // mutate the copy

	v, _ := idx.At(0)
	require.Equal(t, 1, v) // original untouched
}

// TestCompare covers lexicographic order and the rank tie-break.
func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b index.Index
		want int
	}{
		{"equal", index.Of(1, 2), index.Of(1, 2), 0},
		{"mode0 dominates", index.Of(0, 9), index.Of(1, 0), -1},
		{"mode1 decides", index.Of(1, 3), index.Of(1, 2), 1},
		{"lower rank first", index.Of(9), index.Of(0, 0), -1},
		{"scalar first", index.Of(), index.Of(0), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Compare(tc.b))
			require.Equal(t, -tc.want, tc.b.Compare(tc.a)) // antisymmetric
		})
	}
}

// TestConcatKeyString checks the small helpers used as map keys and output.
func TestConcatKeyString(t *testing.T) {
	ab := index.Of(1).Concat(index.Of(2, 3))
	require.True(t, ab.Equal(index.Of(1, 2, 3)))

	require.Equal(t, "(1, 2, 3)", ab.String())
	require.Equal(t, "()", index.Of().String())

	// Keys distinguish rank even when coordinates could collide textually.
	require.NotEqual(t, index.Of(1, 2).Key(), index.Of(12).Key())
	require.NotEqual(t, index.Of().Key(), index.Of(0).Key())
	require.Equal(t, index.Of(7, 8).Key(), index.Of(7, 8).Key())
}
