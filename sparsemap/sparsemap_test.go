// Package sparsemap_test contains unit tests for SparseMap.
package sparsemap_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/stretchr/testify/require"
)

// dom is shorthand for a Domain of rank-1 indices.
func dom(vals ...int) index.Domain {
	var d index.Domain
	for _, v := range vals {
		_ = d.Insert(index.Of(v))
	}
	return d
}

// sm builds a rank-1 → rank-1 map from a literal.
func sm(t *testing.T, m map[int][]int) *sparsemap.SparseMap {
	t.Helper()
	out := sparsemap.New()
	for k, deps := range m {
		for _, d := range deps {
			require.NoError(t, out.AddToDomain(index.Of(k), index.Of(d)))
		}
	}
	return out
}

// TestEmptyMap covers the zero state.
func TestEmptyMap(t *testing.T) {
	m := sparsemap.New()
	require.True(t, m.Empty())
	require.Equal(t, 0, m.Len())
	require.Equal(t, 0, m.IndRank())
	require.Equal(t, 0, m.DepRank())
	require.False(t, m.Ranked())
	require.Equal(t, "{}", m.String())

	_, err := m.At(index.Of(0))
	require.ErrorIs(t, err, sparsemap.ErrNotFound)
}

// TestAddToDomain covers creation, extension and rank fixing.
func TestAddToDomain(t *testing.T) {
	m := sparsemap.New()
	require.NoError(t, m.AddToDomain(index.Of(1, 2), index.Of(3)))
	require.Equal(t, 2, m.IndRank())
	require.Equal(t, 1, m.DepRank())

	// extend existing independent index
	require.NoError(t, m.AddToDomain(index.Of(1, 2), index.Of(4)))
	// add a new independent index that sorts first
	require.NoError(t, m.AddToDomain(index.Of(0, 9), index.Of(3)))
	require.Equal(t, 2, m.Len())

	d, err := m.At(index.Of(1, 2))
	require.NoError(t, err)
	require.True(t, d.Equal(dom(3, 4)))

	keys := m.Keys()
	require.True(t, keys[0].Equal(index.Of(0, 9))) // ordered by independent index

	// wrong ranks are rejected and leave the map unchanged
	err = m.AddToDomain(index.Of(1), index.Of(3))
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
	err = m.AddToDomain(index.Of(1, 2), index.Of(3, 3))
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
	require.Equal(t, 2, m.Len())
	d, _ = m.At(index.Of(1, 2))
	require.Equal(t, 2, d.Len())
}

// TestNewWithRanks ensures ranks fixed up front are enforced on the first insert.
func TestNewWithRanks(t *testing.T) {
	m := sparsemap.NewWithRanks(1, 2)
	require.ErrorIs(t, m.AddToDomain(index.Of(0), index.Of(0)), sparsemap.ErrRankMismatch)
	require.NoError(t, m.AddToDomain(index.Of(0), index.Of(0, 0)))
	require.Panics(t, func() { sparsemap.NewWithRanks(-1, 0) })
}

// TestAtErrors distinguishes NotFound from RankMismatch.
func TestAtErrors(t *testing.T) {
	m := sm(t, map[int][]int{0: {0, 1}, 1: {1}})

	_, err := m.At(index.Of(7))
	require.ErrorIs(t, err, sparsemap.ErrNotFound)

	_, err = m.At(index.Of(0, 0))
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)

	require.True(t, m.Contains(index.Of(1)))
	require.False(t, m.Contains(index.Of(2)))
}

// TestAtReturnsValue ensures the returned Domain cannot alias map state.
func TestAtReturnsValue(t *testing.T) {
	m := sm(t, map[int][]int{0: {0}})
	d, err := m.At(index.Of(0))
	require.NoError(t, err)
	require.NoError(t, d.Insert(index.Of(5))) // mutate caller copy

	again, _ := m.At(index.Of(0))
	require.Equal(t, 1, again.Len())
}

// TestFromEntriesDropsEmpty checks that an empty Domain means absence.
func TestFromEntriesDropsEmpty(t *testing.T) {
	m, err := sparsemap.FromEntries(
		sparsemap.Entry{Ind: index.Of(2), Dep: index.Domain{}},
		sparsemap.Entry{Ind: index.Of(1), Dep: dom(1)},
	)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
	require.False(t, m.Contains(index.Of(2)))
}

// TestIterationDeterministic iterates twice and compares.
func TestIterationDeterministic(t *testing.T) {
	m := sm(t, map[int][]int{5: {1}, 2: {2}, 9: {0}, 0: {3}})
	collect := func() []string {
		var out []string
		for ind, d := range m.All() {
			out = append(out, ind.String()+d.String())
		}
		return out
	}
	first := collect()
	require.Equal(t, first, collect())
	require.Equal(t, []string{"(0){(3)}", "(2){(2)}", "(5){(1)}", "(9){(0)}"}, first) // ascending keys

	e, err := m.Entry(3)
	require.NoError(t, err)
	require.True(t, e.Ind.Equal(index.Of(9)))
	_, err = m.Entry(4)
	require.ErrorIs(t, err, index.ErrOutOfRange)
}

// TestCloneEqualHash covers the value utilities.
func TestCloneEqualHash(t *testing.T) {
	m := sm(t, map[int][]int{0: {0, 1}, 1: {1}})
	c := m.Clone()
	require.True(t, c.Equal(m))
	require.Equal(t, m.Hash(), c.Hash())

	require.NoError(t, c.AddToDomain(index.Of(3), index.Of(3)))
	require.False(t, c.Equal(m))
	require.NotEqual(t, m.Hash(), c.Hash())
	require.Equal(t, 2, m.Len()) // original unaffected

	require.Equal(t, "{(0) : {(0), (1)}, (1) : {(1)}}", m.String())
}

// TestFromCoordinates splits combined coordinates at the independent rank.
func TestFromCoordinates(t *testing.T) {
	coords := []index.Index{index.Of(0, 0), index.Of(0, 1), index.Of(1, 1)}
	m, err := sparsemap.FromCoordinates(slices.Values(coords), 1)
	require.NoError(t, err)
	require.True(t, m.Equal(sm(t, map[int][]int{0: {0, 1}, 1: {1}})))

	_, err = sparsemap.FromCoordinates(slices.Values(coords), 3)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)

	mixed := []index.Index{index.Of(0, 0), index.Of(0, 1, 2)}
	_, err = sparsemap.FromCoordinates(slices.Values(mixed), 1)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
}

// TestFromCoordinatesMatchesAddToDomain compares bulk construction with
// incremental insertion on unsorted coordinates with repeats.
func TestFromCoordinatesMatchesAddToDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	coords := make([]index.Index, 500)
	for k := range coords {
		coords[k] = index.Of(rng.Intn(12), rng.Intn(7), rng.Intn(7))
	}
	bulk, err := sparsemap.FromCoordinates(slices.Values(coords), 1)
	require.NoError(t, err)
	require.Equal(t, 1, bulk.IndRank())
	require.Equal(t, 2, bulk.DepRank())

	inc := sparsemap.New()
	for _, c := range coords {
		v := c.Values()
		require.NoError(t, inc.AddToDomain(index.Of(v[0]), index.Of(v[1:]...)))
	}
	require.True(t, bulk.Equal(inc))
	require.Equal(t, inc.Hash(), bulk.Hash())
	require.True(t, bulk.Inverse().Inverse().Equal(inc))

	empty, err := sparsemap.FromCoordinates(slices.Values([]index.Index(nil)), 1)
	require.NoError(t, err)
	require.True(t, empty.Empty())
	require.False(t, empty.Ranked())
}
