// Package sparsemap_test contains unit tests for SparseMap algebra.
package sparsemap_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/stretchr/testify/require"
)

// TestComposeExample reproduces 0→{0,1}, 1→{1} composed with 0→{a}, 1→{b}.
func TestComposeExample(t *testing.T) {
	const a, b = 10, 20
	left := sm(t, map[int][]int{0: {0, 1}, 1: {1}})
	right := sm(t, map[int][]int{0: {a}, 1: {b}})

	got, err := left.Compose(right)
	require.NoError(t, err)
	require.True(t, got.Equal(sm(t, map[int][]int{0: {a, b}, 1: {b}})))
	require.Equal(t, 1, got.IndRank())
	require.Equal(t, 1, got.DepRank())
}

// TestComposeDropsEmpty ensures unreachable independent indices vanish.
func TestComposeDropsEmpty(t *testing.T) {
	left := sm(t, map[int][]int{0: {5}, 1: {1}})
	right := sm(t, map[int][]int{1: {7}})

	got, err := left.Compose(right)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	require.False(t, got.Contains(index.Of(0))) // 5 has no image
}

// TestComposeDomainMismatch checks dep rank vs ind rank validation.
func TestComposeDomainMismatch(t *testing.T) {
	left := sm(t, map[int][]int{0: {0}})
	right := sparsemap.New()
	require.NoError(t, right.AddToDomain(index.Of(0, 0), index.Of(1)))

	_, err := left.Compose(right)
	require.ErrorIs(t, err, sparsemap.ErrDomainMismatch)

	// empty unranked operand composes to empty
	got, err := left.Compose(sparsemap.New())
	require.NoError(t, err)
	require.True(t, got.Empty())
}

// randomMap builds a random rank-1 → rank-1 map over [0,n).
func randomMap(rng *rand.Rand, n int) *sparsemap.SparseMap {
	out := sparsemap.NewWithRanks(1, 1)
	for k := 0; k < 2*n; k++ {
		_ = out.AddToDomain(index.Of(rng.Intn(n)), index.Of(rng.Intn(n)))
	}
	return out
}

// TestComposeAssociative checks (A∘B)∘C == A∘(B∘C) on random maps.
func TestComposeAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for trial := 0; trial < 30; trial++ {
		a, b, c := randomMap(rng, 6), randomMap(rng, 6), randomMap(rng, 6)

		ab, err := a.Compose(b)
		require.NoError(t, err)
		left, err := ab.Compose(c)
		require.NoError(t, err)

		bc, err := b.Compose(c)
		require.NoError(t, err)
		right, err := a.Compose(bc)
		require.NoError(t, err)

		require.True(t, left.Equal(right), "trial %d: %s vs %s", trial, left, right)
	}
}

// TestInverse mirrors the round trip inverse(inverse(s)) == s.
func TestInverse(t *testing.T) {
	s := sm(t, map[int][]int{1: {0, 3}, 2: {1, 2}})
	want := sm(t, map[int][]int{0: {1}, 3: {1}, 1: {2}, 2: {2}})

	inv := s.Inverse()
	require.True(t, inv.Equal(want))
	require.True(t, inv.Inverse().Equal(s))
	require.True(t, sparsemap.New().Inverse().Empty())
}

// TestUnionIntersection covers per-key merge and key dropping.
func TestUnionIntersection(t *testing.T) {
	x := sm(t, map[int][]int{0: {0, 1}, 1: {1}})
	y := sm(t, map[int][]int{0: {2}, 2: {2}, 1: {3}})

	u, err := x.Union(y)
	require.NoError(t, err)
	require.True(t, u.Equal(sm(t, map[int][]int{0: {0, 1, 2}, 1: {1, 3}, 2: {2}})))

	in, err := x.Intersection(y)
	require.NoError(t, err)
	require.True(t, in.Empty()) // no shared dependent index per key

	in, err = x.Intersection(x)
	require.NoError(t, err)
	require.True(t, in.Equal(x))

	// rank disagreement
	z := sparsemap.New()
	require.NoError(t, z.AddToDomain(index.Of(0, 0), index.Of(0)))
	_, err = x.Union(z)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
	_, err = x.Intersection(z)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)

	// empty operands
	u, err = x.Union(sparsemap.New())
	require.NoError(t, err)
	require.True(t, u.Equal(x))
}

// TestProducts covers Product (shared keys) and DirectProduct (all key pairs).
func TestProducts(t *testing.T) {
	x := sm(t, map[int][]int{0: {1}, 1: {2}})
	y := sm(t, map[int][]int{1: {5, 6}})

	p, err := x.Product(y)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	require.Equal(t, 2, p.DepRank())
	d, err := p.At(index.Of(1))
	require.NoError(t, err)
	require.True(t, d.Equal(index.MustDomain(index.Of(2, 5), index.Of(2, 6))))

	dp := x.DirectProduct(y)
	require.Equal(t, 2, dp.Len())
	require.Equal(t, 2, dp.IndRank())
	d, err = dp.At(index.Of(0, 1))
	require.NoError(t, err)
	require.True(t, d.Equal(index.MustDomain(index.Of(1, 5), index.Of(1, 6))))

	z := sparsemap.New()
	require.NoError(t, z.AddToDomain(index.Of(0, 0), index.Of(0)))
	_, err = x.Product(z)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
	require.True(t, x.DirectProduct(sparsemap.New()).Empty())
}

// TestMakePairMap reproduces the four-orbital pair example.
func TestMakePairMap(t *testing.T) {
	lia := sm(t, map[int][]int{0: {1}, 1: {2}, 2: {3}, 3: {4}})
	lij := sm(t, map[int][]int{0: {0, 1}, 1: {0, 1}, 2: {2, 3}, 3: {2, 3}})

	got, err := sparsemap.MakePairMap(lia, lij)
	require.NoError(t, err)

	want := sparsemap.New()
	add := func(i, j int, deps ...int) {
		for _, d := range deps {
			require.NoError(t, want.AddToDomain(index.Of(i, j), index.Of(d)))
		}
	}
	add(0, 0, 1)
	add(0, 1, 1, 2)
	add(1, 0, 1, 2)
	add(1, 1, 2)
	add(2, 2, 3)
	add(2, 3, 3, 4)
	add(3, 2, 3, 4)
	add(3, 3, 4)
	require.True(t, got.Equal(want), "got %s", got)
}

// TestMakePairMapErrors covers missing indices and rank rules.
func TestMakePairMapErrors(t *testing.T) {
	lia := sm(t, map[int][]int{1: {1}})

	_, err := sparsemap.MakePairMap(lia, sm(t, map[int][]int{0: {1}}))
	require.ErrorIs(t, err, sparsemap.ErrNotFound) // i missing

	_, err = sparsemap.MakePairMap(lia, sm(t, map[int][]int{1: {0}}))
	require.ErrorIs(t, err, sparsemap.ErrNotFound) // j missing

	bad := sparsemap.New()
	require.NoError(t, bad.AddToDomain(index.Of(0, 1), index.Of(1)))
	_, err = sparsemap.MakePairMap(lia, bad)
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)

	_, err = sparsemap.MakePairMap(bad, bad) // lia independent rank must be 1
	require.ErrorIs(t, err, sparsemap.ErrRankMismatch)
}
