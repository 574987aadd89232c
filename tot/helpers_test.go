package tot_test

import (
	"errors"
	"math/rand"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
	"github.com/katalvlaran/sparsetot/tensor"
	"github.com/stretchr/testify/require"
)

// specSource is the (ind 1, dep 1) tensor (0,0)=1, (0,1)=2, (1,0)=5.
func specSource(t testing.TB) *tensor.Sparse {
	t.Helper()
	src, err := tensor.FromElements(1, 1,
		tensor.Element{Coord: index.Of(0, 0), Value: 1},
		tensor.Element{Coord: index.Of(0, 1), Value: 2},
		tensor.Element{Coord: index.Of(1, 0), Value: 5},
	)
	require.NoError(t, err)
	return src
}

// randomSparse fills about density·Π shape elements of a tensor.
func randomSparse(t testing.TB, rng *rand.Rand, indRank int, shape []int, density float64) *tensor.Sparse {
	t.Helper()
	src, err := tensor.NewSparse(indRank, len(shape)-indRank)
	require.NoError(t, err)
	for coord := range index.Box(shape...).All() {
		if rng.Float64() < density {
			require.NoError(t, src.Set(coord, float64(rng.Intn(9)+1)))
		}
	}
	return src
}

// mapOf derives the sparse map of a source from its stored coordinates.
func mapOf(t testing.TB, src tensor.Source) *sparsemap.SparseMap {
	t.Helper()
	sm, err := sparsemap.FromCoordinates(src.Coordinates(), src.IndRank())
	require.NoError(t, err)
	return sm
}

// sameElements compares two stored element sets exactly.
func sameElements(t *testing.T, want, got *tensor.Sparse) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	collect := func(s *tensor.Sparse) (out []string) {
		for c, v := range s.All() {
			out = append(out, c.String()+"="+strconv.FormatFloat(v, 'g', -1, 64))
		}
		return out
	}
	require.Equal(t, collect(want), collect(got))
}

// recorder is a concurrency-safe Observer.
type recorder struct {
	mu      sync.Mutex
	built   []string
	skipped []string
	elems   int
}

func (r *recorder) TileBuilt(ind index.Index, elements int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = append(r.built, ind.String())
	r.elems += elements
}

func (r *recorder) TileSkipped(ind index.Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, ind.String())
}

func (r *recorder) sortedBuilt() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.built)
	slices.Sort(out)
	return out
}

var errBroken = errors.New("broken element")

// brokenSource wraps a Source and fails reads of one coordinate.
type brokenSource struct {
	tensor.Source
	bad index.Index
}

func (b brokenSource) At(coord index.Index) (float64, error) {
	if coord.Equal(b.bad) {
		return 0, errBroken
	}
	return b.Source.At(coord)
}
