// Package sparsemap_test provides benchmarks for SparseMap population and composition.
package sparsemap_test

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
)

// benchSizes are the independent-index counts to benchmark.
var benchSizes = []int{64, 256, 1024}

// sinks to defeat dead-code elimination
var sinkSM *sparsemap.SparseMap

func BenchmarkAddToDomain(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkSM = randomMap(rand.New(rand.NewSource(7)), n)
			}
		})
	}
}

func BenchmarkCompose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			rng := rand.New(rand.NewSource(1337))
			x, y := randomMap(rng, n), randomMap(rng, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := x.Compose(y)
				if err != nil {
					b.Fatal(err)
				}
				sinkSM = out
			}
		})
	}
}

func BenchmarkFromCoordinates(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		rng := rand.New(rand.NewSource(3))
		coords := make([]index.Index, 8*n)
		for k := range coords {
			coords[k] = index.Of(rng.Intn(n), rng.Intn(n))
		}
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkSM, _ = sparsemap.FromCoordinates(slices.Values(coords), 1)
			}
		})
	}
}
