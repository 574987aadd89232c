package tot_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/tensor"
	"github.com/katalvlaran/sparsetot/tot"
)

var sinkToT *tensor.ToT

func benchBuild(b *testing.B, opts ...tot.Option) {
	rng := rand.New(rand.NewSource(1))
	src := randomSparse(b, rng, 1, []int{200, 64}, 0.2)
	sm := mapOf(b, src)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := tot.Build(context.Background(), sm, src, opts...)
		if err != nil {
			b.Fatal(err)
		}
		sinkToT = out
	}
}

func BenchmarkBuildSequential(b *testing.B) { benchBuild(b) }

func BenchmarkBuildWorkers4(b *testing.B) { benchBuild(b, tot.WithWorkers(4)) }

func BenchmarkBuildDenseViews(b *testing.B) {
	src, _ := tensor.NewDense(1, 200, 64)
	for coord := range index.Box(200, 64).All() {
		_ = src.Set(coord, 1)
	}
	sm := mapOf(b, src) // every block fully covered
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out, err := tot.Build(context.Background(), sm, src, tot.WithConsumeSource())
		if err != nil {
			b.Fatal(err)
		}
		sinkToT = out
	}
}
