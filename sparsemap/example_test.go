// Package sparsemap_test provides runnable examples for SparseMap.
package sparsemap_test

import (
	"fmt"

	"github.com/katalvlaran/sparsetot/index"
	"github.com/katalvlaran/sparsetot/sparsemap"
)

// ExampleSparseMap_Compose chains an atom→orbital map with an orbital→shell map.
func ExampleSparseMap_Compose() {
	// 1) L→M: 0→{0,1}, 1→{1}
	lm := sparsemap.New()
	_ = lm.AddToDomain(index.Of(0), index.Of(0))
	_ = lm.AddToDomain(index.Of(0), index.Of(1))
	_ = lm.AddToDomain(index.Of(1), index.Of(1))

	// 2) M→N: 0→{10}, 1→{20}
	mn := sparsemap.New()
	_ = mn.AddToDomain(index.Of(0), index.Of(10))
	_ = mn.AddToDomain(index.Of(1), index.Of(20))

	// 3) L→N is the union of images.
	ln, err := lm.Compose(mn)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(ln)
	fmt.Println(ln.Inverse())
	// Output:
	// {(0) : {(10), (20)}, (1) : {(20)}}
	// {(10) : {(0)}, (20) : {(0), (1)}}
}
