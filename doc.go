// Package sparsetot builds block-sparse "tensors of tensors" from sparse
// tensors and sparse index maps.
//
// What is sparsetot?
//
//	A small, concurrent library that brings together:
//		• Indices and Domains: immutable coordinate tuples, sorted sets of them
//		• Sparse maps: independent index → Domain of dependent indices, with
//		  composition, inverse, union, intersection and products
//		• Tiling: element ↔ tile translation over tiled index ranges
//		• Tensors: sparse and dense sources, inner tiles, the ToT container
//		• Tile construction: one dense inner tile per independent index,
//		  built in parallel and published atomically
//
// Under the hood, everything is organized under these subpackages:
//
//	index/        Index, Domain, set algebra, local tile geometry
//	sparsemap/    SparseMap and its algebra
//	tiling/       TiledRange and (un)tiling of sparse maps
//	tensor/       Source, Sparse, Dense, Tile, ToT
//	tot/          Build, BuildInto, BuildTiled, MakeTile, Flatten
//	cmd/totbuild  YAML-driven command line front end
//
// Quick example:
//
//	source (ind; dep)          sparse map               tensor of tensors
//	(0; 0) = 1                 (0) → {(0), (1)}         (0) → [1 2]
//	(0; 1) = 2                 (1) → {(1)}              (1) → [3]
//	(1; 1) = 3
//
//	sm, _ := sparsemap.FromCoordinates(src.Coordinates(), 1)
//	t, _ := tot.Build(ctx, sm, src, tot.WithWorkers(4))
//
//	go get github.com/katalvlaran/sparsetot
package sparsetot
