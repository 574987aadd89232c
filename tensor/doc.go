// Package tensor provides the storage the tile construction engine reads
// from and writes into.
//
// Sources (combined coordinate = independent modes ++ dependent modes):
//
//	Sparse  coordinate format, only non-zero elements stored, sorted
//	Dense   row-major N-mode buffer; Block(ind) exposes the dependent block
//	        of one independent index as a Tile view without copying
//
// Destination:
//
//	Tile    dense inner tensor of one independent index. Its extents are the
//	        number of distinct values per dependent mode of its Domain, and
//	        each member sits at the position OffsetFunc assigns to its local
//	        (rank-among-distinct-values) coordinate.
//	ToT     ordered, concurrency-safe container of tiles keyed by
//	        independent index; absent keys have no tile at all.
//
// Example: Domain {(0), (1)} for independent index (0) over elements
// (0,0)=1 and (0,1)=2 gives a Tile of extent [2] holding [1, 2].
//
// RowMajorOffset (default) and ColumnMajorOffset are the provided OffsetFunc
// implementations. Tiles and ToTs encode to JSON as nested arrays.
package tensor
