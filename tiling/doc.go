// Package tiling partitions each tensor mode into contiguous tiles and
// converts sparse maps between element and tile granularity.
//
// A TiledRange holds one strictly ascending boundary list per mode:
//
//	mode 0: {0, 2, 5}  → tiles [0,2) and [2,5)
//	mode 1: {0, 3}     → one tile [0,3)
//
// Element (4, 1) lives in tile (1, 0); tile (0, 0) holds elements
// (0,0) (0,1) (0,2) (1,0) (1,1) (1,2) in row-major order.
//
// Map conversions:
//
//	TileIndependent / TileDependent  element → tile on one side
//	Tile                             both sides
//	UntileIndependent / UntileDependent  tile → every element of the tile
//
// A TiledRange is immutable and safe for concurrent use.
package tiling
