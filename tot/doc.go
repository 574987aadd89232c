// Package tot builds a tensor of tensors from a sparse source tensor and a
// sparse map that says, for every outer (independent) index, which inner
// (dependent) indices survive.
//
// For every outer index of the map, Build allocates an inner tile shaped by
// its Domain (ResultExtents: the distinct values per dependent mode), reads
// each member from the source at the combined coordinate, and writes it at
// the local position given by the offset function. Outer indices absent from
// the map get no tile at all.
//
//	src:  (0,0)=1  (0,1)=2  (1,0)=5
//	sm:   (0) → {(0), (1)}
//	out:  (0) → Tile[2][1, 2]          (1) has no tile
//
// Modes. With equal ranks the map's outer modes are the source's leading
// modes, optionally permuted by WithModeMap. When the map's independent rank
// is smaller than the source's (reduced-rank), WithModeMap is required and
// every unmapped source mode, including the dropped independent ones,
// becomes an inner mode.
//
// Safety. Every rank and mode-map check runs before any tile is allocated.
// Tiles are staged and published only once all of them succeeded, so a
// failed or cancelled Build leaves the destination untouched. With
// WithWorkers(n) tiles are built concurrently by an errgroup; the output is
// identical to a sequential build.
//
// Ownership. Tiles are deep copies unless WithConsumeSource is set and the
// source exposes full dependent blocks (tensor.BlockSource): then a tile
// whose Domain is the whole block is a view on the source storage.
//
// Extras: MakeTile (one outer index), BuildTiled (one container per outer
// tile of a tiling.TiledRange) and Flatten (scatter a container back into a
// sparse tensor).
package tot
