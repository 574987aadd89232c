// Package sparsemap maps independent tensor indices to the Domain of
// dependent indices they couple to.
//
// A SparseMap answers "which inner (dependent) coordinates survive for this
// outer (independent) coordinate?". It is the description of a ragged
// sparsity pattern and the input of the tensor-of-tensors builder (package
// tot).
//
// Invariants:
//
//   - All independent indices share IndRank(); all dependent indices share
//     DepRank(). Both are fixed by the first AddToDomain (or NewWithRanks)
//     and never change afterwards.
//   - Every present independent index maps to a non-empty Domain; an
//     independent index with nothing attached is absent.
//   - Iteration is ordered by independent index (see index.Index.Compare).
//
// Algebra (all pure, receivers untouched):
//
//	Compose       relational composition L→M ∘ M→N = L→N (chain)
//	Inverse       dependent→independent
//	Union         per-key union of domains
//	Intersection  per-key intersection, empty keys dropped
//	Product       keys in both maps, Cartesian product of domains
//	DirectProduct concatenated keys, Cartesian product of domains
//	MakePairMap   (i,j) → L[i] ∪ L[j]
//
// Concurrency: no internal locking. Concurrent reads are safe; populate a
// map from one goroutine, or build fragments per goroutine and Union them.
package sparsemap
