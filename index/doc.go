// Package index provides the coordinate vocabulary for sparse tensor maps:
// Index, a fixed-rank tuple of non-negative integers, and Domain, a
// deduplicated, ordered set of indices sharing one rank.
//
// What:
//
//   - Index: value type with lexicographic ordering (mode 0 most significant).
//   - Domain: sorted set with union, intersection, Cartesian product and
//     mode injection, plus the inner-tile geometry queries ResultExtents
//     and ResultIndex used when a Domain is turned into a dense tile.
//
// Ordering:
//
//	Indices of different rank order by rank first; indices of equal rank
//	order lexicographically. Domain iteration always follows this order,
//	so every algorithm built on top of it is deterministic.
//
// Ownership:
//
//	Domain is a value type. Insert uses copy-on-write, so copying a Domain
//	and inserting into the copy never changes the original. Concurrent
//	reads are safe; concurrent Insert on the same variable is not.
//
// Errors:
//
//	ErrRankMismatch  - rank disagreement between operands.
//	ErrOutOfRange    - mode/position beyond bounds.
//	ErrNegativeValue - negative coordinate.
//	ErrNotInDomain   - ResultIndex of an index outside the Domain's modes.
package index
