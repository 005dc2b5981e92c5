// Package exclusion decides which targets may legally follow which.
//
// # Offsets
//
// Exclusions are relative offsets in polygon order. For a target at position
// i, offset k names the target at position (i+k) mod n. Offset 0 forbids
// choosing the same target twice in a row; offset 1 forbids the clockwise
// neighbour, and so on.
//
// # Lookup
//
// [BuildLookup] precomputes, for every target, the ordered list of successors
// that survive the exclusion set. The list is the cyclic rotation of the
// targets starting at the target itself, with excluded offsets removed.
//
// # Resolver
//
// A [Resolver] answers "which targets are legal after this history?" by
// intersecting the successor sets of every target in the history window.
// Answers are memoized per distinct history, so the cost of the
// intersection is paid once per history rather than once per step.
//
//	lookup := exclusion.BuildLookup(targets, []int{0})
//	r := exclusion.NewResolver(targets, lookup)
//	legal := r.Resolve([]*chaos.Target{prev, prevPrev})
//
// A nil head of history means selection already failed; the resolver then
// returns an empty list forever, which freezes the game.
package exclusion
