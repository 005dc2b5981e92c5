// Package selector chooses the target and transform for each step of the
// chaos game.
//
// # Weighted Pools
//
// Weighted choices are made by replication: every item is repeated
// floor(100 · weight / total) times in a flat pool and the pool is sampled
// uniformly. The percent-of-100 granularity is part of the observable
// behavior (a weight below 1% of the total is never chosen) and is used for
// both transform selection and the target-transform game's target selection.
//
// # History
//
// [History] wraps a pure [Rule] with a bounded window of the most recent
// choices, most recent first. The window always has at most Size entries and
// a nil entry records a step on which no target could be chosen.
//
// # Rules
//
//   - [HistoryExclusion]: sample uniformly from the resolver's answer for the
//     full history window.
//   - [PairwiseExclusion]: apply exclusions only when the previous two choices
//     were the same target.
//
// Both freeze once a step yields nil, because the nil becomes the head of the
// history and every later call sees it.
package selector
