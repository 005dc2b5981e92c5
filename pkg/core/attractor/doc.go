// Package attractor implements the chaos game iteration core.
//
// An [Attractor] owns the only per-step mutable state of a run: the current
// point, plus whatever the target selector keeps in its history window. Each
// [Attractor.Step] picks a target, picks a transform for that target, moves
// the current point through the transform's precomputed linear map and
// colors the result:
//
//	current = M·(target - current) + current
//
// where M = scale(s)·rotate(r) for the chosen transform.
//
// A step can produce nothing: once the target rule runs out of legal
// candidates the attractor is stuck, and every later step reports an empty
// result without touching the current point. A transform selector that
// returns a transform outside the configured set also reports stuck for that
// step.
//
// # Priming
//
// [New] runs [PrimingSteps] steps and discards their output so the first
// visible point already lies near the attractor. [WithPriming] overrides the
// count; tests use zero to observe the raw sequence.
//
// # Concurrency
//
// An Attractor is not safe for concurrent use. One render or animation loop
// owns one instance; a configuration change means building a new one.
package attractor
