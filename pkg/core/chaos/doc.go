// Package chaos defines the data model shared by the chaos game engine.
//
// A [Target] is one vertex of the target polygon. Targets are handled by
// pointer everywhere in the engine: lookups, pools, history windows and color
// maps are all keyed by identity, so the slice returned by [NewTargets] must
// be the single source of those pointers for the lifetime of an attractor.
// A nil *Target means "no target could be chosen".
//
// A [Transform] is a uniform scale plus a rotation, with a non-negative
// selection weight. Transforms are plain values; engines take their own copy
// at construction and hand out pointers into that copy, which keeps identity
// stable even when two transforms have identical parameters.
package chaos
