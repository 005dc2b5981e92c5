package exclusion

import (
	"slices"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

// Lookup maps each target to the ordered targets allowed to follow it.
type Lookup map[*chaos.Target][]*chaos.Target

// BuildLookup computes the successor lists for targets under the given
// excluded offsets. Offsets outside [0, len(targets)) have no effect.
func BuildLookup(targets []*chaos.Target, exclusions []int) Lookup {
	excluded := make(map[int]bool, len(exclusions))
	for _, k := range exclusions {
		excluded[k] = true
	}

	n := len(targets)
	lookup := make(Lookup, n)
	for i, t := range targets {
		successors := make([]*chaos.Target, 0, n)
		for k := range n {
			if excluded[k] {
				continue
			}
			successors = append(successors, targets[(i+k)%n])
		}
		lookup[t] = successors
	}
	return lookup
}

// Successors returns the targets allowed after t. A nil or unknown target
// has no successors.
func (l Lookup) Successors(t *chaos.Target) []*chaos.Target {
	return l[t]
}

// Equal reports whether two lookups have the same successor lists.
func (l Lookup) Equal(other Lookup) bool {
	if len(l) != len(other) {
		return false
	}
	for t, succ := range l {
		o, ok := other[t]
		if !ok || !slices.Equal(succ, o) {
			return false
		}
	}
	return true
}
