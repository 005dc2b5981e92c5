package selector

import (
	"math/rand/v2"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
)

// HistoryExclusion samples uniformly from the targets the resolver allows
// after the full history. Combined with a weighted resolver (see
// [exclusion.WithWeights]) the sample is probability-weighted.
func HistoryExclusion(r *exclusion.Resolver, rng *rand.Rand) Rule {
	return func(previous []*chaos.Target) *chaos.Target {
		t, _ := Sample(rng, r.Resolve(previous))
		return t
	}
}

// PairwiseExclusion applies the exclusion lookup only when every previous
// target is the same one; otherwise any target may follow. A nil most
// recent target keeps the game stuck.
func PairwiseExclusion(targets []*chaos.Target, lookup exclusion.Lookup, rng *rand.Rand) Rule {
	return func(previous []*chaos.Target) *chaos.Target {
		if len(previous) == 0 {
			t, _ := Sample(rng, targets)
			return t
		}
		if previous[0] == nil {
			return nil
		}

		candidates := targets
		if allSame(previous) {
			candidates = lookup.Successors(previous[0])
		}
		t, _ := Sample(rng, candidates)
		return t
	}
}

func allSame(ts []*chaos.Target) bool {
	for _, t := range ts[1:] {
		if t != ts[0] {
			return false
		}
	}
	return true
}
