package selector

import (
	"math/rand/v2"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

// TransformSelector chooses the transform applied when moving toward target.
type TransformSelector interface {
	Select(target *chaos.Target) *chaos.Transform
}

// SharedPool samples one weighted pool of transforms regardless of target.
type SharedPool struct {
	pool []*chaos.Transform
	rng  *rand.Rand
}

// NewSharedPool builds the weighted pool once. Each transform appears
// floor(100 · probability / total) times.
func NewSharedPool(transforms []*chaos.Transform, rng *rand.Rand) *SharedPool {
	return &SharedPool{
		pool: BuildPool(transforms, func(t *chaos.Transform) float64 { return t.Probability }),
		rng:  rng,
	}
}

// Select returns a weighted random transform, or nil if the pool is empty.
func (s *SharedPool) Select(*chaos.Target) *chaos.Transform {
	t, _ := Sample(s.rng, s.pool)
	return t
}

// Pool exposes the replicated pool.
func (s *SharedPool) Pool() []*chaos.Transform { return s.pool }

// PerTarget returns the transform permanently associated with each target.
type PerTarget map[*chaos.Target]*chaos.Transform

// NewPerTarget associates transforms[i] with targets[i].
func NewPerTarget(targets []*chaos.Target, transforms []*chaos.Transform) PerTarget {
	m := make(PerTarget, len(targets))
	for i, t := range targets {
		if i < len(transforms) {
			m[t] = transforms[i]
		}
	}
	return m
}

// Select returns the transform associated with target.
func (p PerTarget) Select(target *chaos.Target) *chaos.Transform {
	return p[target]
}

// TargetWeights gives each target the pool copy count of its associated
// transform, measured against the total probability of all transforms.
func TargetWeights(p PerTarget, transforms []*chaos.Transform) map[*chaos.Target]int {
	var total float64
	for _, t := range transforms {
		total += t.Probability
	}
	weights := make(map[*chaos.Target]int, len(p))
	for target, tr := range p {
		weights[target] = Copies(tr.Probability, total)
	}
	return weights
}
