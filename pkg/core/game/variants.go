package game

import (
	"math/rand/v2"

	"github.com/matzehuels/chaosgame/pkg/core/attractor"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/core/selector"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

// setup holds the pieces every variant derives from its controls.
type setup struct {
	rng        *rand.Rand
	transforms []*chaos.Transform
	lookup     exclusion.Lookup
	colors     palette.Selector
}

// prepare validates c and builds the shared pieces. Transforms are copied so
// the attractor owns immutable values with stable identities.
func prepare(g Game, targets []*chaos.Target, c Controls, rng *rand.Rand) (*setup, error) {
	if err := c.Validate(g); err != nil {
		return nil, err
	}
	if len(targets) != c.NumTargets {
		return nil, errors.New(errors.ErrCodeInvalidControls, "got %d targets for %d configured", len(targets), c.NumTargets)
	}

	owned := make([]chaos.Transform, len(c.Transforms))
	copy(owned, c.Transforms)
	transforms := make([]*chaos.Transform, len(owned))
	for i := range owned {
		transforms[i] = &owned[i]
	}

	colors, err := palette.New(c.Mode(), targets, transforms, c.Colors)
	if err != nil {
		return nil, err
	}

	return &setup{
		rng:        newRand(rng),
		transforms: transforms,
		lookup:     exclusion.BuildLookup(targets, c.Exclusions),
		colors:     colors,
	}, nil
}

func (s *setup) build(targets *selector.History, transforms selector.TransformSelector, opts []attractor.Option) *attractor.Attractor {
	return attractor.New(attractor.Config{
		Transforms: s.transforms,
		Targets:    targets,
		Transform:  transforms,
		Color:      s.colors,
	}, append([]attractor.Option{attractor.WithRand(s.rng)}, opts...)...)
}

type historyExclusion struct{}

func (historyExclusion) Type() Type   { return HistoryExclusion }
func (historyExclusion) Name() string { return "History Exclusion" }

func (historyExclusion) Description() string {
	return "Using the number of targets specified by the Target History control, choose the next target based on the intersection of the exclusion rules. See the “Exclusions” control below for more details."
}

func (historyExclusion) AdditionalControls() []ControlType {
	return []ControlType{ControlHistory}
}

func (historyExclusion) NumTransforms(Controls) (int, bool) { return 0, false }
func (historyExclusion) DisableTargetColoringMode() bool    { return false }

func (g historyExclusion) CreateAttractor(targets []*chaos.Target, c Controls, rng *rand.Rand, opts ...attractor.Option) (*attractor.Attractor, error) {
	s, err := prepare(g, targets, c, rng)
	if err != nil {
		return nil, err
	}
	resolver := exclusion.NewResolver(targets, s.lookup)
	history := selector.NewHistory(c.HistorySize(), selector.HistoryExclusion(resolver, s.rng))
	return s.build(history, selector.NewSharedPool(s.transforms, s.rng), opts), nil
}

type pairwiseExclusion struct{}

func (pairwiseExclusion) Type() Type   { return HistoryExclusionPairwise }
func (pairwiseExclusion) Name() string { return "History Exclusion 2" }

func (pairwiseExclusion) Description() string {
	return "Similar to the “History Exclusion” variation, however the exclusion rules are only applied if the previously two chosen targets were the same. See the “Exclusions” control below for more details."
}

func (pairwiseExclusion) AdditionalControls() []ControlType  { return nil }
func (pairwiseExclusion) NumTransforms(Controls) (int, bool) { return 0, false }
func (pairwiseExclusion) DisableTargetColoringMode() bool    { return false }

func (g pairwiseExclusion) CreateAttractor(targets []*chaos.Target, c Controls, rng *rand.Rand, opts ...attractor.Option) (*attractor.Attractor, error) {
	s, err := prepare(g, targets, c, rng)
	if err != nil {
		return nil, err
	}
	history := selector.NewHistory(2, selector.PairwiseExclusion(targets, s.lookup, s.rng))
	return s.build(history, selector.NewSharedPool(s.transforms, s.rng), opts), nil
}

type targetTransforms struct{}

func (targetTransforms) Type() Type   { return TargetTransforms }
func (targetTransforms) Name() string { return "Target Transforms" }

func (targetTransforms) Description() string {
	return "Instead of choosing a transformation randomly, associate a transform with each target."
}

func (targetTransforms) AdditionalControls() []ControlType {
	return []ControlType{ControlHistory}
}

func (targetTransforms) NumTransforms(c Controls) (int, bool) { return c.NumTargets, true }
func (targetTransforms) DisableTargetColoringMode() bool      { return true }

func (g targetTransforms) CreateAttractor(targets []*chaos.Target, c Controls, rng *rand.Rand, opts ...attractor.Option) (*attractor.Attractor, error) {
	s, err := prepare(g, targets, c, rng)
	if err != nil {
		return nil, err
	}
	perTarget := selector.NewPerTarget(targets, s.transforms)
	resolver := exclusion.NewResolver(targets, s.lookup, exclusion.WithWeights(selector.TargetWeights(perTarget, s.transforms)))
	history := selector.NewHistory(c.HistorySize(), selector.HistoryExclusion(resolver, s.rng))
	return s.build(history, perTarget, opts), nil
}
