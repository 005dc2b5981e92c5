package game

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/matzehuels/chaosgame/pkg/core/attractor"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

// Type identifies a game variant.
type Type string

// Game variants.
const (
	HistoryExclusion         Type = "history-exclusion"
	HistoryExclusionPairwise Type = "history-exclusion-2"
	TargetTransforms         Type = "target-transforms"
)

// Game is one entry of the catalog.
type Game interface {
	// Type is the catalog key.
	Type() Type

	// Name is a short human-readable title.
	Name() string

	// Description explains the selection rule to users.
	Description() string

	// AdditionalControls lists the controls this game adds to the common set.
	AdditionalControls() []ControlType

	// NumTransforms reports the transform count the game requires, if any.
	NumTransforms(c Controls) (n int, fixed bool)

	// DisableTargetColoringMode reports whether coloring by target is
	// unavailable for this game.
	DisableTargetColoringMode() bool

	// CreateAttractor validates c and builds a primed attractor. A nil rng
	// is replaced by a time-seeded one.
	CreateAttractor(targets []*chaos.Target, c Controls, rng *rand.Rand, opts ...attractor.Option) (*attractor.Attractor, error)
}

var catalog = []Game{
	historyExclusion{},
	pairwiseExclusion{},
	targetTransforms{},
}

// Catalog returns every game in display order.
func Catalog() []Game {
	out := make([]Game, len(catalog))
	copy(out, catalog)
	return out
}

// Types returns the catalog keys in display order.
func Types() []Type {
	out := make([]Type, len(catalog))
	for i, g := range catalog {
		out[i] = g.Type()
	}
	return out
}

// Lookup returns the game registered under t.
func Lookup(t Type) (Game, error) {
	for _, g := range catalog {
		if g.Type() == t {
			return g, nil
		}
	}
	names := make([]string, len(catalog))
	for i, g := range catalog {
		names[i] = string(g.Type())
	}
	return nil, errors.New(errors.ErrCodeInvalidGame, "unknown game %q (must be one of: %s)", t, strings.Join(names, ", "))
}

// Build looks up the game, fills defaults into c, creates the targets and
// returns the attractor together with the effective controls.
func Build(t Type, c Controls, rng *rand.Rand, opts ...attractor.Option) (*attractor.Attractor, Controls, error) {
	g, err := Lookup(t)
	if err != nil {
		return nil, c, err
	}
	c = c.WithDefaults(g)
	a, err := g.CreateAttractor(chaos.NewTargets(c.NumTargets), c, rng, opts...)
	if err != nil {
		return nil, c, err
	}
	return a, c, nil
}

func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return chaos.NewRand(uint64(time.Now().UnixNano()))
}
