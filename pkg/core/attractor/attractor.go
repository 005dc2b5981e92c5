package attractor

import (
	"math/rand/v2"
	"time"

	"github.com/gogpu/gg"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/geom"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/core/selector"
)

// PrimingSteps is the number of steps discarded at construction.
const PrimingSteps = 100

// Config wires the selectors an attractor composes. All fields are required.
type Config struct {
	// Transforms is the full transform set; a linear map is precomputed for
	// each entry, keyed by pointer.
	Transforms []*chaos.Transform

	// Targets chooses the next target and tracks the history window.
	Targets *selector.History

	// Transform chooses the transform for the chosen target. A result that
	// is not an entry of Transforms leaves the attractor stuck for that step.
	Transform selector.TransformSelector

	// Color colors the produced point.
	Color palette.Selector
}

// Sample is one produced point and its color.
type Sample struct {
	Point geom.Point `json:"point"`
	Color string     `json:"color"`
}

// Option configures an Attractor.
type Option func(*Attractor)

// WithRand sets the source of the random starting point.
func WithRand(rng *rand.Rand) Option {
	return func(a *Attractor) { a.rng = rng }
}

// WithPriming overrides the number of discarded steps run by New.
func WithPriming(n int) Option {
	return func(a *Attractor) {
		if n >= 0 {
			a.priming = n
		}
	}
}

// Attractor is the stateful step function of one chaos game run.
type Attractor struct {
	cfg     Config
	maps    map[*chaos.Transform]gg.Matrix
	rng     *rand.Rand
	priming int
	current geom.Point
	steps   int
	empty   int
	stalled bool
}

// New builds an attractor from cfg, places the current point uniformly at
// random in the unit square and runs the priming steps.
func New(cfg Config, opts ...Option) *Attractor {
	a := &Attractor{
		cfg:     cfg,
		maps:    make(map[*chaos.Transform]gg.Matrix, len(cfg.Transforms)),
		priming: PrimingSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = chaos.NewRand(uint64(time.Now().UnixNano()))
	}

	for _, t := range cfg.Transforms {
		a.maps[t] = geom.Linear(t.Scale, t.Rotation)
	}

	a.current = geom.Pt(a.rng.Float64(), a.rng.Float64())
	for range a.priming {
		a.Step()
	}
	return a
}

// Step advances the attractor by one iteration. The boolean is false when
// no point was produced; the current point is then left unchanged.
func (a *Attractor) Step() (Sample, bool) {
	a.steps++

	target := a.cfg.Targets.Next()
	if target == nil {
		a.empty++
		a.stalled = true
		return Sample{}, false
	}

	transform := a.cfg.Transform.Select(target)
	m, ok := a.maps[transform]
	if !ok {
		a.empty++
		a.stalled = true
		return Sample{}, false
	}
	a.stalled = false

	a.current = geom.Toward(a.current, target.Pos, m)
	return Sample{
		Point: a.current,
		Color: a.cfg.Color.Color(target, transform, a.current),
	}, true
}

// Current returns the current point.
func (a *Attractor) Current() geom.Point { return a.current }

// Steps returns the number of steps taken, priming included.
func (a *Attractor) Steps() int { return a.steps }

// EmptySteps returns the number of steps that produced no point.
func (a *Attractor) EmptySteps() int { return a.empty }

// Stuck reports whether the most recent step produced no point, either
// because no legal target was left or because the selected transform is not
// one of Config.Transforms. An attractor without a legal target never
// produces another point.
func (a *Attractor) Stuck() bool { return a.stalled }
