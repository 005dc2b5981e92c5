package pipeline

import (
	"context"

	"github.com/matzehuels/chaosgame/pkg/core/attractor"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/render"
)

// cancelCheckInterval is how many steps run between context checks.
const cancelCheckInterval = 4096

// NewAttractor validates opts and builds a primed attractor for them,
// together with the targets it moves toward.
func NewAttractor(opts Options) (*attractor.Attractor, []*chaos.Target, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, nil, err
	}
	a, c, err := game.Build(game.Type(opts.Game), opts.Controls, chaos.NewRand(opts.Seed))
	if err != nil {
		return nil, nil, err
	}
	return a, chaos.NewTargets(c.NumTargets), nil
}

// Generate runs the attractor until opts.Points points are produced or the
// attractor gets stuck.
func Generate(ctx context.Context, opts Options) (cloud *render.Cloud, err error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}

	span := observability.Begin(ctx, observability.OpGenerate, opts.Game)
	defer func() {
		produced := 0
		if cloud != nil {
			produced = len(cloud.Points)
		}
		span.End(produced, err)
	}()

	a, targets, err := NewAttractor(opts)
	if err != nil {
		return nil, err
	}

	cloud = &render.Cloud{
		Game:    opts.Game,
		Seed:    opts.Seed,
		Targets: render.TargetPoints(targets),
		Points:  make([]render.Point, 0, opts.Points),
	}
	for i := 0; len(cloud.Points) < opts.Points; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.FromContext(err, "generation stopped after %d points", len(cloud.Points))
			}
		}
		s, ok := a.Step()
		if !ok {
			if a.Stuck() {
				cloud.Stuck = true
				break
			}
			continue
		}
		cloud.Points = append(cloud.Points, render.FromSample(s))
	}
	cloud.EmptySteps = a.EmptySteps()

	opts.Logger.Debug("generated points",
		"game", opts.Game,
		"points", len(cloud.Points),
		"empty_steps", cloud.EmptySteps,
		"stuck", cloud.Stuck)
	return cloud, nil
}
