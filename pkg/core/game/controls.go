package game

import (
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

// ControlType identifies a user-facing control.
type ControlType string

// Control identifiers.
const (
	ControlPreset       ControlType = "preset"
	ControlNumTargets   ControlType = "num-targets"
	ControlHistory      ControlType = "history"
	ControlExclusions   ControlType = "exclusions"
	ControlTransforms   ControlType = "transforms"
	ControlColors       ControlType = "colors"
	ControlColoringMode ControlType = "coloring-mode"
)

// Control limits and defaults.
const (
	MinTargets = 3
	MaxTargets = 12

	MinHistory     = 1
	MaxHistory     = 5
	DefaultHistory = 2

	MaxTransforms = 10

	DefaultNumTargets = 3
)

// Controls is the configuration of one run.
type Controls struct {
	NumTargets   int               `json:"num_targets" toml:"num_targets" yaml:"num_targets"`
	History      int               `json:"history,omitempty" toml:"history" yaml:"history,omitempty"`
	Exclusions   []int             `json:"exclusions" toml:"exclusions" yaml:"exclusions"`
	Transforms   []chaos.Transform `json:"transforms" toml:"transforms" yaml:"transforms"`
	Colors       []palette.Color   `json:"colors,omitempty" toml:"colors" yaml:"colors,omitempty"`
	ColoringMode palette.Mode      `json:"coloring_mode,omitempty" toml:"coloring_mode" yaml:"coloring_mode,omitempty"`
}

// HistorySize returns the configured history, or DefaultHistory if unset.
func (c Controls) HistorySize() int {
	if c.History > 0 {
		return c.History
	}
	return DefaultHistory
}

// Mode returns the coloring mode, treating unset as by-transform.
func (c Controls) Mode() palette.Mode {
	if c.ColoringMode == "" {
		return palette.ModeByTransform
	}
	return c.ColoringMode
}

// RequiredColors is the number of colors the coloring mode consumes.
func (c Controls) RequiredColors() int {
	switch c.Mode() {
	case palette.ModeByTarget:
		return c.NumTargets
	case palette.ModeGradient:
		return palette.GradientCorners
	default:
		return len(c.Transforms)
	}
}

// Clone returns a deep copy of c.
func (c Controls) Clone() Controls {
	c.Exclusions = slices.Clone(c.Exclusions)
	c.Transforms = slices.Clone(c.Transforms)
	c.Colors = slices.Clone(c.Colors)
	return c
}

// WithDefaults returns a copy of c with unset values filled in for g:
// the target count, the history size, default transforms (one per target
// when g fixes the count) and palette colors for any missing entries.
func (c Controls) WithDefaults(g Game) Controls {
	c = c.Clone()
	if c.NumTargets == 0 {
		c.NumTargets = DefaultNumTargets
	}
	if c.History == 0 && slices.Contains(g.AdditionalControls(), ControlHistory) {
		c.History = DefaultHistory
	}

	want := len(c.Transforms)
	if n, fixed := g.NumTransforms(c); fixed {
		want = n
	} else if want == 0 {
		want = 1
	}
	if len(c.Transforms) > want {
		c.Transforms = c.Transforms[:want]
	}
	for len(c.Transforms) < want {
		c.Transforms = append(c.Transforms, chaos.DefaultTransform())
	}

	if need := c.RequiredColors(); len(c.Colors) < need {
		defaults := palette.DefaultColors(need)
		c.Colors = append(c.Colors, defaults[len(c.Colors):]...)
	}
	return c
}

// Validate checks c against the requirements of g. It does not fill
// defaults; call WithDefaults first for partial input.
func (c Controls) Validate(g Game) error {
	if err := errors.ValidateCount("number of targets", c.NumTargets, MinTargets, MaxTargets); err != nil {
		return err
	}
	if slices.Contains(g.AdditionalControls(), ControlHistory) {
		if err := errors.ValidateCount("history", c.HistorySize(), MinHistory, MaxHistory); err != nil {
			return err
		}
	}

	for _, k := range c.Exclusions {
		if k < 0 || k >= c.NumTargets {
			return errors.New(errors.ErrCodeInvalidControls, "exclusion offset %d out of range [0, %d]", k, c.NumTargets-1)
		}
	}

	if err := c.validateTransforms(g); err != nil {
		return err
	}

	mode, err := palette.ParseMode(string(c.ColoringMode))
	if err != nil {
		return err
	}
	if mode == palette.ModeByTarget && g.DisableTargetColoringMode() {
		return errors.New(errors.ErrCodeInvalidControls, "coloring by target is not available for %s", g.Type())
	}
	if need := c.RequiredColors(); len(c.Colors) < need {
		return errors.New(errors.ErrCodeInvalidControls, "%s coloring needs %d colors, got %d", mode, need, len(c.Colors))
	}
	_, err = palette.ResolveAll(c.Colors)
	return err
}

func (c Controls) validateTransforms(g Game) error {
	if n, fixed := g.NumTransforms(c); fixed {
		if len(c.Transforms) != n {
			return errors.New(errors.ErrCodeInvalidControls, "%s needs exactly %d transforms, got %d", g.Type(), n, len(c.Transforms))
		}
	} else if err := errors.ValidateCount("number of transforms", len(c.Transforms), 1, MaxTransforms); err != nil {
		return err
	}

	for i, t := range c.Transforms {
		for _, r := range chaos.ParamRanges {
			if r.Key == chaos.ParamProbability {
				continue
			}
			if err := errors.ValidateRange(transformParam(i, r.Key), paramValue(t, r.Key), r.MinValue, r.MaxValue); err != nil {
				return err
			}
		}
		// Probabilities are relative weights with no upper bound.
		if !(t.Probability >= 0) || math.IsInf(t.Probability, 1) {
			return errors.New(errors.ErrCodeInvalidControls, "%s must be a non-negative weight, got %g", transformParam(i, chaos.ParamProbability), t.Probability)
		}
	}
	if chaos.TotalProbability(c.Transforms) <= 0 {
		return errors.New(errors.ErrCodeInvalidControls, "transform probabilities must not all be zero")
	}
	return nil
}

// Describe explains the exclusion rule of c under g.
func (c Controls) Describe(g Game) string {
	if g.Type() == HistoryExclusionPairwise {
		return exclusion.Describe(c.Exclusions, 2, true)
	}
	return exclusion.Describe(c.Exclusions, c.HistorySize(), false)
}

func transformParam(i int, key string) string {
	return "transform " + strconv.Itoa(i+1) + " " + key
}

func paramValue(t chaos.Transform, key string) float64 {
	switch key {
	case chaos.ParamScale:
		return t.Scale
	case chaos.ParamRotation:
		return t.Rotation
	case chaos.ParamProbability:
		return t.Probability
	}
	return 0
}
