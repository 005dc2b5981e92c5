package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/geom"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

// Mode selects a coloring policy.
type Mode string

// Coloring modes.
const (
	ModeByTransform Mode = "by-transform"
	ModeByTarget    Mode = "by-target"
	ModeGradient    Mode = "gradient"
)

// GradientCorners is the number of colors a gradient needs.
const GradientCorners = 4

// Modes lists the valid modes.
var Modes = []Mode{ModeByTransform, ModeByTarget, ModeGradient}

// ParseMode validates a mode name. The empty string is ModeByTransform.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeByTransform, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidControls, "invalid coloring mode %q (must be one of: by-transform, by-target, gradient)", s)
}

// Selector picks the color of a freshly produced point.
type Selector interface {
	Color(target *chaos.Target, transform *chaos.Transform, p geom.Point) string
}

// New builds the selector for mode. Colors are matched by index to
// transforms (ModeByTransform) or targets (ModeByTarget); a gradient uses
// the first four colors as its corners.
func New(mode Mode, targets []*chaos.Target, transforms []*chaos.Transform, colors []Color) (Selector, error) {
	resolved, err := ResolveAll(colors)
	if err != nil {
		return nil, err
	}

	switch mode {
	case "", ModeByTransform:
		return newByTransform(transforms, resolved), nil
	case ModeByTarget:
		return newByTarget(targets, resolved), nil
	case ModeGradient:
		return newGradient(resolved)
	}
	return nil, errors.New(errors.ErrCodeInvalidControls, "invalid coloring mode %q", mode)
}

// ByTransform colors a point by the transform that produced it.
type ByTransform map[*chaos.Transform]string

func newByTransform(transforms []*chaos.Transform, colors []string) ByTransform {
	m := make(ByTransform, len(transforms))
	for i, t := range transforms {
		if i < len(colors) {
			m[t] = colors[i]
		}
	}
	return m
}

// Color implements Selector.
func (m ByTransform) Color(_ *chaos.Target, transform *chaos.Transform, _ geom.Point) string {
	return m[transform]
}

// ByTarget colors a point by the target it moved toward.
type ByTarget map[*chaos.Target]string

func newByTarget(targets []*chaos.Target, colors []string) ByTarget {
	m := make(ByTarget, len(targets))
	for i, t := range targets {
		if i < len(colors) {
			m[t] = colors[i]
		}
	}
	return m
}

// Color implements Selector.
func (m ByTarget) Color(target *chaos.Target, _ *chaos.Transform, _ geom.Point) string {
	return m[target]
}

// Gradient blends four corner colors bilinearly over the unit square.
type Gradient struct {
	// channels[c] holds channel c (r, g, b in 0..255) as
	// [[corner0, corner2], [corner1, corner3]]: rows follow y, columns x.
	channels [3][2][2]float64
}

// NewGradient builds a gradient from four resolved or symbolic corner colors.
func NewGradient(corners []Color) (*Gradient, error) {
	resolved, err := ResolveAll(corners)
	if err != nil {
		return nil, err
	}
	return newGradient(resolved)
}

func newGradient(colors []string) (*Gradient, error) {
	if len(colors) < GradientCorners {
		return nil, errors.New(errors.ErrCodeInvalidControls, "gradient needs %d colors, got %d", GradientCorners, len(colors))
	}

	var rgb [GradientCorners][3]float64
	for i := range GradientCorners {
		c, err := colorful.Hex(colors[i])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid gradient color %q", colors[i])
		}
		rgb[i] = [3]float64{c.R * 255, c.G * 255, c.B * 255}
	}

	g := &Gradient{}
	for ch := range 3 {
		g.channels[ch] = [2][2]float64{
			{rgb[0][ch], rgb[2][ch]},
			{rgb[1][ch], rgb[3][ch]},
		}
	}
	return g, nil
}

// Color implements Selector.
func (g *Gradient) Color(_ *chaos.Target, _ *chaos.Transform, p geom.Point) string {
	return g.At(p).Hex()
}

// At returns the blended color at p.
func (g *Gradient) At(p geom.Point) colorful.Color {
	x, y := geom.Clamp01(p.X), geom.Clamp01(p.Y)
	var out [3]float64
	for ch, m := range g.channels {
		top := (1-x)*m[0][0] + x*m[0][1]
		bottom := (1-x)*m[1][0] + x*m[1][1]
		out[ch] = (1-y)*top + y*bottom
	}
	return colorful.Color{R: out[0] / 255, G: out[1] / 255, B: out[2] / 255}.Clamped()
}
