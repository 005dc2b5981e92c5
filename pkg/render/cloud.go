package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/chaosgame/pkg/core/attractor"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
)

// Point is a colored position in the unit square.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

// FromSample converts an attractor sample.
func FromSample(s attractor.Sample) Point {
	return Point{X: s.Point.X, Y: s.Point.Y, Color: s.Color}
}

// Cloud is the output of one generation run.
type Cloud struct {
	Game       string  `json:"game"`
	Seed       uint64  `json:"seed"`
	Targets    []Point `json:"targets"`
	Points     []Point `json:"points"`
	EmptySteps int     `json:"empty_steps"`
	Stuck      bool    `json:"stuck"`
}

// TargetPoints converts targets to uncolored points.
func TargetPoints(targets []*chaos.Target) []Point {
	out := make([]Point, len(targets))
	for i, t := range targets {
		out[i] = Point{X: t.Pos.X, Y: t.Pos.Y}
	}
	return out
}

// Colors returns the distinct point colors in first-seen order.
func (c *Cloud) Colors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.Points {
		if !seen[p.Color] {
			seen[p.Color] = true
			out = append(out, p.Color)
		}
	}
	return out
}

// MarshalCloud encodes a cloud as JSON.
func MarshalCloud(c *Cloud) ([]byte, error) {
	return json.Marshal(c)
}

// UnmarshalCloud decodes a cloud from JSON.
func UnmarshalCloud(data []byte) (*Cloud, error) {
	var c Cloud
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cloud: %w", err)
	}
	return &c, nil
}

// Frame maps the unit square onto a pixel area.
type Frame struct {
	Width, Height int
	Radius        float64
}

// NewFrame returns a frame of the given size; points are drawn with radius r.
func NewFrame(width, height int, r float64) Frame {
	return Frame{Width: width, Height: height, Radius: r}
}

// Map converts a unit-square point to pixel coordinates.
func (f Frame) Map(p Point) (float64, float64) {
	pad := f.Radius
	return pad + p.X*(float64(f.Width)-2*pad), pad + p.Y*(float64(f.Height)-2*pad)
}
