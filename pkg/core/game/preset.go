package game

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

// Preset is a named, ready-made configuration.
type Preset struct {
	Name     string   `json:"name"`
	Game     Type     `json:"game"`
	Controls Controls `json:"controls"`
}

func half(rotation, probability float64) chaos.Transform {
	return chaos.Transform{Scale: 0.5, Rotation: rotation, Probability: probability}
}

var presets = []Preset{
	{
		Name: "Sierpinski Triangle",
		Game: HistoryExclusion,
		Controls: Controls{
			NumTargets: 3,
			History:    1,
			Transforms: []chaos.Transform{half(0, 1)},
			Colors:     []palette.Color{palette.Ref(0)},
		},
	},
	{
		Name: "Square No Repeat",
		Game: HistoryExclusion,
		Controls: Controls{
			NumTargets:   4,
			History:      1,
			Exclusions:   []int{0},
			Transforms:   []chaos.Transform{half(0, 1)},
			Colors:       palette.DefaultColors(4),
			ColoringMode: palette.ModeByTarget,
		},
	},
	{
		Name: "Square Crosses",
		Game: HistoryExclusion,
		Controls: Controls{
			NumTargets:   4,
			History:      2,
			Exclusions:   []int{2},
			Transforms:   []chaos.Transform{half(0, 1)},
			Colors:       []palette.Color{"#e4572e", "#29335c", "#f3a712", "#2a9d8f"},
			ColoringMode: palette.ModeGradient,
		},
	},
	{
		Name: "Pentagon Star",
		Game: HistoryExclusion,
		Controls: Controls{
			NumTargets:   5,
			History:      2,
			Exclusions:   []int{0},
			Transforms:   []chaos.Transform{half(0, 1)},
			Colors:       palette.DefaultColors(5),
			ColoringMode: palette.ModeByTarget,
		},
	},
	{
		Name: "Hexagon Flower",
		Game: HistoryExclusionPairwise,
		Controls: Controls{
			NumTargets: 6,
			Exclusions: []int{0, 1, 5},
			Transforms: []chaos.Transform{
				{Scale: 0.45, Rotation: 0, Probability: 1},
				{Scale: 0.5, Rotation: math.Pi / 6, Probability: 0.5},
			},
			Colors: []palette.Color{palette.Ref(8), palette.Ref(4)},
		},
	},
	{
		Name: "Spiral Triangle",
		Game: HistoryExclusion,
		Controls: Controls{
			NumTargets: 3,
			History:    1,
			Transforms: []chaos.Transform{
				{Scale: 0.55, Rotation: 0.3, Probability: 1},
				{Scale: 0.5, Rotation: -0.1, Probability: 0.5},
			},
			Colors: []palette.Color{palette.Ref(2), palette.Ref(1)},
		},
	},
	{
		Name: "Weighted Corners",
		Game: TargetTransforms,
		Controls: Controls{
			NumTargets: 4,
			History:    1,
			Exclusions: []int{0},
			Transforms: []chaos.Transform{
				{Scale: 0.5, Rotation: 0, Probability: 1},
				{Scale: 0.45, Rotation: 0.2, Probability: 0.5},
				{Scale: 0.5, Rotation: 0, Probability: 1},
				{Scale: 0.45, Rotation: -0.2, Probability: 0.5},
			},
			Colors:       []palette.Color{"#000000", "#e4572e", "#669bbc", "#f3a712"},
			ColoringMode: palette.ModeGradient,
		},
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Controls = p.Controls.Clone()
		out[i] = p
	}
	return out
}

// FindPreset returns the preset with the given name (case-insensitive) or
// 1-based position.
func FindPreset(ref string) (Preset, error) {
	ref = strings.TrimSpace(ref)
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 1 || i > len(presets) {
			return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "preset %d out of range [1, %d]", i, len(presets))
		}
		return Presets()[i-1], nil
	}
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q", ref)
}
