package chaos

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/chaosgame/pkg/core/geom"
)

// Target is one vertex of the target polygon.
type Target struct {
	// Index is the position of the target in polygon order.
	Index int

	// Pos is the fixed location of the target in the unit square.
	Pos geom.Point
}

// String implements fmt.Stringer.
func (t *Target) String() string {
	if t == nil {
		return "<none>"
	}
	return fmt.Sprintf("T%d", t.Index)
}

// NewTargets builds the n targets of a regular polygon.
func NewTargets(n int) []*Target {
	pts := geom.Polygon(n)
	targets := make([]*Target, len(pts))
	for i, p := range pts {
		targets[i] = &Target{Index: i, Pos: p}
	}
	return targets
}

// Transform parameter keys, as exposed to configuration consumers.
const (
	ParamScale       = "scale"
	ParamRotation    = "rotation"
	ParamProbability = "probability"
)

// Transform is a uniform scale followed by a rotation, chosen with a weight
// proportional to Probability.
type Transform struct {
	Scale       float64 `json:"scale" toml:"scale" yaml:"scale"`
	Rotation    float64 `json:"rotation" toml:"rotation" yaml:"rotation"`
	Probability float64 `json:"probability" toml:"probability" yaml:"probability"`
}

// ParamRange is the editable range of one transform parameter.
type ParamRange struct {
	Key      string
	MinValue float64
	MaxValue float64
}

// ParamRanges lists the transform parameters with their editable ranges.
// The probability range bounds random draws and sliders only; any
// non-negative weight is a valid probability.
var ParamRanges = []ParamRange{
	{Key: ParamScale, MinValue: 0, MaxValue: 1},
	{Key: ParamRotation, MinValue: -math.Pi, MaxValue: math.Pi},
	{Key: ParamProbability, MinValue: 0, MaxValue: 1},
}

// DefaultTransform returns the transform of the classic chaos game: move
// halfway toward the target with no rotation.
func DefaultTransform() Transform {
	return Transform{Scale: 0.5, Rotation: 0, Probability: 1}
}

// DefaultTransforms returns n copies of DefaultTransform.
func DefaultTransforms(n int) []Transform {
	out := make([]Transform, n)
	for i := range out {
		out[i] = DefaultTransform()
	}
	return out
}

// NewRand returns the PCG source for seed. Runs with the same seed draw the
// same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomTransform draws every parameter uniformly from its range.
func RandomTransform(rng *rand.Rand) Transform {
	var t Transform
	for _, r := range ParamRanges {
		v := r.MinValue + rng.Float64()*(r.MaxValue-r.MinValue)
		switch r.Key {
		case ParamScale:
			t.Scale = v
		case ParamRotation:
			t.Rotation = v
		case ParamProbability:
			t.Probability = v
		}
	}
	return t
}

// TotalProbability sums the weights of transforms.
func TotalProbability(transforms []Transform) float64 {
	var total float64
	for _, t := range transforms {
		total += t.Probability
	}
	return total
}

// Percent returns p as a share of total, in percent truncated to two
// decimals: floor(p/total*10000)/100. A zero total yields 0.
func Percent(p, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Floor(p/total*10000) / 100
}
