package sink

import "github.com/matzehuels/chaosgame/pkg/render"

// Defaults for rendering.
const (
	DefaultSize       = 800
	DefaultRadius     = 0.6
	DefaultBackground = "#ffffff"

	// targetColor is the fill of target markers.
	targetColor = "#bbbbbb"
)

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	width, height int
	radius        float64
	background    string
	targets       bool
}

// WithSize sets the output size in pixels.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithRadius sets the point radius in pixels.
func WithRadius(radius float64) Option {
	return func(r *renderer) {
		if radius > 0 {
			r.radius = radius
		}
	}
}

// WithBackground sets the background color. An empty string keeps the
// default; "none" leaves the background transparent.
func WithBackground(hex string) Option {
	return func(r *renderer) {
		if hex != "" {
			r.background = hex
		}
	}
}

// WithTargets draws a marker at every target.
func WithTargets() Option { return func(r *renderer) { r.targets = true } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:      DefaultSize,
		height:     DefaultSize,
		radius:     DefaultRadius,
		background: DefaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) frame() render.Frame {
	return render.NewFrame(r.width, r.height, max(r.radius, r.targetRadius()))
}

func (r renderer) targetRadius() float64 {
	if !r.targets {
		return 0
	}
	return 4 * max(r.radius, 1)
}

func (r renderer) transparent() bool { return r.background == "none" }

// byColor groups points by color, keeping first-seen color order.
func byColor(points []render.Point) ([]string, map[string][]render.Point) {
	groups := make(map[string][]render.Point)
	var order []string
	for _, p := range points {
		if _, ok := groups[p.Color]; !ok {
			order = append(order, p.Color)
		}
		groups[p.Color] = append(groups[p.Color], p)
	}
	return order, groups
}
