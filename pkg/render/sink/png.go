package sink

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/chaosgame/pkg/render"
)

// RenderPNG rasterizes the cloud.
func RenderPNG(c *render.Cloud, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	f := r.frame()

	dc := gg.NewContext(r.width, r.height)
	defer dc.Close()

	if !r.transparent() {
		dc.ClearWithColor(gg.Hex(r.background))
	}

	if r.targets {
		dc.SetHexColor(targetColor)
		for _, t := range c.Targets {
			x, y := f.Map(t)
			dc.DrawCircle(x, y, r.targetRadius())
		}
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill targets: %w", err)
		}
	}

	order, groups := byColor(c.Points)
	for _, color := range order {
		fill := color
		if fill == "" {
			fill = "#000000"
		}
		dc.SetHexColor(fill)
		for _, p := range groups[color] {
			x, y := f.Map(p)
			dc.DrawCircle(x, y, r.radius)
		}
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("fill %s: %w", fill, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
