package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/chaosgame/pkg/render"
)

// RenderSVG renders the cloud as SVG.
func RenderSVG(c *render.Cloud, opts ...Option) []byte {
	r := newRenderer(opts...)
	f := r.frame()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.width, r.height, r.width, r.height)

	if !r.transparent() {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	if r.targets {
		fmt.Fprintf(&buf, `  <g class="targets" fill="%s">`+"\n", targetColor)
		for _, t := range c.Targets {
			x, y := f.Map(t)
			fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n", x, y, r.targetRadius())
		}
		buf.WriteString("  </g>\n")
	}

	order, groups := byColor(c.Points)
	for _, color := range order {
		fill := color
		if fill == "" {
			fill = "#000000"
		}
		fmt.Fprintf(&buf, `  <g class="points" fill="%s">`+"\n", fill)
		for _, p := range groups[color] {
			x, y := f.Map(p)
			fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n", x, y, r.radius)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
