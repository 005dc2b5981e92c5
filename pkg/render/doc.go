// Package render turns generated point clouds into output artifacts.
//
// # Overview
//
// A [Cloud] is the product of one generation run: the colored points in the
// unit square, the target positions they were drawn toward, and whether the
// attractor got stuck along the way. Output formats live in subpackages:
//
//   - [sink]: SVG, PNG and JSON renderings of a cloud
//   - [nodelink]: the exclusion transition graph as DOT or SVG via Graphviz
//
// # Frames
//
// Renderers map the unit square onto a pixel [Frame] with a margin of one
// point radius on each side, so points on the polygon stay fully visible.
// The y axis points down, matching both SVG and raster coordinates.
//
//	f := render.NewFrame(800, 800, 0.6)
//	x, y := f.Map(p)
//
// [sink]: github.com/matzehuels/chaosgame/pkg/render/sink
// [nodelink]: github.com/matzehuels/chaosgame/pkg/render/nodelink
package render
