// Package sink provides output format renderers for point clouds.
//
// # Overview
//
// A "sink" transforms a generated [render.Cloud] into a final output format:
//
//   - SVG: one circle per point, grouped by color
//   - PNG: rasterized with github.com/gogpu/gg
//   - JSON: the cloud itself, for external tools and round-tripping
//
// # SVG Output
//
//	svg := sink.RenderSVG(cloud,
//	    sink.WithSize(800, 800),
//	    sink.WithRadius(0.6),
//	    sink.WithBackground("#ffffff"),
//	    sink.WithTargets(),
//	)
//
// # PNG Output
//
// [RenderPNG] draws the same picture in process; no external tools are
// required. Points of one color are filled as a single path.
//
//	png, err := sink.RenderPNG(cloud, sink.WithSize(1600, 1600))
//
// [render.Cloud]: github.com/matzehuels/chaosgame/pkg/render.Cloud
package sink
