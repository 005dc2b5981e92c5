// Package nodelink renders exclusion rules as node-link diagrams.
//
// # Overview
//
// Exclusion offsets are easier to reason about as a graph: one node per
// target, and an arrow from each target to every target allowed to follow
// it. A self loop means a target may repeat. This package produces that
// graph as Graphviz DOT and renders it to SVG in process.
//
// # Usage
//
//	targets := chaos.NewTargets(4)
//	lookup := exclusion.BuildLookup(targets, []int{0})
//	dot := nodelink.ToDOT(targets, lookup, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Colors: fill color per target, matched by index
//   - Title: a graph label drawn under the diagram
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering, which
// embeds Graphviz as WebAssembly; no system install is needed.
package nodelink
