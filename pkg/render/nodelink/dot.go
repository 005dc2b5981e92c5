package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
)

// Options configures exclusion graph rendering.
type Options struct {
	// Colors fills target nodes, matched by index. Missing entries are white.
	Colors []string

	// Title is drawn as the graph label when non-empty.
	Title string
}

// ToDOT converts an exclusion lookup to Graphviz DOT. Nodes are named after
// the targets ("T0", "T1", ...) and labeled with their 1-based position.
func ToDOT(targets []*chaos.Target, lookup exclusion.Lookup, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph exclusions {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
	}
	buf.WriteString("\n")

	for i, t := range targets {
		fmt.Fprintf(&buf, "  %q [%s];\n", t.String(), strings.Join(fmtAttrs(i, opts), ", "))
	}

	buf.WriteString("\n")
	for _, t := range targets {
		for _, next := range lookup.Successors(t) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", t.String(), next.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(i int, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", strconv.Itoa(i+1))}
	if i < len(opts.Colors) && opts.Colors[i] != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Colors[i]))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg header with a plain
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
