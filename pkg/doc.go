// Package pkg provides the libraries behind chaosgame.
//
// # Overview
//
// Chaosgame draws fractal attractors by playing the chaos game: a point
// repeatedly moves toward a randomly chosen corner of a regular polygon,
// and the trail it leaves converges onto an attractor. Restricting which
// corner may follow which, or attaching a transform to each corner,
// produces a wide family of shapes. The pkg directory is organized into
// three areas:
//
//  1. [core] - The engine (targets, selection rules, colors, iteration)
//  2. [render] - Output (SVG, PNG, JSON, exclusion graphs)
//  3. Infrastructure - [pipeline], [cache], [store], [server], [config]
//
// # Architecture
//
// The data flow of one run:
//
//	game + controls (or a preset)
//	         ↓
//	    [core/game] validates and builds a primed attractor
//	         ↓
//	    [core/attractor] produces colored points
//	         ↓
//	    [render] collects a cloud, [render/sink] draws it
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
//	opts := pipeline.Options{Preset: "Sierpinski Triangle", Formats: []string{"png"}}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("triangle.png", result.Artifacts["png"], 0o644)
//
// # Main Packages
//
// ## Engine
//
// [core/geom] - Regular polygons and the scale-and-rotate update step.
//
// [core/chaos] - Targets, transforms and their parameter ranges.
//
// [core/exclusion] - Exclusion lookups and the memoized resolver that turns
// a target history into the set of legal next targets.
//
// [core/selector] - Weighted pools and the history-window target selector.
//
// [core/palette] - Color references and the three coloring policies.
//
// [core/attractor] - The iteration core.
//
// [core/game] - The game catalog, controls and built-in presets.
//
// ## Infrastructure
//
// [pipeline] - Generate and render stages shared by the CLI and the server.
//
// [cache] - File, Redis and null caches for clouds and artifacts.
//
// [store] - Render records in memory, on disk or in MongoDB.
//
// [server] - HTTP API and WebSocket point stream.
//
// [config] - TOML, YAML and JSON run configuration files.
//
// [core]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/geom
// [core/chaos]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/chaos
// [core/exclusion]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/exclusion
// [core/selector]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/selector
// [core/palette]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/palette
// [core/attractor]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/attractor
// [core/game]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/core/game
// [render]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/chaosgame/pkg/config
package pkg
