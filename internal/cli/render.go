package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/config"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

// renderOpts holds the raw flag values of the render command.
type renderOpts struct {
	config     string
	game       string
	preset     string
	points     int
	seed       uint64
	targets    int
	history    int
	exclusions string
	transforms []string
	coloring   string
	colors     string

	width       int
	height      int
	radius      float64
	background  string
	formats     string
	output      string
	showTargets bool

	noCache    bool
	refresh    bool
	dumpConfig string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an attractor to SVG, PNG or JSON",
		Long: `Render plays a chaos game and writes the resulting point cloud.

The game and its controls come from, in increasing priority: the defaults,
a run configuration file (--config), a preset (--preset) and individual
flags. A preset replaces the game and every control; flags such as
--targets or --exclusions then adjust it.`,
		Example: `  chaosgame render --preset "Sierpinski Triangle"
  chaosgame render --targets 4 --exclusions 0 -f svg,png -o square
  chaosgame render --game target-transforms --targets 5 --transform 0.5:0:1 --transform random
  chaosgame render --config flower.toml --points 500000
  chaosgame render --preset 5 --dump-config yaml > flower.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.pipelineOptions(cmd)
			if err != nil {
				return err
			}
			if opts.dumpConfig != "" {
				return dumpConfig(cmd.OutOrStdout(), opts.dumpConfig, po)
			}
			return c.runRender(cmd.Context(), po, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "run configuration file (.toml, .yaml, .json)")
	f.StringVar(&opts.game, "game", "", "game type (see 'chaosgame games')")
	f.StringVar(&opts.preset, "preset", "", "preset name or number (see 'chaosgame presets')")
	f.IntVarP(&opts.points, "points", "n", pipeline.DefaultPoints, "number of points")
	f.Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed")
	f.IntVar(&opts.targets, "targets", 0, "number of polygon corners")
	f.IntVar(&opts.history, "history", 0, "how many previous targets the exclusions apply to")
	f.StringVar(&opts.exclusions, "exclusions", "", `excluded offsets, e.g. "0,2", or "random"`)
	f.StringArrayVar(&opts.transforms, "transform", nil, `transform "scale:rotation:probability" or "random" (repeatable)`)
	f.StringVar(&opts.coloring, "coloring", "", "coloring mode: by-transform, by-target, gradient")
	f.StringVar(&opts.colors, "colors", "", `comma-separated colors, hex or "palette:N"`)
	f.IntVar(&opts.width, "width", pipeline.DefaultWidth, "output width in pixels")
	f.IntVar(&opts.height, "height", pipeline.DefaultHeight, "output height in pixels")
	f.Float64Var(&opts.radius, "radius", pipeline.DefaultRadius, "point radius in pixels")
	f.StringVar(&opts.background, "background", pipeline.DefaultBackground, `background color, or "none"`)
	f.StringVarP(&opts.formats, "format", "f", "", "output formats: svg, png, json (comma-separated)")
	f.StringVarP(&opts.output, "output", "o", "", "output file or base name")
	f.BoolVar(&opts.showTargets, "show-targets", false, "draw the polygon corners")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")
	f.StringVar(&opts.dumpConfig, "dump-config", "", "print the effective configuration (toml, yaml, json) instead of rendering")

	return cmd
}

// pipelineOptions merges the config file, the preset and the changed flags.
func (o *renderOpts) pipelineOptions(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if o.config != "" {
		f, err := config.Load(o.config)
		if err != nil {
			return opts, err
		}
		opts = f.Options()
	}

	changed := cmd.Flags().Changed
	if changed("preset") {
		opts.Preset = o.preset
	}
	if changed("game") {
		opts.Game = o.game
		opts.Preset = ""
	}
	if err := opts.ApplyPreset(); err != nil {
		return opts, err
	}

	if changed("points") || opts.Points == 0 {
		opts.Points = o.points
	}
	if changed("seed") || opts.Seed == 0 {
		opts.Seed = o.seed
	}
	if changed("targets") {
		opts.Controls.NumTargets = o.targets
	}
	if changed("history") {
		opts.Controls.History = o.history
	}
	if changed("exclusions") {
		excl, err := parseExclusions(o.exclusions, opts)
		if err != nil {
			return opts, err
		}
		opts.Controls.Exclusions = excl
	}
	if changed("transform") {
		ts, err := parseTransforms(o.transforms, chaos.NewRand(opts.Seed))
		if err != nil {
			return opts, err
		}
		opts.Controls.Transforms = ts
	}
	if changed("coloring") {
		mode, err := palette.ParseMode(o.coloring)
		if err != nil {
			return opts, err
		}
		opts.Controls.ColoringMode = mode
	}
	if changed("colors") {
		opts.Controls.Colors = parseColors(o.colors)
	}

	if changed("width") || opts.Width == 0 {
		opts.Width = o.width
	}
	if changed("height") || opts.Height == 0 {
		opts.Height = o.height
	}
	if changed("radius") || opts.Radius == 0 {
		opts.Radius = o.radius
	}
	if changed("background") || opts.Background == "" {
		opts.Background = o.background
	}
	if changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(o.formats)
	}
	if changed("show-targets") {
		opts.ShowTargets = o.showTargets
	}
	opts.Refresh = o.refresh
	return opts, nil
}

// parseExclusions parses "0,2" style offsets. "random" draws a random set
// for the target count in effect.
func parseExclusions(s string, opts pipeline.Options) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	if s == "random" {
		n := opts.Controls.NumTargets
		if n == 0 {
			n = 3
		}
		return exclusion.Randomize(chaos.NewRand(opts.Seed), n), nil
	}

	var out []int
	for _, part := range strings.Split(s, ",") {
		k, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidControls, "invalid exclusion offset %q", part)
		}
		out = append(out, k)
	}
	return out, nil
}

// parseTransforms parses "scale:rotation:probability" triples. Missing
// trailing fields take the default transform's values; "random" draws every
// parameter from its range.
func parseTransforms(raws []string, rng *rand.Rand) ([]chaos.Transform, error) {
	out := make([]chaos.Transform, 0, len(raws))
	for _, raw := range raws {
		raw = strings.TrimSpace(raw)
		if raw == "random" {
			out = append(out, chaos.RandomTransform(rng))
			continue
		}

		t := chaos.DefaultTransform()
		fields := strings.Split(raw, ":")
		if len(fields) > len(chaos.ParamRanges) {
			return nil, errors.New(errors.ErrCodeInvalidControls, "invalid transform %q (want scale:rotation:probability)", raw)
		}
		for i, field := range fields {
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidControls, "invalid transform %q: %s is not a number", raw, field)
			}
			setParam(&t, chaos.ParamRanges[i].Key, v)
		}
		out = append(out, t)
	}
	return out, nil
}

func setParam(t *chaos.Transform, key string, v float64) {
	switch key {
	case chaos.ParamScale:
		t.Scale = v
	case chaos.ParamRotation:
		t.Rotation = v
	case chaos.ParamProbability:
		t.Probability = v
	}
}

func parseColors(s string) []palette.Color {
	var out []palette.Color
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, palette.Color(part))
		}
	}
	return out
}

// dumpConfig validates opts and writes them as a run configuration.
func dumpConfig(w io.Writer, format string, opts pipeline.Options) error {
	f, err := config.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	file := config.FromOptions(opts)
	file.Preset = ""
	return config.Encode(w, f, file)
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ro *renderOpts) error {
	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}
	sw := startStopwatch(c.Logger)

	stop := startSpinner(ctx, spinnerOut, fmt.Sprintf("Playing %d points...", opts.Points), false)
	result, err := runner.Execute(ctx, opts)
	stop()
	if err != nil {
		return err
	}
	sw.lap("Rendered %s", strings.Join(opts.Formats, ", "))

	base := basePath(ro.output, defaultBase(opts))
	var written []string
	for _, format := range opts.Formats {
		path := base + "." + format
		if ro.output == "-" {
			path = "-"
		}
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	if ro.output == "-" {
		return nil
	}
	printSuccess("Rendered %s", describeRun(opts))
	for _, p := range written {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.GenerateHit)
	if result.Stats.Stuck {
		printWarning("No legal target remained after %d points; try fewer exclusions", result.Stats.Points)
	}
	return nil
}

// describeRun names the run by preset, or by game and target count.
func describeRun(opts pipeline.Options) string {
	if opts.Preset != "" {
		return opts.Preset
	}
	return fmt.Sprintf("%s with %d targets", opts.Game, opts.Controls.NumTargets)
}

// defaultBase derives an output name from the preset or game.
func defaultBase(opts pipeline.Options) string {
	name := opts.Preset
	if name == "" {
		name = fmt.Sprintf("%s-%d", opts.Game, opts.Controls.NumTargets)
	}
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// basePath strips a known format extension from output, falling back to
// fallback when output is empty.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseFormats splits a comma-separated format list. An empty list means svg.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return out
}
