// Package pipeline provides the generate → render pipeline for chaosgame.
//
// This package turns a game configuration into rendered artifacts and is
// shared by the CLI and the HTTP server. By centralizing defaults and
// validation here, every entry point behaves the same.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: build the game's attractor and collect a point cloud
//  2. Render: draw the cloud in each requested format (SVG, PNG, JSON)
//
// Both stages can be run independently or through a [Runner], which caches
// the output of each stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Preset:  "Sierpinski Triangle",
//	    Points:  100000,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	cloud, err := pipeline.Generate(ctx, opts)
//	artifacts, err := pipeline.Render(ctx, cloud, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chaosgame/pkg/cache"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/render"
	"github.com/matzehuels/chaosgame/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPoints is the number of points generated per run.
	DefaultPoints = 50000

	// MaxPoints bounds a single run.
	MaxPoints = 5_000_000

	// DefaultWidth is the default output width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default output height in pixels.
	DefaultHeight = 800

	// MaxSize bounds the output width and height.
	MaxSize = 8192

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultGame is the game used when none is given.
	DefaultGame = string(game.HistoryExclusion)

	// DefaultRadius is the default point radius in pixels.
	DefaultRadius = sink.DefaultRadius

	// DefaultBackground is the default background color.
	DefaultBackground = sink.DefaultBackground
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Game     string        `json:"game,omitempty"`
	Preset   string        `json:"preset,omitempty"` // Name or 1-based index; replaces Game and Controls
	Controls game.Controls `json:"controls"`
	Points   int           `json:"points,omitempty"`
	Seed     uint64        `json:"seed,omitempty"`
	Refresh  bool          `json:"refresh,omitempty"`

	// Render options
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	Radius      float64  `json:"radius,omitempty"`
	Background  string   `json:"background,omitempty"` // Hex color or "none"
	Formats     []string `json:"formats,omitempty"`
	ShowTargets bool     `json:"show_targets,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`

	// presetApplied keeps later validation from overwriting controls that
	// were edited after the preset was resolved.
	presetApplied bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Cloud is the generated point cloud.
	Cloud *render.Cloud

	// Controls are the effective controls after defaults were applied.
	Controls game.Controls

	// PointsHash is the content hash of the cloud.
	PointsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points       int           `json:"points"`
	EmptySteps   int           `json:"empty_steps"`
	Stuck        bool          `json:"stuck"`
	GenerateTime time.Duration `json:"generate_time"`
	RenderTime   time.Duration `json:"render_time"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool `json:"generate_hit"` // Whether the points came from cache
	RenderHit   bool `json:"render_hit"`   // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the preset, applies defaults and validates
// every field. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate resolves the preset and game, fills in default
// controls and validates them. A preset is applied once; controls edited
// afterwards are kept.
func (o *Options) ValidateForGenerate() error {
	if err := o.ApplyPreset(); err != nil {
		return err
	}
	if o.Game == "" {
		o.Game = DefaultGame
	}
	g, err := game.Lookup(game.Type(o.Game))
	if err != nil {
		return err
	}

	o.Controls = o.Controls.WithDefaults(g)
	if err := o.Controls.Validate(g); err != nil {
		return err
	}

	if o.Points == 0 {
		o.Points = DefaultPoints
	}
	if err := errors.ValidateCount("points", o.Points, 1, MaxPoints); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ApplyPreset replaces Game and Controls with the named preset. Later calls
// are no-ops, so callers may override preset controls after applying it.
func (o *Options) ApplyPreset() error {
	if o.Preset == "" || o.presetApplied {
		return nil
	}
	p, err := game.FindPreset(o.Preset)
	if err != nil {
		return err
	}
	o.Game = string(p.Game)
	o.Controls = p.Controls
	o.Preset = p.Name
	o.presetApplied = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateCount("width", o.Width, 1, MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateCount("height", o.Height, 1, MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateRange("radius", o.Radius, 0.01, 100); err != nil {
		return err
	}
	if o.Background != "none" {
		if _, err := resolveBackground(o.Background); err != nil {
			return err
		}
	}
	return ValidateFormats(o.Formats)
}

// SinkOptions returns the renderer options for o.
func (o *Options) SinkOptions() []sink.Option {
	bg := o.Background
	if resolved, err := resolveBackground(bg); err == nil {
		bg = resolved
	}
	opts := []sink.Option{
		sink.WithSize(o.Width, o.Height),
		sink.WithRadius(o.Radius),
		sink.WithBackground(bg),
	}
	if o.ShowTargets {
		opts = append(opts, sink.WithTargets())
	}
	return opts
}

// PointsKeyOpts returns cache key options for point generation.
func (o *Options) PointsKeyOpts() cache.PointsKeyOpts {
	hash, _ := cache.HashJSON(o.Controls)
	return cache.PointsKeyOpts{
		Game:         o.Game,
		ControlsHash: hash,
		Points:       o.Points,
		Seed:         o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Radius:     o.Radius,
		Background: o.Background,
		Targets:    o.ShowTargets,
	}
}
