package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/chaosgame/pkg/cache"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.Game != DefaultGame {
		t.Errorf("Game should be %s, got %s", DefaultGame, opts.Game)
	}
	if opts.Points != DefaultPoints {
		t.Errorf("Points should be %d, got %d", DefaultPoints, opts.Points)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed should be %d, got %d", DefaultSeed, opts.Seed)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("Size should be %dx%d, got %dx%d", DefaultWidth, DefaultHeight, opts.Width, opts.Height)
	}
	if opts.Radius != DefaultRadius {
		t.Errorf("Radius should be %v, got %v", DefaultRadius, opts.Radius)
	}
	if opts.Background != DefaultBackground {
		t.Errorf("Background should be %s, got %s", DefaultBackground, opts.Background)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Controls.NumTargets != game.DefaultNumTargets {
		t.Errorf("NumTargets should be %d, got %d", game.DefaultNumTargets, opts.Controls.NumTargets)
	}
	if len(opts.Controls.Transforms) != 1 {
		t.Errorf("Transforms should default to one, got %d", len(opts.Controls.Transforms))
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Preset: "2"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	g, controls := opts.Game, opts.Controls.Clone()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Game != g {
		t.Error("Game changed on second call")
	}
	if opts.Controls.NumTargets != controls.NumTargets || len(opts.Controls.Colors) != len(controls.Colors) {
		t.Error("Controls changed on second call")
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown game", Options{Game: "nope"}, errors.ErrCodeInvalidGame},
		{"unknown preset", Options{Preset: "nope"}, errors.ErrCodeInvalidPreset},
		{"too many targets", Options{Controls: game.Controls{NumTargets: 20}}, errors.ErrCodeInvalidControls},
		{"too many points", Options{Points: MaxPoints + 1}, errors.ErrCodeInvalidControls},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidControls},
		{"bad background", Options{Background: "white"}, errors.ErrCodeInvalidColor},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	opts := Options{Preset: "sierpinski triangle"}
	if err := opts.ApplyPreset(); err != nil {
		t.Fatalf("ApplyPreset() error: %v", err)
	}
	if opts.Preset != "Sierpinski Triangle" {
		t.Errorf("Preset should be canonicalized, got %q", opts.Preset)
	}
	if opts.Game != string(game.HistoryExclusion) {
		t.Errorf("Game = %s, want %s", opts.Game, game.HistoryExclusion)
	}

	// Controls edited after the preset survive validation
	opts.Controls.NumTargets = 5
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Controls.NumTargets != 5 {
		t.Errorf("NumTargets = %d, want override 5", opts.Controls.NumTargets)
	}
}

func TestBackgroundPaletteRef(t *testing.T) {
	opts := Options{Background: "palette:0"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("palette background should pass: %v", err)
	}
	opts = Options{Background: "none"}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("transparent background should pass: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	opts := Options{Points: 2000}
	cloud, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(cloud.Points) != 2000 {
		t.Fatalf("points = %d, want 2000", len(cloud.Points))
	}
	if len(cloud.Targets) != game.DefaultNumTargets {
		t.Errorf("targets = %d, want %d", len(cloud.Targets), game.DefaultNumTargets)
	}
	if cloud.Stuck {
		t.Error("default game should not get stuck")
	}
	for i, p := range cloud.Points {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			t.Fatalf("point %d = (%v, %v) left the unit square", i, p.X, p.Y)
		}
		if p.Color == "" {
			t.Fatalf("point %d has no color", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Preset: "Pentagon Star", Points: 500, Seed: 7}
	a, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs between runs with the same seed", i)
		}
	}

	opts.Seed = 8
	c, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if c.Points[0] == a.Points[0] {
		t.Error("different seeds should produce different points")
	}
}

func TestGenerateStuck(t *testing.T) {
	// Offsets 0 and 2 of a triangle leave only "advance by one", which two
	// different previous targets can never agree on.
	opts := Options{
		Controls: game.Controls{NumTargets: 3, History: 2, Exclusions: []int{0, 2}},
		Points:   100,
	}
	cloud, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !cloud.Stuck {
		t.Error("expected stuck cloud")
	}
	if len(cloud.Points) != 0 {
		t.Errorf("points = %d, want 0 after priming got stuck", len(cloud.Points))
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, Options{Points: 10})
	if !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("Generate() error = %v, want CANCELED", err)
	}
}

func TestNewAttractor(t *testing.T) {
	a, targets, err := NewAttractor(Options{Controls: game.Controls{NumTargets: 6}})
	if err != nil {
		t.Fatalf("NewAttractor() error: %v", err)
	}
	if len(targets) != 6 {
		t.Errorf("targets = %d, want 6", len(targets))
	}
	if _, ok := a.Step(); !ok {
		t.Error("fresh attractor should produce a point")
	}
}

func TestRender(t *testing.T) {
	opts := Options{Points: 200, Formats: []string{FormatSVG, FormatPNG, FormatJSON}, ShowTargets: true}
	cloud, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := Render(context.Background(), cloud, opts)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(artifacts))
	}
	if !strings.HasPrefix(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact should start with <svg")
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact should carry the PNG signature")
	}
	if !json.Valid(artifacts[FormatJSON]) {
		t.Error("json artifact should be valid JSON")
	}
}

func TestRunnerCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Points: 300, Formats: []string{FormatSVG, FormatJSON}}
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Points != 300 {
		t.Errorf("Stats.Points = %d, want 300", first.Stats.Points)
	}
	if first.PointsHash == "" {
		t.Error("PointsHash should be set")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache, got %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.GenerateHit {
		t.Error("refresh should regenerate points")
	}
}

func TestRunnerKeysDependOnControls(t *testing.T) {
	a := Options{}
	b := Options{Controls: game.Controls{NumTargets: 4}}
	if err := a.ValidateForGenerate(); err != nil {
		t.Fatal(err)
	}
	if err := b.ValidateForGenerate(); err != nil {
		t.Fatal(err)
	}
	k := cache.NewDefaultKeyer()
	if k.PointsKey(a.PointsKeyOpts()) == k.PointsKey(b.PointsKeyOpts()) {
		t.Error("different controls should produce different points keys")
	}
}
