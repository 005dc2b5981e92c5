package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/errors"
)

const sampleTOML = `
game = "history-exclusion"
points = 2000
seed = 7

[controls]
num_targets = 4
history = 1
exclusions = [0]
coloring_mode = "gradient"
colors = ["#000000", "palette:1", "palette:2", "palette:3"]

[[controls.transforms]]
scale = 0.5
rotation = 0.0
probability = 1.0

[output]
width = 400
height = 300
formats = ["svg", "png"]
`

const sampleYAML = `
preset: Pentagon Star
points: 1000
output:
  background: none
  show_targets: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	f, err := Load(writeFile(t, "run.toml", sampleTOML))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if f.Game != "history-exclusion" || f.Points != 2000 || f.Seed != 7 {
		t.Errorf("top-level fields = %+v", f)
	}
	c := f.Controls
	if c.NumTargets != 4 || c.History != 1 || len(c.Exclusions) != 1 {
		t.Errorf("controls = %+v", c)
	}
	if c.ColoringMode != palette.ModeGradient {
		t.Errorf("ColoringMode = %q, want gradient", c.ColoringMode)
	}
	if len(c.Transforms) != 1 || c.Transforms[0].Scale != 0.5 {
		t.Errorf("Transforms = %+v", c.Transforms)
	}
	if f.Output.Width != 400 || f.Output.Height != 300 || len(f.Output.Formats) != 2 {
		t.Errorf("output = %+v", f.Output)
	}

	opts := f.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("converted options invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"run.yaml", "run.yml"} {
		f, err := Load(writeFile(t, name, sampleYAML))
		if err != nil {
			t.Fatalf("Load(%s) error: %v", name, err)
		}
		if f.Preset != "Pentagon Star" || f.Points != 1000 {
			t.Errorf("Load(%s) = %+v", name, f)
		}
		if f.Output.Background != "none" || !f.Output.ShowTargets {
			t.Errorf("Load(%s) output = %+v", name, f.Output)
		}

		opts := f.Options()
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("converted options invalid: %v", err)
		}
		if opts.Game != string(game.HistoryExclusion) {
			t.Errorf("preset game = %s", opts.Game)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, errors.ErrCodeFileNotFound},
		{"extension", func(t *testing.T) string { return writeFile(t, "run.ini", "") }, errors.ErrCodeInvalidConfig},
		{"syntax", func(t *testing.T) string { return writeFile(t, "run.toml", "game = ") }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	p, err := game.FindPreset("Hexagon Flower")
	if err != nil {
		t.Fatal(err)
	}
	in := FromPreset(p)
	in.Points = 123
	in.Output.Formats = []string{"png"}

	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		var buf bytes.Buffer
		if err := Encode(&buf, format, in); err != nil {
			t.Fatalf("Encode(%s) error: %v", format, err)
		}
		out, err := Decode(&buf, format)
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", format, err)
		}
		if out.Game != in.Game || out.Points != 123 {
			t.Errorf("%s: got %+v", format, out)
		}
		if len(out.Controls.Transforms) != len(in.Controls.Transforms) {
			t.Errorf("%s: transforms = %d, want %d", format, len(out.Controls.Transforms), len(in.Controls.Transforms))
		}
		if out.Controls.Transforms[1].Probability != in.Controls.Transforms[1].Probability {
			t.Errorf("%s: probability not preserved", format)
		}
	}
}

func TestFromOptions(t *testing.T) {
	f, err := Load(writeFile(t, "run.toml", sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	back := FromOptions(f.Options())
	if back.Game != f.Game || back.Output.Width != f.Output.Width || back.Controls.NumTargets != f.Controls.NumTargets {
		t.Errorf("FromOptions() = %+v, want %+v", back, f)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"toml", FormatTOML, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"ini", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}
