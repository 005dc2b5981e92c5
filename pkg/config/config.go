// Package config reads and writes run configuration files.
//
// A run configuration names a game (or a preset), its controls and the
// output options of one render. Files are TOML, YAML or JSON, chosen by
// extension:
//
//	game = "history-exclusion"
//	points = 200000
//	seed = 7
//
//	[controls]
//	num_targets = 4
//	history = 1
//	exclusions = [0]
//	coloring_mode = "gradient"
//	colors = ["#000000", "palette:1", "palette:2", "palette:3"]
//
//	[[controls.transforms]]
//	scale = 0.5
//	rotation = 0.0
//	probability = 1.0
//
//	[output]
//	width = 1200
//	height = 1200
//	formats = ["svg", "png"]
//
// [File.Options] converts a file to [pipeline.Options]; command-line flags
// are applied on top by the caller.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

// Format is a configuration file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// File is the content of a run configuration file.
type File struct {
	Game     string        `json:"game,omitempty" toml:"game,omitempty" yaml:"game,omitempty"`
	Preset   string        `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty"`
	Points   int           `json:"points,omitempty" toml:"points,omitempty" yaml:"points,omitempty"`
	Seed     uint64        `json:"seed,omitempty" toml:"seed,omitempty" yaml:"seed,omitempty"`
	Controls game.Controls `json:"controls" toml:"controls" yaml:"controls"`
	Output   Output        `json:"output" toml:"output" yaml:"output"`
}

// Output holds the render options of a run.
type Output struct {
	Width       int      `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height      int      `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Radius      float64  `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	Background  string   `json:"background,omitempty" toml:"background,omitempty" yaml:"background,omitempty"`
	Formats     []string `json:"formats,omitempty" toml:"formats,omitempty" yaml:"formats,omitempty"`
	ShowTargets bool     `json:"show_targets,omitempty" toml:"show_targets,omitempty" yaml:"show_targets,omitempty"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (use .toml, .yaml or .json)", filepath.Ext(path))
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (must be one of: toml, yaml, json)", s)
	}
}

// Load reads a configuration file, choosing the decoder by extension.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return f, nil
}

// Decode reads a configuration in the given format.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
			return nil, err
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	return &f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, format Format, f *File) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
}

// Options converts the file to pipeline options. The result is not yet
// validated.
func (f *File) Options() pipeline.Options {
	return pipeline.Options{
		Game:        f.Game,
		Preset:      f.Preset,
		Controls:    f.Controls.Clone(),
		Points:      f.Points,
		Seed:        f.Seed,
		Width:       f.Output.Width,
		Height:      f.Output.Height,
		Radius:      f.Output.Radius,
		Background:  f.Output.Background,
		Formats:     f.Output.Formats,
		ShowTargets: f.Output.ShowTargets,
	}
}

// FromOptions builds a file that reproduces opts.
func FromOptions(opts pipeline.Options) *File {
	return &File{
		Game:     opts.Game,
		Preset:   opts.Preset,
		Points:   opts.Points,
		Seed:     opts.Seed,
		Controls: opts.Controls.Clone(),
		Output: Output{
			Width:       opts.Width,
			Height:      opts.Height,
			Radius:      opts.Radius,
			Background:  opts.Background,
			Formats:     opts.Formats,
			ShowTargets: opts.ShowTargets,
		},
	}
}

// FromPreset builds a file holding a preset's game and controls, so it can
// be edited as a starting point.
func FromPreset(p game.Preset) *File {
	return &File{Game: string(p.Game), Controls: p.Controls.Clone()}
}
