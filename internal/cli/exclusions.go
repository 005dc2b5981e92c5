package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/exclusion"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/core/palette"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/render/nodelink"
)

// exclusionsCommand explains an exclusion set and draws its transition graph.
func (c *CLI) exclusionsCommand() *cobra.Command {
	var (
		preset     string
		targets    int
		history    int
		exclusions string
		pairwise   bool
		format     string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "exclusions",
		Short: "Explain an exclusion set and draw which targets may follow which",
		Long: `Exclusions prints the rule an exclusion set imposes and writes the graph of
legal transitions between targets: an edge T1 -> T3 means T3 may be chosen
right after T1.`,
		Example: `  chaosgame exclusions --targets 4 --exclusions 0
  chaosgame exclusions --preset "Square No Repeat" -f svg -o square-graph.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Game: pipeline.DefaultGame}
			if preset != "" {
				opts.Preset = preset
				if err := opts.ApplyPreset(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("targets") || opts.Controls.NumTargets == 0 {
				opts.Controls.NumTargets = targets
			}
			if cmd.Flags().Changed("history") {
				opts.Controls.History = history
			}
			if cmd.Flags().Changed("exclusions") {
				excl, err := parseExclusions(exclusions, opts)
				if err != nil {
					return err
				}
				opts.Controls.Exclusions = excl
			}
			if pairwise {
				opts.Game = string(game.HistoryExclusionPairwise)
			}
			if err := opts.ValidateForGenerate(); err != nil {
				return err
			}

			g, err := game.Lookup(game.Type(opts.Game))
			if err != nil {
				return err
			}
			ts := chaos.NewTargets(opts.Controls.NumTargets)
			lookup := exclusion.BuildLookup(ts, opts.Controls.Exclusions)
			dot := nodelink.ToDOT(ts, lookup, nodelink.Options{
				Colors: targetColors(opts.Controls),
				Title:  opts.Controls.Describe(g),
			})

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = nodelink.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported graph format %q (must be dot or svg)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			printInfo("%s", opts.Controls.Describe(g))
			printFile(output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.IntVar(&targets, "targets", game.DefaultNumTargets, "number of polygon corners")
	f.IntVar(&history, "history", 0, "how many previous targets the exclusions apply to")
	f.StringVar(&exclusions, "exclusions", "", `excluded offsets, e.g. "0,2", or "random"`)
	f.BoolVar(&pairwise, "pairwise", false, "describe the pairwise variant")
	f.StringVarP(&format, "format", "f", "dot", "graph format: dot, svg")
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// targetColors resolves one fill color per target when the controls color
// by target, and returns nil otherwise.
func targetColors(c game.Controls) []string {
	if c.Mode() != palette.ModeByTarget {
		return nil
	}
	colors, err := palette.ResolveAll(c.Colors)
	if err != nil {
		return nil
	}
	return colors
}
