package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/config"
	"github.com/matzehuels/chaosgame/pkg/core/chaos"
	"github.com/matzehuels/chaosgame/pkg/core/game"
)

// gamesCommand lists the game catalog.
func (c *CLI) gamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List the available games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, renderTable([]string{"Type", "Name", "Controls"}, gameRows()))
			fmt.Fprintln(stdout)
			for _, g := range game.Catalog() {
				fmt.Fprintln(stdout, StyleTitle.Render(g.Name()))
				printDetail("%s", g.Description())
			}
			return nil
		},
	}
}

func gameRows() [][]string {
	var rows [][]string
	for _, g := range game.Catalog() {
		controls := make([]string, 0, len(g.AdditionalControls()))
		for _, ct := range g.AdditionalControls() {
			controls = append(controls, string(ct))
		}
		if g.DisableTargetColoringMode() {
			controls = append(controls, "no by-target coloring")
		}
		rows = append(rows, []string{string(g.Type()), g.Name(), strings.Join(controls, ", ")})
	}
	return rows
}

// presetsCommand lists the built-in presets or prints one as a config file.
func (c *CLI) presetsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "presets [name-or-number]",
		Short: "List the built-in presets, or print one as a config file",
		Long: `List the built-in presets. With an argument, print that preset as a run
configuration file that can be edited and passed to "render --config".`,
		Example: `  chaosgame presets
  chaosgame presets "Hexagon Flower" --format yaml > flower.yaml
  chaosgame presets 3 > pentagon.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(stdout, renderTable([]string{"#", "Name", "Game", "Targets", "Transforms", "Coloring"}, presetRows()))
				printNextStep("Render one", `chaosgame render --preset "Sierpinski Triangle"`)
				return nil
			}

			p, err := game.FindPreset(args[0])
			if err != nil {
				return err
			}
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			return config.Encode(cmd.OutOrStdout(), f, config.FromPreset(p))
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatTOML), "config format: toml, yaml, json")
	return cmd
}

func presetRows() [][]string {
	var rows [][]string
	for i, p := range game.Presets() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			string(p.Game),
			strconv.Itoa(p.Controls.NumTargets),
			describeTransforms(p.Controls.Transforms),
			string(p.Controls.Mode()),
		})
	}
	return rows
}

// describeTransforms summarizes transforms as "0.50@0° 33.33%, ...".
func describeTransforms(ts []chaos.Transform) string {
	if len(ts) == 0 {
		return "default"
	}
	total := chaos.TotalProbability(ts)
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%.2f@%.0f° %.2f%%", t.Scale, t.Rotation*180/math.Pi, chaos.Percent(t.Probability, total))
	}
	if len(parts) > 3 {
		return strings.Join(parts[:3], ", ") + fmt.Sprintf(", +%d", len(parts)-3)
	}
	return strings.Join(parts, ", ")
}
