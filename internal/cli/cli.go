// Package cli implements the chaosgame command-line interface.
//
//	render      draw a game or preset to SVG, PNG or JSON
//	games       list the game catalog
//	presets     list or export the built-in presets
//	exclusions  draw the transition graph of an exclusion set
//	play        animate presets in the terminal
//	serve       run the HTTP API
//	cache       inspect or clear the render cache
//
// Every command accepts --verbose for debug logs and --quiet to show only
// warnings and errors. Logs go to the writer given to [New]; results and
// status lines go to standard output.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/buildinfo"
)

const appName = "chaosgame"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI holds what all commands share.
type CLI struct {
	Logger *log.Logger

	verbose, quiet bool
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level of the shared logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Draw fractal attractors with restricted chaos games",
		Long: `Chaosgame plays the chaos game: a point repeatedly jumps toward randomly
chosen corners of a regular polygon, and the trail it leaves forms a fractal.
Restricting which corner may follow which, or attaching a transform to each
corner, produces a wide family of attractors.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if c.verbose || c.quiet {
				c.SetLogLevel(levelFor(c.verbose, c.quiet))
			}
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "show debug logs")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "show only warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		c.renderCommand(),
		c.gamesCommand(),
		c.presetsCommand(),
		c.exclusionsCommand(),
		c.playCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}
