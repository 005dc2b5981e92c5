package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chaosgame/pkg/pipeline"
)

// ANSI 256 colors.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleValue       = lipgloss.NewStyle().Foreground(colorBright)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleIconError   = lipgloss.NewStyle().Foreground(colorFail)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

const iconError = "✗"

// statusIcon is the colored glyph in front of a status line.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	statusOK   = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusWarn = statusIcon{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo = statusIcon{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// stdout receives status lines; tests redirect it.
var stdout io.Writer = os.Stdout

func printStatus(icon statusIcon, text string) {
	fmt.Fprintln(stdout, icon.style.Render(icon.glyph)+" "+text)
}

func printSuccess(format string, args ...any) {
	printStatus(statusOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(statusWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(statusInfo, fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+styleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// printStats prints one dimmed line such as
// "50000 points · 12 empty steps · cached".
func printStats(stats pipeline.Stats, cached bool) {
	parts := []string{fmt.Sprintf("%d points", stats.Points)}
	if stats.EmptySteps > 0 {
		parts = append(parts, fmt.Sprintf("%d empty steps", stats.EmptySteps))
	}
	if stats.Stuck {
		parts = append(parts, "stuck")
	}
	source := statusInfo.style.Render("fresh")
	if cached {
		source = statusOK.style.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · "))+sep+source)
}

var (
	styleTableHeader = lipgloss.NewStyle().Foreground(colorMuted).Bold(true).Padding(0, 1)
	styleTableKey    = lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable draws rows under headers in a rounded border, highlighting
// the first column.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 0:
				return styleTableKey
			}
			return styleTableCell
		}).
		Render()
}
