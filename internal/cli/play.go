package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chaosgame/pkg/core/attractor"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/render"
)

const (
	frameInterval = 50 * time.Millisecond

	defaultSpeed = 200
	minSpeed     = 10
	maxSpeed     = 50000

	// chromeLines is the number of terminal lines used outside the grid.
	chromeLines = 4
)

// densityGlyphs draws a cell by how many points landed in it.
var densityGlyphs = []rune{'·', ':', '+', '*', '#', '@'}

// playCommand animates a preset in the terminal.
func (c *CLI) playCommand() *cobra.Command {
	var (
		preset string
		speed  int
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Watch an attractor grow in the terminal",
		Long: `Play animates the chaos game in the terminal, one batch of points per frame.

Keys:
  space   pause / resume
  + / -   faster / slower
  n / p   next / previous preset
  r       restart
  q       quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := 0
			if preset != "" {
				p, err := game.FindPreset(preset)
				if err != nil {
					return err
				}
				for i, q := range game.Presets() {
					if q.Name == p.Name {
						start = i
					}
				}
			}

			m := newPlayModel(game.Presets(), start, seed, speed)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if pm, ok := final.(*playModel); ok && pm.err != nil {
				return pm.err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "preset to start with (name or number)")
	cmd.Flags().IntVar(&speed, "speed", defaultSpeed, "points per frame")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "random seed")
	return cmd
}

// cell accumulates the points that landed in one character of the grid.
type cell struct {
	hits  int
	color string
}

type tickMsg time.Time

// playModel is the bubbletea model of the play command. It owns one
// attractor and advances it only from Update, so the attractor is never
// shared between goroutines.
type playModel struct {
	presets []game.Preset
	index   int
	seed    uint64
	speed   int
	paused  bool

	attractor *attractor.Attractor
	produced  int
	stuck     bool
	err       error

	cols, rows int
	grid       [][]cell
	maxHits    int
	styles     map[string]lipgloss.Style
}

func newPlayModel(presets []game.Preset, index int, seed uint64, speed int) *playModel {
	m := &playModel{
		presets: presets,
		index:   index,
		seed:    seed,
		speed:   min(max(speed, minSpeed), maxSpeed),
		cols:    80,
		rows:    24 - chromeLines,
		styles:  make(map[string]lipgloss.Style),
	}
	m.restart()
	return m
}

// restart rebuilds the attractor for the current preset and clears the grid.
func (m *playModel) restart() {
	m.produced, m.stuck, m.maxHits, m.err = 0, false, 0, nil
	m.grid = make([][]cell, m.rows)
	for y := range m.grid {
		m.grid[y] = make([]cell, m.cols)
	}

	opts := pipeline.Options{Preset: m.presets[m.index].Name, Seed: m.seed}
	a, _, err := pipeline.NewAttractor(opts)
	if err != nil {
		m.err = err
		m.attractor = nil
		return
	}
	m.attractor = a
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) Init() tea.Cmd {
	return tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 10)
		m.rows = max(msg.Height-chromeLines, 5)
		m.restart()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.paused = !m.paused
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, minSpeed)
		case "n", "right":
			m.index = (m.index + 1) % len(m.presets)
			m.restart()
		case "p", "left":
			m.index = (m.index - 1 + len(m.presets)) % len(m.presets)
			m.restart()
		case "r":
			m.seed++
			m.restart()
		}

	case tickMsg:
		if !m.paused {
			m.advance(m.speed)
		}
		return m, tick()
	}
	return m, nil
}

// advance steps the attractor n times and plots the produced points.
func (m *playModel) advance(n int) {
	if m.attractor == nil || m.stuck {
		return
	}
	frame := render.NewFrame(m.cols-1, m.rows-1, 0)
	for range n {
		s, ok := m.attractor.Step()
		if !ok {
			if m.attractor.Stuck() {
				m.stuck = true
				return
			}
			continue
		}
		x, y := frame.Map(render.FromSample(s))
		cx, cy := int(x+0.5), int(y+0.5)
		if cx < 0 || cy < 0 || cx >= m.cols || cy >= m.rows {
			continue
		}
		c := &m.grid[cy][cx]
		c.hits++
		c.color = s.Color
		m.maxHits = max(m.maxHits, c.hits)
		m.produced++
	}
}

func (m *playModel) glyph(hits int) rune {
	if m.maxHits <= 1 {
		return densityGlyphs[0]
	}
	i := (hits - 1) * len(densityGlyphs) / m.maxHits
	return densityGlyphs[min(i, len(densityGlyphs)-1)]
}

func (m *playModel) style(color string) lipgloss.Style {
	s, ok := m.styles[color]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		m.styles[color] = s
	}
	return s
}

func (m *playModel) View() string {
	var b strings.Builder

	p := m.presets[m.index]
	b.WriteString(StyleTitle.Render(p.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %d/%d", p.Game, m.index+1, len(m.presets))))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}

	for _, row := range m.grid {
		for _, c := range row {
			if c.hits == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(m.style(c.color).Render(string(m.glyph(c.hits))))
		}
		b.WriteByte('\n')
	}

	status := fmt.Sprintf("%d points · %d/frame", m.produced, m.speed)
	switch {
	case m.stuck:
		status += " · " + StyleWarning.Render("stuck")
	case m.paused:
		status += " · paused"
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString(StyleDim.Render("   space pause  +/- speed  n/p preset  r restart  q quit"))
	return b.String()
}
