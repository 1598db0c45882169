package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/suderio/grim-delver/internal/agent"
	"github.com/suderio/grim-delver/internal/sim"
	"github.com/suderio/grim-delver/internal/world"
)

var (
	watchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	gridBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)

	eventBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	watchHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	playerGlyphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	monsterGlyphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	pickupGlyphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

type autoTickMsg time.Time

type watchModel struct {
	runner  *sim.Runner
	agent   *agent.Agent
	logView viewport.Model
	log     string
	width   int
	height  int
	auto    bool
	done    bool
	lastAct agent.Action
	err     error
}

func newWatchModel(runner *sim.Runner, ag *agent.Agent) *watchModel {
	vp := viewport.New(0, 10)
	vp.SetContent("Press space to step, 'a' to autoplay, 'q' to quit.")
	return &watchModel{
		runner:  runner,
		agent:   ag,
		logView: vp,
		log:     "Press space to step, 'a' to autoplay, 'q' to quit.",
	}
}

func (m *watchModel) Init() tea.Cmd {
	return nil
}

func autoTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return autoTickMsg(t)
	})
}

func (m *watchModel) step() {
	if m.done {
		return
	}
	cont, err := m.runner.Step()
	if err != nil {
		m.err = err
		m.done = true
		return
	}
	if !cont {
		m.done = true
	}
	m.logView.SetContent(m.log)
	m.logView.GotoBottom()
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "s":
			m.auto = false
			m.step()
		case "a":
			m.auto = !m.auto
			if m.auto {
				return m, autoTick()
			}
		}

	case autoTickMsg:
		if m.auto && !m.done {
			m.step()
			return m, autoTick()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 6
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)

	gridH := lipgloss.Height(m.renderGrid())
	overhead := lipgloss.Height(watchTitleStyle.Render("x")) + gridH + 6
	m.logView.Height = m.height - overhead
	if m.logView.Height < 4 {
		m.logView.Height = 4
	}

	return m, cmd
}

// renderGrid overlays the live entities on the field glyphs.
func (m *watchModel) renderGrid() string {
	snap := m.runner.Dungeon.Snapshot()
	field := snap.Field

	var b strings.Builder
	for y := 0; y < field.Height(); y++ {
		for x := 0; x < field.Width(); x++ {
			loc := world.Location{X: x, Y: y}
			switch {
			case loc == snap.Player.Location:
				b.WriteString(playerGlyphStyle.Render("@"))
			case hasMonster(snap, loc):
				b.WriteString(monsterGlyphStyle.Render("M"))
			case hasItem(snap, loc):
				b.WriteString(pickupGlyphStyle.Render("i"))
			case hasPack(snap, loc):
				b.WriteString(pickupGlyphStyle.Render("+"))
			default:
				b.WriteString(cellGlyph(field.At(loc)))
			}
		}
		if y < field.Height()-1 {
			b.WriteRune('\n')
		}
	}

	status := fmt.Sprintf("turn %d | level %d | hp %d | state %s | last: %s",
		m.runner.Dungeon.Turn(),
		m.runner.Dungeon.LevelIndex()+1,
		snap.Player.Health,
		m.agent.State(),
		m.lastAct,
	)
	if m.done {
		if m.err != nil {
			status += fmt.Sprintf(" | error: %v", m.err)
		} else {
			status += " | finished"
		}
	}

	return gridBoxStyle.Render(b.String() + "\n\n" + status)
}

func cellGlyph(kind world.CellKind) string {
	switch kind {
	case world.Wall:
		return "#"
	case world.Trap:
		return "^"
	case world.Exit:
		return "E"
	case world.PlayerStart:
		return "·"
	default:
		return "·"
	}
}

func hasMonster(snap *world.Snapshot, loc world.Location) bool {
	_, ok := snap.MonsterAt(loc)
	return ok
}

func hasItem(snap *world.Snapshot, loc world.Location) bool {
	_, ok := snap.ItemAt(loc)
	return ok
}

func hasPack(snap *world.Snapshot, loc world.Location) bool {
	_, ok := snap.PackAt(loc)
	return ok
}

func (m *watchModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := watchTitleStyle.Render(" Grim Delver ")
	grid := m.renderGrid()
	events := eventBoxStyle.Width(m.width - 4).Render(m.logView.View())
	help := watchHelpStyle.Render("(space/s step, a autoplay, q quit)")

	return lipgloss.JoinVertical(lipgloss.Left, title, grid, events, help)
}

var watchCmd = &cobra.Command{
	Use:   "watch [level.yaml...]",
	Short: "Watch the agent play in an interactive TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxTurns, _ := cmd.Flags().GetInt("max-turns")

		levels, err := sim.LoadLevels(args)
		if err != nil {
			return err
		}
		dungeon, err := sim.New(levels)
		if err != nil {
			return err
		}

		ag := agent.New(tuningFromConfig())
		runner := &sim.Runner{Dungeon: dungeon, Agent: ag, MaxTurns: maxTurns}
		m := newWatchModel(runner, ag)
		runner.OnTurn = func(turn int, act agent.Action, events []sim.Event) {
			m.lastAct = act
			for _, evt := range events {
				if msg := evt.Message(); msg != "" {
					m.log += fmt.Sprintf("\n[%d] %s", turn, msg)
				}
			}
		}

		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Int("max-turns", sim.DefaultMaxTurns, "stop stepping after this many turns")
}
