package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/joshdey/pydemic/internal/epi"
)

const (
	chartWidth  = 60
	chartHeight = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model replays a finished simulation result in the terminal.
type Model struct {
	result    *epi.Result
	modelName string

	names      []string
	visible    []string
	showStages bool
	selected   int

	playHead int
	speed    int
	running  bool
	showHelp bool
}

// NewModel wraps a computed result for playback. Stage compartments
// introduced by Erlang expansion are hidden until toggled.
func NewModel(result *epi.Result, modelName string) Model {
	names := make([]string, 0, len(result.Y))
	for name := range result.Y {
		names = append(names, name)
	}
	sort.Strings(names)

	m := Model{
		result:    result,
		modelName: modelName,
		names:     names,
		speed:     1,
		running:   true,
	}
	m.rebuildVisible()
	return m
}

// rebuildVisible filters stage compartments unless they are toggled on.
// Stage labels carry the lhs:rhs:index form, so a colon marks them.
func (m *Model) rebuildVisible() {
	m.visible = m.visible[:0]
	for _, name := range m.names {
		if !m.showStages && strings.Contains(name, ":") {
			continue
		}
		m.visible = append(m.visible, name)
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
		case "[":
			m.scrub(-m.speed)
		case "]":
			m.scrub(m.speed)
		case "tab":
			if len(m.visible) > 0 {
				m.selected = (m.selected + 1) % len(m.visible)
			}
		case "+", "=":
			if m.speed < 256 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "h":
			m.showStages = !m.showStages
			m.rebuildVisible()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.playHead += m.speed
			if m.playHead >= m.result.Steps {
				m.playHead = m.result.Steps
				m.running = false
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) scrub(delta int) {
	m.running = false
	m.playHead += delta
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead > m.result.Steps {
		m.playHead = m.result.Steps
	}
}

// series sums a compartment over its age bins up to the play head,
// downsampled to the chart width.
func (m Model) series(name string) []float64 {
	n := m.playHead + 1
	stride := 1
	if n > chartWidth {
		stride = n / chartWidth
	}
	out := make([]float64, 0, chartWidth+1)
	for k := 0; k < n; k += stride {
		out = append(out, m.result.Y[name][k].Sum())
	}
	return out
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")

	status := "PLAYING"
	if !m.running {
		if m.playHead >= m.result.Steps {
			status = "DONE"
		} else {
			status = "PAUSED"
		}
	}
	s.WriteString(fmt.Sprintf("%s  t=%.2fd  sample %d/%d  speed x%d\n",
		status, m.result.Times[m.playHead], m.playHead, m.result.Steps, m.speed))

	if len(m.visible) > 0 {
		focus := m.visible[m.selected]
		if data := m.series(focus); len(data) > 1 {
			chart := asciigraph.Plot(data,
				asciigraph.Height(chartHeight),
				asciigraph.Width(chartWidth),
				asciigraph.Caption(focus))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	var stats strings.Builder
	for i, name := range m.visible {
		line := labelStyle.Render(name) +
			valueStyle.Render(fmt.Sprintf("%14.2f", m.result.Y[name][m.playHead].Sum()))
		if i == m.selected {
			line = activeStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		stats.WriteString(line + "\n")
	}
	s.WriteString(statsStyle.Render(stats.String()) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit Tab:Focus [ ]:Scrub +/-:Speed H:Stages ?:Help"))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from sample 0    ║
║  Q        - Quit                     ║
║  Tab      - Cycle charted curve      ║
║  [        - Scrub backward           ║
║  ]        - Scrub forward            ║
║  +/-      - Playback speed           ║
║  H        - Toggle stage columns     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n" + s.String()
	}
	return s.String()
}

// Run starts the replay UI and blocks until the user quits.
func Run(result *epi.Result, modelName string) error {
	p := tea.NewProgram(NewModel(result, modelName))
	_, err := p.Run()
	return err
}
