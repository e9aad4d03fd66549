package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
)

var presetInfo = map[string]string{
	"classic":  "4-15 turns, steady pace",
	"quick":    "short scrambles, fast turns",
	"marathon": "deep scrambles, long rest",
	"blitz":    "full speed, no tumble",
}

// Launch builds the controller and clock for a chosen configuration.
type Launch func(cfg *config.Config) (*anim.Controller, clock.Clock)

const (
	stateMenu = iota
	stateLive
)

// picker lists the presets and opens the viewer on the chosen one.
type picker struct {
	state     int
	cursor    int
	presets   []string
	launch    Launch
	override  func(*config.Config)
	liveModel Model
}

// NewPicker returns a preset menu. override, when non-nil, is applied to
// the chosen preset before launch.
func NewPicker(launch Launch, override func(*config.Config)) tea.Model {
	return picker{
		state:    stateMenu,
		presets:  config.ListPresets(),
		launch:   launch,
		override: override,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.liveModel.Update(msg)
		m.liveModel = next.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.menuKey(key)
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (picker, tea.Cmd) {
	cfg := config.GetPreset(m.presets[m.cursor])
	if m.override != nil {
		m.override(cfg)
	}
	ctrl, clk := m.launch(cfg)
	m.liveModel = NewModel(ctrl, clk, cfg.View)
	m.state = stateLive
	return m, m.liveModel.Init()
}

func (m picker) View() string {
	if m.state == stateLive {
		return m.liveModel.View()
	}

	var (
		title  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
		sub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
		cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
		name   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
		desc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
		dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
		key    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("CUBELOOP") + "\n    " + sub.Render("scramble, unwind, repeat") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, p := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursor.Render("▸"), name.Render(fmt.Sprintf("%-10s", p)), desc.Render(presetInfo[p])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dim.Render(fmt.Sprintf("  %-10s", p)), dim.Render(presetInfo[p])))
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + dim.Render(" navigate  ") + key.Render("enter") + dim.Render(" select  ") + key.Render("q") + dim.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu on the alternate screen.
func RunInteractive(launch Launch, override func(*config.Config)) error {
	_, err := tea.NewProgram(NewPicker(launch, override), tea.WithAltScreen()).Run()
	return err
}
