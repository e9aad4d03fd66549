package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
)

const (
	width           = 60
	height          = 24
	statsWidth      = 42
	historyCapacity = 600
	cubeletSize     = 0.9 // fraction of the spacing
	rotateStep      = 0.1
)

type TickMsg time.Time

// resumer is implemented by clocks that can skip time spent paused.
type resumer interface {
	Resume(pausedFor time.Duration)
}

// Model drives the controller from a clock and renders every frame. Key
// input only changes the view; it never touches the puzzle.
type Model struct {
	ctrl      *anim.Controller
	clk       clock.Clock
	view      config.ViewConfig
	canvas    *Canvas
	camera    *Camera
	wire      *Wireframe
	frame     anim.Frame
	depthHist []float64
	theme     Theme
	running   bool
	pausedAt  time.Time
	showHelp  bool
	now       func() time.Time
}

func NewModel(ctrl *anim.Controller, clk clock.Clock, view config.ViewConfig) Model {
	if view.FPS <= 0 {
		view.FPS = config.DefaultFPS
	}
	if view.Spacing <= 0 {
		view.Spacing = config.DefaultSpacing
	}
	m := Model{
		ctrl:      ctrl,
		clk:       clk,
		view:      view,
		canvas:    NewCanvas(width, height),
		camera:    NewCamera(),
		wire:      NewWireframe(),
		depthHist: make([]float64, 0, historyCapacity),
		theme:     GetTheme(view.Theme),
		running:   true,
		now:       time.Now,
	}
	m.camera.Radius = 3 * view.Spacing
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.view.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "x":
			m.camera.RotateX(rotateStep)
		case "X":
			m.camera.RotateX(-rotateStep)
		case "y":
			m.camera.RotateY(rotateStep)
		case "Y":
			m.camera.RotateY(-rotateStep)
		case "z":
			m.camera.RotateZ(rotateStep)
		case "Z":
			m.camera.RotateZ(-rotateStep)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-statsWidth-8)
		h := max(10, msg.Height-4)
		m.canvas = NewCanvas(w, h)
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) togglePause() {
	if m.running {
		m.pausedAt = m.now()
		m.running = false
		return
	}
	if r, ok := m.clk.(resumer); ok {
		r.Resume(m.now().Sub(m.pausedAt))
	}
	m.running = true
}

// step reads the clock once and advances the loop.
func (m *Model) step() {
	t := m.clk.Now()
	m.frame = m.ctrl.Tick(t)
	if m.view.Tumble {
		m.camera.Tumble(t.Elapsed, t.Delta)
	}

	m.depthHist = append(m.depthHist, float64(m.frame.Depth))
	if len(m.depthHist) > historyCapacity {
		m.depthHist = m.depthHist[1:]
	}
}

func (m *Model) draw() {
	DrawPoses(m.canvas, m.wire, m.frame.Poses, m.view.Spacing, m.camera)
}

// DrawPoses clears c and draws every pose through cam. wire is scratch
// space reused between calls.
func DrawPoses(c *Canvas, wire *Wireframe, poses []anim.Pose, spacing float64, cam *Camera) {
	c.Clear()
	wire.Clear()
	for _, p := range poses {
		wire.AddCubelet(p, spacing, spacing*cubeletSize)
	}
	Render3D(c, wire, cam)
}

// Frame returns the most recent controller frame.
func (m Model) Frame() anim.Frame { return m.frame }

func (m Model) Running() bool { return m.running }

func (m Model) View() string {
	st := newStyles(m.theme)
	canvasView := st.canvas.Render(m.canvas.Render(st.wire, st.active))

	var s strings.Builder
	s.WriteString(st.header.Render("CUBELOOP") + "\n")

	status := strings.ToUpper(m.frame.Phase.String())
	switch {
	case !m.running:
		status = st.paused.Render("PAUSED")
	case m.frame.Phase == anim.PhaseDwell:
		status = st.solved.Render("SOLVED")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	turn := "-"
	if m.frame.Active != nil {
		turn = m.frame.Active.String()
	}
	row("Turn", turn)
	row("Progress", ProgressBar(m.frame.Progress, 20))

	switch m.frame.Phase {
	case anim.PhaseScramble:
		n := m.ctrl.CycleLength()
		row("Scramble", fmt.Sprintf("%d/%d", n-m.frame.Remaining, n))
	case anim.PhaseReverse:
		row("Reverse", fmt.Sprintf("%d left", m.frame.Depth))
	default:
		row("Scramble", "-")
	}
	row("Depth", fmt.Sprintf("%d", m.frame.Depth))
	row("Cycles", fmt.Sprintf("%d", m.frame.Cycles))
	row("Time", fmt.Sprintf("%.2fs", m.frame.Time))

	if len(m.depthHist) > 1 {
		chart := asciigraph.Plot(m.depthHist,
			asciigraph.Height(5),
			asciigraph.Width(statsWidth-10),
			asciigraph.LowerBound(0),
			asciigraph.Caption("history depth"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause Q:Quit T:Theme ?:Help\nX/Y/Z:Rotate +/-:Zoom"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Q        - Quit                     ║
║  T        - Cycle themes             ║
║  x/y/z    - Rotate view (+)          ║
║  X/Y/Z    - Rotate view (-)          ║
║  +/-      - Zoom                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive opens the viewer on the alternate screen.
func RunLive(ctrl *anim.Controller, clk clock.Clock, view config.ViewConfig) error {
	_, err := tea.NewProgram(NewModel(ctrl, clk, view), tea.WithAltScreen()).Run()
	return err
}
