package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/scramble"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 7)
	c.Set(-1, 0)
	c.Set(100, 100)

	if !c.IsSet(0, 0) || !c.IsSet(3, 7) {
		t.Error("expected pixels to be set")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected pixel set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected braille dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != 0x2880 {
		t.Errorf("expected braille dot 8, got %U", c.Grid[1][1])
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("clear should reset pixels")
	}
}

func TestCanvasHotCells(t *testing.T) {
	c := NewCanvas(4, 1)
	c.Set(0, 0)
	c.SetPen(true)
	c.DrawLine(4, 0, 7, 0)
	c.SetPen(false)

	if c.Hot(0, 0) {
		t.Error("cell drawn with a cold pen should not be hot")
	}
	if !c.Hot(2, 0) || !c.Hot(3, 0) {
		t.Error("cells drawn with a hot pen should be hot")
	}

	plain := c.Render(lipgloss.NewStyle(), lipgloss.NewStyle())
	if strings.TrimSuffix(plain, "\n") != strings.TrimSuffix(c.String(), "\n") {
		t.Errorf("unstyled render should match String: %q vs %q", plain, c.String())
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)
	if !c.IsSet(0, 0) || !c.IsSet(19, 39) {
		t.Error("line endpoints should be set")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(mgl64.Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("origin should project to the center, got (%d, %d, %v)", x, y, ok)
	}

	cam.Orientation = mgl64.QuatIdent()
	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, cam.Distance}, 100, 80); ok {
		t.Error("point at the eye should not be visible")
	}

	_, yUp, _, _ := cam.Project(mgl64.Vec3{0, 1, 0}, 100, 80)
	if yUp >= 40 {
		t.Errorf("+Y should project above the center, got %d", yUp)
	}
}

func TestCameraTumble(t *testing.T) {
	cam := NewCamera()
	before := cam.Orientation
	for i := 0; i < 1000; i++ {
		cam.Tumble(float64(i)*0.016, 0.016)
	}
	if math.Abs(cam.Orientation.Len()-1) > 1e-9 {
		t.Errorf("orientation drifted from unit length: %f", cam.Orientation.Len())
	}
	if cam.Orientation.ApproxEqual(before) {
		t.Error("tumble should change the orientation")
	}

	cam.Orientation = before
	cam.Tumble(1, 0)
	if !cam.Orientation.ApproxEqual(before) {
		t.Error("zero delta should not rotate")
	}
}

func TestAddCubelet(t *testing.T) {
	p := cube.NewPuzzle()
	w := NewWireframe()

	corner, center := -1, -1
	for i, c := range p.Cubelets() {
		n := 0
		for _, colored := range c.ColoredFaces() {
			if colored {
				n++
			}
		}
		switch n {
		case 3:
			corner = i
		case 1:
			center = i
		}
	}

	cl := p.Cubelets()[corner]
	w.AddCubelet(anim.Pose{Original: cl.Original, Coord: cl.Coord, Orientation: cl.Orientation}, 2, 1.8)
	if len(w.Edges) != 12+3*4 {
		t.Errorf("corner: expected 24 edges, got %d", len(w.Edges))
	}

	w.Clear()
	cl = p.Cubelets()[center]
	w.AddCubelet(anim.Pose{Original: cl.Original, Coord: cl.Coord, Orientation: cl.Orientation, OnLayer: true}, 2, 1.8)
	if len(w.Edges) != 12+4 {
		t.Errorf("center: expected 16 edges, got %d", len(w.Edges))
	}
	for _, e := range w.Edges {
		if !e.Hot {
			t.Fatal("edges of a turning cubelet should be hot")
		}
	}
}

func TestAddCubeletFollowsDelta(t *testing.T) {
	pose := anim.Pose{
		Original:    cube.Coord{1, 1, 1},
		Coord:       cube.Coord{1, 1, 1},
		Orientation: mgl64.QuatIdent(),
		OnLayer:     true,
		Delta:       &anim.TurnDelta{Axis: mgl64.Vec3{0, 1, 0}, Fraction: 1},
	}
	w := NewWireframe()
	w.AddCubelet(pose, 2, 0)

	// a zero-size box collapses onto its center, which a full quarter turn
	// about +Y carries from (2, 2, 2) to (2, 2, -2)
	want := mgl64.Vec3{2, 2, -2}
	if w.Edges[0].Start.Sub(want).Len() > 1e-9 {
		t.Errorf("expected center %v, got %v", want, w.Edges[0].Start)
	}
}

func TestRender3D(t *testing.T) {
	c := NewCanvas(40, 20)
	w := NewWireframe()
	for _, cl := range cube.NewPuzzle().Cubelets() {
		w.AddCubelet(anim.Pose{Original: cl.Original, Coord: cl.Coord, Orientation: cl.Orientation}, 2, 1.8)
	}
	Render3D(c, w, NewCamera())

	lit := 0
	for y := 0; y < c.Height*4; y++ {
		for x := 0; x < c.Width*2; x++ {
			if c.IsSet(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected the puzzle to be drawn")
	}
	Render3D(nil, w, NewCamera())
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "minimal" {
		t.Error("unknown theme should fall back to minimal")
	}
	seen := map[string]bool{}
	name := "minimal"
	for range Themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if name != "minimal" || len(seen) != len(Themes) {
		t.Errorf("NextTheme should cycle through every theme, seen %v", seen)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 10); got != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Errorf("unexpected bar %q", got)
	}
	if got := ProgressBar(2, 4); got != strings.Repeat("█", 4) {
		t.Errorf("bar should clamp, got %q", got)
	}
	if got := ProgressBar(-1, 4); got != strings.Repeat("░", 4) {
		t.Errorf("bar should clamp, got %q", got)
	}
}

type resumeClock struct {
	*clock.Manual
	resumed time.Duration
}

func (c *resumeClock) Resume(d time.Duration) { c.resumed += d }

func newTestModel(clk clock.Clock) Model {
	ctrl := anim.New(cube.NewPuzzle(), scramble.NewSeeded(3), anim.Config{
		MinSteps: 3,
		MaxSteps: 3,
		Rate:     1,
		Dwell:    0.5,
	})
	return NewModel(ctrl, clk, config.ViewConfig{Theme: "ocean", Spacing: 2})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTicksController(t *testing.T) {
	clk := clock.NewManual()
	m := newTestModel(clk)

	for i := 0; i < 4; i++ {
		clk.Advance(0.25)
		m = update(m, TickMsg(time.Now()))
	}

	f := m.Frame()
	if f.Phase != anim.PhaseScramble {
		t.Fatalf("expected scramble phase, got %s", f.Phase)
	}
	if f.Active == nil || f.Progress <= 0 {
		t.Error("expected an active turn in progress")
	}
	if len(f.Poses) != cube.NumCubelets {
		t.Errorf("expected %d poses, got %d", cube.NumCubelets, len(f.Poses))
	}
	if !strings.Contains(m.View(), "CUBELOOP") {
		t.Error("view should contain the header")
	}
}

func TestModelPause(t *testing.T) {
	clk := &resumeClock{Manual: clock.NewManual()}
	m := newTestModel(clk)
	start := time.Unix(1000, 0)
	m.now = func() time.Time { return start }

	clk.Advance(0.25)
	m = update(m, TickMsg(time.Now()))
	before := m.Frame().Time

	m = update(m, key(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	clk.Advance(1)
	m = update(m, TickMsg(time.Now()))
	if m.Frame().Time != before {
		t.Error("paused viewer should not tick the controller")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show the paused status")
	}

	m.now = func() time.Time { return start.Add(2 * time.Second) }
	m = update(m, key(" "))
	if !m.Running() {
		t.Fatal("space should resume")
	}
	if clk.resumed != 2*time.Second {
		t.Errorf("expected clock resumed by 2s, got %v", clk.resumed)
	}
}

func TestModelKeysLeavePuzzleAlone(t *testing.T) {
	clk := clock.NewManual()
	m := newTestModel(clk)
	for i := 0; i < 6; i++ {
		clk.Advance(0.25)
		m = update(m, TickMsg(time.Now()))
	}
	snapshot := m.ctrl.Puzzle().Clone()
	state := m.ctrl.State()

	for _, k := range []string{"t", "x", "Y", "z", "+", "-", "?"} {
		m = update(m, key(k))
	}

	if !m.ctrl.Puzzle().Equal(snapshot, cube.OrientationTolerance) {
		t.Error("key input changed the puzzle")
	}
	if m.ctrl.State() != state {
		t.Error("key input changed the controller state")
	}
	if m.theme.Name == "ocean" {
		t.Error("t should change the theme")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(clock.NewManual())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPickerLaunchesPreset(t *testing.T) {
	var got *config.Config
	launch := func(cfg *config.Config) (*anim.Controller, clock.Clock) {
		got = cfg
		ctrl := anim.New(cube.NewPuzzle(), scramble.NewSeeded(cfg.Seed), anim.FromConfig(cfg))
		return ctrl, clock.NewManual()
	}
	override := func(cfg *config.Config) { cfg.Seed = 99 }

	p := NewPicker(launch, override)
	if !strings.Contains(p.View(), "classic") {
		t.Error("menu should list presets")
	}

	next, _ := p.Update(key("j"))
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("starting the viewer should schedule a tick")
	}
	if got == nil {
		t.Fatal("launch was not called")
	}
	if got.Seed != 99 {
		t.Errorf("override not applied, seed %d", got.Seed)
	}
	if got.Motion.Rate != config.GetPreset(config.ListPresets()[1]).Motion.Rate {
		t.Error("expected the second preset to be launched")
	}
	if !strings.Contains(next.View(), "CUBELOOP") {
		t.Error("picker should show the viewer after launch")
	}
}
