package metrics

import "github.com/san-kum/cubeloop/internal/anim"

// TurnCount counts committed turns.
type TurnCount struct {
	name  string
	turns int
}

func NewTurnCount() *TurnCount {
	return &TurnCount{name: "turns"}
}

func (t *TurnCount) Name() string { return t.name }

func (t *TurnCount) Observe(f anim.Frame) {
	if f.Commit != nil {
		t.turns++
	}
}

func (t *TurnCount) Value() float64 { return float64(t.turns) }
func (t *TurnCount) Reset()         { t.turns = 0 }

// MaxDepth is the deepest the history stack got.
type MaxDepth struct {
	name  string
	depth int
}

func NewMaxDepth() *MaxDepth {
	return &MaxDepth{name: "max_depth"}
}

func (m *MaxDepth) Name() string { return m.name }

func (m *MaxDepth) Observe(f anim.Frame) {
	m.depth = max(m.depth, f.Depth)
}

func (m *MaxDepth) Value() float64 { return float64(m.depth) }
func (m *MaxDepth) Reset()         { m.depth = 0 }

// DwellRatio is the fraction of frames spent resting on the solved puzzle.
type DwellRatio struct {
	name    string
	dwell   int
	samples int
}

func NewDwellRatio() *DwellRatio {
	return &DwellRatio{name: "dwell_ratio"}
}

func (d *DwellRatio) Name() string { return d.name }

func (d *DwellRatio) Observe(f anim.Frame) {
	d.samples++
	if f.Phase == anim.PhaseDwell {
		d.dwell++
	}
}

func (d *DwellRatio) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.dwell) / float64(d.samples)
}

func (d *DwellRatio) Reset() {
	d.dwell = 0
	d.samples = 0
}
