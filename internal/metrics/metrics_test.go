package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/cube"
)

func commitFrame(scramble bool, depth int) anim.Frame {
	return anim.Frame{
		Phase:  anim.PhaseScramble,
		Depth:  depth,
		Commit: &anim.Commit{Turn: cube.Turn{Move: cube.Top, Dir: cube.Positive}, Scramble: scramble, Depth: depth},
	}
}

func TestTurnCount(t *testing.T) {
	m := NewTurnCount()
	m.Observe(anim.Frame{})
	m.Observe(commitFrame(true, 1))
	m.Observe(commitFrame(false, 0))
	if m.Value() != 2 {
		t.Errorf("expected 2 turns, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestCycleLength(t *testing.T) {
	m := NewCycleLength()
	if m.Value() != 0 {
		t.Error("expected zero before any cycle")
	}

	for _, n := range []int{4, 6} {
		for i := 1; i <= n; i++ {
			m.Observe(commitFrame(true, i))
		}
		for i := n - 1; i >= 0; i-- {
			m.Observe(commitFrame(false, i))
		}
		m.Observe(anim.Frame{Solved: true})
	}

	if m.Value() != 5 {
		t.Errorf("expected mean 5, got %f", m.Value())
	}
	if math.Abs(m.StdDev()-math.Sqrt2) > 1e-12 {
		t.Errorf("expected stddev sqrt(2), got %f", m.StdDev())
	}
	if got := m.Lengths(); len(got) != 2 || got[0] != 4 || got[1] != 6 {
		t.Errorf("unexpected lengths %v", got)
	}
}

func TestMaxDepth(t *testing.T) {
	m := NewMaxDepth()
	for _, d := range []int{1, 5, 3, 0} {
		m.Observe(anim.Frame{Depth: d})
	}
	if m.Value() != 5 {
		t.Errorf("expected 5, got %f", m.Value())
	}
}

func TestDwellRatio(t *testing.T) {
	m := NewDwellRatio()
	m.Observe(anim.Frame{Phase: anim.PhaseDwell})
	m.Observe(anim.Frame{Phase: anim.PhaseScramble})
	m.Observe(anim.Frame{Phase: anim.PhaseReverse})
	m.Observe(anim.Frame{Phase: anim.PhaseDwell})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestOrientationDrift(t *testing.T) {
	m := NewOrientationDrift()
	f := commitFrame(true, 1)
	f.Poses = []anim.Pose{
		{Orientation: mgl64.QuatIdent()},
		{Orientation: mgl64.Quat{W: 1.001}},
	}
	m.Observe(f)

	// frames without a commit are ignored
	m.Observe(anim.Frame{Poses: []anim.Pose{{Orientation: mgl64.Quat{W: 2}}}})

	if math.Abs(m.Value()-0.001) > 1e-12 {
		t.Errorf("expected drift 0.001, got %g", m.Value())
	}
}

func TestOrientationDriftKeepsRunningMax(t *testing.T) {
	m := NewOrientationDrift()
	f := commitFrame(true, 1)
	f.Poses = []anim.Pose{{Orientation: mgl64.Quat{W: 1.002}}}
	m.Observe(f)

	f.Poses = make([]anim.Pose, 26)
	for i := range f.Poses {
		f.Poses[i].Orientation = mgl64.QuatIdent()
	}
	for i := 0; i < 10000; i++ {
		m.Observe(f)
	}
	if math.Abs(m.Value()-0.002) > 1e-12 {
		t.Errorf("expected running max 0.002, got %g", m.Value())
	}
	if cap(m.dev) > 26 {
		t.Errorf("scratch should stay bounded by the pose count, cap %d", cap(m.dev))
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset should clear the drift, got %g", m.Value())
	}
}
