package clock

import (
	"math"
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	c := NewFixed(0.25)
	for i := 1; i <= 4; i++ {
		r := c.Now()
		if r.Delta != 0.25 {
			t.Errorf("reading %d: expected delta 0.25, got %f", i, r.Delta)
		}
		if want := 0.25 * float64(i); math.Abs(r.Elapsed-want) > 1e-12 {
			t.Errorf("reading %d: expected elapsed %f, got %f", i, want, r.Elapsed)
		}
	}
}

func TestManualClock(t *testing.T) {
	c := NewManual()
	if r := c.Now(); r.Elapsed != 0 || r.Delta != 0 {
		t.Errorf("expected zero reading, got %+v", r)
	}

	c.Advance(0.5)
	c.Advance(0.25)
	r := c.Now()
	if r.Elapsed != 0.75 || r.Delta != 0.75 {
		t.Errorf("expected 0.75/0.75, got %+v", r)
	}

	r = c.Now()
	if r.Elapsed != 0.75 || r.Delta != 0 {
		t.Errorf("second reading should have zero delta, got %+v", r)
	}
}

func TestWallClock(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	w := newWall(func() time.Time { return now })

	now = base.Add(100 * time.Millisecond)
	r := w.Now()
	if math.Abs(r.Elapsed-0.1) > 1e-9 || math.Abs(r.Delta-0.1) > 1e-9 {
		t.Errorf("expected 0.1/0.1, got %+v", r)
	}

	now = base.Add(2 * time.Second)
	w.Resume(time.Second)
	r = w.Now()
	if math.Abs(r.Elapsed-1.0) > 1e-9 {
		t.Errorf("paused time should not count, elapsed %f", r.Elapsed)
	}
	if math.Abs(r.Delta-0.9) > 1e-9 {
		t.Errorf("expected delta 0.9, got %f", r.Delta)
	}
}
