package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/cubeloop/internal/anim"
)

// OrientationDrift tracks how far orientation quaternions stray from unit
// length. Orientations are re-normalized on every commit, so the value
// should stay near machine epsilon however long the run.
type OrientationDrift struct {
	name  string
	worst float64
	dev   []float64 // per-frame scratch, reused
}

func NewOrientationDrift() *OrientationDrift {
	return &OrientationDrift{name: "orientation_drift"}
}

func (d *OrientationDrift) Name() string { return d.name }

func (d *OrientationDrift) Observe(f anim.Frame) {
	if f.Commit == nil || len(f.Poses) == 0 {
		return
	}
	d.dev = d.dev[:0]
	for _, p := range f.Poses {
		d.dev = append(d.dev, math.Abs(1-p.Orientation.Len()))
	}
	d.worst = math.Max(d.worst, floats.Max(d.dev))
}

func (d *OrientationDrift) Value() float64 { return d.worst }

func (d *OrientationDrift) Reset() {
	d.worst = 0
}
