package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/cubeloop/internal/anim"
)

// CycleLength averages the scramble length of completed cycles.
type CycleLength struct {
	name    string
	current int
	lengths []float64
}

func NewCycleLength() *CycleLength {
	return &CycleLength{name: "cycle_length"}
}

func (c *CycleLength) Name() string { return c.name }

func (c *CycleLength) Observe(f anim.Frame) {
	if f.Commit != nil && f.Commit.Scramble {
		c.current++
	}
	if f.Solved {
		c.lengths = append(c.lengths, float64(c.current))
		c.current = 0
	}
}

// Value is the mean scramble length, or 0 before the first cycle ends.
func (c *CycleLength) Value() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return stat.Mean(c.lengths, nil)
}

// StdDev is the sample standard deviation of the scramble lengths.
func (c *CycleLength) StdDev() float64 {
	if len(c.lengths) < 2 {
		return 0
	}
	return stat.StdDev(c.lengths, nil)
}

// Lengths returns the recorded scramble lengths in cycle order.
func (c *CycleLength) Lengths() []float64 {
	out := make([]float64, len(c.lengths))
	copy(out, c.lengths)
	return out
}

func (c *CycleLength) Reset() {
	c.current = 0
	c.lengths = c.lengths[:0]
}
