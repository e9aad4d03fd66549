package sim

import (
	"fmt"

	"github.com/san-kum/cubeloop/internal/anim"
)

// Observer sees every frame as it is produced.
type Observer interface {
	OnFrame(f anim.Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f anim.Frame)

func (fn ObserverFunc) OnFrame(f anim.Frame) { fn(f) }

type Metric interface {
	Name() string
	Observe(f anim.Frame)
	Value() float64
	Reset()
}

type Config struct {
	Duration  float64 // seconds of loop time
	MaxFrames int     // 0 means unbounded
	Verify    bool    // check puzzle invariants while running
}

type Result struct {
	Seed     int64
	Frames   int
	Time     float64
	Cycles   int
	MaxDepth int
	Commits  []anim.Commit
	Metrics  map[string]float64
	Errors   []error
}

// Scrambles returns how many committed turns were scramble turns.
func (r *Result) Scrambles() int {
	n := 0
	for _, c := range r.Commits {
		if c.Scramble {
			n++
		}
	}
	return n
}

// InvariantError reports a puzzle invariant that failed during a run.
type InvariantError struct {
	Frame   int
	Time    float64
	Message string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}
