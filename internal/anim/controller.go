package anim

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/scramble"
)

// Config holds the loop constants.
type Config struct {
	MinSteps int
	MaxSteps int
	Rate     float64 // quarter turns per second
	Dwell    float64 // seconds
}

func DefaultConfig() Config {
	return Config{
		MinSteps: config.DefaultMinSteps,
		MaxSteps: config.DefaultMaxSteps,
		Rate:     config.DefaultRate,
		Dwell:    config.DefaultDwell,
	}
}

// FromConfig extracts the loop constants from a run configuration.
func FromConfig(c *config.Config) Config {
	return Config{
		MinSteps: c.Scramble.MinSteps,
		MaxSteps: c.Scramble.MaxSteps,
		Rate:     c.Motion.Rate,
		Dwell:    c.Motion.Dwell,
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for cycle and commit events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller is the single owner of a puzzle. It is not safe for
// concurrent use.
type Controller struct {
	cfg       Config
	puzzle    *cube.Puzzle
	gen       *scramble.Generator
	state     State
	history   History
	remaining int
	cycles    int
	cycleLen  int
	log       logrus.FieldLogger
}

// New returns a controller resting on p, with the first dwell starting at 0.
func New(p *cube.Puzzle, gen *scramble.Generator, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		puzzle: p,
		gen:    gen,
		state:  ShowSolved{Since: 0},
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Tick advances the loop by one clock reading.
func (c *Controller) Tick(t clock.Time) Frame {
	f := Frame{Time: t.Elapsed}

	var turning Turning
	switch s := c.state.(type) {
	case ShowSolved:
		if t.Elapsed < s.Since+c.cfg.Dwell {
			return c.frame(f)
		}
		turning = c.startCycle()
	case Turning:
		turning = s
	}

	turning.Progress += t.Delta * c.cfg.Rate
	if turning.Progress < 1 {
		c.state = turning
		return c.frame(f)
	}

	f.Commit = c.commit(turning.Turn, t.Elapsed)
	c.state = c.next(turning.Turn, t.Elapsed)
	if _, ok := c.state.(ShowSolved); ok {
		f.Solved = true
	}
	return c.frame(f)
}

func (c *Controller) startCycle() Turning {
	c.remaining = max(c.gen.Length(c.cfg.MinSteps, c.cfg.MaxSteps), 1)
	c.cycleLen = c.remaining
	c.log.WithFields(logrus.Fields{
		"cycle":  c.cycles + 1,
		"length": c.remaining,
	}).Info("scramble started")
	return Turning{Turn: c.gen.Next(nil)}
}

// commit applies t. A scramble turn is pushed onto the history; a reversal
// turn retires the entry it undoes, so the history empties exactly when the
// puzzle is solved again.
func (c *Controller) commit(t cube.Turn, now float64) *Commit {
	c.puzzle.Apply(t)
	scrambling := c.remaining > 0
	if scrambling {
		c.history.Push(t)
		c.remaining--
	} else {
		c.history.Pop()
	}
	commit := &Commit{Time: now, Turn: t, Scramble: scrambling, Depth: c.history.Len()}
	c.log.WithFields(logrus.Fields{
		"turn":     t.String(),
		"scramble": scrambling,
		"depth":    commit.Depth,
	}).Debug("turn committed")
	return commit
}

// next picks the state that follows a completed turn.
func (c *Controller) next(done cube.Turn, now float64) State {
	if c.remaining > 0 {
		return Turning{Turn: c.gen.Next(&done)}
	}
	prev, ok := c.history.Peek()
	if !ok {
		c.cycles++
		c.log.WithFields(logrus.Fields{
			"cycle": c.cycles,
			"turns": 2 * c.cycleLen,
		}).Info("puzzle solved")
		return ShowSolved{Since: now}
	}
	return Turning{Turn: prev.Inverse()}
}

func (c *Controller) frame(f Frame) Frame {
	f.Remaining = c.remaining
	f.Depth = c.history.Len()
	f.Cycles = c.cycles

	var active *cube.Turn
	switch s := c.state.(type) {
	case ShowSolved:
		f.Phase = PhaseDwell
	case Turning:
		f.Phase = PhaseReverse
		if c.remaining > 0 {
			f.Phase = PhaseScramble
		}
		// a commit this tick leaves the next turn at rest until the next tick
		if f.Commit == nil {
			turn := s.Turn
			active = &turn
			f.Progress = s.Progress
		}
	}
	f.Active = active

	f.Poses = poses(c.puzzle, active, f.Progress)
	return f
}

// RestPoses returns the poses of a puzzle with no turn in progress.
func RestPoses(p *cube.Puzzle) []Pose {
	return poses(p, nil, 0)
}

func poses(p *cube.Puzzle, active *cube.Turn, progress float64) []Pose {
	cubelets := p.Cubelets()
	out := make([]Pose, len(cubelets))
	for i, cl := range cubelets {
		pose := Pose{
			ID:          cl.ID,
			Original:    cl.Original,
			Coord:       cl.Coord,
			Orientation: cl.Orientation,
		}
		if active != nil && cl.OnLayer(active.Move) {
			pose.OnLayer = true
			pose.Delta = &TurnDelta{
				Axis:     active.Move.Normal(),
				Fraction: float64(active.Dir) * progress,
			}
		}
		out[i] = pose
	}
	return out
}

// State returns the current loop state.
func (c *Controller) State() State { return c.state }

// Puzzle returns the owned puzzle for read-only inspection.
func (c *Controller) Puzzle() *cube.Puzzle { return c.puzzle }

// History returns the scramble turns still to be reversed, oldest first.
func (c *Controller) History() []cube.Turn { return c.history.Turns() }

// Remaining returns the scramble turns still to be drawn this cycle.
func (c *Controller) Remaining() int { return c.remaining }

// Cycles returns the number of completed cycles.
func (c *Controller) Cycles() int { return c.cycles }

// CycleLength returns the scramble length drawn for the current or most
// recent cycle.
func (c *Controller) CycleLength() int { return c.cycleLen }
