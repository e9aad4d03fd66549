package sim

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
)

// Runner drives a controller from a clock without any presentation.
type Runner struct {
	ctrl      *anim.Controller
	clk       clock.Clock
	seed      int64
	metrics   []Metric
	observers []Observer
	log       logrus.FieldLogger
}

func New(ctrl *anim.Controller, clk clock.Clock) *Runner {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Runner{
		ctrl:      ctrl,
		clk:       clk,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       l,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// SetSeed records the seed the controller's generator was built with.
func (r *Runner) SetSeed(seed int64) { r.seed = seed }

func (r *Runner) SetLogger(l logrus.FieldLogger) { r.log = l }

// Controller returns the driven controller.
func (r *Runner) Controller() *anim.Controller { return r.ctrl }

// Run ticks until cfg.Duration of clock time has passed. On cancellation
// the partial result is returned together with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Seed:    r.seed,
		Commits: make([]anim.Commit, 0),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for result.Time < cfg.Duration {
		if cfg.MaxFrames > 0 && result.Frames >= cfg.MaxFrames {
			break
		}
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		f := r.ctrl.Tick(r.clk.Now())
		result.Frames++
		result.Time = f.Time
		result.Cycles = f.Cycles
		result.MaxDepth = max(result.MaxDepth, f.Depth)

		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f)
		}

		if f.Commit != nil {
			result.Commits = append(result.Commits, *f.Commit)
		}
		if cfg.Verify {
			if err := r.verify(f, result.Frames); err != nil {
				r.log.WithError(err).Error("invariant violated")
				result.Errors = append(result.Errors, err)
				break
			}
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	r.log.WithFields(logrus.Fields{
		"frames": result.Frames,
		"cycles": result.Cycles,
		"turns":  len(result.Commits),
	}).Debug("run finished")
}

func (r *Runner) verify(f anim.Frame, frame int) error {
	fail := func(msg string, args ...any) error {
		return InvariantError{Frame: frame, Time: f.Time, Message: fmt.Sprintf(msg, args...)}
	}
	p := r.ctrl.Puzzle()

	if f.Depth > r.ctrl.CycleLength() {
		return fail("history depth %d exceeds scramble length %d", f.Depth, r.ctrl.CycleLength())
	}
	if f.Commit != nil {
		if !p.Conserved() {
			return fail("coordinates no longer a permutation after %v", f.Commit.Turn)
		}
		for _, c := range p.Cubelets() {
			if !c.Consistent() {
				return fail("cubelet %d orientation disagrees with its coordinate", c.ID)
			}
		}
	}
	if f.Solved && (f.Depth != 0 || !p.IsSolved()) {
		return fail("cycle %d ended without returning to solved", f.Cycles)
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.MaxFrames < 0 {
		return fmt.Errorf("max frames must not be negative, got %d", cfg.MaxFrames)
	}
	return nil
}
