// Package experiment assembles headless runs from a configuration.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/cubeloop/internal/anim"
	"github.com/san-kum/cubeloop/internal/clock"
	"github.com/san-kum/cubeloop/internal/config"
	"github.com/san-kum/cubeloop/internal/cube"
	"github.com/san-kum/cubeloop/internal/scramble"
	"github.com/san-kum/cubeloop/internal/sim"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	log      logrus.FieldLogger
	runner   *sim.Runner
}

// New prepares an experiment. A zero seed in cfg is replaced by a
// time-based one so the run can still be reproduced from its metadata.
func New(cfg *config.Config, log logrus.FieldLogger) *Experiment {
	cfg = cfg.Clone()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Experiment{cfg: cfg, registry: NewRegistry(), log: log}
}

// Config returns the effective configuration, seed included.
func (e *Experiment) Config() *config.Config { return e.cfg }

// Setup builds the runner with the named metrics, or the default set when
// none are given.
func (e *Experiment) Setup(metricNames ...string) error {
	ms, err := e.registry.Metrics(metricNames...)
	if err != nil {
		return err
	}
	e.runner = e.build(e.cfg.Seed)
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context, verify bool) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.simConfig(verify))
}

// Ensemble runs n seeds starting at the configured one, each with its own
// controller and default metrics.
func (e *Experiment) Ensemble(ctx context.Context, n int, verify bool) ([]*sim.Result, error) {
	factory := func(seed int64) *sim.Runner {
		r := e.build(seed)
		for _, m := range e.registry.DefaultMetrics() {
			r.AddMetric(m)
		}
		return r
	}
	return sim.NewEnsemble(factory, n, e.cfg.Seed).Run(ctx, e.simConfig(verify))
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner {
	return e.runner
}

func (e *Experiment) build(seed int64) *sim.Runner {
	log := e.log.WithField("seed", seed)
	ctrl := anim.New(
		cube.NewPuzzle(),
		scramble.NewSeeded(seed),
		anim.FromConfig(e.cfg),
		anim.WithLogger(log),
	)
	r := sim.New(ctrl, clock.NewFixed(e.cfg.Run.Dt))
	r.SetSeed(seed)
	r.SetLogger(log)
	return r
}

func (e *Experiment) simConfig(verify bool) sim.Config {
	return sim.Config{Duration: e.cfg.Run.Duration, Verify: verify}
}
