package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/cubeloop/internal/metrics"
	"github.com/san-kum/cubeloop/internal/sim"
)

// Registry maps metric names to constructors.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["turns"] = func() sim.Metric { return metrics.NewTurnCount() }
	r.metrics["cycle_length"] = func() sim.Metric { return metrics.NewCycleLength() }
	r.metrics["max_depth"] = func() sim.Metric { return metrics.NewMaxDepth() }
	r.metrics["orientation_drift"] = func() sim.Metric { return metrics.NewOrientationDrift() }
	r.metrics["dwell_ratio"] = func() sim.Metric { return metrics.NewDwellRatio() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds the named metrics, or every metric when names is empty.
func (r *Registry) Metrics(names ...string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}
