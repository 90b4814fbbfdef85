package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/hhsim/internal/config"
	"github.com/san-kum/hhsim/internal/metrics"
	"github.com/san-kum/hhsim/internal/neuron"
	"github.com/san-kum/hhsim/internal/sim"
)

type metricFactory func(model *neuron.HodgkinHuxley, cfg *config.Config) sim.Metric

type Registry struct {
	metrics map[string]metricFactory
}

func NewRegistry() *Registry {
	r := &Registry{metrics: make(map[string]metricFactory)}

	r.metrics["spikes"] = func(_ *neuron.HodgkinHuxley, cfg *config.Config) sim.Metric {
		return metrics.NewSpikeCount(cfg.SpikeThreshold)
	}
	r.metrics["peak_v"] = func(*neuron.HodgkinHuxley, *config.Config) sim.Metric { return metrics.NewPeakVoltage() }
	r.metrics["trough_v"] = func(*neuron.HodgkinHuxley, *config.Config) sim.Metric { return metrics.NewTroughVoltage() }
	r.metrics["gating_in_bounds"] = func(*neuron.HodgkinHuxley, *config.Config) sim.Metric { return metrics.NewGatingBounds() }
	r.metrics["non_finite"] = func(*neuron.HodgkinHuxley, *config.Config) sim.Metric { return metrics.NewNonFinite() }
	r.metrics["mean_i_app"] = func(model *neuron.HodgkinHuxley, _ *config.Config) sim.Metric {
		return metrics.NewMeanStimulus(model.Stimulus.Current)
	}

	return r
}

func (r *Registry) GetMetric(name string, model *neuron.HodgkinHuxley, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(model, cfg), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns every registered metric in name order.
func (r *Registry) DefaultMetrics(model *neuron.HodgkinHuxley, cfg *config.Config) []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name](model, cfg))
	}
	return out
}
