package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/hhsim/internal/config"
	"github.com/san-kum/hhsim/internal/integrators"
	"github.com/san-kum/hhsim/internal/neuron"
	"github.com/san-kum/hhsim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	logger    *log.Logger
	model     *neuron.HodgkinHuxley
	simulator *sim.Simulator
	metrics   []sim.Metric
}

// New returns an experiment for cfg. A nil logger disables progress logging.
func New(cfg *config.Config, logger *log.Logger) *Experiment {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Experiment{cfg: cfg, logger: logger}
}

func (e *Experiment) Setup(model *neuron.HodgkinHuxley, metrics []sim.Metric) error {
	if model == nil {
		return fmt.Errorf("experiment: nil model")
	}
	if err := e.cfg.Check(); err != nil {
		return fmt.Errorf("experiment: %w", err)
	}

	e.model = model
	e.metrics = metrics
	e.simulator = sim.New(model, integrators.NewHeun())
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	if e.logger != nil && e.cfg.ProgressEvery > 0 {
		e.simulator.AddObserver(sim.NewProgressLogger(e.logger, e.cfg.ProgressEvery))
	}
	return nil
}

// Run integrates the model over the reference horizon.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		TMax:       neuron.TMax,
		Dt:         neuron.Dt,
		Mode:       e.cfg.Mode(),
		Validate:   e.cfg.Validate,
		CheckEvery: e.cfg.CheckEvery,
	}

	if e.logger != nil {
		e.logger.Info("starting run", "steps", sim.NumSteps(simCfg.TMax, simCfg.Dt), "mode", simCfg.Mode, "validate", simCfg.Validate)
	}

	result, err := e.simulator.Run(ctx, e.model.Initial(), simCfg)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("run failed", "err", err)
		}
		return result, err
	}

	if e.logger != nil {
		e.logger.Info("run complete", "steps", result.Steps, "v_final", result.FinalVoltage())
		if !result.Final.IsValid() {
			e.logger.Warn("final state is not finite", "state", result.Final)
		}
	}
	return result, nil
}

func (e *Experiment) Model() *neuron.HodgkinHuxley { return e.model }

func (e *Experiment) Metrics() []sim.Metric { return e.metrics }

// Reference runs the default model with the default harness and no
// metrics or logging.
func Reference(ctx context.Context) (*sim.Result, error) {
	e := New(config.DefaultConfig(), nil)
	if err := e.Setup(neuron.Default(), nil); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
