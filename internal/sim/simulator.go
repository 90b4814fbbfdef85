package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// maxSteps bounds the grid so that n fits an int and a slice length on
// every platform.
const maxSteps = math.MaxInt32

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// NumSteps returns the number of grid points, ceil(tMax/dt), computed in
// single precision.
func NumSteps(tMax, dt float32) int {
	return int(math32.Ceil(tMax / dt))
}

// Run integrates from x0 over the grid t[0]=0, t[i]=t[i-1]+dt. The grid is
// accumulated in float32 rather than computed as i*dt, so late grid points
// drift below i*dt.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	n, err := s.validateConfig(cfg)
	if err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}

	checkEvery := cfg.CheckEvery
	if checkEvery <= 0 {
		checkEvery = DefaultCheckEvery
	}

	result := &Result{Metrics: make(map[string]float64)}
	if cfg.Mode == Full {
		result.Times = make([]float32, n)
		result.V = make([]float32, n)
		result.N = make([]float32, n)
		result.M = make([]float32, n)
		result.H = make([]float32, n)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	var t float32
	dt := cfg.Dt

	s.record(result, cfg.Mode, 0, x, t)
	if cfg.Validate && !x.IsValid() {
		result.Final = x
		return result, &SimulationError{Step: 0, Time: t, State: x, Wrapped: ErrNonFinite}
	}

	for i := 0; i < n-1; i++ {
		if i%checkEvery == 0 {
			select {
			case <-ctx.Done():
				result.Final = x
				s.collect(result)
				return result, ctx.Err()
			default:
			}
		}

		s.observe(i, x, t)

		next := s.integrator.Step(s.dyn, x, t, dt)
		t += dt
		result.Steps++

		if cfg.Validate && !next.IsValid() {
			result.Final = next
			s.collect(result)
			return result, &SimulationError{Step: i + 1, Time: t, State: next, Wrapped: ErrNonFinite}
		}

		x = next
		s.record(result, cfg.Mode, i+1, x, t)
	}

	s.observe(n-1, x, t)
	result.Final = x
	s.collect(result)

	return result, nil
}

// validateConfig checks cfg and returns the number of grid points.
func (s *Simulator) validateConfig(cfg Config) (int, error) {
	if !(cfg.Dt > 0) {
		return 0, fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.TMax > 0) {
		return 0, fmt.Errorf("%w: t_max must be positive, got %g", ErrInvalidConfig, cfg.TMax)
	}
	if cfg.Mode != Full && cfg.Mode != Window {
		return 0, fmt.Errorf("%w: unknown trajectory mode %d", ErrInvalidConfig, int(cfg.Mode))
	}

	ratio := math32.Ceil(cfg.TMax / cfg.Dt)
	if math32.IsInf(ratio, 0) || float64(ratio) > maxSteps {
		return 0, fmt.Errorf("%w: t_max/dt = %g grid points is too many", ErrInvalidConfig, ratio)
	}
	n := int(ratio)
	if n < 1 {
		return 0, fmt.Errorf("%w: t_max/dt = %g gives no grid points", ErrInvalidConfig, cfg.TMax/cfg.Dt)
	}
	return n, nil
}

func (s *Simulator) record(r *Result, mode TrajectoryMode, i int, x State, t float32) {
	if mode != Full {
		return
	}
	r.Times[i] = t
	r.V[i] = x[IdxV]
	r.N[i] = x[IdxN]
	r.M[i] = x[IdxM]
	r.H[i] = x[IdxH]
}

func (s *Simulator) observe(i int, x State, t float32) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(i, x, t)
	}
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
