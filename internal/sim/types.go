package sim

import (
	"fmt"

	"github.com/chewxy/math32"
)

// State indices for the membrane model.
const (
	IdxV = iota
	IdxN
	IdxM
	IdxH
	StateDim
)

// State is [V, N, M, H] in single precision.
type State []float32

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) String() string {
	if len(s) != StateDim {
		return fmt.Sprint([]float32(s))
	}
	return fmt.Sprintf("V=%g N=%g M=%g H=%g", s[IdxV], s[IdxN], s[IdxM], s[IdxH])
}

type Dynamics interface {
	Derive(x State, t float32) State
	StateDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, t, dt float32) State
}

type Metric interface {
	Name() string
	Observe(x State, t float32)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, x State, t float32)
}

// TrajectoryMode selects how much history a run keeps.
type TrajectoryMode int

const (
	// Full keeps every grid point of t, V, N, M and H.
	Full TrajectoryMode = iota
	// Window keeps only the current and previous state.
	Window
)

func (m TrajectoryMode) String() string {
	switch m {
	case Full:
		return "full"
	case Window:
		return "window"
	default:
		return fmt.Sprintf("TrajectoryMode(%d)", int(m))
	}
}

// ParseTrajectoryMode maps "full" and "window" to their modes.
func ParseTrajectoryMode(s string) (TrajectoryMode, error) {
	switch s {
	case "", "full":
		return Full, nil
	case "window":
		return Window, nil
	default:
		return Full, fmt.Errorf("%w: unknown trajectory mode %q", ErrInvalidConfig, s)
	}
}

type Config struct {
	TMax       float32
	Dt         float32
	Mode       TrajectoryMode
	Validate   bool
	CheckEvery int
}

const DefaultCheckEvery = 10000

type Result struct {
	Times   []float32
	V       []float32
	N       []float32
	M       []float32
	H       []float32
	Final   State
	Steps   int
	Metrics map[string]float64
}

// FinalVoltage returns V[n-1].
func (r *Result) FinalVoltage() float32 {
	return r.Final[IdxV]
}
