package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a non-positive step size or horizon.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrNonFinite indicates a NaN or Inf in the state. Only reported when
	// validation is enabled.
	ErrNonFinite = errors.New("sim: non-finite state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates an initial state that does not match the system.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float32
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v [%s]", e.Step, e.Time, e.Wrapped, e.State)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
