package metrics

import (
	"math"

	"github.com/san-kum/hhsim/internal/sim"
)

// Extremum tracks the largest or smallest membrane voltage.
type Extremum struct {
	name string
	max  bool
	val  float32
	seen bool
}

func NewPeakVoltage() *Extremum {
	return &Extremum{name: "peak_v", max: true}
}

func NewTroughVoltage() *Extremum {
	return &Extremum{name: "trough_v"}
}

func (e *Extremum) Name() string { return e.name }

func (e *Extremum) Observe(x sim.State, t float32) {
	v := x[sim.IdxV]
	if !e.seen {
		e.val = v
		e.seen = true
		return
	}
	if (e.max && v > e.val) || (!e.max && v < e.val) {
		e.val = v
	}
}

func (e *Extremum) Value() float64 {
	if !e.seen {
		return math.NaN()
	}
	return float64(e.val)
}

func (e *Extremum) Reset() {
	e.val = 0
	e.seen = false
}
