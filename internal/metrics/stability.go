package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/hhsim/internal/sim"
)

// GatingBounds is the fraction of samples whose gating variables all lie in
// [0, 1]. Nothing clamps the gates, so values below 1 flag a run that left
// the physical range.
type GatingBounds struct {
	name       string
	violations int
	samples    int
}

func NewGatingBounds() *GatingBounds {
	return &GatingBounds{name: "gating_in_bounds"}
}

func (g *GatingBounds) Name() string {
	return g.name
}

func (g *GatingBounds) Observe(x sim.State, t float32) {
	g.samples++
	for _, i := range []int{sim.IdxN, sim.IdxM, sim.IdxH} {
		if !(x[i] >= 0 && x[i] <= 1) {
			g.violations++
			break
		}
	}
}

func (g *GatingBounds) Value() float64 {
	if g.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(g.violations)/float64(g.samples)
}

func (g *GatingBounds) Reset() {
	g.violations = 0
	g.samples = 0
}

// NonFinite counts samples holding a NaN or Inf.
type NonFinite struct {
	name  string
	count int
	first float32
}

func NewNonFinite() *NonFinite {
	return &NonFinite{name: "non_finite", first: math32.NaN()}
}

func (n *NonFinite) Name() string { return n.name }

func (n *NonFinite) Observe(x sim.State, t float32) {
	if x.IsValid() {
		return
	}
	if n.count == 0 {
		n.first = t
	}
	n.count++
}

func (n *NonFinite) Value() float64 { return float64(n.count) }

// FirstTime is the time of the first non-finite sample, NaN if none.
func (n *NonFinite) FirstTime() float32 { return n.first }

func (n *NonFinite) Reset() {
	n.count = 0
	n.first = math32.NaN()
}
