package integrators

import "github.com/san-kum/hhsim/internal/sim"

// Heun is the improved Euler predictor-corrector. The corrector slopes are
// evaluated at the predicted state but at the same time t as the predictor,
// so a time-dependent forcing term is held fixed across the step.
type Heun struct {
	pred sim.State
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) ensureScratch(n int) {
	if len(h.pred) != n {
		h.pred = make(sim.State, n)
	}
}

// Step advances x by dt. The explicit float32 conversions keep every product
// in the update rounded on its own, so none is fused into a multiply-add.
// Fusion inside dyn.Derive is up to the dynamics.
func (h *Heun) Step(dyn sim.Dynamics, x sim.State, t, dt float32) sim.State {
	n := len(x)
	h.ensureScratch(n)

	k1 := dyn.Derive(x, t)
	for i := 0; i < n; i++ {
		h.pred[i] = x[i] + float32(k1[i]*dt)
	}

	k2 := dyn.Derive(h.pred, t)

	result := make(sim.State, n)
	for i := 0; i < n; i++ {
		result[i] = x[i] + float32((k1[i]+k2[i])*dt)/2
	}
	return result
}
