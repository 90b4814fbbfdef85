package neuron

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/hhsim/internal/sim"
)

// Reference scenario constants.
const (
	Cm = 1.0 // membrane capacitance, uF/cm^2

	GK  = 36.0  // potassium conductance, mS/cm^2
	GNa = 120.0 // sodium conductance
	GL  = 0.3   // leak conductance

	VK  = -12.0 // reversal potentials, mV
	VNa = 115.0
	VL  = 10.6

	TMax = 10000.0 // ms
	Dt   = 0.01

	IStartTime = 1000.0
	IEndTime   = 5000.0
	IApp       = 12.0 // applied current, uA/cm^2
)

// Membrane holds the capacitance, conductances and reversal potentials.
type Membrane struct {
	Cm  float32 `yaml:"c_m"`
	GK  float32 `yaml:"g_k"`
	GNa float32 `yaml:"g_na"`
	GL  float32 `yaml:"g_l"`
	VK  float32 `yaml:"v_k"`
	VNa float32 `yaml:"v_na"`
	VL  float32 `yaml:"v_l"`
}

func DefaultMembrane() Membrane {
	return Membrane{Cm: Cm, GK: GK, GNa: GNa, GL: GL, VK: VK, VNa: VNa, VL: VL}
}

// Currents returns the potassium, sodium and leak currents at a state.
// Products are rounded to float32 one at a time, as in Derive.
func (mb Membrane) Currents(v, n, m, h float32) (iK, iNa, iL float32) {
	iK = float32(float32(mb.GK*math32.Pow(n, 4)) * (v - mb.VK))
	iNa = float32(float32(float32(mb.GNa*math32.Pow(m, 3))*h) * (v - mb.VNa))
	iL = float32(mb.GL * (v - mb.VL))
	return iK, iNa, iL
}

// Stimulus is a constant current applied over a time window.
type Stimulus struct {
	Amplitude float32 `yaml:"amplitude"`
	Start     float32 `yaml:"start"`
	End       float32 `yaml:"end"`
}

func DefaultStimulus() Stimulus {
	return Stimulus{Amplitude: IApp, Start: IStartTime, End: IEndTime}
}

// Current is nonzero only while t >= Start+1 and t <= End-1.
func (s Stimulus) Current(t float32) float32 {
	return s.Amplitude * Heaviside(t-s.Start) * Heaviside(s.End-t)
}

// HodgkinHuxley implements sim.Dynamics over [V, N, M, H].
type HodgkinHuxley struct {
	Membrane Membrane
	Stimulus Stimulus
}

// Default returns the reference scenario model.
func Default() *HodgkinHuxley {
	return &HodgkinHuxley{
		Membrane: DefaultMembrane(),
		Stimulus: DefaultStimulus(),
	}
}

func (hh *HodgkinHuxley) StateDim() int { return sim.StateDim }

// Initial returns V=V_L with each gate set to its alpha rate at V_L.
// This is alpha alone, not the steady state alpha/(alpha+beta).
func (hh *HodgkinHuxley) Initial() sim.State {
	return hh.InitialAt(hh.Membrane.VL)
}

// InitialAt is Initial with the voltage moved to v and the gates still
// evaluated at v.
func (hh *HodgkinHuxley) InitialAt(v float32) sim.State {
	x := make(sim.State, sim.StateDim)
	x[sim.IdxV] = v
	x[sim.IdxN] = AlphaN(v)
	x[sim.IdxM] = AlphaM(v)
	x[sim.IdxH] = AlphaH(v)
	return x
}

// Derive returns dx/dt. Every product is converted to float32 before it is
// added, which keeps the compiler from fusing it into a multiply-add.
func (hh *HodgkinHuxley) Derive(x sim.State, t float32) sim.State {
	v, n, m, h := x[sim.IdxV], x[sim.IdxN], x[sim.IdxM], x[sim.IdxH]
	iApp := hh.Stimulus.Current(t)
	iK, iNa, iL := hh.Membrane.Currents(v, n, m, h)

	dx := make(sim.State, sim.StateDim)
	dx[sim.IdxV] = (iApp - iK - iNa - iL) / hh.Membrane.Cm
	dx[sim.IdxN] = float32(AlphaN(v)*(1-n)) - float32(BetaN(v)*n)
	dx[sim.IdxM] = float32(AlphaM(v)*(1-m)) - float32(BetaM(v)*m)
	dx[sim.IdxH] = float32(AlphaH(v)*(1-h)) - float32(BetaH(v)*h)
	return dx
}

// IonicCurrents returns the three ionic currents at x.
func (hh *HodgkinHuxley) IonicCurrents(x sim.State) (iK, iNa, iL float32) {
	return hh.Membrane.Currents(x[sim.IdxV], x[sim.IdxN], x[sim.IdxM], x[sim.IdxH])
}
