package neuron_test

import (
	"context"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hhsim/internal/integrators"
	"github.com/san-kum/hhsim/internal/neuron"
	"github.com/san-kum/hhsim/internal/sim"
)

// goldenFinalV is the final voltage printed by the single-precision
// reference program for the default scenario, at its six significant digits.
const (
	goldenFinalV     = 0.000615596
	goldenFinalVText = "0.000615596"
)

func run(hh *neuron.HodgkinHuxley, x0 sim.State, cfg sim.Config) *sim.Result {
	s := sim.New(hh, integrators.NewHeun())
	result, err := s.Run(context.Background(), x0, cfg)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return result
}

var _ = Describe("HodgkinHuxley", func() {
	var hh *neuron.HodgkinHuxley

	BeforeEach(func() {
		hh = neuron.Default()
	})

	Describe("Initial", func() {
		It("starts at the leak reversal with alpha-initialised gates", func() {
			x := hh.Initial()
			Expect(x).To(HaveLen(sim.StateDim))
			Expect(x[sim.IdxV]).To(Equal(float32(neuron.VL)))
			Expect(x[sim.IdxN]).To(Equal(neuron.AlphaN(neuron.VL)))
			Expect(x[sim.IdxM]).To(Equal(neuron.AlphaM(neuron.VL)))
			Expect(x[sim.IdxH]).To(Equal(neuron.AlphaH(neuron.VL)))
		})

		It("does not use the steady state", func() {
			v := float32(neuron.VL)
			steady := neuron.AlphaN(v) / (neuron.AlphaN(v) + neuron.BetaN(v))
			Expect(hh.Initial()[sim.IdxN]).NotTo(BeNumerically("~", steady, 1e-3))
		})
	})

	Describe("Derive", func() {
		It("has no leak current at the leak reversal", func() {
			_, _, iL := hh.IonicCurrents(hh.Initial())
			Expect(iL).To(BeZero())
		})

		It("adds the applied current only inside the stimulus window", func() {
			x := sim.State{neuron.VL, 0, 0, 0}
			Expect(hh.Derive(x, 0)[sim.IdxV]).To(BeZero())
			Expect(hh.Derive(x, 3000)[sim.IdxV]).To(Equal(float32(neuron.IApp)))
		})

		It("combines currents as (I_app - I_K - I_Na - I_L)/C_m", func() {
			x := sim.State{30, 0.4, 0.2, 0.5}
			iK, iNa, iL := hh.IonicCurrents(x)
			dv := hh.Derive(x, 3000)[sim.IdxV]
			Expect(dv).To(BeNumerically("~", neuron.IApp-iK-iNa-iL, 1e-3))
			Expect(iK).To(BeNumerically("~", 36*0.4*0.4*0.4*0.4*(30+12), 1e-3))
			Expect(iNa).To(BeNumerically("~", 120*0.2*0.2*0.2*0.5*(30-115), 1e-3))
			Expect(iL).To(BeNumerically("~", 0.3*(30-10.6), 1e-4))
		})

		It("rounds every product before combining", func() {
			v, n, m, h := float32(-3.5), float32(0.31), float32(0.07), float32(0.62)
			x := sim.State{v, n, m, h}
			iK, iNa, iL := hh.IonicCurrents(x)
			dx := hh.Derive(x, 3000)

			Expect(iL).To(Equal(float32(float32(0.3) * (v - 10.6))))
			Expect(dx[sim.IdxV]).To(Equal(float32(neuron.IApp) - iK - iNa - iL))
			Expect(dx[sim.IdxN]).To(Equal(float32(neuron.AlphaN(v)*(1-n)) - float32(neuron.BetaN(v)*n)))
			Expect(dx[sim.IdxM]).To(Equal(float32(neuron.AlphaM(v)*(1-m)) - float32(neuron.BetaM(v)*m)))
			Expect(dx[sim.IdxH]).To(Equal(float32(neuron.AlphaH(v)*(1-h)) - float32(neuron.BetaH(v)*h)))
		})

		It("relaxes each gate toward alpha/(alpha+beta)", func() {
			v := float32(40)
			x := sim.State{v, 1, 1, 1}
			dx := hh.Derive(x, 0)
			Expect(dx[sim.IdxN]).To(Equal(-neuron.BetaN(v)))
			Expect(dx[sim.IdxM]).To(Equal(-neuron.BetaM(v)))
			Expect(dx[sim.IdxH]).To(Equal(-neuron.BetaH(v)))
		})

		It("passes NaN through at the alpha_n singularity", func() {
			dx := hh.Derive(sim.State{10, 0.3, 0.1, 0.6}, 0)
			Expect(math32.IsNaN(dx[sim.IdxN])).To(BeTrue())
		})
	})

	Describe("pure leak membrane", func() {
		It("decays monotonically toward V_L", func() {
			hh.Membrane.GK = 0
			hh.Membrane.GNa = 0
			hh.Stimulus.Amplitude = 0

			x0 := hh.InitialAt(neuron.VL + 10)
			result := run(hh, x0, sim.Config{TMax: 100, Dt: neuron.Dt})

			for i := 1; i < len(result.V); i++ {
				Expect(result.V[i]).To(BeNumerically("<=", result.V[i-1]), "step %d", i)
				Expect(result.V[i]).To(BeNumerically(">=", float32(neuron.VL)), "step %d", i)
			}
			Expect(result.FinalVoltage()).To(BeNumerically("~", neuron.VL, 0.1))
		})
	})

	Describe("without stimulus", func() {
		It("settles to the resting potential", func() {
			hh.Stimulus.Amplitude = 0
			result := run(hh, hh.Initial(), sim.Config{TMax: 1000, Dt: neuron.Dt, Mode: sim.Window})
			Expect(result.FinalVoltage()).To(BeNumerically("~", goldenFinalV, 0.05))
		})
	})

	Describe("reference scenario", func() {
		cfg := sim.Config{TMax: neuron.TMax, Dt: neuron.Dt}

		It("uses one million grid points", func() {
			Expect(sim.NumSteps(neuron.TMax, neuron.Dt)).To(Equal(1000000))
		})

		It("reproduces the reference final voltage", func() {
			result := run(hh, hh.Initial(), cfg)
			Expect(result.V).To(HaveLen(1000000))
			Expect(result.Steps).To(Equal(999999))
			Expect(result.V[0]).To(Equal(float32(neuron.VL)))
			Expect(fmt.Sprintf("%.6g", result.FinalVoltage())).To(Equal(goldenFinalVText))
		})

		It("accumulates the time grid in single precision", func() {
			result := run(hh, hh.Initial(), cfg)
			Expect(result.Times[len(result.Times)-1]).To(BeNumerically("~", 9865.21, 0.5))
		})

		It("spikes while the stimulus is on", func() {
			result := run(hh, hh.Initial(), cfg)
			var peak float32
			for i, t := range result.Times {
				if t > 1001 && t < 4999 && result.V[i] > peak {
					peak = result.V[i]
				}
			}
			Expect(peak).To(BeNumerically(">", 50))
		})

		It("is deterministic", func() {
			a := run(neuron.Default(), neuron.Default().Initial(), sim.Config{TMax: neuron.TMax, Dt: neuron.Dt, Mode: sim.Window})
			b := run(neuron.Default(), neuron.Default().Initial(), sim.Config{TMax: neuron.TMax, Dt: neuron.Dt, Mode: sim.Window})
			Expect(math.Float32bits(a.FinalVoltage())).To(Equal(math.Float32bits(b.FinalVoltage())))
		})

		It("gives the same answer with only two states kept", func() {
			full := run(hh, hh.Initial(), cfg)
			win := run(neuron.Default(), hh.Initial(), sim.Config{TMax: neuron.TMax, Dt: neuron.Dt, Mode: sim.Window})
			Expect(win.Final).To(Equal(full.Final))
		})
	})

	Describe("coarse step", func() {
		It("terminates after ceil(t_max/dt) grid points", func() {
			result := run(hh, hh.Initial(), sim.Config{TMax: neuron.TMax, Dt: 1.0})
			Expect(result.V).To(HaveLen(10000))
			Expect(result.Steps).To(Equal(9999))
		})
	})
})
