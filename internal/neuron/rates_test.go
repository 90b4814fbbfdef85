package neuron_test

import (
	"math"

	"github.com/chewxy/math32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hhsim/internal/neuron"
)

// closed forms evaluated in double precision
var (
	alphaN = func(v float64) float64 { return 0.01 * (10 - v) / (math.Exp((10-v)/10) - 1) }
	alphaM = func(v float64) float64 { return 0.1 * (25 - v) / (math.Exp((25-v)/10) - 1) }
	alphaH = func(v float64) float64 { return 0.07 * math.Exp(-v/20) }
	betaN  = func(v float64) float64 { return 0.125 * math.Exp(-v/80) }
	betaM  = func(v float64) float64 { return 4 * math.Exp(-v/18) }
	betaH  = func(v float64) float64 { return 1 / (math.Exp((30-v)/10) + 1) }
)

func expectRelClose(got float32, want float64) {
	tol := 1e-5 * math.Abs(want)
	if tol < 1e-9 {
		tol = 1e-9
	}
	ExpectWithOffset(1, got).To(BeNumerically("~", want, tol))
}

var _ = Describe("Rate functions", func() {
	It("match known values at rest", func() {
		expectRelClose(neuron.AlphaN(0), 0.1/(math.E-1))
		expectRelClose(neuron.AlphaM(0), 2.5/(math.Exp(2.5)-1))
		expectRelClose(neuron.AlphaH(0), 0.07)
		expectRelClose(neuron.BetaN(0), 0.125)
		expectRelClose(neuron.BetaM(0), 4)
		expectRelClose(neuron.BetaH(0), 1/(math.Exp(3)+1))
	})

	DescribeTable("agree with the closed forms",
		func(v float32) {
			x := float64(v)
			expectRelClose(neuron.AlphaN(v), alphaN(x))
			expectRelClose(neuron.AlphaM(v), alphaM(x))
			expectRelClose(neuron.AlphaH(v), alphaH(x))
			expectRelClose(neuron.BetaN(v), betaN(x))
			expectRelClose(neuron.BetaM(v), betaM(x))
			expectRelClose(neuron.BetaH(v), betaH(x))
		},
		Entry("hyperpolarised", float32(-10)),
		Entry("leak reversal", float32(neuron.VL)),
		Entry("near threshold", float32(20)),
		Entry("depolarised", float32(50)),
		Entry("spike peak", float32(100)),
	)

	It("round the exponential correctly in single precision", func() {
		exp32 := func(x float32) float32 { return float32(math.Exp(float64(x))) }
		for v := float32(-20); v <= 120; v += 0.37 {
			Expect(neuron.AlphaH(v)).To(Equal(0.07*exp32(-v/20)), "AlphaH(%v)", v)
			Expect(neuron.BetaN(v)).To(Equal(0.125*exp32(-v/80)), "BetaN(%v)", v)
			Expect(neuron.BetaM(v)).To(Equal(4*exp32(-v/18)), "BetaM(%v)", v)
			Expect(neuron.BetaH(v)).To(Equal(1/(exp32((30-v)/10)+1)), "BetaH(%v)", v)
		}
	})

	It("leave the removable singularities unguarded", func() {
		Expect(math32.IsNaN(neuron.AlphaN(10))).To(BeTrue())
		Expect(math32.IsNaN(neuron.AlphaM(25))).To(BeTrue())
		Expect(math32.IsNaN(neuron.AlphaN(10.5))).To(BeFalse())
		Expect(math32.IsNaN(neuron.AlphaM(24.5))).To(BeFalse())
	})
})

var _ = Describe("Heaviside", func() {
	DescribeTable("uses a one-unit threshold",
		func(x, want float32) {
			Expect(neuron.Heaviside(x)).To(Equal(want))
		},
		Entry("negative", float32(-5), float32(0)),
		Entry("zero", float32(0), float32(0)),
		Entry("just below one", float32(0.999), float32(0)),
		Entry("one", float32(1), float32(1)),
		Entry("two", float32(2), float32(1)),
	)
})

var _ = Describe("Stimulus", func() {
	s := neuron.DefaultStimulus()

	DescribeTable("is on only inside the margin-shrunk window",
		func(t, want float32) {
			Expect(s.Current(t)).To(Equal(want))
		},
		Entry("before", float32(0), float32(0)),
		Entry("at start", float32(neuron.IStartTime), float32(0)),
		Entry("inside start margin", float32(1000.5), float32(0)),
		Entry("start plus one", float32(1001), float32(neuron.IApp)),
		Entry("middle", float32(3000), float32(neuron.IApp)),
		Entry("end minus one", float32(4999), float32(neuron.IApp)),
		Entry("inside end margin", float32(4999.5), float32(0)),
		Entry("after", float32(9000), float32(0)),
	)
})
