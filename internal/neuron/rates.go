package neuron

import "math"

// exp is the correctly rounded single-precision exponential. The float32
// series in math32 drifts by several ULP, enough to move the settled voltage
// of a long run in its fourth significant digit.
func exp(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// Transition rates in 1/ms as functions of membrane voltage v (mV).

func AlphaN(v float32) float32 {
	return float32(0.01*(10-v)) / (exp((10-v)/10) - 1)
}

func AlphaM(v float32) float32 {
	return float32(0.1*(25-v)) / (exp((25-v)/10) - 1)
}

func AlphaH(v float32) float32 {
	return 0.07 * exp(-v/20)
}

func BetaN(v float32) float32 {
	return 0.125 * exp(-v/80)
}

func BetaM(v float32) float32 {
	return 4 * exp(-v/18)
}

func BetaH(v float32) float32 {
	return 1 / (exp((30-v)/10) + 1)
}

// Heaviside is 1 for x >= 1 and 0 otherwise. The threshold is one unit, not
// zero: the applied current switches on one ms after its start time and off
// one ms before its end time.
func Heaviside(x float32) float32 {
	if x >= 1 {
		return 1
	}
	return 0
}
