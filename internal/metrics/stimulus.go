package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/hhsim/internal/sim"
)

// MeanStimulus is the mean absolute applied current over the observed grid
// points, in uA/cm^2.
type MeanStimulus struct {
	name    string
	current func(t float32) float32
	sum     float64
	samples int
}

func NewMeanStimulus(current func(t float32) float32) *MeanStimulus {
	return &MeanStimulus{
		name:    "mean_i_app",
		current: current,
	}
}

func (c *MeanStimulus) Name() string {
	return c.name
}

func (c *MeanStimulus) Observe(x sim.State, t float32) {
	c.sum += float64(math32.Abs(c.current(t)))
	c.samples++
}

func (c *MeanStimulus) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *MeanStimulus) Reset() {
	c.sum = 0
	c.samples = 0
}
