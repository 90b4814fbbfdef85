package metrics

import "github.com/san-kum/hhsim/internal/sim"

// DefaultSpikeThreshold is in mV above rest.
const DefaultSpikeThreshold = 50.0

// SpikeCount counts upward crossings of the membrane voltage through a
// threshold.
type SpikeCount struct {
	name      string
	threshold float32
	above     bool
	started   bool
	count     int
	times     []float32
}

func NewSpikeCount(threshold float32) *SpikeCount {
	return &SpikeCount{name: "spikes", threshold: threshold}
}

func (s *SpikeCount) Name() string { return s.name }

func (s *SpikeCount) Observe(x sim.State, t float32) {
	above := x[sim.IdxV] >= s.threshold
	if s.started && above && !s.above {
		s.count++
		s.times = append(s.times, t)
	}
	s.above = above
	s.started = true
}

func (s *SpikeCount) Value() float64 { return float64(s.count) }

// Times returns the crossing time of each spike.
func (s *SpikeCount) Times() []float32 { return s.times }

// MeanInterval is the mean inter-spike interval in ms, 0 with fewer than two
// spikes.
func (s *SpikeCount) MeanInterval() float64 {
	if len(s.times) < 2 {
		return 0
	}
	return float64(s.times[len(s.times)-1]-s.times[0]) / float64(len(s.times)-1)
}

func (s *SpikeCount) Reset() {
	s.above = false
	s.started = false
	s.count = 0
	s.times = s.times[:0]
}
