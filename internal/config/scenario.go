package config

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hhsim/internal/neuron"
	"github.com/san-kum/hhsim/internal/sim"
)

// Scenario is a read-only view of the compiled-in model constants.
type Scenario struct {
	Membrane neuron.Membrane `yaml:"membrane"`
	Stimulus neuron.Stimulus `yaml:"stimulus"`
	TMax     float32         `yaml:"t_max"`
	Dt       float32         `yaml:"dt"`
	Steps    int             `yaml:"steps"`
}

func ReferenceScenario() Scenario {
	return Scenario{
		Membrane: neuron.DefaultMembrane(),
		Stimulus: neuron.DefaultStimulus(),
		TMax:     neuron.TMax,
		Dt:       neuron.Dt,
		Steps:    sim.NumSteps(neuron.TMax, neuron.Dt),
	}
}

// WriteScenario encodes s as YAML.
func WriteScenario(w io.Writer, s Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
