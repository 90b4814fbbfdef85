// Package neuron provides the Hodgkin-Huxley membrane model.
//
// The model is a [sim.Dynamics] over the state [V, N, M, H]:
//
//   - V: membrane voltage in mV, relative to rest
//   - N, M, H: potassium activation, sodium activation and sodium
//     inactivation gating variables
//
// All arithmetic is single precision. The rate functions AlphaN and AlphaM
// have removable singularities at v=10 and v=25 which are left unguarded and
// evaluate to NaN there.
//
// # Example
//
//	hh := neuron.Default()
//	s := sim.New(hh, integrators.NewHeun())
//	result, _ := s.Run(ctx, hh.Initial(), sim.Config{TMax: neuron.TMax, Dt: neuron.Dt})
//	fmt.Println(result.FinalVoltage())
package neuron
