package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"diagnostic": {
		Trajectory: "full", Validate: true, LogLevel: "debug",
		ProgressEvery: 50000, CheckEvery: 1000, SpikeThreshold: 50,
	},
	"lean": {
		Trajectory: "window", LogLevel: "error",
		ProgressEvery: 0, CheckEvery: 100000, SpikeThreshold: 50,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
