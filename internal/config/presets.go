package config

import "sort"

var Presets = map[string]*Config{
	"binary": DefaultConfig(),
	"coincident": {
		Integrator: "rk4", G: 1.0, Dt: 0.1, Steps: 100,
		BodyA: BodyConfig{X: 0, Y: 0, Mass: 1},
		BodyB: BodyConfig{X: 0, Y: 0, Mass: 1},
	},
	"weightless": {
		Integrator: "rk4", G: 0.0, Dt: 0.1, Steps: 100,
		BodyA: BodyConfig{X: 0, Y: 0, Mass: 1},
		BodyB: BodyConfig{X: 1, Y: 0, VY: 1, Mass: 1},
	},
	"frozen": {
		Integrator: "rk4", G: 1.0, Dt: 0.0, Steps: 100,
		BodyA: BodyConfig{X: 0, Y: 0, Mass: 1},
		BodyB: BodyConfig{X: 1, Y: 0, VY: 1, Mass: 1},
	},
	"heavy": {
		Integrator: "rk4", G: 1.0, Dt: 0.05, Steps: 2000,
		BodyA: BodyConfig{X: 0, Y: 0, Mass: 10},
		BodyB: BodyConfig{X: 2, Y: 1, Mass: 1},
	},
	"flyby": {
		Integrator: "coupled", G: 1.0, Dt: 0.05, Steps: 2000,
		BodyA: BodyConfig{X: -5, Y: 0.5, VX: 1, Mass: 1},
		BodyB: BodyConfig{X: 5, Y: -0.5, VX: -1, Mass: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
