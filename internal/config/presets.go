package config

import (
	"maps"
	"slices"
)

var Presets = map[string]map[string]*Config{
	"mandelbrot": {
		"overview": {
			Simulation: "mandelbrot", Width: 160, Height: 120, Frames: 1, Dt: DefaultDt,
		},
		"seahorse": {
			Simulation: "mandelbrot", Preset: "seahorse-valley", Width: 320, Height: 240, Frames: 1, Dt: DefaultDt,
			Params: map[string]float64{"max_iterations": 500},
		},
		"lightning": {
			Simulation: "mandelbrot", Preset: "lightning", Width: 320, Height: 240, Frames: 1, Dt: DefaultDt,
			Params: map[string]float64{"max_iterations": 2000},
		},
	},
	"julia": {
		"rabbit": {
			Simulation: "julia", Preset: "douady-rabbit", Width: 200, Height: 200, Frames: 1, Dt: DefaultDt,
		},
		"animated": {
			Simulation: "julia", Width: 160, Height: 120, Frames: 600, Dt: DefaultDt,
			Params: map[string]float64{"animate": 1, "animation_speed": 0.5},
		},
	},
	"lorenz": {
		"classic": {
			Simulation: "lorenz", Width: 120, Height: 60, Frames: 2000, Dt: DefaultDt,
		},
		"transient": {
			Simulation: "lorenz", Width: 120, Height: 60, Frames: 2000, Dt: DefaultDt,
			Params: map[string]float64{"rho": 14},
		},
	},
	"nbody": {
		"galaxy": {
			Simulation: "nbody", Preset: "galaxy", Width: 120, Height: 60, Frames: 1200, Dt: DefaultDt, Seed: 7,
		},
		"binary": {
			Simulation: "nbody", Preset: "binary", Width: 120, Height: 60, Frames: 1200, Dt: DefaultDt, Seed: 7,
		},
	},
	"sph": {
		"water-drop": {
			Simulation: "sph", Preset: "water-drop", Width: 120, Height: 60, Frames: 600, Dt: DefaultDt,
		},
		"honey": {
			Simulation: "sph", Preset: "honey", Width: 120, Height: 60, Frames: 600, Dt: DefaultDt,
		},
	},
	"galaxy": {
		"grand-design": {
			Simulation: "galaxy", Preset: "grand-design", Width: 120, Height: 60, Frames: 900, Dt: DefaultDt,
		},
	},
	"life": {
		"gun": {
			Simulation: "life", Width: 240, Height: 240, Frames: 600, Dt: DefaultDt,
		},
		"highlife": {
			Simulation: "life", Preset: "highlife", Width: 240, Height: 240, Frames: 600, Dt: DefaultDt, Seed: 3,
			Params: map[string]float64{"pattern": 7, "density": 0.25},
		},
	},
	"sandpile": {
		"center": {
			Simulation: "sandpile", Width: 150, Height: 150, Frames: 3600, Dt: DefaultDt,
			Params: map[string]float64{"drop_rate": 500},
		},
	},
	"gray-scott": {
		"coral": {
			Simulation: "gray-scott", Preset: "coral", Width: 128, Height: 128, Frames: 600, Dt: DefaultDt,
		},
		"maze": {
			Simulation: "gray-scott", Preset: "maze", Width: 128, Height: 128, Frames: 600, Dt: DefaultDt,
		},
	},
}

// GetPreset returns a copy of a named run preset, or nil.
func GetPreset(sim, preset string) *Config {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	cfg, ok := simPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(sim string) []string {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(simPresets))
}

// PresetSimulations lists the simulations that have run presets.
func PresetSimulations() []string {
	return slices.Sorted(maps.Keys(Presets))
}
