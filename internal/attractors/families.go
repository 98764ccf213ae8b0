package attractors

import (
	"fmt"
	"sort"
)

type family struct {
	model  func() Model
	config func() Config
}

var families = map[string]family{
	"lorenz": {
		model: func() Model { return NewLorenzModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Substeps = 0.005, 2
			return cfg
		},
	},
	"rossler": {
		model: func() Model { return NewRosslerModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Substeps = 0.01, 2
			cfg.Warmup = 500
			return cfg
		},
	},
	"aizawa": {
		model: func() Model { return NewAizawaModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.Scale = 50
			return cfg
		},
	},
	"halvorsen": {
		model: func() Model { return NewHalvorsenModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Scale = 0.005, 20
			cfg.Start = [3]float64{-1, 0, 0}
			return cfg
		},
	},
	"dadras": {
		model: func() Model { return NewDadrasModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Scale = 0.005, 15
			cfg.Start = [3]float64{0.1, 0.1, 0.1}
			return cfg
		},
	},
	"thomas": {
		model: func() Model { return NewThomasModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Scale = 0.1, 80
			return cfg
		},
	},
	"chen": {
		model: func() Model { return NewChenModel() },
		config: func() Config {
			cfg := DefaultConfig()
			cfg.StepSize, cfg.Scale = 0.003, 8
			return cfg
		},
	},
}

// Families lists the built-in attractor names.
func Families() []string { return sortedKeys(families) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FamilyConfig returns the default integration config of a family.
func FamilyConfig(name string) (Config, error) {
	f, ok := families[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown attractor: %s", name)
	}
	return f.config(), nil
}

// NewFamily builds a built-in attractor with its default model and config.
func NewFamily(name string) (*Attractor, error) {
	f, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("unknown attractor: %s", name)
	}
	return New(f.model(), f.config()), nil
}

func mustFamily(name string) *Attractor {
	a, err := NewFamily(name)
	if err != nil {
		panic(err)
	}
	return a
}

func NewLorenz() *Attractor    { return mustFamily("lorenz") }
func NewRossler() *Attractor   { return mustFamily("rossler") }
func NewAizawa() *Attractor    { return mustFamily("aizawa") }
func NewHalvorsen() *Attractor { return mustFamily("halvorsen") }
func NewDadras() *Attractor    { return mustFamily("dadras") }
func NewThomas() *Attractor    { return mustFamily("thomas") }
func NewChen() *Attractor      { return mustFamily("chen") }
