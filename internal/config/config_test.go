package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/registry"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation != DefaultSimulation {
		t.Errorf("expected simulation %s, got %s", DefaultSimulation, cfg.Simulation)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Simulation = "julia"
	cfg.Preset = "douady-rabbit"
	cfg.Params = map[string]float64{"max_iterations": 250}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Simulation != "julia" || got.Preset != "douady-rabbit" || got.Params["max_iterations"] != 250 {
		t.Errorf("unexpected round trip: %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"no simulation", func(c *Config) { c.Simulation = "" }, false},
		{"zero dt", func(c *Config) { c.Dt = 0 }, false},
		{"negative frames", func(c *Config) { c.Frames = -1 }, false},
		{"negative size", func(c *Config) { c.Width = -5 }, false},
		{"unknown backend", func(c *Config) { c.Backend = "gpu" }, false},
		{"pool backend", func(c *Config) { c.Backend = "pool"; c.Workers = 2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"zoom": 2}
	cfg.Merge(&Config{Frames: 10, Params: map[string]float64{"smooth": 0}})

	if cfg.Frames != 10 || cfg.Width != DefaultWidth {
		t.Errorf("unexpected merge result: %+v", cfg)
	}
	if cfg.Params["zoom"] != 2 || cfg.Params["smooth"] != 0 || len(cfg.Params) != 2 {
		t.Errorf("unexpected params: %v", cfg.Params)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mandelbrot", "seahorse")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["max_iterations"] != 500 {
		t.Errorf("expected 500 iterations, got %v", cfg.Params["max_iterations"])
	}

	cfg.Params["max_iterations"] = 1
	if GetPreset("mandelbrot", "seahorse").Params["max_iterations"] != 500 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("mandelbrot", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "overview") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestPresetsApplyCleanly(t *testing.T) {
	reg := registry.NewRegistry()
	for _, sim := range PresetSimulations() {
		for _, name := range ListPresets(sim) {
			cfg := GetPreset(sim, name)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", sim, name, err)
				continue
			}
			s, err := reg.New(cfg.Simulation)
			if err != nil {
				t.Errorf("%s/%s: %v", sim, name, err)
				continue
			}
			if err := Apply(s, cfg); err != nil {
				t.Errorf("%s/%s: %v", sim, name, err)
			}
		}
	}
}

func TestApplyErrors(t *testing.T) {
	reg := registry.NewRegistry()
	s, _ := reg.New("lorenz")

	err := Apply(s, &Config{Params: map[string]float64{"warp": 9}})
	if !errors.Is(err, gallery.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if err := Apply(s, &Config{Preset: "anything"}); err == nil {
		t.Error("expected error: lorenz has no presets")
	}
}
