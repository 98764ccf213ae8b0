package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/gallery"
)

const (
	DefaultSimulation = "mandelbrot"
	DefaultWidth      = 160
	DefaultHeight     = 120
	DefaultFrames     = 300
	DefaultDt         = gallery.ReferenceFrame
	DefaultSeed       = 1
)

type Config struct {
	Simulation string             `yaml:"simulation"`
	Preset     string             `yaml:"preset,omitempty"`
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	Frames     int                `yaml:"frames"`
	Dt         float64            `yaml:"dt"`
	Seed       int64              `yaml:"seed"`
	Backend    string             `yaml:"backend,omitempty"`
	Workers    int                `yaml:"workers,omitempty"`
	Output     string             `yaml:"output,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: DefaultSimulation,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Frames:     DefaultFrames,
		Dt:         DefaultDt,
		Seed:       DefaultSeed,
		Backend:    "cpu",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Merge overlays the non-zero fields of o onto c. Params are merged key by key.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.Simulation != "" {
		c.Simulation = o.Simulation
	}
	if o.Preset != "" {
		c.Preset = o.Preset
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Frames != 0 {
		c.Frames = o.Frames
	}
	if o.Dt != 0 {
		c.Dt = o.Dt
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Backend != "" {
		c.Backend = o.Backend
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	for k, v := range o.Params {
		if c.Params == nil {
			c.Params = make(map[string]float64)
		}
		c.Params[k] = v
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Simulation == "" {
		errs = append(errs, errors.New("simulation is required"))
	}
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must not be negative", c.Width, c.Height))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d must not be negative", c.Frames))
	}
	if !(c.Dt > 0) {
		errs = append(errs, fmt.Errorf("dt %v must be positive", c.Dt))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	if _, err := compute.New(c.Backend, c.Workers); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ComputeBackend builds the backend named by the config.
func (c *Config) ComputeBackend() (compute.Backend, error) {
	return compute.New(c.Backend, c.Workers)
}

// Apply pushes the run settings into sim: seed first, then the named preset,
// then individual parameters.
func Apply(sim gallery.Simulation, c *Config) error {
	if s, ok := sim.(gallery.Seeded); ok && c.Seed != 0 {
		s.Seed(c.Seed)
	}
	if c.Preset != "" {
		p, ok := sim.(gallery.Presetter)
		if !ok {
			return fmt.Errorf("%s has no presets", sim.Name())
		}
		if err := p.ApplyPreset(c.Preset); err != nil {
			return err
		}
	}
	if len(c.Params) == 0 {
		return nil
	}
	return gallery.Apply(sim, c.Params)
}
