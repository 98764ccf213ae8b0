package fractal

import "fmt"

// Location is a named view of the complex plane.
type Location struct {
	Name string
	X, Y float64
	Zoom float64
}

// Constant is a named Julia constant.
type Constant struct {
	Name   string
	Re, Im float64
}

var Locations = []Location{
	{"seahorse-valley", -0.75, 0.1, 100},
	{"elephant-valley", 0.3, 0, 50},
	{"spiral", -0.7269, 0.1889, 500},
	{"mini-mandelbrot", -0.1011, 0.9563, 1000},
	{"lightning", -0.7453, 0.1127, 5000},
}

var Constants = []Constant{
	{"dendrite", -0.4, 0.6},
	{"san-marco", -0.75, 0},
	{"siegel-disk", -0.391, -0.587},
	{"douady-rabbit", -0.123, 0.745},
	{"spiral", 0.285, 0.01},
}

// ApplyLocation centers the view on a named location.
func (f *Fractal) ApplyLocation(name string) error {
	for _, l := range Locations {
		if l.Name == name {
			f.cfg.CenterX, f.cfg.CenterY = l.X, l.Y
			f.cfg.Zoom = clampZoom(l.Zoom)
			return nil
		}
	}
	return fmt.Errorf("unknown location: %s", name)
}

// ApplyConstant sets a named Julia constant and stops animation.
func (f *Fractal) ApplyConstant(name string) error {
	for _, c := range Constants {
		if c.Name == name {
			f.cfg.CX, f.cfg.CY = c.Re, c.Im
			f.cfg.Animate = false
			return nil
		}
	}
	return fmt.Errorf("unknown julia constant: %s", name)
}

// Presets lists Julia constants for Julia sets and view locations otherwise.
func (f *Fractal) Presets() []string {
	var names []string
	if f.family == Julia {
		for _, c := range Constants {
			names = append(names, c.Name)
		}
		return names
	}
	for _, l := range Locations {
		names = append(names, l.Name)
	}
	return names
}

func (f *Fractal) ApplyPreset(name string) error {
	if f.family == Julia {
		return f.ApplyConstant(name)
	}
	return f.ApplyLocation(name)
}
