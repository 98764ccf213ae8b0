package fractal

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

// Zoom bounds. Beyond MaxZoom float64 precision starts to show.
const (
	MinZoom = 0.1
	MaxZoom = 10000.0

	minEscapeRadius = 1.01
	maxIterations   = 100000
)

type Family int

const (
	Mandelbrot Family = iota
	Julia
	BurningShip
)

func (f Family) String() string {
	switch f {
	case Julia:
		return "Julia Set"
	case BurningShip:
		return "Burning Ship"
	default:
		return "Mandelbrot Set"
	}
}

type Config struct {
	MaxIterations int
	CenterX       float64
	CenterY       float64
	Zoom          float64
	Power         float64
	EscapeRadius  float64
	Smooth        bool
	ColorOffset   float64
	Scheme        palette.Scheme
	Invert        bool

	// Julia constant and its animation around the origin.
	CX, CY          float64
	Animate         bool
	AnimationRadius float64
	AnimationSpeed  float64

	// Color cycling shifts the palette phase over time.
	CycleColors bool
	CycleSpeed  float64
}

func DefaultConfig(f Family) Config {
	cfg := Config{
		MaxIterations:   100,
		Zoom:            1,
		Power:           2,
		EscapeRadius:    2,
		Smooth:          true,
		Scheme:          palette.Classic,
		AnimationRadius: 0.7885,
		AnimationSpeed:  0.3,
		CycleSpeed:      0.1,
	}
	switch f {
	case Mandelbrot:
		cfg.CenterX = -0.5
	case Julia:
		cfg.CX, cfg.CY = -0.7, 0.27015
		cfg.Scheme = palette.Ultra
	case BurningShip:
		cfg.CenterX, cfg.CenterY = -0.5, -0.6
		cfg.Zoom = 0.7
		cfg.Scheme = palette.Fire
	}
	return cfg
}

func (c *Config) params(f Family) []gallery.Param {
	ps := []gallery.Param{
		gallery.Int("max_iterations", &c.MaxIterations, 0, maxIterations),
		gallery.Float("center_x", &c.CenterX, -10, 10),
		gallery.Float("center_y", &c.CenterY, -10, 10),
		gallery.Float("zoom", &c.Zoom, MinZoom, MaxZoom),
		gallery.Float("escape_radius", &c.EscapeRadius, minEscapeRadius, 100),
		gallery.Bool("smooth", &c.Smooth),
		gallery.Float("color_offset", &c.ColorOffset, 0, 1),
		gallery.Choice("scheme", &c.Scheme, palette.Names()...),
		gallery.Bool("invert", &c.Invert),
	}
	switch f {
	case Mandelbrot:
		ps = append(ps,
			gallery.Float("power", &c.Power, 1, 8),
			gallery.Bool("cycle_colors", &c.CycleColors),
			gallery.Float("cycle_speed", &c.CycleSpeed, 0, 5),
		)
	case Julia:
		ps = append(ps,
			gallery.Float("power", &c.Power, 1, 8),
			gallery.Float("c_re", &c.CX, -2, 2),
			gallery.Float("c_im", &c.CY, -2, 2),
			gallery.Bool("animate", &c.Animate),
			gallery.Float("animation_radius", &c.AnimationRadius, 0, 2),
			gallery.Float("animation_speed", &c.AnimationSpeed, 0, 5),
		)
	}
	return ps
}

// sanitize clamps derived values so Compute never sees a value that can
// overflow or divide by zero.
func (c *Config) sanitize(f Family) {
	def := DefaultConfig(f)
	if math.IsNaN(c.Zoom) || c.Zoom <= 0 {
		c.Zoom = def.Zoom
	}
	c.Zoom = clampZoom(c.Zoom)
	if c.MaxIterations < 0 {
		c.MaxIterations = 0
	}
	if c.MaxIterations > maxIterations {
		c.MaxIterations = maxIterations
	}
	if math.IsNaN(c.EscapeRadius) || c.EscapeRadius < minEscapeRadius {
		c.EscapeRadius = minEscapeRadius
	}
	if math.IsNaN(c.Power) || c.Power < 1 {
		c.Power = def.Power
	}
	if !isFinite(c.CenterX) || !isFinite(c.CenterY) {
		c.CenterX, c.CenterY = def.CenterX, def.CenterY
	}
	if !isFinite(c.CX) || !isFinite(c.CY) {
		c.CX, c.CY = def.CX, def.CY
	}
	c.ColorOffset = palette.Wrap(c.ColorOffset)
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
