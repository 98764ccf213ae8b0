package fractal

import (
	"math"

	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/gallery"
)

// Fractal renders one escape-time family. Compute only reads the
// configuration, so rows are rendered in parallel without locking.
type Fractal struct {
	family  Family
	cfg     Config
	initial Config
	backend compute.Backend

	phase    float64 // color cycling, in palette units
	animTime float64 // Julia constant angle
}

func New(f Family) *Fractal {
	return WithConfig(f, DefaultConfig(f))
}

func NewMandelbrot() *Fractal  { return New(Mandelbrot) }
func NewJulia() *Fractal       { return New(Julia) }
func NewBurningShip() *Fractal { return New(BurningShip) }

// WithConfig builds a fractal whose Reset returns to cfg.
func WithConfig(f Family, cfg Config) *Fractal {
	cfg.sanitize(f)
	return &Fractal{family: f, cfg: cfg, initial: cfg, backend: compute.Default()}
}

func (f *Fractal) Name() string   { return f.family.String() }
func (f *Fractal) Family() Family { return f.family }
func (f *Fractal) Config() Config { return f.cfg }

func (f *Fractal) SetParameters(cfg Config) {
	cfg.sanitize(f.family)
	f.cfg = cfg
}

// SetBackend selects the worker backend used by Compute.
func (f *Fractal) SetBackend(b compute.Backend) {
	if b == nil {
		b = compute.Default()
	}
	f.backend = b
}

func (f *Fractal) Params() []gallery.Param {
	cfg := f.cfg
	return cfg.params(f.family)
}

func (f *Fractal) GetParams() map[string]float64 {
	return gallery.Values(f.Params())
}

func (f *Fractal) SetParam(name string, v float64) error {
	cfg := f.cfg
	if err := gallery.Assign(f.Name(), cfg.params(f.family), name, v); err != nil {
		return err
	}
	f.SetParameters(cfg)
	return nil
}

// Reset restores the construction configuration and animation phases.
func (f *Fractal) Reset() {
	f.cfg = f.initial
	f.phase = 0
	f.animTime = 0
}

// Tick advances the animated Julia constant and the color cycle.
func (f *Fractal) Tick(dt float32) {
	if !gallery.ValidDelta(dt) {
		return
	}
	d := float64(dt)
	if f.family == Julia && f.cfg.Animate {
		f.animTime += d * f.cfg.AnimationSpeed
		s, c := math.Sincos(f.animTime)
		f.cfg.CX = f.cfg.AnimationRadius * c
		f.cfg.CY = f.cfg.AnimationRadius * s
	}
	if f.cfg.CycleColors {
		f.phase = math.Mod(f.phase+d*f.cfg.CycleSpeed, 1)
	}
}

func (f *Fractal) Compute(width, height int) gallery.PixelBuffer {
	buf := gallery.NewPixelBuffer(width, height)
	if buf.Empty() {
		return buf
	}

	cfg := f.cfg
	offset := cfg.ColorOffset
	if cfg.CycleColors {
		offset = f.phase
	}
	family := f.family

	f.backend.ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := buf.Row(y)
			for x := range row {
				re, im := cfg.PixelToComplex(x, y, width, height)
				v, escaped := EscapeTime(family, re, im, &cfg)
				row[x] = cfg.colorFor(v, escaped, offset)
			}
		}
	})

	return buf
}

// PixelToComplex maps a pixel to the complex plane. The vertical extent is
// 4/zoom and the horizontal extent is scaled by the aspect ratio.
func (c *Config) PixelToComplex(x, y, width, height int) (float64, float64) {
	aspect := float64(width) / float64(height)
	span := 4.0 / c.Zoom
	re := c.CenterX + (float64(x)/float64(width)-0.5)*span*aspect
	im := c.CenterY + (float64(y)/float64(height)-0.5)*span
	return re, im
}

func (c *Config) colorFor(v float64, escaped bool, offset float64) gallery.Color {
	if !escaped || c.MaxIterations <= 0 {
		return gallery.Black
	}
	t := v/float64(c.MaxIterations) + offset
	col := c.Scheme.Map(t)
	if c.Invert {
		return col.Invert()
	}
	return col
}

// Pan moves the view by a pixel drag on a width x height canvas.
func (f *Fractal) Pan(dx, dy float64, width, height int) {
	if width <= 0 || height <= 0 || !isFinite(dx) || !isFinite(dy) {
		return
	}
	aspect := float64(width) / float64(height)
	viewH := 4.0 / f.cfg.Zoom
	viewW := viewH * aspect
	f.cfg.CenterX -= dx * viewW / float64(width)
	f.cfg.CenterY -= dy * viewH / float64(height)
}

// ZoomBy scales the zoom multiplicatively by 1 + delta/1000, as produced by
// a scroll wheel.
func (f *Fractal) ZoomBy(delta float64) {
	if !isFinite(delta) {
		return
	}
	factor := 1 + delta*0.001
	if factor <= 0 {
		factor = MinZoom / MaxZoom
	}
	f.cfg.Zoom = clampZoom(f.cfg.Zoom * factor)
}

func (f *Fractal) SetZoom(z float64) {
	if !isFinite(z) || z <= 0 {
		return
	}
	f.cfg.Zoom = clampZoom(z)
}

func (f *Fractal) Zoom() float64 { return f.cfg.Zoom }

func (f *Fractal) Center() (float64, float64) { return f.cfg.CenterX, f.cfg.CenterY }
