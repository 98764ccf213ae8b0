package automata

import (
	"fmt"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

type GrayScottConfig struct {
	Size        int
	Feed        float32
	Kill        float32
	DiffusionA  float32
	DiffusionB  float32
	Iterations  int     // solver iterations per generation
	Speed       float64 // generations per second
	ColorScheme palette.Scheme
}

func DefaultGrayScottConfig() GrayScottConfig {
	return GrayScottConfig{
		Size:        128,
		Feed:        0.055,
		Kill:        0.062,
		DiffusionA:  1,
		DiffusionB:  0.5,
		Iterations:  5,
		Speed:       60,
		ColorScheme: palette.Ocean,
	}
}

func (c *GrayScottConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("size", &c.Size, 16, 1024),
		gallery.Float32("feed", &c.Feed, 0.01, 0.1),
		gallery.Float32("kill", &c.Kill, 0.03, 0.08),
		gallery.Float32("diffusion_a", &c.DiffusionA, 0.5, 2),
		gallery.Float32("diffusion_b", &c.DiffusionB, 0.1, 1),
		gallery.Int("iterations", &c.Iterations, 1, 50),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Choice("color_scheme", &c.ColorScheme, palette.Names()...),
	}
}

var grayScottPresets = map[string][2]float32{
	"coral":   {0.055, 0.062},
	"spots":   {0.035, 0.065},
	"stripes": {0.025, 0.055},
	"waves":   {0.014, 0.054},
	"maze":    {0.029, 0.057},
}

// GrayScott is a two-chemical reaction-diffusion system on a torus.
type GrayScott struct {
	cfg          GrayScottConfig
	n            int
	a, b         []float32
	nextA, nextB []float32
	gen          int
	clock        clock
}

func NewGrayScott() *GrayScott {
	return NewGrayScottWith(DefaultGrayScottConfig())
}

func NewGrayScottWith(cfg GrayScottConfig) *GrayScott {
	g := &GrayScott{cfg: cfg}
	g.Reset()
	return g
}

func (g *GrayScott) Name() string            { return "Reaction-Diffusion" }
func (g *GrayScott) Config() GrayScottConfig { return g.cfg }
func (g *GrayScott) Generation() int         { return g.gen }
func (g *GrayScott) Size() int               { return g.n }

// Concentrations returns the A and B fields, row-major.
func (g *GrayScott) Concentrations() (a, b []float32) { return g.a, g.b }

func (g *GrayScott) Presets() []string { return sortedNames(grayScottPresets) }

func (g *GrayScott) ApplyPreset(name string) error {
	p, ok := grayScottPresets[name]
	if !ok {
		return fmt.Errorf("unknown reaction preset: %s", name)
	}
	g.cfg.Feed, g.cfg.Kill = p[0], p[1]
	return nil
}

func (g *GrayScott) SetParameters(cfg GrayScottConfig) {
	old := g.cfg
	g.cfg = cfg
	if cfg.Size != old.Size {
		g.Reset()
	}
}

func (g *GrayScott) Params() []gallery.Param {
	cfg := g.cfg
	return cfg.params()
}

func (g *GrayScott) GetParams() map[string]float64 { return gallery.Values(g.Params()) }

func (g *GrayScott) SetParam(name string, v float64) error {
	cfg := g.cfg
	if err := gallery.Assign(g.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	g.SetParameters(cfg)
	return nil
}

// Reset fills A with 1 and B with 0, then seeds a 10×10 square of B in the
// centre.
func (g *GrayScott) Reset() {
	g.n = max(g.cfg.Size, 0)
	size := g.n * g.n
	g.a = make([]float32, size)
	g.b = make([]float32, size)
	g.nextA = make([]float32, size)
	g.nextB = make([]float32, size)
	for i := range g.a {
		g.a[i] = 1
	}
	c := g.n / 2
	for y := max(c-5, 0); y < min(c+5, g.n); y++ {
		for x := max(c-5, 0); x < min(c+5, g.n); x++ {
			g.b[y*g.n+x] = 1
		}
	}
	g.gen = 0
	g.clock.reset()
}

func (g *GrayScott) laplacian(f []float32, x, y int) float32 {
	n := g.n
	l, r := (x+n-1)%n, (x+1)%n
	u, d := (y+n-1)%n, (y+1)%n
	sum := f[y*n+l] + f[y*n+r] + f[u*n+x] + f[d*n+x]
	sum += 0.05 * (f[u*n+l] + f[u*n+r] + f[d*n+l] + f[d*n+r])
	return sum/4.2 - f[y*n+x]
}

func (g *GrayScott) iterate() {
	n := g.n
	f, k := g.cfg.Feed, g.cfg.Kill
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			a, b := g.a[i], g.b[i]
			react := a * b * b
			na := a + g.cfg.DiffusionA*g.laplacian(g.a, x, y) - react + f*(1-a)
			nb := b + g.cfg.DiffusionB*g.laplacian(g.b, x, y) + react - (k+f)*b
			g.nextA[i] = min(max(na, 0), 1)
			g.nextB[i] = min(max(nb, 0), 1)
		}
	}
	g.a, g.nextA = g.nextA, g.a
	g.b, g.nextB = g.nextB, g.b
}

// Step runs one generation of Iterations solver passes.
func (g *GrayScott) Step() {
	if g.n == 0 {
		return
	}
	for i := 0; i < max(g.cfg.Iterations, 1); i++ {
		g.iterate()
	}
	g.gen++
}

func (g *GrayScott) Tick(dt float32) {
	for n := g.clock.advance(dt, g.cfg.Speed); n > 0; n-- {
		g.Step()
	}
}

func (g *GrayScott) Compute(w, h int) gallery.PixelBuffer {
	scheme := g.cfg.ColorScheme
	return render(w, h, g.n, g.n, func(cx, cy int) gallery.Color {
		return scheme.MapClamped(float64(g.b[cy*g.n+cx]))
	})
}
