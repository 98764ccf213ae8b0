package field

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

const maxSources = 8

type WaveConfig struct {
	Sources     int
	Wavelength  float64 // fraction of the shorter image side
	Speed       float64 // phase, radians per second
	Damping     float64 // amplitude falloff per 100 pixels
	ShowSources bool
	ColorScheme palette.Scheme
}

func DefaultWaveConfig() WaveConfig {
	return WaveConfig{
		Sources:     3,
		Wavelength:  0.08,
		Speed:       2,
		ShowSources: true,
		ColorScheme: palette.Ocean,
	}
}

func (c *WaveConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("sources", &c.Sources, 1, maxSources),
		gallery.Float("wavelength", &c.Wavelength, 0.005, 1),
		gallery.Float("speed", &c.Speed, 0, 20),
		gallery.Float("damping", &c.Damping, 0, 10),
		gallery.Bool("show_sources", &c.ShowSources),
		gallery.Choice("color_scheme", &c.ColorScheme, palette.Names()...),
	}
}

func (c *WaveConfig) sanitize() {
	c.Sources = min(max(c.Sources, 1), maxSources)
	if !(c.Wavelength > 0) {
		c.Wavelength = DefaultWaveConfig().Wavelength
	}
}

// layouts holds hand-placed sources in unit image coordinates; other counts
// go on a ring.
var layouts = map[int][][2]float64{
	2: {{0.3, 0.5}, {0.7, 0.5}},
	3: {{0.3, 0.3}, {0.7, 0.3}, {0.5, 0.7}},
	4: {{0.25, 0.25}, {0.75, 0.25}, {0.25, 0.75}, {0.75, 0.75}},
}

var wavePresets = map[string]int{"two": 2, "three": 3, "four": 4}

// SourcePositions returns the sources in unit image coordinates.
func SourcePositions(n int) [][2]float64 {
	if l, ok := layouts[n]; ok {
		return append([][2]float64(nil), l...)
	}
	if n == 1 {
		return [][2]float64{{0.5, 0.5}}
	}
	out := make([][2]float64, n)
	for i := range out {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		out[i] = [2]float64{0.5 + 0.3*c, 0.5 + 0.3*s}
	}
	return out
}

var (
	sourceRim    = gallery.Color{R: 255, G: 255, B: 255}
	sourceCentre = gallery.Color{R: 255, G: 50, B: 50}
)

// Waves is an interference pattern of in-phase point sources.
type Waves struct {
	cfg     WaveConfig
	initial WaveConfig
	backend compute.Backend
	t       float64
}

func NewWaves() *Waves {
	return NewWavesWith(DefaultWaveConfig())
}

func NewWavesWith(cfg WaveConfig) *Waves {
	cfg.sanitize()
	return &Waves{cfg: cfg, initial: cfg, backend: compute.Default()}
}

func (w *Waves) Name() string       { return "Wave Interference" }
func (w *Waves) Config() WaveConfig { return w.cfg }
func (w *Waves) Time() float64      { return w.t }

func (w *Waves) SetParameters(cfg WaveConfig) {
	cfg.sanitize()
	w.cfg = cfg
}

// SetBackend selects the worker backend used by Compute.
func (w *Waves) SetBackend(b compute.Backend) {
	if b == nil {
		b = compute.Default()
	}
	w.backend = b
}

func (w *Waves) Params() []gallery.Param {
	cfg := w.cfg
	return cfg.params()
}

func (w *Waves) GetParams() map[string]float64 { return gallery.Values(w.Params()) }

func (w *Waves) SetParam(name string, v float64) error {
	cfg := w.cfg
	if err := gallery.Assign(w.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	w.SetParameters(cfg)
	return nil
}

func (w *Waves) Presets() []string {
	return []string{"two", "three", "four"}
}

func (w *Waves) ApplyPreset(name string) error {
	n, ok := wavePresets[name]
	if !ok {
		return fmt.Errorf("unknown wave preset: %s", name)
	}
	w.cfg.Sources = n
	return nil
}

// Reset restores the construction configuration and rewinds the phase.
func (w *Waves) Reset() {
	w.cfg = w.initial
	w.t = 0
}

func (w *Waves) Tick(dt float32) {
	if !gallery.ValidDelta(dt) {
		return
	}
	w.t += float64(dt)
}

// Intensity returns the normalised field value in [0, 1] at pixel (x, y).
func (w *Waves) Intensity(x, y, width, height int) float64 {
	return intensity(float64(x), float64(y), w.sources(width, height), &w.cfg, w.wavelength(width, height), w.t)
}

func (w *Waves) wavelength(width, height int) float64 {
	return w.cfg.Wavelength * float64(min(width, height))
}

func (w *Waves) sources(width, height int) [][2]float64 {
	pos := SourcePositions(w.cfg.Sources)
	for i := range pos {
		pos[i][0] *= float64(width)
		pos[i][1] *= float64(height)
	}
	return pos
}

func intensity(x, y float64, src [][2]float64, cfg *WaveConfig, lambda, t float64) float64 {
	k := 2 * math.Pi / lambda
	phase := t * cfg.Speed
	sum := 0.0
	for _, s := range src {
		d := math.Hypot(x-s[0], y-s[1])
		amp := 1.0
		if cfg.Damping > 0 {
			amp = math.Exp(-d * cfg.Damping / 100)
		}
		sum += math.Sin(d*k-phase) * amp
	}
	return (sum/float64(len(src)) + 1) / 2
}

func (w *Waves) Compute(width, height int) gallery.PixelBuffer {
	buf := gallery.NewPixelBuffer(width, height)
	if buf.Empty() {
		return buf
	}

	cfg := w.cfg
	src := w.sources(width, height)
	lambda := w.wavelength(width, height)
	t := w.t
	marker := max(float64(min(width, height))/50, 2)

	w.backend.ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := buf.Row(y)
			for x := range row {
				fx, fy := float64(x), float64(y)
				row[x] = cfg.ColorScheme.MapClamped(intensity(fx, fy, src, &cfg, lambda, t))
				if cfg.ShowSources {
					if c, ok := markerAt(fx, fy, src, marker); ok {
						row[x] = c
					}
				}
			}
		}
	})

	return buf
}

// markerAt returns the source marker color covering a pixel: a white disc
// with a red centre of half the radius.
func markerAt(x, y float64, src [][2]float64, radius float64) (gallery.Color, bool) {
	for _, s := range src {
		d := math.Hypot(x-s[0], y-s[1])
		switch {
		case d <= radius/2:
			return sourceCentre, true
		case d <= radius:
			return sourceRim, true
		}
	}
	return gallery.Color{}, false
}
