package attractors

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
)

// MapRule is one iteration of a two-dimensional trigonometric map.
type MapRule func(x, y, a, b, c, d float64) (float64, float64)

func deJong(x, y, a, b, c, d float64) (float64, float64) {
	return math.Sin(a*y) - math.Cos(b*x), math.Sin(c*x) - math.Cos(d*y)
}

func clifford(x, y, a, b, c, d float64) (float64, float64) {
	return math.Sin(a*y) + c*math.Cos(a*x), math.Sin(b*x) + d*math.Cos(b*y)
}

type MapConfig struct {
	A, B, C, D     float64
	Points         int
	Scale          float64
	Animate        bool
	AnimationSpeed float64
}

func (c *MapConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("a", &c.A, -5, 5),
		gallery.Float("b", &c.B, -5, 5),
		gallery.Float("c", &c.C, -5, 5),
		gallery.Float("d", &c.D, -5, 5),
		gallery.Int("points", &c.Points, 0, 500000),
		gallery.Float("scale", &c.Scale, 0.01, 1000),
		gallery.Bool("animate", &c.Animate),
		gallery.Float("animation_speed", &c.AnimationSpeed, 0, 10),
	}
}

type mapFamily struct {
	name    string
	rule    MapRule
	presets map[string]MapConfig
}

func withCoefficients(base MapConfig, a, b, c, d float64) MapConfig {
	base.A, base.B, base.C, base.D = a, b, c, d
	return base
}

var mapBase = MapConfig{Points: 10000, Scale: 10, AnimationSpeed: 1}

var deJongFamily = mapFamily{
	name: "De Jong",
	rule: deJong,
	presets: map[string]MapConfig{
		"classic": withCoefficients(mapBase, -2, -2, -1.2, 2),
		"swirls":  withCoefficients(mapBase, 1.4, -2.3, 2.4, -2.1),
		"web": func() MapConfig {
			c := withCoefficients(mapBase, -2.7, -0.09, -0.86, -2.2)
			c.Points = 50000
			return c
		}(),
		"flower": withCoefficients(mapBase, -2.01, -1.8, 1.79, -1.93),
	},
}

var cliffordFamily = mapFamily{
	name: "Clifford",
	rule: clifford,
	presets: map[string]MapConfig{
		"classic":    withCoefficients(mapBase, -1.4, 1.6, 1.0, 0.7),
		"spiral-web": withCoefficients(mapBase, 1.5, -1.8, 1.6, 0.9),
		"butterfly":  withCoefficients(mapBase, -1.7, 1.3, -0.1, -1.2),
		"galaxy": func() MapConfig {
			c := withCoefficients(mapBase, -1.4, 1.6, 1.0, 0.7)
			c.Points = 50000
			return c
		}(),
	},
}

func DefaultDeJongConfig() MapConfig   { return deJongFamily.presets["classic"] }
func DefaultCliffordConfig() MapConfig { return cliffordFamily.presets["classic"] }

// IteratedMap emits the orbit of (0,0) under a planar map in the z=0 plane.
// The orbit depends only on the coefficients, so the cloud is recomputed only
// when they change or when animation drifts them.
type IteratedMap struct {
	fam  mapFamily
	cfg  MapConfig
	t    float64
	pts  []gallery.Point3
	warm bool
}

func NewDeJong() *IteratedMap   { return NewDeJongWith(DefaultDeJongConfig()) }
func NewClifford() *IteratedMap { return NewCliffordWith(DefaultCliffordConfig()) }

func NewDeJongWith(cfg MapConfig) *IteratedMap {
	return newIteratedMap(deJongFamily, cfg)
}

func NewCliffordWith(cfg MapConfig) *IteratedMap {
	return newIteratedMap(cliffordFamily, cfg)
}

func newIteratedMap(f mapFamily, cfg MapConfig) *IteratedMap {
	m := &IteratedMap{fam: f}
	m.SetParameters(cfg)
	return m
}

func (m *IteratedMap) Name() string      { return m.fam.name }
func (m *IteratedMap) Config() MapConfig { return m.cfg }

func (m *IteratedMap) Presets() []string { return sortedKeys(m.fam.presets) }

func (m *IteratedMap) ApplyPreset(name string) error {
	cfg, ok := m.fam.presets[name]
	if !ok {
		return fmt.Errorf("unknown %s preset: %s", m.fam.name, name)
	}
	cfg.Animate = m.cfg.Animate
	cfg.AnimationSpeed = m.cfg.AnimationSpeed
	m.SetParameters(cfg)
	return nil
}

func (m *IteratedMap) SetParameters(cfg MapConfig) {
	if cfg.Points < 0 {
		cfg.Points = 0
	}
	m.cfg = cfg
	m.warm = false
}

func (m *IteratedMap) Params() []gallery.Param {
	cfg := m.cfg
	return cfg.params()
}

func (m *IteratedMap) GetParams() map[string]float64 { return gallery.Values(m.Params()) }

func (m *IteratedMap) SetParam(name string, v float64) error {
	cfg := m.cfg
	if err := gallery.Assign(m.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	m.SetParameters(cfg)
	return nil
}

func (m *IteratedMap) Reset() {
	m.t = 0
	m.warm = false
}

// Step advances the animation clock; without animation the orbit is fixed.
func (m *IteratedMap) Step(dt float32) {
	if !m.cfg.Animate || !gallery.ValidDelta(dt) {
		return
	}
	m.t += float64(dt)
	m.warm = false
}

// Coefficients returns a, b, c, d as used for the current orbit, including
// the animation offsets.
func (m *IteratedMap) Coefficients() (a, b, c, d float64) {
	a, b, c, d = m.cfg.A, m.cfg.B, m.cfg.C, m.cfg.D
	if m.cfg.Animate {
		t := m.t * m.cfg.AnimationSpeed
		a += math.Sin(t*0.5) * 0.5
		b += math.Cos(t*0.7) * 0.5
		c += math.Sin(t*0.3) * 0.3
		d += math.Cos(t*0.6) * 0.3
	}
	return a, b, c, d
}

func (m *IteratedMap) Points() []gallery.Point3 {
	if !m.warm {
		m.iterate()
	}
	out := make([]gallery.Point3, len(m.pts))
	copy(out, m.pts)
	return out
}

func (m *IteratedMap) iterate() {
	a, b, c, d := m.Coefficients()
	k := m.cfg.Scale
	m.pts = m.pts[:0]
	var x, y float64
	for i := 0; i < m.cfg.Points; i++ {
		x, y = m.fam.rule(x, y, a, b, c, d)
		m.pts = append(m.pts, gallery.Point3{float32(x * k), float32(y * k), 0})
	}
	m.warm = true
}
