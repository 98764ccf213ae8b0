package particles

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type MagneticConfig struct {
	Magnets        int // layout: 1 monopole, 2 dipole, 3 triangle, 4 quadrupole
	Particles      int
	MagnetStrength float32
	FieldStrength  float32
	ParticleSpeed  float32
	Damping        float32
	SpawnRadius    float32
	Speed          float32
	Trails         bool
	TrailLength    int
	Seed           int64
}

func DefaultMagneticConfig() MagneticConfig {
	return MagneticConfig{
		Magnets:        2,
		Particles:      200,
		MagnetStrength: 100,
		FieldStrength:  50,
		ParticleSpeed:  2,
		Damping:        0.98,
		SpawnRadius:    30,
		Speed:          1,
		Trails:         true,
		TrailLength:    100,
		Seed:           1,
	}
}

func (c *MagneticConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("magnets", &c.Magnets, 1, 4),
		gallery.Int("particles", &c.Particles, 0, 2000),
		gallery.Float32("magnet_strength", &c.MagnetStrength, 0, 500),
		gallery.Float32("field_strength", &c.FieldStrength, 1, 200),
		gallery.Float32("particle_speed", &c.ParticleSpeed, 0, 10),
		gallery.Float32("damping", &c.Damping, 0, 1),
		gallery.Float32("spawn_radius", &c.SpawnRadius, 6, 100),
		gallery.Float32("speed", &c.Speed, 0, 5),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 1000),
	}
}

var magneticPresets = map[string]func(*MagneticConfig){
	"dipole":        func(c *MagneticConfig) { c.Magnets = 2 },
	"strong-dipole": func(c *MagneticConfig) { c.Magnets, c.MagnetStrength, c.Particles = 2, 150, 300 },
	"quadrupole":    func(c *MagneticConfig) { c.Magnets, c.Particles = 4, 400 },
}

type magnet struct {
	pos      mgl32.Vec3
	polarity float32
}

// MagneticField traces test particles along the combined field of a few
// point poles. Particles that stray past twice the spawn radius respawn.
// Points always leads with the magnets, so a field with no particles still
// shows its poles.
type MagneticField struct {
	cfg     MagneticConfig
	rng     *gallery.RNG
	magnets []magnet
	pos     []mgl32.Vec3
	vel     []mgl32.Vec3
	trails  trails
}

func NewMagneticField() *MagneticField {
	return NewMagneticFieldWith(DefaultMagneticConfig())
}

func NewMagneticFieldWith(cfg MagneticConfig) *MagneticField {
	m := &MagneticField{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	m.init()
	return m
}

func (m *MagneticField) Name() string           { return "Magnetic Field Lines" }
func (m *MagneticField) Config() MagneticConfig { return m.cfg }
func (m *MagneticField) MagnetCount() int       { return len(m.magnets) }
func (m *MagneticField) ParticleCount() int     { return len(m.pos) }
func (m *MagneticField) Presets() []string      { return sortedKeys(magneticPresets) }

func (m *MagneticField) SetParameters(cfg MagneticConfig) {
	rebuild := cfg.Magnets != m.cfg.Magnets || cfg.Particles != m.cfg.Particles ||
		cfg.SpawnRadius != m.cfg.SpawnRadius
	m.cfg = cfg
	if rebuild {
		m.Reset()
		return
	}
	m.trails.resize(max(cfg.TrailLength, 0))
}

func (m *MagneticField) Params() []gallery.Param {
	cfg := m.cfg
	return cfg.params()
}

func (m *MagneticField) GetParams() map[string]float64 { return gallery.Values(m.Params()) }

func (m *MagneticField) SetParam(name string, v float64) error {
	cfg := m.cfg
	if err := gallery.Assign(m.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	m.SetParameters(cfg)
	return nil
}

func (m *MagneticField) ApplyPreset(name string) error {
	p, ok := magneticPresets[name]
	if !ok {
		return fmt.Errorf("unknown magnetic preset: %s", name)
	}
	p(&m.cfg)
	m.Reset()
	return nil
}

func (m *MagneticField) Seed(seed int64) {
	m.cfg.Seed = seed
	m.rng.Reseed(seed)
	m.init()
}

func (m *MagneticField) Reset() {
	m.rng.Restart()
	m.init()
}

func (m *MagneticField) init() {
	m.initMagnets()
	n := max(m.cfg.Particles, 0)
	m.pos = make([]mgl32.Vec3, n)
	m.vel = make([]mgl32.Vec3, n)
	for i := range m.pos {
		m.pos[i] = m.spawnPoint()
	}
	m.trails = newTrails(n, max(m.cfg.TrailLength, 0))
}

func (m *MagneticField) initMagnets() {
	switch m.cfg.Magnets {
	case 1:
		m.magnets = []magnet{{polarity: 1}}
	case 2:
		m.magnets = []magnet{
			{pos: mgl32.Vec3{-10, 0, 0}, polarity: 1},
			{pos: mgl32.Vec3{10, 0, 0}, polarity: -1},
		}
	case 3:
		m.magnets = m.magnets[:0]
		for i := 0; i < 3; i++ {
			a := float64(i) * 2 * math.Pi / 3
			pol := float32(1)
			if i%2 == 1 {
				pol = -1
			}
			m.magnets = append(m.magnets, magnet{
				pos:      mgl32.Vec3{float32(15 * math.Cos(a)), 0, float32(15 * math.Sin(a))},
				polarity: pol,
			})
		}
	default:
		m.magnets = []magnet{
			{pos: mgl32.Vec3{-10, 0, -10}, polarity: 1},
			{pos: mgl32.Vec3{10, 0, -10}, polarity: -1},
			{pos: mgl32.Vec3{-10, 0, 10}, polarity: -1},
			{pos: mgl32.Vec3{10, 0, 10}, polarity: 1},
		}
	}
}

func (m *MagneticField) spawnPoint() mgl32.Vec3 {
	return shell(m.rng, 5, float64(m.cfg.SpawnRadius))
}

// Field evaluates the softened, clamped field at p.
func (m *MagneticField) Field(p mgl32.Vec3) mgl32.Vec3 {
	var f mgl32.Vec3
	for _, mg := range m.magnets {
		d := p.Sub(mg.pos)
		distSq := d.Dot(d) + 0.1
		dist := float32(math.Sqrt(float64(distSq)))
		f = f.Add(d.Mul(m.cfg.MagnetStrength * mg.polarity / distSq / dist))
	}
	return clampLength(f, m.cfg.FieldStrength)
}

// Step moves every particle along the field with h = dt*Speed*0.05.
func (m *MagneticField) Step(dt float32) {
	if !gallery.ValidDelta(dt) || m.cfg.Speed <= 0 {
		return
	}
	h := dt * m.cfg.Speed * 0.05
	limit := 4 * m.cfg.SpawnRadius * m.cfg.SpawnRadius
	for i := range m.pos {
		m.vel[i] = m.Field(m.pos[i]).Mul(m.cfg.ParticleSpeed * m.cfg.Damping)
		m.pos[i] = m.pos[i].Add(m.vel[i].Mul(h))
		if m.cfg.Trails {
			m.trails[i].Push(m.pos[i])
		}
		if p := m.pos[i]; !finite(p) || p.Dot(p) > limit {
			m.pos[i] = m.spawnPoint()
			m.vel[i] = mgl32.Vec3{}
			m.trails[i].Clear()
		}
	}
}

// Points emits the magnets, then each particle followed by its trail.
func (m *MagneticField) Points() []gallery.Point3 {
	out := make([]gallery.Point3, 0, len(m.magnets)+len(m.pos)*(1+m.trails.maxLen()))
	for _, mg := range m.magnets {
		out = append(out, mg.pos)
	}
	for i, p := range m.pos {
		out = append(out, p)
		if m.cfg.Trails {
			out = m.trails[i].AppendTo(out)
		}
	}
	return out
}
