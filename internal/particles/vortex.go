package particles

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type VortexConfig struct {
	Vortices    int
	Particles   int
	Strength    float32
	Turbulence  float32
	FlowSpeed   float32
	MaxSpeed    float32
	Lifetime    float32 // seconds
	SpawnRate   float64 // chance per missing particle per step
	Speed       float32
	Trails      bool
	TrailLength int
	Seed        int64
}

func DefaultVortexConfig() VortexConfig {
	return VortexConfig{
		Vortices:    3,
		Particles:   300,
		Strength:    20,
		Turbulence:  5,
		FlowSpeed:   3,
		MaxSpeed:    30,
		Lifetime:    10,
		SpawnRate:   0.3,
		Speed:       1,
		Trails:      true,
		TrailLength: 50,
		Seed:        1,
	}
}

func (c *VortexConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("vortices", &c.Vortices, 1, 4),
		gallery.Int("particles", &c.Particles, 0, 3000),
		gallery.Float32("strength", &c.Strength, 0, 100),
		gallery.Float32("turbulence", &c.Turbulence, 0, 30),
		gallery.Float32("flow_speed", &c.FlowSpeed, 0, 10),
		gallery.Float32("max_speed", &c.MaxSpeed, 1, 200),
		gallery.Float32("lifetime", &c.Lifetime, 0.5, 60),
		gallery.Float("spawn_rate", &c.SpawnRate, 0, 1),
		gallery.Float32("speed", &c.Speed, 0, 5),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 1000),
	}
}

var vortexPresets = map[string]func(*VortexConfig){
	"tornado": func(c *VortexConfig) { c.Vortices, c.Strength, c.Turbulence, c.Particles = 1, 35, 8, 500 },
	"twin":    func(c *VortexConfig) { c.Vortices, c.Strength, c.Turbulence, c.Particles = 2, 25, 5, 400 },
	"storm":   func(c *VortexConfig) { c.Vortices, c.Strength, c.Turbulence, c.Particles = 4, 20, 12, 600 },
}

type tracer struct {
	pos, vel mgl32.Vec3
	life     float32
	trail    *gallery.Trail
}

// Vortex advects short-lived tracers through a handful of swirling, lifting
// vortex cores with random turbulence. The cores are emitted ahead of the
// tracers and remain visible when the tracer count is zero.
type Vortex struct {
	cfg     VortexConfig
	rng     *gallery.RNG
	centers []mgl32.Vec3
	tracers []tracer
}

func NewVortex() *Vortex {
	return NewVortexWith(DefaultVortexConfig())
}

func NewVortexWith(cfg VortexConfig) *Vortex {
	v := &Vortex{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	v.init()
	return v
}

func (v *Vortex) Name() string         { return "Vortex Turbulence" }
func (v *Vortex) Config() VortexConfig { return v.cfg }
func (v *Vortex) ParticleCount() int   { return len(v.tracers) }
func (v *Vortex) Presets() []string    { return sortedKeys(vortexPresets) }

func (v *Vortex) SetParameters(cfg VortexConfig) {
	rebuild := cfg.Vortices != v.cfg.Vortices || cfg.Particles != v.cfg.Particles
	v.cfg = cfg
	if rebuild {
		v.Reset()
		return
	}
	for _, t := range v.tracers {
		t.trail.Resize(max(cfg.TrailLength, 0))
	}
}

func (v *Vortex) Params() []gallery.Param {
	cfg := v.cfg
	return cfg.params()
}

func (v *Vortex) GetParams() map[string]float64 { return gallery.Values(v.Params()) }

func (v *Vortex) SetParam(name string, val float64) error {
	cfg := v.cfg
	if err := gallery.Assign(v.Name(), cfg.params(), name, val); err != nil {
		return err
	}
	v.SetParameters(cfg)
	return nil
}

func (v *Vortex) ApplyPreset(name string) error {
	p, ok := vortexPresets[name]
	if !ok {
		return fmt.Errorf("unknown vortex preset: %s", name)
	}
	p(&v.cfg)
	v.Reset()
	return nil
}

func (v *Vortex) Seed(seed int64) {
	v.cfg.Seed = seed
	v.rng.Reseed(seed)
	v.init()
}

func (v *Vortex) Reset() {
	v.rng.Restart()
	v.init()
}

func (v *Vortex) init() {
	switch v.cfg.Vortices {
	case 1:
		v.centers = []mgl32.Vec3{{0, 0, 0}}
	case 2:
		v.centers = []mgl32.Vec3{{-15, 0, 0}, {15, 0, 0}}
	case 3:
		v.centers = v.centers[:0]
		for i := 0; i < 3; i++ {
			a := float64(i) * 2 * math.Pi / 3
			v.centers = append(v.centers, mgl32.Vec3{float32(20 * math.Cos(a)), 0, float32(20 * math.Sin(a))})
		}
	default:
		v.centers = []mgl32.Vec3{{15, 15, 0}, {-15, 15, 0}, {15, -15, 0}, {-15, -15, 0}}
	}

	n := max(v.cfg.Particles, 0)
	v.tracers = make([]tracer, 0, n)
	for i := 0; i < n; i++ {
		// staggered ages so the first generation does not expire together
		v.tracers = append(v.tracers, v.spawn(v.rng.Range32(0, v.cfg.Lifetime)))
	}
}

func (v *Vortex) spawn(life float32) tracer {
	theta := v.rng.Range(0, 2*math.Pi)
	r := v.rng.Range(30, 50)
	return tracer{
		pos:   mgl32.Vec3{float32(r * math.Cos(theta)), v.rng.Range32(-20, 20), float32(r * math.Sin(theta))},
		life:  life,
		trail: gallery.NewTrail(max(v.cfg.TrailLength, 0)),
	}
}

// Force returns the combined swirl, pull and lift of every vortex at p.
func (v *Vortex) Force(p mgl32.Vec3) mgl32.Vec3 {
	var f mgl32.Vec3
	s := v.cfg.Strength
	for _, c := range v.centers {
		d := p.Sub(c)
		distSq := d.Dot(d) + 1
		dist := float32(math.Sqrt(float64(distSq)))

		tangent := mgl32.Vec3{-d[2], 0, d[0]}
		if tl := tangent.Len(); tl > 0.01 {
			f = f.Add(tangent.Mul(s / distSq / tl))
		}
		f = f.Sub(d.Mul(0.3 * s / distSq / dist))
		f[1] += 0.5 * s / (dist + 5)
	}
	return f
}

// Step advects tracers with h = dt*Speed*0.02, ages them by dt*Speed seconds
// and tops the population back up at SpawnRate.
func (v *Vortex) Step(dt float32) {
	if !gallery.ValidDelta(dt) || v.cfg.Speed <= 0 {
		return
	}
	h := dt * v.cfg.Speed * 0.02
	age := dt * v.cfg.Speed
	turb := v.cfg.Turbulence

	alive := v.tracers[:0]
	for _, t := range v.tracers {
		f := v.Force(t.pos)
		t.vel = f.Mul(v.cfg.FlowSpeed).Add(mgl32.Vec3{
			v.rng.Range32(-turb, turb),
			v.rng.Range32(-turb, turb),
			v.rng.Range32(-turb, turb),
		})
		t.vel = clampLength(t.vel, v.cfg.MaxSpeed)
		t.pos = t.pos.Add(t.vel.Mul(h))
		if !finite(t.pos) {
			continue
		}
		if v.cfg.Trails {
			t.trail.Push(t.pos)
		}
		t.life -= age
		if t.life > 0 {
			alive = append(alive, t)
		}
	}
	v.tracers = alive

	for missing := max(v.cfg.Particles, 0) - len(v.tracers); missing > 0; missing-- {
		if v.rng.Chance(v.cfg.SpawnRate) {
			v.tracers = append(v.tracers, v.spawn(v.cfg.Lifetime))
		}
	}
}

// Points emits vortex centers, then each tracer followed by its trail.
func (v *Vortex) Points() []gallery.Point3 {
	out := make([]gallery.Point3, 0, len(v.centers)+len(v.tracers))
	out = append(out, v.centers...)
	for _, t := range v.tracers {
		out = append(out, t.pos)
		if v.cfg.Trails {
			out = t.trail.AppendTo(out)
		}
	}
	return out
}
