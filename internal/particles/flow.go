package particles

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type FlowConfig struct {
	Particles   int
	Domain      float32 // half extent of the periodic box
	ThreeD      bool
	NoiseScale  float64
	Turbulence  float64
	FlowSpeed   float32
	Evolution   float64 // noise time per second
	Alpha       float64
	Beta        float64
	Octaves     int
	Speed       float32
	Trails      bool
	TrailLength int
	Seed        int64
}

func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		Particles:   800,
		Domain:      40,
		ThreeD:      true,
		NoiseScale:  0.05,
		Turbulence:  1,
		FlowSpeed:   10,
		Evolution:   0.1,
		Alpha:       2,
		Beta:        2,
		Octaves:     3,
		Speed:       1,
		Trails:      true,
		TrailLength: 20,
		Seed:        1,
	}
}

func (c *FlowConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("particles", &c.Particles, 0, 5000),
		gallery.Float32("domain", &c.Domain, 5, 200),
		gallery.Bool("three_d", &c.ThreeD),
		gallery.Float("noise_scale", &c.NoiseScale, 0.001, 1),
		gallery.Float("turbulence", &c.Turbulence, 0, 5),
		gallery.Float32("flow_speed", &c.FlowSpeed, 0, 100),
		gallery.Float("evolution", &c.Evolution, 0, 5),
		gallery.Float("alpha", &c.Alpha, 1, 4),
		gallery.Float("beta", &c.Beta, 1, 4),
		gallery.Int("octaves", &c.Octaves, 1, 8),
		gallery.Float32("speed", &c.Speed, 0, 5),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 500),
	}
}

// FlowField advects particles along directions sampled from animated Perlin
// noise inside a periodic box.
type FlowField struct {
	cfg    FlowConfig
	rng    *gallery.RNG
	noise  *perlin.Perlin
	pos    []mgl32.Vec3
	trails trails
	time   float64
}

func NewFlowField() *FlowField {
	return NewFlowFieldWith(DefaultFlowConfig())
}

func NewFlowFieldWith(cfg FlowConfig) *FlowField {
	f := &FlowField{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	f.init()
	return f
}

func (f *FlowField) Name() string       { return "Perlin Flow Field" }
func (f *FlowField) Config() FlowConfig { return f.cfg }
func (f *FlowField) ParticleCount() int { return len(f.pos) }

func (f *FlowField) SetParameters(cfg FlowConfig) {
	old := f.cfg
	f.cfg = cfg
	switch {
	case cfg.Particles != old.Particles || cfg.Domain != old.Domain || cfg.ThreeD != old.ThreeD:
		f.Reset()
	case cfg.Alpha != old.Alpha || cfg.Beta != old.Beta || cfg.Octaves != old.Octaves:
		f.noise = f.newNoise()
	default:
		f.trails.resize(max(cfg.TrailLength, 0))
	}
}

func (f *FlowField) Params() []gallery.Param {
	cfg := f.cfg
	return cfg.params()
}

func (f *FlowField) GetParams() map[string]float64 { return gallery.Values(f.Params()) }

func (f *FlowField) SetParam(name string, v float64) error {
	cfg := f.cfg
	if err := gallery.Assign(f.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	f.SetParameters(cfg)
	return nil
}

func (f *FlowField) Seed(seed int64) {
	f.cfg.Seed = seed
	f.rng.Reseed(seed)
	f.init()
}

func (f *FlowField) Reset() {
	f.rng.Restart()
	f.init()
}

func (f *FlowField) newNoise() *perlin.Perlin {
	return perlin.NewPerlin(f.cfg.Alpha, f.cfg.Beta, int32(max(f.cfg.Octaves, 1)), f.cfg.Seed)
}

func (f *FlowField) init() {
	f.noise = f.newNoise()
	f.time = 0
	n := max(f.cfg.Particles, 0)
	d := f.cfg.Domain
	f.pos = make([]mgl32.Vec3, n)
	for i := range f.pos {
		p := mgl32.Vec3{f.rng.Range32(-d, d), f.rng.Range32(-d, d), 0}
		if f.cfg.ThreeD {
			p[2] = f.rng.Range32(-d, d)
		}
		f.pos[i] = p
	}
	f.trails = newTrails(n, max(f.cfg.TrailLength, 0))
}

// Direction returns the unit flow direction at p for the current noise time.
func (f *FlowField) Direction(p mgl32.Vec3) mgl32.Vec3 {
	s := f.cfg.NoiseScale
	x, y, z := float64(p[0])*s, float64(p[1])*s, float64(p[2])*s
	turns := 2 * math.Pi * f.cfg.Turbulence

	if !f.cfg.ThreeD {
		a := f.noise.Noise3D(x, y, f.time) * turns
		return mgl32.Vec3{float32(math.Cos(a)), float32(math.Sin(a)), 0}
	}
	theta := f.noise.Noise3D(x, y, z+f.time) * turns
	phi := (f.noise.Noise3D(x+100, y+100, z+f.time)*0.5 + 0.5) * math.Pi
	return mgl32.Vec3{
		float32(math.Sin(phi) * math.Cos(theta)),
		float32(math.Sin(phi) * math.Sin(theta)),
		float32(math.Cos(phi)),
	}
}

// Step moves particles FlowSpeed*dt*Speed along the field and wraps them
// around the box, clearing the trail of any particle that crossed.
func (f *FlowField) Step(dt float32) {
	if !gallery.ValidDelta(dt) || f.cfg.Speed <= 0 {
		return
	}
	h := dt * f.cfg.Speed
	f.time += float64(h) * f.cfg.Evolution
	for i := range f.pos {
		var v mgl32.Vec3
		f.pos[i] = f.pos[i].Add(f.Direction(f.pos[i]).Mul(f.cfg.FlowSpeed * h))
		if contain(&f.pos[i], &v, Wrap, f.cfg.Domain, 1) {
			f.trails[i].Clear()
		}
		if f.cfg.Trails {
			f.trails[i].Push(f.pos[i])
		}
	}
}

func (f *FlowField) Points() []gallery.Point3 {
	out := make([]gallery.Point3, 0, len(f.pos)*(1+f.trails.maxLen()))
	out = append(out, f.pos...)
	if f.cfg.Trails {
		for _, t := range f.trails {
			out = t.AppendTo(out)
		}
	}
	return out
}
