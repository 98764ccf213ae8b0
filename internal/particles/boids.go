package particles

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type BoidsConfig struct {
	Count            int
	BoundRadius      float32
	SeparationRadius float32
	AlignmentRadius  float32
	CohesionRadius   float32
	Separation       float32
	Alignment        float32
	Cohesion         float32
	MaxSpeed         float32
	MaxForce         float32
	Speed            float32
	Policy           Boundary
	Trails           bool
	TrailLength      int
	Seed             int64
}

func DefaultBoidsConfig() BoidsConfig {
	return BoidsConfig{
		Count:            50,
		BoundRadius:      30,
		SeparationRadius: 5,
		AlignmentRadius:  10,
		CohesionRadius:   10,
		Separation:       1.5,
		Alignment:        1,
		Cohesion:         1,
		MaxSpeed:         2,
		MaxForce:         0.1,
		Speed:            1,
		Policy:           Steer,
		Trails:           true,
		TrailLength:      10,
		Seed:             1,
	}
}

// boidPolicies maps choice indices to the policies boids support.
var boidPolicies = []Boundary{Steer, Wrap}

func (c *BoidsConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("count", &c.Count, 0, 1000),
		gallery.Float32("bound_radius", &c.BoundRadius, 5, 200),
		gallery.Float32("separation_radius", &c.SeparationRadius, 0, 50),
		gallery.Float32("alignment_radius", &c.AlignmentRadius, 0, 50),
		gallery.Float32("cohesion_radius", &c.CohesionRadius, 0, 50),
		gallery.Float32("separation", &c.Separation, 0, 5),
		gallery.Float32("alignment", &c.Alignment, 0, 5),
		gallery.Float32("cohesion", &c.Cohesion, 0, 5),
		gallery.Float32("max_speed", &c.MaxSpeed, 0.1, 20),
		gallery.Float32("max_force", &c.MaxForce, 0.001, 5),
		gallery.Float32("speed", &c.Speed, 0, 5),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 500),
	}
}

type boid struct {
	pos, vel mgl32.Vec3
}

// Boids is a 3D flock steered by separation, alignment and cohesion inside a
// soft spherical bound or a periodic cube.
type Boids struct {
	cfg    BoidsConfig
	rng    *gallery.RNG
	boids  []boid
	prev   []boid
	trails trails
}

func NewBoids() *Boids {
	return NewBoidsWith(DefaultBoidsConfig())
}

func NewBoidsWith(cfg BoidsConfig) *Boids {
	b := &Boids{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	b.init()
	return b
}

func (b *Boids) Name() string        { return "3D Boids Flocking" }
func (b *Boids) Config() BoidsConfig { return b.cfg }
func (b *Boids) Count() int          { return len(b.boids) }

func (b *Boids) SetParameters(cfg BoidsConfig) {
	rebuild := cfg.Count != b.cfg.Count || cfg.BoundRadius != b.cfg.BoundRadius
	b.cfg = cfg
	if rebuild {
		b.Reset()
		return
	}
	b.trails.resize(max(cfg.TrailLength, 0))
}

func (b *Boids) Params() []gallery.Param {
	cfg := b.cfg
	policy := 0
	if cfg.Policy == Wrap {
		policy = 1
	}
	return append(cfg.params(), gallery.Choice("boundary_policy", &policy, Steer.String(), Wrap.String()))
}

func (b *Boids) GetParams() map[string]float64 { return gallery.Values(b.Params()) }

func (b *Boids) SetParam(name string, v float64) error {
	cfg := b.cfg
	policy := 0
	if cfg.Policy == Wrap {
		policy = 1
	}
	params := append(cfg.params(), gallery.Choice("boundary_policy", &policy, Steer.String(), Wrap.String()))
	if err := gallery.Assign(b.Name(), params, name, v); err != nil {
		return err
	}
	cfg.Policy = boidPolicies[policy]
	b.SetParameters(cfg)
	return nil
}

func (b *Boids) Seed(seed int64) {
	b.cfg.Seed = seed
	b.rng.Reseed(seed)
	b.init()
}

func (b *Boids) Reset() {
	b.rng.Restart()
	b.init()
}

func (b *Boids) init() {
	n := max(b.cfg.Count, 0)
	b.boids = make([]boid, n)
	b.prev = make([]boid, n)
	for i := range b.boids {
		b.boids[i] = boid{
			pos: b.rng.InSphere(b.cfg.BoundRadius / 2),
			vel: b.rng.Direction().Mul(b.rng.Range32(0, b.cfg.MaxSpeed)),
		}
	}
	b.trails = newTrails(n, max(b.cfg.TrailLength, 0))
}

// steer turns an accumulated direction into a steering force toward
// MaxSpeed along it.
func (b *Boids) steer(dir, vel mgl32.Vec3) (mgl32.Vec3, bool) {
	l := dir.Len()
	if l == 0 {
		return mgl32.Vec3{}, false
	}
	return dir.Mul(b.cfg.MaxSpeed / l).Sub(vel), true
}

// Step applies the flocking rules against a snapshot of the previous state,
// with h = dt*Speed*60 nominal frames.
func (b *Boids) Step(dt float32) {
	if !gallery.ValidDelta(dt) || b.cfg.Speed <= 0 {
		return
	}
	h := dt * b.cfg.Speed * 60
	c := b.cfg
	copy(b.prev, b.boids)

	sepR2 := c.SeparationRadius * c.SeparationRadius
	aliR2 := c.AlignmentRadius * c.AlignmentRadius
	cohR2 := c.CohesionRadius * c.CohesionRadius

	for i := range b.boids {
		cur := &b.boids[i]
		var sep, ali, coh mgl32.Vec3
		sepN, aliN, cohN := 0, 0, 0

		for j, other := range b.prev {
			if i == j {
				continue
			}
			d := other.pos.Sub(cur.pos)
			d2 := d.Dot(d)
			if d2 < sepR2 && d2 > 0 {
				// unit away vector scaled by 1/dist
				sep = sep.Sub(d.Mul(1 / d2))
				sepN++
			}
			if d2 < aliR2 {
				ali = ali.Add(other.vel)
				aliN++
			}
			if d2 < cohR2 {
				coh = coh.Add(other.pos)
				cohN++
			}
		}

		var acc mgl32.Vec3
		if sepN > 0 {
			if f, ok := b.steer(sep.Mul(1/float32(sepN)), cur.vel); ok {
				acc = acc.Add(f.Mul(c.Separation))
			}
		}
		if aliN > 0 {
			if f, ok := b.steer(ali.Mul(1/float32(aliN)), cur.vel); ok {
				acc = acc.Add(f.Mul(c.Alignment))
			}
		}
		if cohN > 0 {
			center := coh.Mul(1 / float32(cohN))
			if f, ok := b.steer(center.Sub(cur.pos), cur.vel); ok {
				acc = acc.Add(f.Mul(c.Cohesion))
			}
		}

		if c.Policy != Wrap {
			dist := cur.pos.Len()
			if inner := c.BoundRadius * 0.8; dist > inner {
				strength := (dist - inner) / (c.BoundRadius * 0.2)
				acc = acc.Sub(cur.pos.Mul(strength * 2 / dist))
			}
		}

		acc = clampLength(acc, c.MaxForce)
		cur.vel = clampLength(cur.vel.Add(acc.Mul(h)), c.MaxSpeed)
		cur.pos = cur.pos.Add(cur.vel.Mul(h))

		if c.Policy == Wrap {
			if contain(&cur.pos, &cur.vel, Wrap, c.BoundRadius, 1) {
				b.trails[i].Clear()
			}
		} else if !finite(cur.pos) || !finite(cur.vel) {
			cur.pos, cur.vel = mgl32.Vec3{}, mgl32.Vec3{}
		}
		if c.Trails {
			b.trails[i].Push(cur.pos)
		}
	}
}

// Points emits every boid position, then all trails.
func (b *Boids) Points() []gallery.Point3 {
	out := make([]gallery.Point3, 0, len(b.boids)*(1+b.trails.maxLen()))
	for _, bd := range b.boids {
		out = append(out, bd.pos)
	}
	if b.cfg.Trails {
		for _, t := range b.trails {
			out = t.AppendTo(out)
		}
	}
	return out
}

// Polarization is the magnitude of the mean heading, 1 for a perfectly
// aligned flock.
func (b *Boids) Polarization() float64 {
	var sum mgl32.Vec3
	n := 0
	for _, bd := range b.boids {
		if l := bd.vel.Len(); l > 0 {
			sum = sum.Add(bd.vel.Mul(1 / l))
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Min(1, float64(sum.Len())/float64(n))
}
