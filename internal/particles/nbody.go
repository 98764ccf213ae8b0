package particles

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type Layout int

const (
	LayoutGalaxy Layout = iota
	LayoutWide
	LayoutBinary
	LayoutCluster
)

var layoutNames = []string{"galaxy", "wide", "binary", "cluster"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return "unknown"
	}
	return layoutNames[l]
}

// minSoftening keeps the pair force finite when two bodies coincide.
const minSoftening = 0.01

type NBodyConfig struct {
	Bodies          int
	G               float32
	Softening       float32
	CentralMass     float32
	FixedCenter     bool
	SpawnRadius     float32
	InitialVelocity float32
	MaxSpeed        float32
	Speed           float32
	Trails          bool
	TrailLength     int
	Layout          Layout
	Seed            int64
}

func DefaultNBodyConfig() NBodyConfig {
	return NBodyConfig{
		Bodies:          100,
		G:               1,
		Softening:       0.5,
		CentralMass:     100,
		FixedCenter:     true,
		SpawnRadius:     30,
		InitialVelocity: 2,
		MaxSpeed:        50,
		Speed:           1,
		Trails:          true,
		TrailLength:     50,
		Seed:            1,
	}
}

func (c *NBodyConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("bodies", &c.Bodies, 0, 1000),
		gallery.Float32("g", &c.G, 0, 10),
		gallery.Float32("softening", &c.Softening, minSoftening, 5),
		gallery.Float32("central_mass", &c.CentralMass, 0, 1000),
		gallery.Bool("fixed_center", &c.FixedCenter),
		gallery.Float32("spawn_radius", &c.SpawnRadius, 1, 200),
		gallery.Float32("initial_velocity", &c.InitialVelocity, 0, 10),
		gallery.Float32("max_speed", &c.MaxSpeed, 1, 500),
		gallery.Float32("speed", &c.Speed, 0, 5),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 1000),
		gallery.Choice("layout", &c.Layout, layoutNames...),
	}
}

func (c *NBodyConfig) sanitize() {
	if math.IsNaN(float64(c.Softening)) || c.Softening < minSoftening {
		c.Softening = minSoftening
	}
}

type body struct {
	pos, vel mgl32.Vec3
	mass     float32
}

// NBody integrates softened Newtonian gravity over all body pairs. With
// FixedCenter the first body is pinned in place. The galaxy layouts always
// hold the central mass, so a zero body count still emits that one point.
type NBody struct {
	cfg    NBodyConfig
	rng    *gallery.RNG
	bodies []body
	trails trails
	forces []mgl32.Vec3
}

func NewNBody() *NBody {
	return NewNBodyWith(DefaultNBodyConfig())
}

func NewNBodyWith(cfg NBodyConfig) *NBody {
	cfg.sanitize()
	n := &NBody{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	n.init()
	return n
}

func (n *NBody) Name() string        { return "N-Body Gravity" }
func (n *NBody) Config() NBodyConfig { return n.cfg }
func (n *NBody) BodyCount() int      { return len(n.bodies) }
func (n *NBody) Presets() []string   { return append([]string(nil), layoutNames...) }

func (n *NBody) SetParameters(cfg NBodyConfig) {
	cfg.sanitize()
	rebuild := cfg.Bodies != n.cfg.Bodies || cfg.Layout != n.cfg.Layout ||
		cfg.SpawnRadius != n.cfg.SpawnRadius || cfg.InitialVelocity != n.cfg.InitialVelocity ||
		cfg.CentralMass != n.cfg.CentralMass
	n.cfg = cfg
	if rebuild {
		n.Reset()
		return
	}
	n.trails.resize(max(cfg.TrailLength, 0))
}

func (n *NBody) Params() []gallery.Param {
	cfg := n.cfg
	return cfg.params()
}

func (n *NBody) GetParams() map[string]float64 { return gallery.Values(n.Params()) }

func (n *NBody) SetParam(name string, v float64) error {
	cfg := n.cfg
	if err := gallery.Assign(n.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	n.SetParameters(cfg)
	return nil
}

// ApplyPreset switches to a named layout. "wide" also widens the spawn shell
// and heavies the center.
func (n *NBody) ApplyPreset(name string) error {
	for i, l := range layoutNames {
		if l != name {
			continue
		}
		cfg := DefaultNBodyConfig()
		cfg.Seed, cfg.MaxSpeed, cfg.Speed = n.cfg.Seed, n.cfg.MaxSpeed, n.cfg.Speed
		cfg.Layout = Layout(i)
		if cfg.Layout == LayoutWide {
			cfg.CentralMass, cfg.Bodies, cfg.SpawnRadius, cfg.InitialVelocity = 200, 50, 50, 2.5
		}
		n.cfg = cfg
		n.Reset()
		return nil
	}
	return fmt.Errorf("unknown n-body preset: %s", name)
}

func (n *NBody) Seed(seed int64) {
	n.cfg.Seed = seed
	n.rng.Reseed(seed)
	n.init()
}

func (n *NBody) Reset() {
	n.rng.Restart()
	n.init()
}

func (n *NBody) init() {
	n.bodies = n.bodies[:0]
	switch n.cfg.Layout {
	case LayoutBinary:
		n.initBinary()
	case LayoutCluster:
		n.initCluster()
	default:
		n.initGalaxy()
	}
	n.trails = newTrails(len(n.bodies), max(n.cfg.TrailLength, 0))
	n.forces = make([]mgl32.Vec3, len(n.bodies))
}

func (n *NBody) initGalaxy() {
	c := n.cfg
	n.bodies = append(n.bodies, body{mass: c.CentralMass})
	for i := 0; i < c.Bodies; i++ {
		theta := n.rng.Range(0, 2*math.Pi)
		phi := n.rng.Range(-math.Pi/4, math.Pi/4)
		r := n.rng.Range(float64(c.SpawnRadius)/2, float64(c.SpawnRadius))

		orbital := float64(c.InitialVelocity) * math.Sqrt(float64(c.CentralMass)/r)
		n.bodies = append(n.bodies, body{
			pos: mgl32.Vec3{
				float32(r * math.Cos(phi) * math.Cos(theta)),
				float32(r * math.Sin(phi)),
				float32(r * math.Cos(phi) * math.Sin(theta)),
			},
			vel: mgl32.Vec3{
				float32(-orbital * math.Sin(theta)),
				n.rng.Range32(-0.5, 0.5),
				float32(orbital * math.Cos(theta)),
			},
			mass: n.rng.Range32(0.1, 1),
		})
	}
}

// initBinary places two equal stars in a mutual orbit plus a ring of debris.
func (n *NBody) initBinary() {
	n.bodies = append(n.bodies,
		body{pos: mgl32.Vec3{-10, 0, 0}, vel: mgl32.Vec3{0, 2, 0}, mass: 50},
		body{pos: mgl32.Vec3{10, 0, 0}, vel: mgl32.Vec3{0, -2, 0}, mass: 50},
	)
	for i := 0; i < 30; i++ {
		a := n.rng.Range(0, 2*math.Pi)
		r := n.rng.Range(25, 40)
		n.bodies = append(n.bodies, body{
			pos:  mgl32.Vec3{float32(r * math.Cos(a)), 0, float32(r * math.Sin(a))},
			vel:  mgl32.Vec3{float32(-2 * math.Sin(a)), 0, float32(2 * math.Cos(a))},
			mass: 0.1,
		})
	}
}

func (n *NBody) initCluster() {
	count := max(n.cfg.Bodies, 0)
	for i := 0; i < count; i++ {
		n.bodies = append(n.bodies, body{
			pos:  mgl32.Vec3{n.rng.Range32(-30, 30), n.rng.Range32(-30, 30), n.rng.Range32(-30, 30)},
			vel:  mgl32.Vec3{n.rng.Range32(-1, 1), n.rng.Range32(-1, 1), n.rng.Range32(-1, 1)},
			mass: n.rng.Range32(0.5, 2),
		})
	}
}

// pinned reports whether body i is held fixed.
func (n *NBody) pinned(i int) bool {
	return i == 0 && n.cfg.FixedCenter && n.cfg.Layout != LayoutBinary && n.cfg.Layout != LayoutCluster
}

// computeForces visits each unordered pair once and applies the force to
// both bodies with opposite signs.
func (n *NBody) computeForces() {
	for i := range n.forces {
		n.forces[i] = mgl32.Vec3{}
	}
	eps2 := n.cfg.Softening * n.cfg.Softening
	for i := 0; i < len(n.bodies); i++ {
		for j := i + 1; j < len(n.bodies); j++ {
			d := n.bodies[j].pos.Sub(n.bodies[i].pos)
			distSq := d.Dot(d) + eps2
			dist := float32(math.Sqrt(float64(distSq)))
			mag := n.cfg.G * n.bodies[i].mass * n.bodies[j].mass / distSq
			f := d.Mul(mag / dist)
			n.forces[i] = n.forces[i].Add(f)
			n.forces[j] = n.forces[j].Sub(f)
		}
	}
}

// Step advances all free bodies by one symplectic Euler step of
// dt*Speed*0.1.
func (n *NBody) Step(dt float32) {
	if !gallery.ValidDelta(dt) || n.cfg.Speed <= 0 {
		return
	}
	h := dt * n.cfg.Speed * 0.1
	n.computeForces()
	for i := range n.bodies {
		if n.pinned(i) {
			continue
		}
		b := &n.bodies[i]
		if b.mass <= 0 {
			continue
		}
		b.vel = clampLength(b.vel.Add(n.forces[i].Mul(h/b.mass)), n.cfg.MaxSpeed)
		b.pos = b.pos.Add(b.vel.Mul(h))
		if !finite(b.pos) || !finite(b.vel) {
			b.pos, b.vel = mgl32.Vec3{}, mgl32.Vec3{}
			n.trails[i].Clear()
		}
		if n.cfg.Trails {
			n.trails[i].Push(b.pos)
		}
	}
}

// Points emits each body followed by its trail.
func (n *NBody) Points() []gallery.Point3 {
	out := make([]gallery.Point3, 0, len(n.bodies)*(1+n.trails.maxLen()))
	for i, b := range n.bodies {
		out = append(out, b.pos)
		if n.cfg.Trails {
			out = n.trails[i].AppendTo(out)
		}
	}
	return out
}

// Energy returns total kinetic plus softened potential energy.
func (n *NBody) Energy() float64 {
	eps2 := float64(n.cfg.Softening) * float64(n.cfg.Softening)
	e := 0.0
	for i, a := range n.bodies {
		v := a.vel.Len()
		e += 0.5 * float64(a.mass) * float64(v) * float64(v)
		for j := i + 1; j < len(n.bodies); j++ {
			b := n.bodies[j]
			d := b.pos.Sub(a.pos)
			r := math.Sqrt(float64(d.Dot(d)) + eps2)
			e -= float64(n.cfg.G) * float64(a.mass) * float64(b.mass) / r
		}
	}
	return e
}

// Momentum returns the total linear momentum.
func (n *NBody) Momentum() mgl32.Vec3 {
	var p mgl32.Vec3
	for _, b := range n.bodies {
		p = p.Add(b.vel.Mul(b.mass))
	}
	return p
}
