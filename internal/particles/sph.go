package particles

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type SPHConfig struct {
	Particles       int
	Boundary        float32 // cube side
	SmoothingRadius float32
	RestDensity     float32
	GasConstant     float32
	Viscosity       float32
	Mass            float32
	Gravity         float32
	Damping         float32
	MaxSpeed        float32
	Speed           float32
	Policy          Boundary
	Seed            int64
}

func DefaultSPHConfig() SPHConfig {
	return SPHConfig{
		Particles:       500,
		Boundary:        25,
		SmoothingRadius: 2,
		RestDensity:     1000,
		GasConstant:     2000,
		Viscosity:       0.5,
		Mass:            1,
		Gravity:         9.8,
		Damping:         0.95,
		MaxSpeed:        50,
		Speed:           1,
		Policy:          Bounce,
		Seed:            1,
	}
}

func (c *SPHConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("particles", &c.Particles, 0, 2000),
		gallery.Float32("boundary", &c.Boundary, 5, 100),
		gallery.Float32("smoothing_radius", &c.SmoothingRadius, 0.5, 5),
		gallery.Float32("rest_density", &c.RestDensity, 1, 5000),
		gallery.Float32("gas_constant", &c.GasConstant, 0, 5000),
		gallery.Float32("viscosity", &c.Viscosity, 0, 2),
		gallery.Float32("mass", &c.Mass, 0.1, 5),
		gallery.Float32("gravity", &c.Gravity, 0, 20),
		gallery.Float32("damping", &c.Damping, 0, 1),
		gallery.Float32("max_speed", &c.MaxSpeed, 1, 500),
		gallery.Float32("speed", &c.Speed, 0, 3),
		gallery.Choice("boundary_policy", &c.Policy, boundaryNames[Bounce], boundaryNames[Wrap]),
	}
}

var sphPresets = map[string]func(*SPHConfig){
	"water-drop": func(c *SPHConfig) { c.Gravity, c.Viscosity, c.GasConstant = 15, 0.3, 2000 },
	"honey":      func(c *SPHConfig) { c.Gravity, c.Viscosity, c.GasConstant = 10, 1.5, 1500 },
	"gas-cloud":  func(c *SPHConfig) { c.Gravity, c.Viscosity, c.GasConstant = 2, 0.1, 3000 },
}

type fluidParticle struct {
	pos, vel mgl32.Vec3
	density  float32
	pressure float32
}

// SPH is a smoothed-particle hydrodynamics fluid in a closed cube. Densities
// and forces are evaluated over all pairs.
type SPH struct {
	cfg       SPHConfig
	rng       *gallery.RNG
	particles []fluidParticle
	forces    []mgl32.Vec3
}

func NewSPH() *SPH {
	return NewSPHWith(DefaultSPHConfig())
}

func NewSPHWith(cfg SPHConfig) *SPH {
	s := &SPH{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	s.init()
	return s
}

func (s *SPH) Name() string       { return "Fluid Simulation (SPH)" }
func (s *SPH) Config() SPHConfig  { return s.cfg }
func (s *SPH) ParticleCount() int { return len(s.particles) }
func (s *SPH) Presets() []string  { return sortedKeys(sphPresets) }

// SetParameters applies cfg. Changing the particle count or the box size
// re-seeds the fluid.
func (s *SPH) SetParameters(cfg SPHConfig) {
	rebuild := cfg.Particles != s.cfg.Particles || cfg.Boundary != s.cfg.Boundary
	s.cfg = cfg
	if rebuild {
		s.Reset()
	}
}

func (s *SPH) Params() []gallery.Param {
	cfg := s.cfg
	return cfg.params()
}

func (s *SPH) GetParams() map[string]float64 { return gallery.Values(s.Params()) }

func (s *SPH) SetParam(name string, v float64) error {
	cfg := s.cfg
	if err := gallery.Assign(s.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	s.SetParameters(cfg)
	return nil
}

func (s *SPH) ApplyPreset(name string) error {
	p, ok := sphPresets[name]
	if !ok {
		return fmt.Errorf("unknown fluid preset: %s", name)
	}
	p(&s.cfg)
	s.Reset()
	return nil
}

func (s *SPH) Seed(seed int64) {
	s.cfg.Seed = seed
	s.rng.Reseed(seed)
	s.init()
}

func (s *SPH) Reset() {
	s.rng.Restart()
	s.init()
}

// init stacks particles on a cube-root lattice hanging from the top of the box.
func (s *SPH) init() {
	n := max(s.cfg.Particles, 0)
	s.particles = make([]fluidParticle, 0, n)
	s.forces = make([]mgl32.Vec3, n)
	side := int(math.Ceil(math.Cbrt(float64(n))))
	const spacing = 1.5
	half := s.cfg.Boundary / 2

	for i := 0; i < side && len(s.particles) < n; i++ {
		for j := 0; j < side && len(s.particles) < n; j++ {
			for k := 0; k < side && len(s.particles) < n; k++ {
				p := mgl32.Vec3{
					-half + float32(i)*spacing + s.rng.Range32(-0.2, 0.2),
					half - float32(j)*spacing,
					-half + float32(k)*spacing + s.rng.Range32(-0.2, 0.2),
				}
				var v mgl32.Vec3
				contain(&p, &v, s.cfg.Policy, half, s.cfg.Damping)
				s.particles = append(s.particles, fluidParticle{pos: p, density: s.cfg.RestDensity})
			}
		}
	}
}

func (s *SPH) kernel(r float32) float32 {
	h := s.cfg.SmoothingRadius
	if r >= h {
		return 0
	}
	d := h*h - r*r
	return d * d * d / s.volume()
}

func (s *SPH) kernelGradient(r float32) float32 {
	h := s.cfg.SmoothingRadius
	if r >= h {
		return 0
	}
	d := h*h - r*r
	return -6 * d * d / s.volume()
}

func (s *SPH) volume() float32 {
	h := s.cfg.SmoothingRadius
	return math.Pi * h * h * h * h / 6
}

func (s *SPH) computeDensityPressure() {
	h := s.cfg.SmoothingRadius
	for i := range s.particles {
		density := float32(0)
		for j := range s.particles {
			r := s.particles[j].pos.Sub(s.particles[i].pos).Len()
			if r < h {
				density += s.cfg.Mass * s.kernel(r)
			}
		}
		density = max(density, s.cfg.RestDensity)
		s.particles[i].density = density
		s.particles[i].pressure = s.cfg.GasConstant * (density - s.cfg.RestDensity)
	}
}

func (s *SPH) computeForces() {
	h := s.cfg.SmoothingRadius
	m := s.cfg.Mass
	for i := range s.particles {
		pi := &s.particles[i]
		var pressure, viscosity mgl32.Vec3
		for j := range s.particles {
			if i == j {
				continue
			}
			pj := &s.particles[j]
			d := pj.pos.Sub(pi.pos)
			r := d.Len()
			if r >= h || r == 0 {
				continue
			}
			term := (pi.pressure + pj.pressure) / (2 * pj.density)
			pressure = pressure.Sub(d.Mul(m * term * s.kernelGradient(r) / r))
			viscosity = viscosity.Add(pj.vel.Sub(pi.vel).Mul(s.cfg.Viscosity * m / pj.density * s.kernel(r)))
		}
		f := pressure.Add(viscosity)
		f[1] -= s.cfg.Gravity * pi.density
		s.forces[i] = f
	}
}

// Step advances the fluid by one symplectic Euler step of dt*Speed*0.01.
func (s *SPH) Step(dt float32) {
	if !gallery.ValidDelta(dt) || s.cfg.Speed <= 0 {
		return
	}
	h := dt * s.cfg.Speed * 0.01
	s.computeDensityPressure()
	s.computeForces()

	half := s.cfg.Boundary / 2
	for i := range s.particles {
		p := &s.particles[i]
		a := s.forces[i].Mul(1 / p.density)
		p.vel = clampLength(p.vel.Add(a.Mul(h)), s.cfg.MaxSpeed)
		p.pos = p.pos.Add(p.vel.Mul(h))
		contain(&p.pos, &p.vel, s.cfg.Policy, half, s.cfg.Damping)
	}
}

func (s *SPH) Points() []gallery.Point3 {
	out := make([]gallery.Point3, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.pos
	}
	return out
}

// Densities returns the last computed density of every particle.
func (s *SPH) Densities() []float32 {
	out := make([]float32, len(s.particles))
	for i, p := range s.particles {
		out[i] = p.density
	}
	return out
}
