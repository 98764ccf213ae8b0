package attractors

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

type SwarmConfig struct {
	MaxParticles int
	Lifetime     float64 // seconds
	SpawnRate    float64 // particles per second
	SpawnRadius  float64
	SpawnHeight  float64
	StepSize     float64
	Substeps     int
	Speed        float64
	Trails       bool
	TrailLength  int
	Seed         int64
}

func DefaultSwarmConfig() SwarmConfig {
	return SwarmConfig{
		MaxParticles: 50,
		Lifetime:     10,
		SpawnRate:    5,
		SpawnRadius:  5,
		SpawnHeight:  20,
		StepSize:     0.005,
		Substeps:     2,
		Speed:        1,
		Trails:       true,
		TrailLength:  100,
		Seed:         1,
	}
}

func (c *SwarmConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("max_particles", &c.MaxParticles, 0, 2000),
		gallery.Float("lifetime", &c.Lifetime, 0.1, 120),
		gallery.Float("spawn_rate", &c.SpawnRate, 0, 100),
		gallery.Float("spawn_radius", &c.SpawnRadius, 0, 50),
		gallery.Float("step_size", &c.StepSize, 1e-5, 0.1),
		gallery.Int("substeps", &c.Substeps, 0, 50),
		gallery.Float("speed", &c.Speed, 0, 10),
		gallery.Bool("trails", &c.Trails),
		gallery.Int("trail_length", &c.TrailLength, 0, 10000),
	}
}

type swarmParticle struct {
	pos   gallery.State
	age   float64
	trail *gallery.Trail
}

// Swarm releases short-lived particles into a model's flow, each leaving its
// own trail.
type Swarm struct {
	model     Model
	cfg       SwarmConfig
	rng       *gallery.RNG
	integ     *integrators.RK4
	particles []swarmParticle
	spawnAcc  float64
}

func NewSwarm() *Swarm {
	return NewSwarmWith(NewLorenzModel(), DefaultSwarmConfig())
}

func NewSwarmWith(m Model, cfg SwarmConfig) *Swarm {
	s := &Swarm{model: m.Clone(), integ: integrators.NewRK4()}
	s.cfg = sanitizeSwarm(cfg)
	s.rng = gallery.NewRNG(s.cfg.Seed)
	return s
}

func sanitizeSwarm(cfg SwarmConfig) SwarmConfig {
	if cfg.MaxParticles < 0 {
		cfg.MaxParticles = 0
	}
	if cfg.TrailLength < 0 {
		cfg.TrailLength = 0
	}
	if cfg.Substeps < 0 {
		cfg.Substeps = 0
	}
	return cfg
}

func (s *Swarm) Name() string        { return "Particle " + s.model.Name() }
func (s *Swarm) Config() SwarmConfig { return s.cfg }
func (s *Swarm) ParticleCount() int  { return len(s.particles) }

// SetParameters applies cfg; live particles beyond MaxParticles are dropped
// and their trails are resized.
func (s *Swarm) SetParameters(cfg SwarmConfig) {
	cfg = sanitizeSwarm(cfg)
	if len(s.particles) > cfg.MaxParticles {
		s.particles = s.particles[:cfg.MaxParticles]
	}
	for i := range s.particles {
		s.particles[i].trail.Resize(cfg.TrailLength)
	}
	if cfg.Seed != s.cfg.Seed {
		s.rng.Reseed(cfg.Seed)
	}
	s.cfg = cfg
}

func (s *Swarm) Params() []gallery.Param {
	cfg := s.cfg
	return append(cfg.params(), s.model.Clone().Params()...)
}

func (s *Swarm) GetParams() map[string]float64 { return gallery.Values(s.Params()) }

func (s *Swarm) SetParam(name string, v float64) error {
	cfg := s.cfg
	model := s.model.Clone()
	if err := gallery.Assign(s.Name(), append(cfg.params(), model.Params()...), name, v); err != nil {
		return err
	}
	s.model = model
	s.SetParameters(cfg)
	return nil
}

func (s *Swarm) Seed(seed int64) {
	s.cfg.Seed = seed
	s.rng.Reseed(seed)
	s.Reset()
}

func (s *Swarm) Reset() {
	s.rng.Restart()
	s.particles = nil
	s.spawnAcc = 0
}

func (s *Swarm) spawn() {
	angle := s.rng.Range(0, 2*math.Pi)
	r := s.cfg.SpawnRadius
	pos := gallery.State{r * math.Cos(angle), r * math.Sin(angle), s.cfg.SpawnHeight}
	s.particles = append(s.particles, swarmParticle{pos: pos, trail: gallery.NewTrail(s.cfg.TrailLength)})
}

func (s *Swarm) Step(dt float32) {
	if !gallery.ValidDelta(dt) || s.cfg.Speed <= 0 {
		return
	}
	elapsed := float64(dt) * s.cfg.Speed
	h := s.cfg.StepSize * s.cfg.Speed * gallery.FrameScale(dt)

	s.spawnAcc += elapsed * s.cfg.SpawnRate
	for s.spawnAcc >= 1 && len(s.particles) < s.cfg.MaxParticles {
		s.spawn()
		s.spawnAcc--
	}
	if len(s.particles) >= s.cfg.MaxParticles {
		s.spawnAcc = math.Min(s.spawnAcc, 1)
	}

	alive := s.particles[:0]
	for _, p := range s.particles {
		p.age += elapsed
		if p.age > s.cfg.Lifetime {
			continue
		}
		ok := true
		for i := 0; i < s.cfg.Substeps; i++ {
			next := s.integ.Step(s.model, p.pos, 0, h)
			if !next.IsValid() || next.Norm() > divergenceLimit {
				ok = false
				break
			}
			p.pos = next
		}
		if !ok {
			continue
		}
		p.trail.Push(p.pos.Point(1))
		alive = append(alive, p)
	}
	s.particles = alive
}

func (s *Swarm) Points() []gallery.Point3 {
	if !s.cfg.Trails {
		out := make([]gallery.Point3, 0, len(s.particles))
		for _, p := range s.particles {
			out = append(out, p.pos.Point(1))
		}
		return out
	}
	n := 0
	for _, p := range s.particles {
		n += p.trail.Len()
	}
	out := make([]gallery.Point3, 0, n)
	for _, p := range s.particles {
		out = p.trail.AppendTo(out)
	}
	return out
}

// MaxTrailLen reports the longest per-particle trail.
func (s *Swarm) MaxTrailLen() int {
	m := 0
	for _, p := range s.particles {
		if p.trail.Len() > m {
			m = p.trail.Len()
		}
	}
	return m
}
