package particles

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

type GalaxyConfig struct {
	Arms          int
	StarsPerArm   int
	CoreStars     int
	ArmSpread     float32
	RotationSpeed float32
	CoreRadius    float32
	MaxRadius     float32
	Thickness     float32
	Falloff       float32
	Speed         float32
	Seed          int64
}

func DefaultGalaxyConfig() GalaxyConfig {
	return GalaxyConfig{
		Arms:          4,
		StarsPerArm:   200,
		CoreStars:     100,
		ArmSpread:     0.3,
		RotationSpeed: 0.5,
		CoreRadius:    5,
		MaxRadius:     40,
		Thickness:     8,
		Falloff:       0.8,
		Speed:         1,
		Seed:          1,
	}
}

func (c *GalaxyConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("arms", &c.Arms, 1, 8),
		gallery.Int("stars_per_arm", &c.StarsPerArm, 0, 2000),
		gallery.Int("core_stars", &c.CoreStars, 0, 2000),
		gallery.Float32("arm_spread", &c.ArmSpread, 0, 2),
		gallery.Float32("rotation_speed", &c.RotationSpeed, 0, 5),
		gallery.Float32("core_radius", &c.CoreRadius, 0.5, 20),
		gallery.Float32("max_radius", &c.MaxRadius, 5, 200),
		gallery.Float32("thickness", &c.Thickness, 0, 40),
		gallery.Float32("falloff", &c.Falloff, 0, 5),
		gallery.Float32("speed", &c.Speed, 0, 10),
	}
}

var galaxyPresets = map[string]func(*GalaxyConfig){
	"milky-way":    func(c *GalaxyConfig) { c.Arms, c.ArmSpread, c.Falloff = 4, 0.3, 0.6 },
	"grand-design": func(c *GalaxyConfig) { c.Arms, c.ArmSpread, c.Falloff = 2, 0.5, 0.8 },
	"flocculent":   func(c *GalaxyConfig) { c.Arms, c.ArmSpread, c.Falloff = 5, 0.2, 0.7 },
}

type star struct {
	radius float32
	angle  float32
	speed  float32
	z      float32
}

// Galaxy is a kinematic spiral: stars ride circular orbits whose angular speed
// falls off with radius, so the arms wind up over time.
type Galaxy struct {
	cfg   GalaxyConfig
	rng   *gallery.RNG
	stars []star
	time  float32
	pts   []gallery.Point3
}

func NewGalaxy() *Galaxy {
	return NewGalaxyWith(DefaultGalaxyConfig())
}

func NewGalaxyWith(cfg GalaxyConfig) *Galaxy {
	g := &Galaxy{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	g.init()
	return g
}

func (g *Galaxy) Name() string         { return "Galaxy Spiral" }
func (g *Galaxy) Config() GalaxyConfig { return g.cfg }
func (g *Galaxy) StarCount() int       { return len(g.stars) }
func (g *Galaxy) Presets() []string    { return sortedKeys(galaxyPresets) }

// SetParameters applies cfg and regenerates the disk. Use SetParam("speed")
// to change the playback rate without regenerating.
func (g *Galaxy) SetParameters(cfg GalaxyConfig) {
	g.cfg = cfg
	g.Reset()
}

func (g *Galaxy) Params() []gallery.Param {
	cfg := g.cfg
	return cfg.params()
}

func (g *Galaxy) GetParams() map[string]float64 { return gallery.Values(g.Params()) }

func (g *Galaxy) SetParam(name string, v float64) error {
	cfg := g.cfg
	if err := gallery.Assign(g.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	if name == "speed" {
		g.cfg.Speed = cfg.Speed
		return nil
	}
	g.SetParameters(cfg)
	return nil
}

func (g *Galaxy) ApplyPreset(name string) error {
	p, ok := galaxyPresets[name]
	if !ok {
		return fmt.Errorf("unknown galaxy preset: %s", name)
	}
	p(&g.cfg)
	g.Reset()
	return nil
}

func (g *Galaxy) Seed(seed int64) {
	g.cfg.Seed = seed
	g.rng.Reseed(seed)
	g.time = 0
	g.init()
}

func (g *Galaxy) Reset() {
	g.rng.Restart()
	g.time = 0
	g.init()
}

func (g *Galaxy) init() {
	c := g.cfg
	g.stars = g.stars[:0]
	perArm := max(c.StarsPerArm, 0)
	for arm := 0; arm < c.Arms; arm++ {
		armAngle := float64(arm) / float64(c.Arms) * 2 * math.Pi
		for i := 0; i < perArm; i++ {
			t := float32(i) / float32(perArm)
			orbit := c.CoreRadius + (c.MaxRadius-c.CoreRadius)*t*t
			spiral := armAngle + float64(t*c.ArmSpread)*2*math.Pi

			angle := float32(spiral) + g.rng.Range32(-0.15, 0.15)
			radius := max(orbit+g.rng.Range32(-1.5, 1.5), 1)
			z := g.rng.Range32(-0.5, 0.5) * c.Thickness * (1 - t*0.3)
			g.stars = append(g.stars, star{
				radius: radius,
				angle:  angle,
				speed:  c.RotationSpeed / (1 + orbit*c.Falloff),
				z:      z,
			})
		}
	}
	for i := 0; i < max(c.CoreStars, 0); i++ {
		theta := g.rng.Range(0, 2*math.Pi)
		phi := g.rng.Range(0, math.Pi)
		r := g.rng.Range(0, float64(c.CoreRadius))
		g.stars = append(g.stars, star{
			radius: float32(r * math.Sin(phi)),
			angle:  float32(theta),
			speed:  c.RotationSpeed * 2,
			z:      float32(r * math.Cos(phi) * 0.3),
		})
	}
	g.pts = make([]gallery.Point3, len(g.stars))
	g.place()
}

func (g *Galaxy) place() {
	for i, s := range g.stars {
		sin, cos := math.Sincos(float64(s.angle))
		wobble := float32(math.Sin(float64(g.time*0.5+s.angle))) * 0.2
		g.pts[i] = mgl32.Vec3{s.radius * float32(cos), s.radius * float32(sin), s.z + s.z*wobble}
	}
}

func (g *Galaxy) Step(dt float32) {
	if !gallery.ValidDelta(dt) || g.cfg.Speed <= 0 {
		return
	}
	h := dt * g.cfg.Speed
	g.time += h
	for i := range g.stars {
		g.stars[i].angle = float32(math.Mod(float64(g.stars[i].angle+g.stars[i].speed*h), 2*math.Pi))
	}
	g.place()
}

func (g *Galaxy) Points() []gallery.Point3 {
	return append([]gallery.Point3(nil), g.pts...)
}
