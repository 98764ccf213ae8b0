package automata

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

// maxTrail caps the chemoattractant held by one cell.
const maxTrail = 255

type SlimeConfig struct {
	Width          int
	Height         int
	Agents         int
	SensorAngle    float64 // radians either side of the heading
	SensorDistance float64
	TurnAngle      float64
	MoveSpeed      float64
	Deposit        float32
	Decay          float32 // fraction lost per generation
	Diffusion      float32 // blend toward the blurred field, 0..1
	Brightness     float32
	SpawnRadius    float64
	Speed          float64 // generations per second
	ColorScheme    palette.Scheme
	Seed           int64
}

func DefaultSlimeConfig() SlimeConfig {
	return SlimeConfig{
		Width:          400,
		Height:         300,
		Agents:         5000,
		SensorAngle:    0.4,
		SensorDistance: 9,
		TurnAngle:      0.4,
		MoveSpeed:      1,
		Deposit:        5,
		Decay:          0.1,
		Diffusion:      1,
		Brightness:     1,
		SpawnRadius:    50,
		Speed:          60,
		ColorScheme:    palette.Forest,
		Seed:           1,
	}
}

func (c *SlimeConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Int("agents", &c.Agents, 0, 200000),
		gallery.Float("sensor_angle", &c.SensorAngle, 0, math.Pi),
		gallery.Float("sensor_distance", &c.SensorDistance, 1, 50),
		gallery.Float("turn_angle", &c.TurnAngle, 0, math.Pi),
		gallery.Float("move_speed", &c.MoveSpeed, 0.1, 10),
		gallery.Float32("deposit", &c.Deposit, 0, maxTrail),
		gallery.Float32("decay", &c.Decay, 0, 1),
		gallery.Float32("diffusion", &c.Diffusion, 0, 1),
		gallery.Float32("brightness", &c.Brightness, 0.1, 10),
		gallery.Float("spawn_radius", &c.SpawnRadius, 0, 1000),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Choice("color_scheme", &c.ColorScheme, palette.Names()...),
	}
}

type slimeAgent struct {
	x, y, angle float64
}

// Slime is a Physarum model: agents steer toward the strongest of three
// trail readings, lay trail where they stand, and the trail blurs and decays.
type Slime struct {
	cfg         SlimeConfig
	rng         *gallery.RNG
	w, h        int
	agents      []slimeAgent
	readings    [][3]float32
	trail, next []float32
	gen         int
	clock       clock
}

func NewSlime() *Slime {
	return NewSlimeWith(DefaultSlimeConfig())
}

func NewSlimeWith(cfg SlimeConfig) *Slime {
	s := &Slime{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	s.init()
	return s
}

func (s *Slime) Name() string        { return "Slime Mold" }
func (s *Slime) Config() SlimeConfig { return s.cfg }
func (s *Slime) Generation() int     { return s.gen }
func (s *Slime) Size() (w, h int)    { return s.w, s.h }

// Trail returns the chemoattractant field, row-major.
func (s *Slime) Trail() []float32 { return s.trail }

// Agents returns each agent's position.
func (s *Slime) Agents() [][2]float64 {
	out := make([][2]float64, len(s.agents))
	for i, a := range s.agents {
		out[i] = [2]float64{a.x, a.y}
	}
	return out
}

func (s *Slime) SetParameters(cfg SlimeConfig) {
	old := s.cfg
	s.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.Agents != old.Agents || cfg.SpawnRadius != old.SpawnRadius {
		s.Reset()
	}
}

func (s *Slime) Params() []gallery.Param {
	cfg := s.cfg
	return cfg.params()
}

func (s *Slime) GetParams() map[string]float64 { return gallery.Values(s.Params()) }

func (s *Slime) SetParam(name string, v float64) error {
	cfg := s.cfg
	if err := gallery.Assign(s.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	s.SetParameters(cfg)
	return nil
}

func (s *Slime) Seed(seed int64) {
	s.cfg.Seed = seed
	s.rng.Reseed(seed)
	s.init()
}

func (s *Slime) Reset() {
	s.rng.Restart()
	s.init()
}

// init scatters agents uniformly in angle within SpawnRadius of the centre,
// each facing a random direction.
func (s *Slime) init() {
	s.w, s.h = max(s.cfg.Width, 0), max(s.cfg.Height, 0)
	s.trail = make([]float32, s.w*s.h)
	s.next = make([]float32, s.w*s.h)
	s.agents = s.agents[:0]
	s.gen = 0
	s.clock.reset()
	if s.w == 0 || s.h == 0 {
		return
	}
	cx, cy := float64(s.w)/2, float64(s.h)/2
	for i := 0; i < max(s.cfg.Agents, 0); i++ {
		r := s.rng.Range(0, s.cfg.SpawnRadius)
		sin, cos := math.Sincos(s.rng.Range(0, 2*math.Pi))
		x := min(max(cx+r*cos, 0), float64(s.w)-1e-9)
		y := min(max(cy+r*sin, 0), float64(s.h)-1e-9)
		s.agents = append(s.agents, slimeAgent{x: x, y: y, angle: s.rng.Range(0, 2*math.Pi)})
	}
	s.readings = make([][3]float32, len(s.agents))
}

func (s *Slime) sense(a slimeAgent, angle float64) float32 {
	sin, cos := math.Sincos(angle)
	x := a.x + cos*s.cfg.SensorDistance
	y := a.y + sin*s.cfg.SensorDistance
	if x < 0 || y < 0 || x >= float64(s.w) || y >= float64(s.h) {
		return 0
	}
	return s.trail[int(y)*s.w+int(x)]
}

// Step senses for every agent first, then turns, moves and deposits, then
// blurs and decays the field.
func (s *Slime) Step() {
	if s.w == 0 || s.h == 0 {
		return
	}
	for i, a := range s.agents {
		s.readings[i] = [3]float32{
			s.sense(a, a.angle),
			s.sense(a, a.angle-s.cfg.SensorAngle),
			s.sense(a, a.angle+s.cfg.SensorAngle),
		}
	}

	w, h := float64(s.w), float64(s.h)
	for i := range s.agents {
		a := &s.agents[i]
		fwd, left, right := s.readings[i][0], s.readings[i][1], s.readings[i][2]
		switch {
		case fwd > left && fwd > right:
		case fwd < left && fwd < right:
			if s.rng.Bool() {
				a.angle += s.cfg.TurnAngle
			} else {
				a.angle -= s.cfg.TurnAngle
			}
		case left > right:
			a.angle -= s.cfg.TurnAngle
		case right > left:
			a.angle += s.cfg.TurnAngle
		}

		sin, cos := math.Sincos(a.angle)
		nx, ny := a.x+cos*s.cfg.MoveSpeed, a.y+sin*s.cfg.MoveSpeed
		switch {
		case nx < 0 || nx >= w:
			a.angle = math.Pi - a.angle
		case ny < 0 || ny >= h:
			a.angle = -a.angle
		default:
			a.x, a.y = nx, ny
		}

		j := int(a.y)*s.w + int(a.x)
		s.trail[j] = min(s.trail[j]+s.cfg.Deposit, maxTrail)
	}

	s.diffuse()
	s.gen++
}

// diffuse box-blurs interior cells with the centre weighted four times,
// then applies decay. Border cells are cleared.
func (s *Slime) diffuse() {
	keep := 1 - min(max(s.cfg.Decay, 0), 1)
	mix := min(max(s.cfg.Diffusion, 0), 1)
	clear(s.next)
	for y := 1; y < s.h-1; y++ {
		for x := 1; x < s.w-1; x++ {
			i := y*s.w + x
			v := s.trail[i]
			blur := (s.trail[i-1] + s.trail[i+1] + s.trail[i-s.w] + s.trail[i+s.w] + 4*v) / 8
			s.next[i] = max((v+(blur-v)*mix)*keep, 0)
		}
	}
	s.trail, s.next = s.next, s.trail
}

func (s *Slime) Tick(dt float32) {
	for n := s.clock.advance(dt, s.cfg.Speed); n > 0; n-- {
		s.Step()
	}
}

func (s *Slime) Compute(w, h int) gallery.PixelBuffer {
	bright := s.cfg.Brightness / maxTrail
	return render(w, h, s.w, s.h, func(cx, cy int) gallery.Color {
		v := min(s.trail[cy*s.w+cx]*bright, 1)
		return s.cfg.ColorScheme.MapClamped(float64(v))
	})
}
