package attractors

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

// DoublePendulumModel is the planar double pendulum with point masses on
// massless rods. State is (theta1, theta2, omega1, omega2), angles measured
// from straight down.
type DoublePendulumModel struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func (d *DoublePendulumModel) Dim() int { return 4 }

func (d *DoublePendulumModel) Derive(x gallery.State, _ float64) gallery.State {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sincos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)) / den1

	alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2

	return gallery.State{omega1, omega2, alpha1, alpha2}
}

// Energy returns kinetic plus potential energy, with the pivot at height 0.
func (d *DoublePendulumModel) Energy(x gallery.State) float64 {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := l1*l1*omega1*omega1 + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

type PendulumConfig struct {
	Length1     float64
	Length2     float64
	Mass1       float64
	Mass2       float64
	Gravity     float64
	Damping     float64 // angular velocity factor per substep
	Substeps    int
	StepSize    float64
	Speed       float64
	Scale       float64
	TrailLength int
	Method      Method
	Start       [4]float64 // theta1, theta2, omega1, omega2
}

func DefaultPendulumConfig() PendulumConfig {
	return PendulumConfig{
		Length1:     1,
		Length2:     1,
		Mass1:       10,
		Mass2:       10,
		Gravity:     9.81,
		Damping:     0.9999,
		Substeps:    4,
		StepSize:    0.005,
		Speed:       1,
		Scale:       10,
		TrailLength: 500,
		Start:       [4]float64{math.Pi / 2, math.Pi / 2, 0, 0},
	}
}

func (c *PendulumConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("length1", &c.Length1, 0.05, 10),
		gallery.Float("length2", &c.Length2, 0.05, 10),
		gallery.Float("mass1", &c.Mass1, 0.1, 100),
		gallery.Float("mass2", &c.Mass2, 0.1, 100),
		gallery.Float("gravity", &c.Gravity, 0, 50),
		gallery.Float("damping", &c.Damping, 0.9, 1),
		gallery.Int("substeps", &c.Substeps, 0, 100),
		gallery.Float("step_size", &c.StepSize, 1e-5, 0.1),
		gallery.Float("speed", &c.Speed, 0, 10),
		gallery.Float("scale", &c.Scale, 0.01, 1000),
		gallery.Int("trail_length", &c.TrailLength, 0, 100000),
		gallery.Choice("integrator", &c.Method, methodNames...),
	}
}

func (c *PendulumConfig) sanitize() {
	if c.Substeps < 0 {
		c.Substeps = 0
	}
	if c.TrailLength < 0 {
		c.TrailLength = 0
	}
	if c.Method < 0 || int(c.Method) >= len(methodNames) {
		c.Method = MethodRK4
	}
}

var pendulumStarts = map[string][4]float64{
	"classic":     {math.Pi / 2, math.Pi / 2, 0, 0},
	"chaotic":     {math.Pi/2 + 0.1, math.Pi / 2, 0, 0},
	"high-energy": {math.Pi, 0, 2, 1},
}

// DoublePendulum swings a double pendulum in the xy plane. Points are the
// pivot, both bobs, then the trace of the outer bob, oldest first.
type DoublePendulum struct {
	cfg   PendulumConfig
	model DoublePendulumModel
	integ integrators.Integrator
	state gallery.State
	t     float64
	trail *gallery.Trail
}

func NewDoublePendulum() *DoublePendulum {
	return NewDoublePendulumWith(DefaultPendulumConfig())
}

func NewDoublePendulumWith(cfg PendulumConfig) *DoublePendulum {
	cfg.sanitize()
	d := &DoublePendulum{cfg: cfg, trail: gallery.NewTrail(cfg.TrailLength)}
	d.integ = newIntegrator(cfg.Method)
	d.syncModel()
	d.Reset()
	return d
}

func (d *DoublePendulum) Name() string           { return "Double Pendulum" }
func (d *DoublePendulum) Config() PendulumConfig { return d.cfg }
func (d *DoublePendulum) State() gallery.State   { return d.state.Clone() }
func (d *DoublePendulum) Energy() float64        { return d.model.Energy(d.state) }
func (d *DoublePendulum) TrailLen() int          { return d.trail.Len() }

func (d *DoublePendulum) Presets() []string { return sortedKeys(pendulumStarts) }

// ApplyPreset restarts from a named initial condition.
func (d *DoublePendulum) ApplyPreset(name string) error {
	start, ok := pendulumStarts[name]
	if !ok {
		return fmt.Errorf("unknown pendulum preset: %s", name)
	}
	d.cfg.Start = start
	d.Reset()
	return nil
}

func (d *DoublePendulum) syncModel() {
	d.model = DoublePendulumModel{
		M1: d.cfg.Mass1, M2: d.cfg.Mass2,
		L1: d.cfg.Length1, L2: d.cfg.Length2,
		Gravity: d.cfg.Gravity,
	}
}

func (d *DoublePendulum) SetParameters(cfg PendulumConfig) {
	cfg.sanitize()
	if cfg.Method != d.cfg.Method {
		d.integ = newIntegrator(cfg.Method)
	}
	d.trail.Resize(cfg.TrailLength)
	d.cfg = cfg
	d.syncModel()
}

func (d *DoublePendulum) Params() []gallery.Param {
	cfg := d.cfg
	return cfg.params()
}

func (d *DoublePendulum) GetParams() map[string]float64 { return gallery.Values(d.Params()) }

func (d *DoublePendulum) SetParam(name string, v float64) error {
	cfg := d.cfg
	if err := gallery.Assign(d.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	d.SetParameters(cfg)
	return nil
}

func (d *DoublePendulum) Reset() {
	s := d.cfg.Start
	d.state = gallery.State{s[0], s[1], s[2], s[3]}
	d.t = 0
	d.trail.Clear()
}

// Step integrates Substeps steps of StepSize*Speed scaled by the frame delta
// and records the outer bob after each one.
func (d *DoublePendulum) Step(dt float32) {
	scale := gallery.FrameScale(dt)
	if scale == 0 || d.cfg.Substeps == 0 || d.cfg.Speed <= 0 {
		return
	}
	h := d.cfg.StepSize * d.cfg.Speed * scale
	for i := 0; i < d.cfg.Substeps; i++ {
		next := d.integ.Step(&d.model, d.state, d.t, h)
		if !next.IsValid() || next.Norm() > divergenceLimit {
			d.Reset()
			return
		}
		next[2] *= d.cfg.Damping
		next[3] *= d.cfg.Damping
		d.state = next
		d.t += h
		_, bob2 := d.bobs()
		d.trail.Push(bob2)
	}
}

// bobs returns both bob positions in world units times Scale.
func (d *DoublePendulum) bobs() (gallery.Point3, gallery.Point3) {
	k := d.cfg.Scale
	s1, c1 := math.Sincos(d.state[0])
	s2, c2 := math.Sincos(d.state[1])
	x1, y1 := d.cfg.Length1*s1, -d.cfg.Length1*c1
	x2, y2 := x1+d.cfg.Length2*s2, y1-d.cfg.Length2*c2
	return gallery.Point3{float32(x1 * k), float32(y1 * k), 0},
		gallery.Point3{float32(x2 * k), float32(y2 * k), 0}
}

func (d *DoublePendulum) Points() []gallery.Point3 {
	bob1, bob2 := d.bobs()
	out := make([]gallery.Point3, 0, 3+d.trail.Len())
	out = append(out, gallery.Point3{}, bob1, bob2)
	return d.trail.AppendTo(out)
}
