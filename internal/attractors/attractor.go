package attractors

import (
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

// divergenceLimit is the state norm past which a trajectory is considered
// blown up and restarted from its seed.
const divergenceLimit = 1e6

type Method int

const (
	MethodRK4 Method = iota
	MethodEuler
)

var methodNames = []string{"rk4", "euler"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return methodNames[0]
	}
	return methodNames[m]
}

// Config controls how an attractor is integrated and emitted.
type Config struct {
	Substeps    int
	StepSize    float64
	Speed       float64
	Scale       float64
	TrailLength int
	Method      Method
	Start       [3]float64
	// Warmup substeps run at construction and reset, before the trail
	// starts recording.
	Warmup int
}

func DefaultConfig() Config {
	return Config{
		Substeps:    10,
		StepSize:    0.01,
		Speed:       1,
		Scale:       1,
		TrailLength: 5000,
		Start:       [3]float64{0.1, 0, 0},
	}
}

func (c *Config) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("substeps", &c.Substeps, 0, 100),
		gallery.Float("step_size", &c.StepSize, 1e-5, 1),
		gallery.Float("speed", &c.Speed, 0, 10),
		gallery.Float("scale", &c.Scale, 0.01, 1000),
		gallery.Int("trail_length", &c.TrailLength, 0, 200000),
		gallery.Choice("integrator", &c.Method, methodNames...),
		gallery.Int("warmup", &c.Warmup, 0, 100000),
	}
}

func (c *Config) sanitize() {
	if c.Substeps < 0 {
		c.Substeps = 0
	}
	if c.TrailLength < 0 {
		c.TrailLength = 0
	}
	if c.Warmup < 0 {
		c.Warmup = 0
	}
	if c.Method < 0 || int(c.Method) >= len(methodNames) {
		c.Method = MethodRK4
	}
}

// Attractor integrates a Model and keeps the most recent points of its
// trajectory. Given the same model, config and dt sequence the emitted points
// are bit-for-bit identical.
type Attractor struct {
	model Model
	cfg   Config
	integ integrators.Integrator

	pos   gallery.State
	t     float64
	trail *gallery.Trail
}

// New builds an attractor. The model is copied.
func New(m Model, cfg Config) *Attractor {
	cfg.sanitize()
	a := &Attractor{model: m.Clone(), cfg: cfg, trail: gallery.NewTrail(cfg.TrailLength)}
	a.integ = newIntegrator(cfg.Method)
	a.Reset()
	return a
}

func newIntegrator(m Method) integrators.Integrator {
	integ, err := integrators.New(m.String())
	if err != nil {
		return integrators.NewRK4()
	}
	return integ
}

func (a *Attractor) Name() string   { return a.model.Name() }
func (a *Attractor) Config() Config { return a.cfg }
func (a *Attractor) Model() Model   { return a.model.Clone() }

// Position returns the unscaled current state.
func (a *Attractor) Position() gallery.State { return a.pos.Clone() }

// SetParameters applies a new integration config. The trail keeps its newest
// points when its length shrinks.
func (a *Attractor) SetParameters(cfg Config) {
	cfg.sanitize()
	if cfg.Method != a.cfg.Method {
		a.integ = newIntegrator(cfg.Method)
	}
	a.trail.Resize(cfg.TrailLength)
	a.cfg = cfg
}

// SetModel replaces the vector field coefficients without touching the
// trajectory.
func (a *Attractor) SetModel(m Model) {
	a.model = m.Clone()
}

func (a *Attractor) Params() []gallery.Param {
	cfg := a.cfg
	return append(cfg.params(), a.model.Clone().Params()...)
}

func (a *Attractor) GetParams() map[string]float64 {
	return gallery.Values(a.Params())
}

func (a *Attractor) SetParam(name string, v float64) error {
	cfg := a.cfg
	model := a.model.Clone()
	params := append(cfg.params(), model.Params()...)
	if err := gallery.Assign(a.Name(), params, name, v); err != nil {
		return err
	}
	a.model = model
	a.SetParameters(cfg)
	return nil
}

func (a *Attractor) Reset() {
	a.pos = gallery.State{a.cfg.Start[0], a.cfg.Start[1], a.cfg.Start[2]}
	a.t = 0
	a.trail.Clear()
	for i := 0; i < a.cfg.Warmup; i++ {
		a.advance(a.cfg.StepSize)
	}
}

// Step runs Substeps integrator steps of StepSize*Speed scaled by the frame
// delta, recording a point after each one.
func (a *Attractor) Step(dt float32) {
	scale := gallery.FrameScale(dt)
	if scale == 0 || a.cfg.Substeps == 0 || a.cfg.Speed <= 0 {
		return
	}
	h := a.cfg.StepSize * a.cfg.Speed * scale
	for i := 0; i < a.cfg.Substeps; i++ {
		a.advance(h)
		a.trail.Push(a.pos.Point(a.cfg.Scale))
	}
}

func (a *Attractor) advance(h float64) {
	next := a.integ.Step(a.model, a.pos, a.t, h)
	if !next.IsValid() || next.Norm() > divergenceLimit {
		a.pos = gallery.State{a.cfg.Start[0], a.cfg.Start[1], a.cfg.Start[2]}
		a.t = 0
		return
	}
	a.pos = next
	a.t += h
}

func (a *Attractor) Points() []gallery.Point3 {
	return a.trail.AppendTo(make([]gallery.Point3, 0, a.trail.Len()))
}

func (a *Attractor) TrailLen() int { return a.trail.Len() }
