package attractors

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

// Model is a three-dimensional vector field with tunable coefficients.
type Model interface {
	integrators.System
	Name() string
	// Params binds the model's coefficients.
	Params() []gallery.Param
	Clone() Model
}

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenzModel() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Name() string { return "Lorenz Attractor" }
func (l *Lorenz) Dim() int     { return 3 }
func (l *Lorenz) Clone() Model { c := *l; return &c }

func (l *Lorenz) Derive(s gallery.State, _ float64) gallery.State {
	return gallery.State{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}
}

func (l *Lorenz) Params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("sigma", &l.Sigma, 0, 50),
		gallery.Float("rho", &l.Rho, 0, 200),
		gallery.Float("beta", &l.Beta, 0, 10),
	}
}

type Rossler struct{ A, B, C float64 }

func NewRosslerModel() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

func (r *Rossler) Name() string { return "Rössler Attractor" }
func (r *Rossler) Dim() int     { return 3 }
func (r *Rossler) Clone() Model { c := *r; return &c }

func (r *Rossler) Derive(s gallery.State, _ float64) gallery.State {
	return gallery.State{-s[1] - s[2], s[0] + r.A*s[1], r.B + s[2]*(s[0]-r.C)}
}

func (r *Rossler) Params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("a", &r.A, 0, 1),
		gallery.Float("b", &r.B, 0, 2),
		gallery.Float("c", &r.C, 0, 20),
	}
}

type Aizawa struct{ A, B, C, D, E, F float64 }

func NewAizawaModel() *Aizawa { return &Aizawa{0.95, 0.7, 0.6, 3.5, 0.25, 0.1} }

func (a *Aizawa) Name() string { return "Aizawa Attractor" }
func (a *Aizawa) Dim() int     { return 3 }
func (a *Aizawa) Clone() Model { c := *a; return &c }

func (a *Aizawa) Derive(s gallery.State, _ float64) gallery.State {
	x, y, z := s[0], s[1], s[2]
	return gallery.State{
		(z-a.B)*x - a.D*y,
		a.D*x + (z-a.B)*y,
		a.C + a.A*z - z*z*z/3 - (x*x+y*y)*(1+a.E*z) + a.F*z*x*x*x,
	}
}

func (a *Aizawa) Params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("a", &a.A, 0, 2),
		gallery.Float("b", &a.B, 0, 2),
		gallery.Float("c", &a.C, 0, 2),
		gallery.Float("d", &a.D, 0, 5),
		gallery.Float("e", &a.E, 0, 1),
		gallery.Float("f", &a.F, 0, 1),
	}
}

type Halvorsen struct{ A float64 }

func NewHalvorsenModel() *Halvorsen { return &Halvorsen{1.89} }

func (h *Halvorsen) Name() string { return "Halvorsen Attractor" }
func (h *Halvorsen) Dim() int     { return 3 }
func (h *Halvorsen) Clone() Model { c := *h; return &c }

func (h *Halvorsen) Derive(s gallery.State, _ float64) gallery.State {
	x, y, z := s[0], s[1], s[2]
	return gallery.State{
		-h.A*x - 4*y - 4*z - y*y,
		-h.A*y - 4*z - 4*x - z*z,
		-h.A*z - 4*x - 4*y - x*x,
	}
}

func (h *Halvorsen) Params() []gallery.Param {
	return []gallery.Param{gallery.Float("a", &h.A, 0, 5)}
}

type Dadras struct{ A, B, C, D, E float64 }

func NewDadrasModel() *Dadras { return &Dadras{3, 2.7, 1.7, 2, 9} }

func (d *Dadras) Name() string { return "Dadras Attractor" }
func (d *Dadras) Dim() int     { return 3 }
func (d *Dadras) Clone() Model { c := *d; return &c }

func (d *Dadras) Derive(s gallery.State, _ float64) gallery.State {
	x, y, z := s[0], s[1], s[2]
	return gallery.State{
		y - d.A*x + d.B*y*z,
		d.C*y - x*z + z,
		d.D*x*y - d.E*z,
	}
}

func (d *Dadras) Params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("a", &d.A, 0, 10),
		gallery.Float("b", &d.B, 0, 10),
		gallery.Float("c", &d.C, 0, 10),
		gallery.Float("d", &d.D, 0, 10),
		gallery.Float("e", &d.E, 0, 20),
	}
}

// Thomas is the cyclically symmetric attractor of René Thomas.
type Thomas struct{ B float64 }

func NewThomasModel() *Thomas { return &Thomas{0.208186} }

func (t *Thomas) Name() string { return "Thomas Attractor" }
func (t *Thomas) Dim() int     { return 3 }
func (t *Thomas) Clone() Model { c := *t; return &c }

func (t *Thomas) Derive(s gallery.State, _ float64) gallery.State {
	x, y, z := s[0], s[1], s[2]
	return gallery.State{
		-t.B*x + math.Sin(y),
		-t.B*y + math.Sin(z),
		-t.B*z + math.Sin(x),
	}
}

func (t *Thomas) Params() []gallery.Param {
	return []gallery.Param{gallery.Float("b", &t.B, 0, 1)}
}

// Chen is the Chen-Lee variant.
type Chen struct{ A, B, C float64 }

func NewChenModel() *Chen { return &Chen{5, -10, -0.38} }

func (c *Chen) Name() string { return "Chen Attractor" }
func (c *Chen) Dim() int     { return 3 }
func (c *Chen) Clone() Model { m := *c; return &m }

func (c *Chen) Derive(s gallery.State, _ float64) gallery.State {
	x, y, z := s[0], s[1], s[2]
	return gallery.State{
		c.A*x - y*z,
		c.B*y + x*z,
		c.C*z + x*y/3,
	}
}

func (c *Chen) Params() []gallery.Param {
	return []gallery.Param{
		gallery.Float("a", &c.A, 0, 10),
		gallery.Float("b", &c.B, -20, 0),
		gallery.Float("c", &c.C, -1, 0),
	}
}
