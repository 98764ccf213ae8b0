package integrators

import (
	"fmt"

	"github.com/san-kum/simgallery/internal/gallery"
)

// System is an autonomous or time-dependent first-order ODE x' = f(x, t).
type System interface {
	Derive(x gallery.State, t float64) gallery.State
	Dim() int
}

type Integrator interface {
	Step(sys System, x gallery.State, t, dt float64) gallery.State
}

// New returns an integrator by name. The empty name selects RK4.
func New(name string) (Integrator, error) {
	switch name {
	case "", "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func Names() []string {
	return []string{"rk4", "euler"}
}
