package integrators

import "github.com/san-kum/simgallery/internal/gallery"

// Euler is the explicit first-order method.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, x gallery.State, t float64, dt float64) gallery.State {
	dx := sys.Derive(x, t)
	result := make(gallery.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
