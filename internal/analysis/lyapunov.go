package analysis

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two nearby trajectories
// 2. After every step, log their separation relative to the initial one
// 3. Pull the shadow trajectory back to the initial distance
// 4. λ ≈ Σ ln(|δx|/δ0) / (n·dt)
func LyapunovExponent(
	sys integrators.System,
	integ integrators.Integrator,
	x0 gallery.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 {
		return 0
	}
	xp := x0.Clone()
	xp[0] += perturbation
	return separationRate(sys, integ, x0, xp, dt, duration, perturbation)
}

// AxisExponents perturbs each state axis in turn and returns the separation
// rate of each run. Every entry tends to the largest exponent; the spread
// between them hints at how long the transient lasts.
func AxisExponents(
	sys integrators.System,
	integ integrators.Integrator,
	x0 gallery.State,
	dt, duration float64,
	perturbation float64,
) []float64 {
	out := make([]float64, len(x0))
	for i := range x0 {
		xp := x0.Clone()
		xp[i] += perturbation
		out[i] = separationRate(sys, integ, x0, xp, dt, duration, perturbation)
	}
	return out
}

func separationRate(
	sys integrators.System,
	integ integrators.Integrator,
	x0, x0p gallery.State,
	dt, duration, d0 float64,
) float64 {
	if dt <= 0 || d0 <= 0 || duration <= 0 {
		return 0
	}
	x, xp := x0.Clone(), x0p.Clone()
	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt
		if !x.IsValid() || !xp.IsValid() {
			break
		}

		sep := 0.0
		for i := range x {
			diff := xp[i] - x[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

// Trajectory integrates from x0 for n steps and records one coordinate after
// each step.
func Trajectory(
	sys integrators.System,
	integ integrators.Integrator,
	x0 gallery.State,
	axis int,
	dt float64,
	n int,
) []float64 {
	if axis < 0 || axis >= len(x0) || n <= 0 {
		return nil
	}
	x := x0.Clone()
	out := make([]float64, 0, n)
	t := 0.0
	for i := 0; i < n; i++ {
		x = integ.Step(sys, x, t, dt)
		t += dt
		if !x.IsValid() {
			break
		}
		out = append(out, x[axis])
	}
	return out
}
