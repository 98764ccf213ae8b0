// Package particles holds the point-cloud kernels built from many interacting
// bodies: an SPH fluid, softened N-body gravity, a boids flock, magnetic field
// tracers, vortex turbulence, a kinematic spiral galaxy and a Perlin flow
// field.
//
// Every kernel owns a seeded [gallery.RNG], so Reset replays exactly the same
// initial state and the same sequence of random kicks. Kernels never allocate
// per particle inside Step beyond their trails, and all of them clamp
// velocities before moving particles.
package particles
