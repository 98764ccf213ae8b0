// Package attractors integrates chaotic three-dimensional flows and exposes
// their trajectories as point clouds.
//
// A [Model] is the vector field (Lorenz, Rössler, Aizawa, Halvorsen, Dadras,
// Thomas, Chen). An [Attractor] advances one trajectory with RK4 (or Euler)
// in a fixed number of substeps per Step and keeps the newest points in a
// bounded trail. No randomness is involved, so two attractors built the same
// way and stepped with the same deltas emit identical points.
//
// [Swarm] seeds many short-lived particles into the same flows.
package attractors
