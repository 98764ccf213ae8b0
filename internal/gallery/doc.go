// Package gallery defines the contracts every simulation in the gallery
// satisfies and the small value types they exchange with a host.
//
// A simulation is either a raster or a point cloud:
//
//   - [RasterSimulation]: Compute(width, height) returns a fresh [PixelBuffer]
//   - [PointCloudSimulation]: Step(dt) advances state, Points() returns a copy
//     of the current [Point3] list, Reset() restores the construction state
//
// Optional capabilities are discovered with type assertions: [Animated] for
// rasters that evolve over time, [Resettable], [Seeded], and [Configurable]
// for the numeric parameter surface.
//
// # Parameters
//
// Every simulation keeps a typed configuration struct. [Param] values bind
// the fields of such a struct to names and bounds so a host can read and
// write them generically:
//
//	if err := gallery.Apply(sim, map[string]float64{"zoom": 50}); err != nil {
//	    // errors.Is(err, gallery.ErrParameterBounds)
//	}
//
// # Failure Model
//
// Contract methods never fail. Degenerate input (zero dimensions, zero
// particles, non-positive dt) yields an empty result or a no-op step. Errors
// exist only at the parameter and catalog boundary.
//
// # Thread Safety
//
// A single simulation is not safe for concurrent use. Distinct instances
// share nothing, and [Gallery.StepAll] steps them in parallel.
package gallery
