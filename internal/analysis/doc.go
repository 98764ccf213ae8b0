// Package analysis provides chaos and signal tools for the gallery kernels.
//
// The package includes:
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [AxisExponents]: the same estimate seeded along each state axis
//   - [BifurcationDiagram]: parameter sweep recording local maxima
//   - [Spectrum] and [DominantFrequency]: windowed FFT of a coordinate
//   - [Stats]: per-axis moments and spread of a point cloud
//   - [Coverage]: fraction of lit pixels in a raster frame
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(model, integrators.NewRK4(), x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
