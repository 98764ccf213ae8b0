// Package field renders continuous scalar fields evaluated per pixel.
//
// Waves sums circular waves from point sources,
//
//	sum_i sin(2π d_i/λ - ωt) · exp(-k d_i)
//
// averaged over the sources and mapped from [-1, 1] onto a palette. Distances
// and the wavelength are measured in pixels of the output image, so the
// pattern keeps its look at any resolution. Rows are rendered through a
// [compute.Backend].
package field
