// Package fractal implements escape-time fractals: the Mandelbrot set, Julia
// sets, and the Burning Ship.
//
// Each pixel is mapped to the complex plane and iterated until |z| exceeds
// the escape radius or the iteration budget runs out. Escaped pixels are
// colored from a continuous iteration count,
//
//	i + 1 - log2(log|z| / log R)
//
// which removes the banding of integer counts. Orbits that never escape are
// black.
//
// Rows are independent and are rendered through a [compute.Backend]; the
// fractal's configuration is only read during Compute.
package fractal
