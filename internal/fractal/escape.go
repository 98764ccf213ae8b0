package fractal

import "math"

// EscapeTime iterates the family's map for the point (re, im) and returns the
// iteration value and whether the orbit escaped. Mandelbrot and Burning Ship
// treat the point as c with z0 = 0; Julia treats it as z0 with c = (CX, CY).
// Orbits that never escape report MaxIterations.
func EscapeTime(f Family, re, im float64, cfg *Config) (float64, bool) {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		return 0, false
	}

	radius := math.Max(cfg.EscapeRadius, minEscapeRadius)
	escapeSqr := radius * radius

	var zr, zi, cr, ci float64
	if f == Julia {
		zr, zi = re, im
		cr, ci = cfg.CX, cfg.CY
	} else {
		cr, ci = re, im
	}

	square := f == BurningShip || math.Abs(cfg.Power-2) < 0.001

	for i := 0; i < maxIter; i++ {
		normSqr := zr*zr + zi*zi
		if normSqr > escapeSqr || math.IsNaN(normSqr) {
			if !cfg.Smooth {
				return float64(i), true
			}
			return smoothIndex(i, normSqr, radius, maxIter), true
		}

		switch {
		case f == BurningShip:
			ar, ai := math.Abs(zr), math.Abs(zi)
			zr, zi = ar*ar-ai*ai+cr, 2*ar*ai+ci
		case square:
			zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		default:
			zr, zi = powComplex(zr, zi, cfg.Power)
			zr += cr
			zi += ci
		}
	}
	return float64(maxIter), false
}

// smoothIndex is the continuous escape count i + 1 - log2(log|z| / log R).
// Values that cannot be computed fall back to the integer count.
func smoothIndex(i int, normSqr, radius float64, maxIter int) float64 {
	if normSqr <= 1 || radius <= 1 || math.IsInf(normSqr, 0) || math.IsNaN(normSqr) {
		return float64(i)
	}
	logZn := math.Log(normSqr) / 2
	nu := math.Log(logZn/math.Log(radius)) / math.Ln2
	v := float64(i) + 1 - nu
	if math.IsNaN(v) {
		return float64(i)
	}
	return math.Max(0, math.Min(float64(maxIter), v))
}

// powComplex raises zr + i*zi to a real power in polar form.
func powComplex(zr, zi, p float64) (float64, float64) {
	r := math.Hypot(zr, zi)
	if r == 0 {
		return 0, 0
	}
	theta := math.Atan2(zi, zr)
	rp := math.Pow(r, p)
	s, c := math.Sincos(theta * p)
	return rp * c, rp * s
}
