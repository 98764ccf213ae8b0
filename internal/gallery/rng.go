package gallery

import (
	"math"
	"math/rand/v2"
)

// RNG is a deterministic PCG generator owned by a single simulation.
type RNG struct {
	r    *rand.Rand
	seed int64
}

func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Reseed restarts the sequence from seed.
func (r *RNG) Reseed(seed int64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Restart replays the sequence from the current seed.
func (r *RNG) Restart() { r.Reseed(r.seed) }

func (r *RNG) SeedValue() int64 { return r.seed }

func (r *RNG) Float64() float64 { return r.r.Float64() }

func (r *RNG) Float32() float32 { return r.r.Float32() }

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

func (r *RNG) Range32(lo, hi float32) float32 {
	return lo + r.r.Float32()*(hi-lo)
}

func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

func (r *RNG) Bool() bool { return r.r.IntN(2) == 1 }

// InSphere returns a point uniformly distributed inside a sphere.
func (r *RNG) InSphere(radius float32) Point3 {
	for {
		p := Point3{r.Range32(-1, 1), r.Range32(-1, 1), r.Range32(-1, 1)}
		if l := p.Len(); l <= 1 && l > 0 {
			return p.Mul(radius)
		}
	}
}

// Direction returns a uniformly distributed unit vector.
func (r *RNG) Direction() Point3 {
	z := r.Range(-1, 1)
	phi := r.Range(0, 2*math.Pi)
	s := math.Sqrt(1 - z*z)
	return Point3{float32(s * math.Cos(phi)), float32(s * math.Sin(phi)), float32(z)}
}
