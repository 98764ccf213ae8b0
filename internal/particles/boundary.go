package particles

import (
	"maps"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/simgallery/internal/gallery"
)

// Boundary selects what happens to particles that leave the domain.
type Boundary int

const (
	Bounce Boundary = iota
	Wrap
	Steer
	Respawn
)

var boundaryNames = []string{"bounce", "wrap", "steer", "respawn"}

func (b Boundary) String() string {
	if b < 0 || int(b) >= len(boundaryNames) {
		return "unknown"
	}
	return boundaryNames[b]
}

// clampLength scales v down to limit when it is longer. A non-positive limit
// disables the clamp.
func clampLength(v mgl32.Vec3, limit float32) mgl32.Vec3 {
	if limit <= 0 {
		return v
	}
	if l := v.Len(); l > limit {
		return v.Mul(limit / l)
	}
	return v
}

func finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// bounce clamps p into [-half, half] per axis and reflects the crossing
// velocity component scaled by damping.
func bounce(p, v *mgl32.Vec3, half, damping float32) {
	for i := 0; i < 3; i++ {
		if p[i] < -half {
			p[i] = -half
			v[i] *= -damping
		} else if p[i] > half {
			p[i] = half
			v[i] *= -damping
		}
	}
}

// wrap maps p periodically into [-half, half). It reports whether any axis
// crossed.
func wrap(p *mgl32.Vec3, half float32) bool {
	if half <= 0 {
		return false
	}
	crossed := false
	side := float64(2 * half)
	for i := 0; i < 3; i++ {
		if p[i] >= -half && p[i] < half {
			continue
		}
		x := math.Mod(float64(p[i]+half), side)
		if x < 0 {
			x += side
		}
		p[i] = float32(x) - half
		if p[i] >= half {
			p[i] = -half
		}
		crossed = true
	}
	return crossed
}

// contain applies a box policy and recovers non-finite particles at the
// origin at rest.
func contain(p, v *mgl32.Vec3, policy Boundary, half, damping float32) bool {
	if !finite(*p) || !finite(*v) {
		*p, *v = mgl32.Vec3{}, mgl32.Vec3{}
		return true
	}
	switch policy {
	case Wrap:
		return wrap(p, half)
	case Bounce:
		bounce(p, v, half, damping)
	}
	return false
}

// shell returns a point with radius in [rmin, rmax) and uniform angles
// θ∈[0,2π), φ∈[0,π).
func shell(rng *gallery.RNG, rmin, rmax float64) mgl32.Vec3 {
	theta := rng.Range(0, 2*math.Pi)
	phi := rng.Range(0, math.Pi)
	r := rng.Range(rmin, rmax)
	return mgl32.Vec3{
		float32(r * math.Sin(phi) * math.Cos(theta)),
		float32(r * math.Sin(phi) * math.Sin(theta)),
		float32(r * math.Cos(phi)),
	}
}

// trails is a set of per-particle ring buffers sharing one capacity.
type trails []*gallery.Trail

func newTrails(n, capacity int) trails {
	t := make(trails, n)
	for i := range t {
		t[i] = gallery.NewTrail(capacity)
	}
	return t
}

func (t trails) resize(capacity int) {
	for _, tr := range t {
		tr.Resize(capacity)
	}
}

func (t trails) maxLen() int {
	m := 0
	for _, tr := range t {
		m = max(m, tr.Len())
	}
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
