package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/simgallery/internal/gallery"
)

// CloudStats summarises a point cloud per axis.
type CloudStats struct {
	Count     int
	Mean      [3]float64
	StdDev    [3]float64
	Min       [3]float64
	Max       [3]float64
	Radius    float64 // mean distance from the centroid
	MaxRadius float64 // largest distance from the centroid
}

// Extent returns the bounding box size along each axis.
func (s CloudStats) Extent() [3]float64 {
	var e [3]float64
	for i := range e {
		e[i] = s.Max[i] - s.Min[i]
	}
	return e
}

// Stats computes per-axis moments and the spread of a point cloud. Points
// with non-finite coordinates are skipped.
func Stats(points []gallery.Point3) CloudStats {
	var axes [3][]float64
	for i := range axes {
		axes[i] = make([]float64, 0, len(points))
	}
	for _, p := range points {
		if !finite(p) {
			continue
		}
		for i := range axes {
			axes[i] = append(axes[i], float64(p[i]))
		}
	}

	s := CloudStats{Count: len(axes[0])}
	if s.Count == 0 {
		return s
	}
	for i, xs := range axes {
		s.Mean[i], s.StdDev[i] = stat.MeanStdDev(xs, nil)
		if s.Count < 2 {
			s.StdDev[i] = 0
		}
		s.Min[i] = floats.Min(xs)
		s.Max[i] = floats.Max(xs)
	}

	dist := make([]float64, s.Count)
	for j := range dist {
		dx := axes[0][j] - s.Mean[0]
		dy := axes[1][j] - s.Mean[1]
		dz := axes[2][j] - s.Mean[2]
		dist[j] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	s.Radius = stat.Mean(dist, nil)
	s.MaxRadius = floats.Max(dist)
	return s
}

func finite(p gallery.Point3) bool {
	for _, c := range p {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Coverage returns the fraction of pixels that differ from bg.
func Coverage(buf gallery.PixelBuffer, bg gallery.Color) float64 {
	if buf.Empty() {
		return 0
	}
	n := 0
	for _, c := range buf.Pix {
		if c != bg {
			n++
		}
	}
	return float64(n) / float64(len(buf.Pix))
}
