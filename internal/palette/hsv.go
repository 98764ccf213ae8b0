package palette

import (
	"math"

	"github.com/crazy3lf/colorconv"
	"github.com/san-kum/simgallery/internal/gallery"
)

// HSV converts hue in degrees (any range) and saturation/value in [0, 1].
func HSV(h, s, v float64) gallery.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b, err := colorconv.HSVToRGB(h, clamp01(s), clamp01(v))
	if err != nil {
		return gallery.Black
	}
	return gallery.Color{R: r, G: g, B: b}
}

// Wheel returns n colors evenly spaced around the hue circle.
func Wheel(n int, s, v float64) []gallery.Color {
	if n <= 0 {
		return nil
	}
	out := make([]gallery.Color, n)
	for i := range out {
		out[i] = HSV(float64(i)*360/float64(n), s, v)
	}
	return out
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
