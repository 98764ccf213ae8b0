package palette

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
)

// Scheme is a named mapping from [0, 1] to a color.
type Scheme int

const (
	Classic Scheme = iota
	Fire
	Ocean
	Ultra
	Electric
	Forest
	Grayscale
	Rainbow
)

var schemeNames = []string{"classic", "fire", "ocean", "ultra", "electric", "forest", "grayscale", "rainbow"}

const lutSize = 1024

var luts [][lutSize]gallery.Color

func init() {
	luts = make([][lutSize]gallery.Color, len(schemeNames))
	for s := range schemeNames {
		scheme := Scheme(s)
		for i := 0; i < lutSize; i++ {
			luts[s][i] = scheme.eval(float64(i) / (lutSize - 1))
		}
	}
}

// Names returns the scheme names in declaration order.
func Names() []string {
	out := make([]string, len(schemeNames))
	copy(out, schemeNames)
	return out
}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("scheme(%d)", int(s))
	}
	return schemeNames[s]
}

func Parse(name string) (Scheme, error) {
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return Classic, fmt.Errorf("unknown color scheme: %s", name)
}

// Map returns the color for t. Values outside [0, 1] wrap around; NaN maps
// to the start of the scheme.
func (s Scheme) Map(t float64) gallery.Color {
	if s < 0 || int(s) >= len(luts) {
		s = Classic
	}
	return luts[s][lutIndex(Wrap(t))]
}

// MapClamped returns the color for t clamped to [0, 1], so 1 maps to the end
// of the scheme rather than wrapping to its start.
func (s Scheme) MapClamped(t float64) gallery.Color {
	if s < 0 || int(s) >= len(luts) {
		s = Classic
	}
	return luts[s][lutIndex(clamp01(t))]
}

// Wrap reduces t into [0, 1).
func Wrap(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return t - math.Floor(t)
}

func lutIndex(t float64) int {
	i := int(t * (lutSize - 1))
	if i < 0 {
		return 0
	}
	if i >= lutSize {
		return lutSize - 1
	}
	return i
}

func (s Scheme) eval(t float64) gallery.Color {
	switch s {
	case Grayscale:
		v := uint8(math.Round(t * 255))
		return gallery.Color{R: v, G: v, B: v}
	case Rainbow:
		return HSV(t*360, 0.85, 1)
	default:
		return gradients[s].At(t)
	}
}
