package palette

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/simgallery/internal/gallery"
)

type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Gradient interpolates between stops in CIE-L*a*b* space.
type Gradient []Stop

// NewGradient builds a gradient from hex colors spread evenly over [0, 1].
func NewGradient(hex ...string) Gradient {
	g := make(Gradient, 0, len(hex))
	for i, h := range hex {
		pos := 0.0
		if len(hex) > 1 {
			pos = float64(i) / float64(len(hex)-1)
		}
		g = append(g, Stop{Pos: pos, Color: mustHex(h)})
	}
	return g
}

// mustHex parses a hex literal from the built-in tables.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (g Gradient) At(t float64) gallery.Color {
	if len(g) == 0 {
		return gallery.Black
	}
	if t <= g[0].Pos {
		return toColor(g[0].Color)
	}
	i := sort.Search(len(g), func(i int) bool { return g[i].Pos >= t })
	if i >= len(g) {
		return toColor(g[len(g)-1].Color)
	}
	a, b := g[i-1], g[i]
	span := b.Pos - a.Pos
	if span <= 0 {
		return toColor(b.Color)
	}
	return toColor(a.Color.BlendLab(b.Color, (t-a.Pos)/span))
}

func toColor(c colorful.Color) gallery.Color {
	r, g, b := c.Clamped().RGB255()
	return gallery.Color{R: r, G: g, B: b}
}

var gradients = map[Scheme]Gradient{
	Classic:  NewGradient("#000000", "#1e0f5a", "#2f7bd1", "#f2f2d0", "#f7b32b", "#000000"),
	Fire:     NewGradient("#000000", "#7a0a00", "#ff4500", "#ffc200", "#ffffe0"),
	Ocean:    NewGradient("#00030f", "#003a6b", "#0096c7", "#90e0ef", "#ffffff"),
	Electric: NewGradient("#05001a", "#5b00c9", "#00e5ff", "#f0ffff"),
	Forest:   NewGradient("#020d02", "#1b4d1b", "#6aa84f", "#e3d99b"),
	Ultra: {
		{0.0, mustHex("#000764")},
		{0.16, mustHex("#206bcb")},
		{0.42, mustHex("#edffff")},
		{0.6425, mustHex("#ffaa00")},
		{0.8575, mustHex("#000200")},
		{1.0, mustHex("#000764")},
	},
}
