package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/simgallery/internal/gallery"
)

const halfBlock = "▀"

// RenderHalfBlocks draws buf two pixel rows per text line: the upper pixel
// is the glyph foreground and the lower pixel its background. An odd last
// row is paired with black.
func RenderHalfBlocks(buf gallery.PixelBuffer) string {
	if buf.Empty() {
		return ""
	}
	var sb strings.Builder
	for y := 0; y < buf.Height; y += 2 {
		for x := 0; x < buf.Width; x++ {
			top, bottom := buf.At(x, y), buf.At(x, y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(top)).
				Background(hexColor(bottom)).
				Render(halfBlock))
		}
		if y+2 < buf.Height {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c gallery.Color) lipgloss.Color {
	return lipgloss.Color(colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex())
}
