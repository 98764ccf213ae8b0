package export

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/simgallery/internal/gallery"
)

var ErrEmptyFrame = errors.New("empty frame")

// ToImage copies buf into an opaque RGBA image.
func ToImage(buf gallery.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x, c := range buf.Row(y) {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

func WritePNG(w io.Writer, buf gallery.PixelBuffer) error {
	if buf.Empty() {
		return ErrEmptyFrame
	}
	return png.Encode(w, ToImage(buf))
}
