package automata

import "github.com/san-kum/simgallery/internal/gallery"

// render scales a gw×gh lattice to a w×h image by nearest cell.
func render(w, h, gw, gh int, color func(cx, cy int) gallery.Color) gallery.PixelBuffer {
	buf := gallery.NewPixelBuffer(w, h)
	if buf.Empty() || gw <= 0 || gh <= 0 {
		return buf
	}
	cols := make([]int, w)
	for x := range cols {
		cols[x] = x * gw / w
	}
	for y := 0; y < h; y++ {
		cy := y * gh / h
		row := buf.Row(y)
		for x, cx := range cols {
			row[x] = color(cx, cy)
		}
	}
	return buf
}
