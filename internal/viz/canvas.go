package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// The glyph is U+2800 plus the dot mask.
const brailleBase = 0x2800

var dotMask = [4][2]uint8{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot matrix of Width×Height braille cells, addressed in dots
// (Width*2 by Height*4).
type Canvas struct {
	Width, Height int
	cells         []uint8
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	return &Canvas{Width: w, Height: h, cells: make([]uint8, w*h)}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row*c.Width + col, dotMask[y%4][x%2], true
}

// Set lights the dot at (x, y); out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if i, m, ok := c.cell(x, y); ok {
		c.cells[i] |= m
	}
}

func (c *Canvas) Unset(x, y int) {
	if i, m, ok := c.cell(x, y); ok {
		c.cells[i] &^= m
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, m, ok := c.cell(x, y)
	return ok && c.cells[i]&m != 0
}

func (c *Canvas) Clear() { clear(c.cells) }

// Lit counts the lit dots.
func (c *Canvas) Lit() int {
	n := 0
	for _, v := range c.cells {
		for ; v != 0; v &= v - 1 {
			n++
		}
	}
	return n
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rows returns one string of braille glyphs per cell row.
func (c *Canvas) Rows() []string {
	rows := make([]string, c.Height)
	buf := make([]rune, c.Width)
	for r := range rows {
		for i, v := range c.cells[r*c.Width : (r+1)*c.Width] {
			buf[i] = brailleBase + rune(v)
		}
		rows[r] = string(buf)
	}
	return rows
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
