package automata

import (
	"maps"
	"slices"
)

// Grid is a row-major byte lattice. Len() == W*H always holds.
type Grid struct {
	W, H  int
	Cells []uint8
}

func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		return &Grid{}
	}
	return &Grid{W: w, H: h, Cells: make([]uint8, w*h)}
}

func (g *Grid) Len() int { return len(g.Cells) }

func (g *Grid) Index(x, y int) int { return y*g.W + x }

func (g *Grid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Wrap maps any coordinate onto the torus.
func (g *Grid) Wrap(x, y int) (int, int) {
	if g.W == 0 || g.H == 0 {
		return 0, 0
	}
	x %= g.W
	if x < 0 {
		x += g.W
	}
	y %= g.H
	if y < 0 {
		y += g.H
	}
	return x, y
}

// At reads a cell with toroidal wrapping.
func (g *Grid) At(x, y int) uint8 {
	if len(g.Cells) == 0 {
		return 0
	}
	x, y = g.Wrap(x, y)
	return g.Cells[y*g.W+x]
}

// Set writes a cell; out of range writes are dropped.
func (g *Grid) Set(x, y int, v uint8) {
	if g.In(x, y) {
		g.Cells[y*g.W+x] = v
	}
}

func (g *Grid) Fill(v uint8) {
	for i := range g.Cells {
		g.Cells[i] = v
	}
}

// Resize changes the lattice size, keeping the overlapping top-left region.
func (g *Grid) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		g.W, g.H, g.Cells = 0, 0, nil
		return
	}
	cells := make([]uint8, w*h)
	for y := 0; y < min(h, g.H); y++ {
		copy(cells[y*w:y*w+min(w, g.W)], g.Cells[y*g.W:])
	}
	g.W, g.H, g.Cells = w, h, cells
}

// Swap exchanges contents with o, which must have the same size.
func (g *Grid) Swap(o *Grid) {
	g.Cells, o.Cells = o.Cells, g.Cells
}

func (g *Grid) Count(v uint8) int {
	n := 0
	for _, c := range g.Cells {
		if c == v {
			n++
		}
	}
	return n
}

type Neighborhood int

const (
	VonNeumann Neighborhood = iota
	Moore
	Extended
)

var neighborhoodNames = []string{"von-neumann", "moore", "extended"}

var neighborhoodOffsets = [][][2]int{
	{{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
	{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}},
	{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}, {0, -2}, {2, 0}, {0, 2}, {-2, 0}},
}

func (n Neighborhood) String() string {
	if n < 0 || int(n) >= len(neighborhoodNames) {
		return "unknown"
	}
	return neighborhoodNames[n]
}

// Offsets returns the relative coordinates of the neighborhood (4, 8 or 12 cells).
func (n Neighborhood) Offsets() [][2]int {
	if n < 0 || int(n) >= len(neighborhoodOffsets) {
		return neighborhoodOffsets[Moore]
	}
	return neighborhoodOffsets[n]
}

// CountNeighbors counts cells around (x, y) whose value satisfies match. With
// wrap unset, off-grid neighbors are ignored.
func CountNeighbors(g *Grid, x, y int, nb Neighborhood, match func(uint8) bool, wrap bool) int {
	n := 0
	for _, o := range nb.Offsets() {
		nx, ny := x+o[0], y+o[1]
		if !wrap && !g.In(nx, ny) {
			continue
		}
		if match(g.At(nx, ny)) {
			n++
		}
	}
	return n
}

// countEqual is CountNeighbors specialised to equality on a torus.
func countEqual(g *Grid, x, y int, nb Neighborhood, v uint8) int {
	n := 0
	for _, o := range nb.Offsets() {
		if g.At(x+o[0], y+o[1]) == v {
			n++
		}
	}
	return n
}

func sortedNames[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
