package automata

import "github.com/san-kum/simgallery/internal/gallery"

// Edge selects what the ant does when it walks off the grid.
type Edge int

const (
	EdgeWrap Edge = iota
	EdgeBounce
)

var edgeNames = []string{"wrap", "bounce"}

func (e Edge) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return "unknown"
	}
	return edgeNames[e]
}

// Heading is a compass direction, clockwise from up.
type Heading int

const (
	Up Heading = iota
	Right
	Down
	Left
)

var headingDelta = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (d Heading) Right() Heading   { return (d + 1) % 4 }
func (d Heading) Left() Heading    { return (d + 3) % 4 }
func (d Heading) Reverse() Heading { return (d + 2) % 4 }

type AntConfig struct {
	Width  int
	Height int
	Speed  float64 // steps per second
	Edge   Edge
}

func DefaultAntConfig() AntConfig {
	return AntConfig{Width: 200, Height: 150, Speed: 100}
}

func (c *AntConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Float("speed", &c.Speed, 0, 100000),
		gallery.Choice("edge", &c.Edge, edgeNames...),
	}
}

var (
	antColor  = gallery.Color{R: 255}
	antMarked = gallery.Color{R: 255, G: 255, B: 255}
)

// Ant is Langton's ant. Cells start white (0); a marked cell is black (1).
type Ant struct {
	cfg     AntConfig
	cells   *Grid
	x, y    int
	heading Heading
	steps   int
	clock   clock
}

func NewAnt() *Ant {
	return NewAntWith(DefaultAntConfig())
}

func NewAntWith(cfg AntConfig) *Ant {
	a := &Ant{cfg: cfg}
	a.Reset()
	return a
}

func (a *Ant) Name() string      { return "Langton's Ant" }
func (a *Ant) Config() AntConfig { return a.cfg }
func (a *Ant) Grid() *Grid       { return a.cells }
func (a *Ant) Steps() int        { return a.steps }

// Position returns the ant's cell and heading.
func (a *Ant) Position() (x, y int, h Heading) { return a.x, a.y, a.heading }

func (a *Ant) SetParameters(cfg AntConfig) {
	old := a.cfg
	a.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height {
		a.Reset()
	}
}

func (a *Ant) Params() []gallery.Param {
	cfg := a.cfg
	return cfg.params()
}

func (a *Ant) GetParams() map[string]float64 { return gallery.Values(a.Params()) }

func (a *Ant) SetParam(name string, v float64) error {
	cfg := a.cfg
	if err := gallery.Assign(a.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	a.SetParameters(cfg)
	return nil
}

func (a *Ant) Reset() {
	a.cells = NewGrid(a.cfg.Width, a.cfg.Height)
	a.x, a.y = a.cells.W/2, a.cells.H/2
	a.heading = Up
	a.steps = 0
	a.clock.reset()
}

// Step turns on the current cell's color, flips it, then moves forward.
func (a *Ant) Step() {
	g := a.cells
	if g.Len() == 0 {
		return
	}
	i := g.Index(a.x, a.y)
	if g.Cells[i] == 0 {
		a.heading = a.heading.Right()
	} else {
		a.heading = a.heading.Left()
	}
	g.Cells[i] ^= 1

	d := headingDelta[a.heading]
	nx, ny := a.x+d[0], a.y+d[1]
	if g.In(nx, ny) {
		a.x, a.y = nx, ny
	} else if a.cfg.Edge == EdgeBounce {
		a.x = min(max(nx, 0), g.W-1)
		a.y = min(max(ny, 0), g.H-1)
		a.heading = a.heading.Reverse()
	} else {
		a.x, a.y = g.Wrap(nx, ny)
	}
	a.steps++
}

func (a *Ant) Tick(dt float32) {
	for n := a.clock.advance(dt, a.cfg.Speed); n > 0; n-- {
		a.Step()
	}
}

func (a *Ant) Compute(w, h int) gallery.PixelBuffer {
	g := a.cells
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		if cx == a.x && cy == a.y {
			return antColor
		}
		if g.Cells[g.Index(cx, cy)] != 0 {
			return antMarked
		}
		return gallery.Black
	})
}
