package automata

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

type CyclicSeed int

const (
	SeedRandom CyclicSeed = iota
	SeedSpiral
	SeedStripes
	SeedCorners
)

var cyclicSeedNames = []string{"random", "spiral", "stripes", "corners"}

func (s CyclicSeed) String() string {
	if s < 0 || int(s) >= len(cyclicSeedNames) {
		return "unknown"
	}
	return cyclicSeedNames[s]
}

type CyclicConfig struct {
	Width        int
	Height       int
	States       int
	Threshold    int
	Neighborhood Neighborhood
	Start        CyclicSeed
	Speed        float64
	Seed         int64
}

func DefaultCyclicConfig() CyclicConfig {
	return CyclicConfig{
		Width:        200,
		Height:       150,
		States:       14,
		Threshold:    3,
		Neighborhood: Moore,
		Speed:        10,
		Seed:         1,
	}
}

func (c *CyclicConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Int("states", &c.States, 2, 255),
		gallery.Int("threshold", &c.Threshold, 1, 12),
		gallery.Choice("neighborhood", &c.Neighborhood, neighborhoodNames...),
		gallery.Choice("start", &c.Start, cyclicSeedNames...),
		gallery.Float("speed", &c.Speed, 0, 1000),
	}
}

// Cyclic is a K-state cyclic automaton: a cell advances to the next state
// when enough neighbors already hold it.
type Cyclic struct {
	cfg    CyclicConfig
	rng    *gallery.RNG
	cells  *Grid
	next   *Grid
	colors []gallery.Color
	gen    int
	clock  clock
}

func NewCyclic() *Cyclic {
	return NewCyclicWith(DefaultCyclicConfig())
}

func NewCyclicWith(cfg CyclicConfig) *Cyclic {
	c := &Cyclic{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	c.init()
	return c
}

func (c *Cyclic) Name() string         { return "Cyclic Cellular Automaton" }
func (c *Cyclic) Config() CyclicConfig { return c.cfg }
func (c *Cyclic) Generation() int      { return c.gen }
func (c *Cyclic) Grid() *Grid          { return c.cells }
func (c *Cyclic) Presets() []string    { return append([]string(nil), cyclicSeedNames...) }

func (c *Cyclic) ApplyPreset(name string) error {
	for i, n := range cyclicSeedNames {
		if n == name {
			c.cfg.Start = CyclicSeed(i)
			c.Reset()
			return nil
		}
	}
	return fmt.Errorf("unknown cyclic seed: %s", name)
}

func (c *Cyclic) SetParameters(cfg CyclicConfig) {
	old := c.cfg
	c.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.States != old.States || cfg.Start != old.Start {
		c.Reset()
	}
}

func (c *Cyclic) Params() []gallery.Param {
	cfg := c.cfg
	return cfg.params()
}

func (c *Cyclic) GetParams() map[string]float64 { return gallery.Values(c.Params()) }

func (c *Cyclic) SetParam(name string, v float64) error {
	cfg := c.cfg
	if err := gallery.Assign(c.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	c.SetParameters(cfg)
	return nil
}

func (c *Cyclic) Seed(seed int64) {
	c.cfg.Seed = seed
	c.rng.Reseed(seed)
	c.init()
}

func (c *Cyclic) Reset() {
	c.rng.Restart()
	c.init()
}

func (c *Cyclic) states() int {
	return min(max(c.cfg.States, 2), 255)
}

func (c *Cyclic) init() {
	k := c.states()
	c.cells = NewGrid(c.cfg.Width, c.cfg.Height)
	c.next = NewGrid(c.cfg.Width, c.cfg.Height)
	c.colors = palette.Wheel(k, 0.85, 1)
	c.gen = 0
	c.clock.reset()

	g := c.cells
	switch c.cfg.Start {
	case SeedSpiral:
		cx, cy := g.W/2, g.H/2
		for i := 0; i < k; i++ {
			a := float64(i) / float64(k) * 2 * math.Pi
			g.Set(cx+int(10*math.Cos(a)), cy+int(10*math.Sin(a)), uint8(i))
		}
	case SeedStripes:
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				g.Cells[g.Index(x, y)] = uint8(x * k / g.W)
			}
		}
	case SeedCorners:
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				q := 0
				if x >= g.W/2 {
					q++
				}
				if y >= g.H/2 {
					q += 2
				}
				g.Cells[g.Index(x, y)] = uint8(q * k / 4)
			}
		}
	default:
		for i := range g.Cells {
			g.Cells[i] = uint8(c.rng.IntN(k))
		}
	}
}

// Step advances exactly one generation.
func (c *Cyclic) Step() {
	k := c.states()
	g := c.cells
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			s := g.Cells[i]
			succ := uint8((int(s) + 1) % k)
			if countEqual(g, x, y, c.cfg.Neighborhood, succ) >= c.cfg.Threshold {
				c.next.Cells[i] = succ
			} else {
				c.next.Cells[i] = s
			}
		}
	}
	c.cells, c.next = c.next, c.cells
	c.gen++
}

func (c *Cyclic) Tick(dt float32) {
	for n := c.clock.advance(dt, c.cfg.Speed); n > 0; n-- {
		c.Step()
	}
}

func (c *Cyclic) Compute(w, h int) gallery.PixelBuffer {
	g := c.cells
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		s := int(g.Cells[g.Index(cx, cy)])
		if s >= len(c.colors) {
			return gallery.Black
		}
		return c.colors[s]
	})
}
