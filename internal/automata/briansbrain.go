package automata

import "github.com/san-kum/simgallery/internal/gallery"

const (
	brainOff uint8 = iota
	brainOn
	brainDying
)

type BrainConfig struct {
	Width   int
	Height  int
	Speed   float64
	Density float64
	Seed    int64
}

func DefaultBrainConfig() BrainConfig {
	return BrainConfig{Width: 160, Height: 120, Speed: 10, Density: 0.2, Seed: 1}
}

func (c *BrainConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Float("density", &c.Density, 0, 1),
	}
}

var brainColors = [...]gallery.Color{
	brainOff:   gallery.Black,
	brainOn:    {R: 255, G: 255, B: 255},
	brainDying: {R: 40, G: 90, B: 255},
}

// BriansBrain is a three-state automaton: on cells always start dying, dying
// cells turn off, and an off cell fires with exactly two on neighbors.
type BriansBrain struct {
	cfg   BrainConfig
	rng   *gallery.RNG
	cells *Grid
	next  *Grid
	gen   int
	clock clock
}

func NewBriansBrain() *BriansBrain {
	return NewBriansBrainWith(DefaultBrainConfig())
}

func NewBriansBrainWith(cfg BrainConfig) *BriansBrain {
	b := &BriansBrain{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	b.init()
	return b
}

func (b *BriansBrain) Name() string        { return "Brian's Brain" }
func (b *BriansBrain) Config() BrainConfig { return b.cfg }
func (b *BriansBrain) Generation() int     { return b.gen }
func (b *BriansBrain) Grid() *Grid         { return b.cells }

func (b *BriansBrain) SetParameters(cfg BrainConfig) {
	old := b.cfg
	b.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.Density != old.Density {
		b.Reset()
	}
}

func (b *BriansBrain) Params() []gallery.Param {
	cfg := b.cfg
	return cfg.params()
}

func (b *BriansBrain) GetParams() map[string]float64 { return gallery.Values(b.Params()) }

func (b *BriansBrain) SetParam(name string, v float64) error {
	cfg := b.cfg
	if err := gallery.Assign(b.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	b.SetParameters(cfg)
	return nil
}

func (b *BriansBrain) Seed(seed int64) {
	b.cfg.Seed = seed
	b.rng.Reseed(seed)
	b.init()
}

func (b *BriansBrain) Reset() {
	b.rng.Restart()
	b.init()
}

func (b *BriansBrain) init() {
	b.cells = NewGrid(b.cfg.Width, b.cfg.Height)
	b.next = NewGrid(b.cfg.Width, b.cfg.Height)
	b.gen = 0
	b.clock.reset()
	for i := range b.cells.Cells {
		if b.rng.Chance(b.cfg.Density) {
			b.cells.Cells[i] = brainOn
		}
	}
}

func (b *BriansBrain) Step() {
	g := b.cells
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			switch g.Cells[i] {
			case brainOn:
				b.next.Cells[i] = brainDying
			case brainDying:
				b.next.Cells[i] = brainOff
			default:
				if countEqual(g, x, y, Moore, brainOn) == 2 {
					b.next.Cells[i] = brainOn
				} else {
					b.next.Cells[i] = brainOff
				}
			}
		}
	}
	b.cells, b.next = b.next, b.cells
	b.gen++
}

func (b *BriansBrain) Tick(dt float32) {
	for n := b.clock.advance(dt, b.cfg.Speed); n > 0; n-- {
		b.Step()
	}
}

func (b *BriansBrain) Compute(w, h int) gallery.PixelBuffer {
	g := b.cells
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		s := g.Cells[g.Index(cx, cy)]
		if int(s) >= len(brainColors) {
			return gallery.Black
		}
		return brainColors[s]
	})
}
