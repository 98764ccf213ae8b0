package automata

import (
	"github.com/san-kum/simgallery/internal/gallery"
)

type ElementaryConfig struct {
	Rule        int
	Width       int
	History     int // rows kept on screen
	Speed       float64
	RandomStart bool
	Seed        int64
}

func DefaultElementaryConfig() ElementaryConfig {
	return ElementaryConfig{
		Rule:    30,
		Width:   200,
		History: 150,
		Speed:   10,
		Seed:    1,
	}
}

func (c *ElementaryConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("rule", &c.Rule, 0, 255),
		gallery.Int("width", &c.Width, 1, 4000),
		gallery.Int("history", &c.History, 1, 4000),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Bool("random_start", &c.RandomStart),
	}
}

var ruleColors = map[int]gallery.Color{
	30:  {R: 255, G: 150, B: 0},
	110: {R: 100, G: 150, B: 255},
	90:  {R: 255, G: 100, B: 150},
}

// Elementary is a one-dimensional two-state automaton drawn as a scrolling
// space-time diagram, newest row at the bottom once the history is full.
type Elementary struct {
	cfg   ElementaryConfig
	rng   *gallery.RNG
	rows  *Grid
	next  []uint8
	used  int
	gen   int
	clock clock
}

func NewElementary() *Elementary {
	return NewElementaryWith(DefaultElementaryConfig())
}

// NewElementaryRule builds a default automaton running the given Wolfram rule.
func NewElementaryRule(rule int) *Elementary {
	cfg := DefaultElementaryConfig()
	cfg.Rule = rule
	return NewElementaryWith(cfg)
}

func NewElementaryWith(cfg ElementaryConfig) *Elementary {
	e := &Elementary{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	e.init()
	return e
}

func (e *Elementary) Name() string             { return "Elementary Cellular Automaton" }
func (e *Elementary) Config() ElementaryConfig { return e.cfg }
func (e *Elementary) Generation() int          { return e.gen }

// Row returns the cells of history row i, oldest first.
func (e *Elementary) Row(i int) []uint8 {
	if i < 0 || i >= e.used {
		return nil
	}
	w := e.rows.W
	return e.rows.Cells[i*w : (i+1)*w]
}

// Rows reports how many history rows are filled.
func (e *Elementary) Rows() int { return e.used }

func (e *Elementary) SetParameters(cfg ElementaryConfig) {
	old := e.cfg
	e.cfg = cfg
	if cfg.Rule != old.Rule || cfg.Width != old.Width || cfg.History != old.History ||
		cfg.RandomStart != old.RandomStart {
		e.Reset()
	}
}

func (e *Elementary) Params() []gallery.Param {
	cfg := e.cfg
	return cfg.params()
}

func (e *Elementary) GetParams() map[string]float64 { return gallery.Values(e.Params()) }

func (e *Elementary) SetParam(name string, v float64) error {
	cfg := e.cfg
	if err := gallery.Assign(e.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	e.SetParameters(cfg)
	return nil
}

func (e *Elementary) Seed(seed int64) {
	e.cfg.Seed = seed
	e.rng.Reseed(seed)
	e.init()
}

func (e *Elementary) Reset() {
	e.rng.Restart()
	e.init()
}

func (e *Elementary) init() {
	e.rows = NewGrid(e.cfg.Width, e.cfg.History)
	e.next = make([]uint8, e.rows.W)
	e.gen = 0
	e.clock.reset()
	if e.rows.Len() == 0 {
		e.used = 0
		return
	}
	e.used = 1
	first := e.Row(0)
	if e.cfg.RandomStart {
		for x := range first {
			if e.rng.Bool() {
				first[x] = 1
			}
		}
		return
	}
	first[len(first)/2] = 1
}

// Apply computes the next value of a cell from its left, center and right
// neighbors.
func (e *Elementary) Apply(l, c, r uint8) uint8 {
	idx := (l&1)<<2 | (c&1)<<1 | r&1
	return uint8(e.cfg.Rule>>idx) & 1
}

// Step appends one row, scrolling the oldest off when the history is full.
func (e *Elementary) Step() {
	if e.used == 0 {
		return
	}
	w := e.rows.W
	prev := e.Row(e.used - 1)
	for x := 0; x < w; x++ {
		e.next[x] = e.Apply(prev[(x+w-1)%w], prev[x], prev[(x+1)%w])
	}
	if e.used == e.rows.H {
		copy(e.rows.Cells, e.rows.Cells[w:])
		e.used--
	}
	copy(e.rows.Cells[e.used*w:(e.used+1)*w], e.next)
	e.used++
	e.gen++
}

func (e *Elementary) Tick(dt float32) {
	for n := e.clock.advance(dt, e.cfg.Speed); n > 0; n-- {
		e.Step()
	}
}

func (e *Elementary) Compute(w, h int) gallery.PixelBuffer {
	on, ok := ruleColors[e.cfg.Rule]
	if !ok {
		on = gallery.Color{R: 255, G: 255, B: 255}
	}
	return render(w, h, e.rows.W, e.rows.H, func(cx, cy int) gallery.Color {
		if cy < e.used && e.rows.Cells[e.rows.Index(cx, cy)] != 0 {
			return on
		}
		return gallery.Black
	})
}
