package automata

import (
	"fmt"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

type LifeConfig struct {
	Width   int
	Height  int
	Speed   float64 // generations per second
	Rule    int     // index into RuleNames
	Pattern int     // index into PatternNames
	Density float64 // live fraction for the random pattern
	ShowAge bool
	Seed    int64
}

func DefaultLifeConfig() LifeConfig {
	return LifeConfig{
		Width:   120,
		Height:  120,
		Speed:   10,
		Density: 1.0 / 3,
		Seed:    1,
	}
}

func (c *LifeConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Choice("rule", &c.Rule, RuleNames()...),
		gallery.Choice("pattern", &c.Pattern, PatternNames()...),
		gallery.Float("density", &c.Density, 0, 1),
		gallery.Bool("show_age", &c.ShowAge),
	}
}

var liveColor = gallery.Color{R: 0, G: 255, B: 100}

// Life runs a Life-like automaton on a torus, tracking how many generations
// each live cell has survived.
type Life struct {
	cfg   LifeConfig
	rule  Rule
	rng   *gallery.RNG
	cells *Grid
	next  *Grid
	age   []uint32
	gen   int
	clock clock
}

func NewLife() *Life {
	return NewLifeWith(DefaultLifeConfig())
}

func NewLifeWith(cfg LifeConfig) *Life {
	l := &Life{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	l.rule = l.ruleFor(cfg.Rule)
	l.init()
	return l
}

func (l *Life) ruleFor(i int) Rule {
	if i < 0 || i >= len(lifeRules) {
		i = 0
	}
	return lifeRules[i].rule
}

func (l *Life) Name() string       { return "Conway's Game of Life" }
func (l *Life) Config() LifeConfig { return l.cfg }
func (l *Life) Rule() Rule         { return l.rule }
func (l *Life) Generation() int    { return l.gen }
func (l *Life) Grid() *Grid        { return l.cells }
func (l *Life) Population() int    { return l.cells.Len() - l.cells.Count(0) }
func (l *Life) Presets() []string  { return RuleNames() }

// SetRule installs an arbitrary B/S rule without touching the cells.
func (l *Life) SetRule(s string) error {
	r, err := ParseRule(s)
	if err != nil {
		return err
	}
	l.rule = r
	return nil
}

// ApplyPreset switches to a named built-in rule.
func (l *Life) ApplyPreset(name string) error {
	for i, r := range lifeRules {
		if r.name == name {
			l.cfg.Rule = i
			l.rule = r.rule
			return nil
		}
	}
	return fmt.Errorf("unknown life rule: %s", name)
}

// SetPattern clears the board and stamps a named seed pattern.
func (l *Life) SetPattern(name string) error {
	for i, p := range lifePatterns {
		if p.name == name {
			l.cfg.Pattern = i
			l.Reset()
			return nil
		}
	}
	return fmt.Errorf("unknown life pattern: %s", name)
}

// SetParameters applies cfg. A new size or pattern restarts the board.
func (l *Life) SetParameters(cfg LifeConfig) {
	old := l.cfg
	l.cfg = cfg
	if cfg.Rule != old.Rule {
		l.rule = l.ruleFor(cfg.Rule)
	}
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.Pattern != old.Pattern ||
		(cfg.Density != old.Density && lifePatterns[l.patternIndex()].name == "random") {
		l.Reset()
	}
}

func (l *Life) Params() []gallery.Param {
	cfg := l.cfg
	return cfg.params()
}

func (l *Life) GetParams() map[string]float64 { return gallery.Values(l.Params()) }

func (l *Life) SetParam(name string, v float64) error {
	cfg := l.cfg
	if err := gallery.Assign(l.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	l.SetParameters(cfg)
	return nil
}

func (l *Life) Seed(seed int64) {
	l.cfg.Seed = seed
	l.rng.Reseed(seed)
	l.init()
}

func (l *Life) Reset() {
	l.rng.Restart()
	l.init()
}

func (l *Life) patternIndex() int {
	if l.cfg.Pattern < 0 || l.cfg.Pattern >= len(lifePatterns) {
		return 0
	}
	return l.cfg.Pattern
}

func (l *Life) init() {
	l.cells = NewGrid(l.cfg.Width, l.cfg.Height)
	l.next = NewGrid(l.cfg.Width, l.cfg.Height)
	l.age = make([]uint32, l.cells.Len())
	l.gen = 0
	l.clock.reset()

	p := lifePatterns[l.patternIndex()]
	switch {
	case p.name == "random":
		for i := range l.cells.Cells {
			if l.rng.Chance(l.cfg.Density) {
				l.cells.Cells[i] = 1
			}
		}
	case p.centered:
		p.cells.stamp(l.cells, l.cells.W/2, l.cells.H/2, 1)
	default:
		p.cells.stamp(l.cells, 10, 10, 1)
	}
	for i, c := range l.cells.Cells {
		if c != 0 {
			l.age[i] = 1
		}
	}
}

// Toggle flips a single cell.
func (l *Life) Toggle(x, y int) {
	if !l.cells.In(x, y) {
		return
	}
	i := l.cells.Index(x, y)
	l.cells.Cells[i] ^= 1
	l.age[i] = uint32(l.cells.Cells[i])
}

// Step advances exactly one generation.
func (l *Life) Step() {
	g := l.cells
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			alive := g.Cells[i] != 0
			n := countEqual(g, x, y, Moore, 1)
			if l.rule.NextState(alive, n) {
				l.next.Cells[i] = 1
				if alive && l.age[i] < ^uint32(0) {
					l.age[i]++
				} else if !alive {
					l.age[i] = 1
				}
			} else {
				l.next.Cells[i] = 0
				l.age[i] = 0
			}
		}
	}
	l.cells, l.next = l.next, l.cells
	l.gen++
}

func (l *Life) Tick(dt float32) {
	for n := l.clock.advance(dt, l.cfg.Speed); n > 0; n-- {
		l.Step()
	}
}

func (l *Life) Compute(w, h int) gallery.PixelBuffer {
	g := l.cells
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		i := g.Index(cx, cy)
		if g.Cells[i] == 0 {
			return gallery.Black
		}
		if l.cfg.ShowAge {
			a := float64(min(l.age[i], 50)) / 50
			return palette.HSV(a*240, 0.8, 0.9)
		}
		return liveColor
	})
}
