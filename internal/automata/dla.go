package automata

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

// ClusterSeed is the initial stuck structure of an aggregation.
type ClusterSeed int

const (
	ClusterPoint ClusterSeed = iota
	ClusterLine
	ClusterCross
	ClusterCircle
)

var clusterSeedNames = []string{"point", "line", "cross", "circle"}

func (s ClusterSeed) String() string {
	if s < 0 || int(s) >= len(clusterSeedNames) {
		return "unknown"
	}
	return clusterSeedNames[s]
}

const (
	dlaWalkLimit = 10000
	dlaStride    = 2.0
)

type DLAConfig struct {
	Width        int
	Height       int
	MaxParticles int     // stuck cells, seed included
	Stickiness   float64 // chance per stuck neighbor
	Speed        float64 // walkers per second
	Start        ClusterSeed
	AgeColor     bool
	ColorScheme  palette.Scheme
	Seed         int64
}

func DefaultDLAConfig() DLAConfig {
	return DLAConfig{
		Width:        256,
		Height:       256,
		MaxParticles: 5000,
		Stickiness:   1,
		Speed:        300,
		AgeColor:     true,
		ColorScheme:  palette.Electric,
		Seed:         1,
	}
}

func (c *DLAConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Int("max_particles", &c.MaxParticles, 1, 200000),
		gallery.Float("stickiness", &c.Stickiness, 0.01, 1),
		gallery.Float("speed", &c.Speed, 0, 100000),
		gallery.Choice("start", &c.Start, clusterSeedNames...),
		gallery.Bool("age_color", &c.AgeColor),
		gallery.Choice("color_scheme", &c.ColorScheme, palette.Names()...),
	}
}

// DLA grows a cluster from random walkers released on a circle around it.
// A walker freezes next to the cluster or is dropped once it wanders twice
// the release radius away.
type DLA struct {
	cfg    DLAConfig
	rng    *gallery.RNG
	cells  *Grid
	age    []int32
	stuck  int
	radius float64
	clock  clock
}

func NewDLA() *DLA {
	return NewDLAWith(DefaultDLAConfig())
}

func NewDLAWith(cfg DLAConfig) *DLA {
	d := &DLA{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	d.init()
	return d
}

func (d *DLA) Name() string      { return "Diffusion-Limited Aggregation" }
func (d *DLA) Config() DLAConfig { return d.cfg }
func (d *DLA) Grid() *Grid       { return d.cells }
func (d *DLA) Stuck() int        { return d.stuck }

// Radius is the distance from the centre of the farthest stuck cell.
func (d *DLA) Radius() float64 { return d.radius }

// Done reports whether the cluster reached MaxParticles.
func (d *DLA) Done() bool { return d.stuck >= d.cfg.MaxParticles }

// Age returns the order in which a cell stuck, or -1 for an empty cell.
func (d *DLA) Age(x, y int) int {
	if !d.cells.In(x, y) {
		return -1
	}
	return int(d.age[d.cells.Index(x, y)])
}

func (d *DLA) Presets() []string { return append([]string(nil), clusterSeedNames...) }

func (d *DLA) ApplyPreset(name string) error {
	for i, n := range clusterSeedNames {
		if n == name {
			d.cfg.Start = ClusterSeed(i)
			d.Reset()
			return nil
		}
	}
	return fmt.Errorf("unknown dla seed: %s", name)
}

func (d *DLA) SetParameters(cfg DLAConfig) {
	old := d.cfg
	d.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.Start != old.Start {
		d.Reset()
	}
}

func (d *DLA) Params() []gallery.Param {
	cfg := d.cfg
	return cfg.params()
}

func (d *DLA) GetParams() map[string]float64 { return gallery.Values(d.Params()) }

func (d *DLA) SetParam(name string, v float64) error {
	cfg := d.cfg
	if err := gallery.Assign(d.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	d.SetParameters(cfg)
	return nil
}

func (d *DLA) Seed(seed int64) {
	d.cfg.Seed = seed
	d.rng.Reseed(seed)
	d.init()
}

func (d *DLA) Reset() {
	d.rng.Restart()
	d.init()
}

func (d *DLA) centre() (float64, float64) {
	return float64(d.cells.W) / 2, float64(d.cells.H) / 2
}

func (d *DLA) init() {
	d.cells = NewGrid(d.cfg.Width, d.cfg.Height)
	d.age = make([]int32, d.cells.Len())
	for i := range d.age {
		d.age[i] = -1
	}
	d.stuck = 0
	d.radius = 0
	d.clock.reset()

	g := d.cells
	if g.Len() == 0 {
		return
	}
	cx, cy := g.W/2, g.H/2
	switch d.cfg.Start {
	case ClusterLine:
		for x := cx - 20; x < cx+20; x++ {
			d.plant(x, cy)
		}
	case ClusterCross:
		for i := 0; i < 10; i++ {
			d.plant(cx-i, cy)
			d.plant(cx+i, cy)
			d.plant(cx, cy-i)
			d.plant(cx, cy+i)
		}
	case ClusterCircle:
		fx, fy := d.centre()
		for deg := 0; deg < 360; deg++ {
			s, c := math.Sincos(float64(deg) * math.Pi / 180)
			d.plant(int(fx+15*c), int(fy+15*s))
		}
	default:
		d.plant(cx, cy)
	}
}

// plant marks a seed cell with age 0; off-grid and repeated cells are skipped.
func (d *DLA) plant(x, y int) {
	g := d.cells
	if !g.In(x, y) || g.Cells[g.Index(x, y)] != 0 {
		return
	}
	d.freeze(x, y, 0)
}

func (d *DLA) freeze(x, y int, age int32) {
	i := d.cells.Index(x, y)
	d.cells.Cells[i] = 1
	d.age[i] = age
	d.stuck++
	fx, fy := d.centre()
	d.radius = math.Max(d.radius, math.Hypot(float64(x)-fx, float64(y)-fy))
}

// touches reports whether an interior cell borders the cluster, rolling
// Stickiness once per stuck neighbor.
func (d *DLA) touches(x, y int) bool {
	g := d.cells
	for _, o := range Moore.Offsets() {
		if g.Cells[g.Index(x+o[0], y+o[1])] != 0 && d.rng.Chance(d.cfg.Stickiness) {
			return true
		}
	}
	return false
}

// Step releases one walker and follows it until it sticks, escapes or runs
// out of moves.
func (d *DLA) Step() {
	g := d.cells
	if d.Done() || g.W < 3 || g.H < 3 {
		return
	}
	fx, fy := d.centre()
	spawn := math.Max(d.radius+10, math.Min(50, math.Min(fx, fy)))
	s, c := math.Sincos(d.rng.Range(0, 2*math.Pi))
	x, y := fx+spawn*c, fy+spawn*s

	for i := 0; i < dlaWalkLimit; i++ {
		if math.Hypot(x-fx, y-fy) > 2*spawn {
			return
		}
		ix, iy := int(x), int(y)
		if ix > 0 && iy > 0 && ix < g.W-1 && iy < g.H-1 &&
			g.Cells[g.Index(ix, iy)] == 0 && d.touches(ix, iy) {
			d.freeze(ix, iy, int32(d.stuck))
			return
		}
		s, c = math.Sincos(d.rng.Range(0, 2*math.Pi))
		x = min(max(x+dlaStride*c, 1), float64(g.W-2))
		y = min(max(y+dlaStride*s, 1), float64(g.H-2))
	}
}

func (d *DLA) Tick(dt float32) {
	for n := d.clock.advance(dt, d.cfg.Speed); n > 0 && !d.Done(); n-- {
		d.Step()
	}
}

func (d *DLA) Compute(w, h int) gallery.PixelBuffer {
	g := d.cells
	total := float64(max(d.cfg.MaxParticles, 1))
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		age := d.age[g.Index(cx, cy)]
		switch {
		case age < 0:
			return gallery.Black
		case !d.cfg.AgeColor:
			return gallery.Color{R: 255, G: 255, B: 255}
		default:
			return d.cfg.ColorScheme.MapClamped(float64(age) / total)
		}
	})
}
