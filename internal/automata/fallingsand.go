package automata

import (
	"fmt"

	"github.com/san-kum/simgallery/internal/gallery"
)

type Material uint8

const (
	Empty Material = iota
	Sand
	Water
	Stone
	Fire
	Wood
)

var materialNames = []string{"empty", "sand", "water", "stone", "fire", "wood"}

func (m Material) String() string {
	if int(m) >= len(materialNames) {
		return "unknown"
	}
	return materialNames[m]
}

// ParseMaterial looks a material up by name.
func ParseMaterial(name string) (Material, error) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown material: %s", name)
}

const (
	fireTemperature = 100
	fireRise        = 0.3
	fireIgnite      = 0.1
)

type SandConfig struct {
	Width      int
	Height     int
	Speed      float64
	Material   Material // what the spawner drops
	Brush      int
	SpawnP     float64
	SpawnOnTop bool
	Seed       int64
}

func DefaultSandConfig() SandConfig {
	return SandConfig{
		Width:      200,
		Height:     150,
		Speed:      60,
		Material:   Sand,
		Brush:      3,
		SpawnP:     0.3,
		SpawnOnTop: true,
		Seed:       1,
	}
}

func (c *SandConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Float("speed", &c.Speed, 0, 1000),
		gallery.Choice("material", &c.Material, materialNames...),
		gallery.Int("brush", &c.Brush, 1, 10),
		gallery.Float("spawn_p", &c.SpawnP, 0, 1),
		gallery.Bool("spawn", &c.SpawnOnTop),
	}
}

var materialColors = [...]gallery.Color{
	Empty: gallery.Black,
	Sand:  {R: 194, G: 178, B: 128},
	Water: {R: 50, G: 100, B: 200},
	Stone: {R: 100, G: 100, B: 100},
	Wood:  {R: 139, G: 90, B: 43},
}

// FallingSand is a material automaton on a bounded grid, updated bottom-up in
// place. A per-generation mask keeps a cell from moving twice.
type FallingSand struct {
	cfg   SandConfig
	rng   *gallery.RNG
	cells *Grid
	temp  []float32
	moved []bool
	gen   int
	clock clock
}

func NewFallingSand() *FallingSand {
	return NewFallingSandWith(DefaultSandConfig())
}

func NewFallingSandWith(cfg SandConfig) *FallingSand {
	f := &FallingSand{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	f.init()
	return f
}

func (f *FallingSand) Name() string       { return "Falling Sand" }
func (f *FallingSand) Config() SandConfig { return f.cfg }
func (f *FallingSand) Generation() int    { return f.gen }
func (f *FallingSand) Grid() *Grid        { return f.cells }

// At returns the material at (x, y); off-grid reads are Stone.
func (f *FallingSand) At(x, y int) Material {
	if !f.cells.In(x, y) {
		return Stone
	}
	return Material(f.cells.Cells[f.cells.Index(x, y)])
}

// Count returns how many cells hold m.
func (f *FallingSand) Count(m Material) int { return f.cells.Count(uint8(m)) }

func (f *FallingSand) SetParameters(cfg SandConfig) {
	old := f.cfg
	f.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height {
		f.cells.Resize(max(cfg.Width, 0), max(cfg.Height, 0))
		f.temp = make([]float32, f.cells.Len())
		f.moved = make([]bool, f.cells.Len())
		for i, c := range f.cells.Cells {
			if Material(c) == Fire {
				f.temp[i] = fireTemperature
			}
		}
	}
}

func (f *FallingSand) Params() []gallery.Param {
	cfg := f.cfg
	return cfg.params()
}

func (f *FallingSand) GetParams() map[string]float64 { return gallery.Values(f.Params()) }

func (f *FallingSand) SetParam(name string, v float64) error {
	cfg := f.cfg
	if err := gallery.Assign(f.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	f.SetParameters(cfg)
	return nil
}

func (f *FallingSand) Seed(seed int64) {
	f.cfg.Seed = seed
	f.rng.Reseed(seed)
	f.init()
}

func (f *FallingSand) Reset() {
	f.rng.Restart()
	f.init()
}

func (f *FallingSand) init() {
	f.cells = NewGrid(f.cfg.Width, f.cfg.Height)
	f.temp = make([]float32, f.cells.Len())
	f.moved = make([]bool, f.cells.Len())
	f.gen = 0
	f.clock.reset()
}

// Clear empties the grid.
func (f *FallingSand) Clear() {
	f.cells.Fill(uint8(Empty))
	clear(f.temp)
}

// Place writes a single cell.
func (f *FallingSand) Place(x, y int, m Material) {
	if !f.cells.In(x, y) {
		return
	}
	i := f.cells.Index(x, y)
	f.cells.Cells[i] = uint8(m)
	f.temp[i] = 0
	if m == Fire {
		f.temp[i] = fireTemperature
	}
}

// Paint fills a size×size square whose top edge is centred on (x, y).
func (f *FallingSand) Paint(x, y, size int, m Material) {
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			f.Place(x+dx-size/2, y+dy, m)
		}
	}
}

func (f *FallingSand) swap(i, j int) {
	c := f.cells.Cells
	c[i], c[j] = c[j], c[i]
	f.temp[i], f.temp[j] = f.temp[j], f.temp[i]
	f.moved[j] = true
}

func (f *FallingSand) side() int {
	if f.rng.Bool() {
		return -1
	}
	return 1
}

func (f *FallingSand) sand(x, y int) {
	g := f.cells
	i := g.Index(x, y)
	if y+1 >= g.H {
		return
	}
	if m := f.At(x, y+1); m == Empty || m == Water {
		f.swap(i, g.Index(x, y+1))
		return
	}
	nx := x + f.side()
	if m := f.At(nx, y+1); m == Empty || m == Water {
		f.swap(i, g.Index(nx, y+1))
	}
}

func (f *FallingSand) water(x, y int) {
	g := f.cells
	i := g.Index(x, y)
	if f.At(x, y+1) == Empty {
		f.swap(i, g.Index(x, y+1))
		return
	}
	nx := x + f.side()
	if f.At(nx, y) == Empty {
		f.swap(i, g.Index(nx, y))
	}
}

func (f *FallingSand) fire(x, y int) {
	g := f.cells
	i := g.Index(x, y)
	f.temp[i]--
	if f.temp[i] <= 0 {
		g.Cells[i] = uint8(Empty)
		f.temp[i] = 0
		return
	}
	for _, o := range neighborhoodOffsets[VonNeumann] {
		nx, ny := x+o[0], y+o[1]
		if f.At(nx, ny) == Wood && f.rng.Chance(fireIgnite) {
			j := g.Index(nx, ny)
			g.Cells[j] = uint8(Fire)
			f.temp[j] = fireTemperature
			f.moved[j] = true
		}
	}
	if f.At(x, y-1) == Empty && f.rng.Chance(fireRise) {
		f.swap(i, g.Index(x, y-1))
	}
}

func (f *FallingSand) spawn() {
	if !f.cfg.SpawnOnTop || f.cells.Len() == 0 || !f.rng.Chance(f.cfg.SpawnP) {
		return
	}
	f.Paint(f.rng.IntN(f.cells.W), 0, f.cfg.Brush, f.cfg.Material)
}

// Step runs the spawner and then one generation of material updates.
func (f *FallingSand) Step() {
	g := f.cells
	f.spawn()
	clear(f.moved)
	// alternate sweep direction so sideways motion has no bias
	x0, dx := 0, 1
	if f.gen%2 == 1 {
		x0, dx = g.W-1, -1
	}
	for y := g.H - 1; y >= 0; y-- {
		for k, x := 0, x0; k < g.W; k, x = k+1, x+dx {
			i := g.Index(x, y)
			if f.moved[i] {
				continue
			}
			switch Material(g.Cells[i]) {
			case Sand:
				f.sand(x, y)
			case Water:
				f.water(x, y)
			case Fire:
				f.fire(x, y)
			}
		}
	}
	f.gen++
}

func (f *FallingSand) Tick(dt float32) {
	for n := f.clock.advance(dt, f.cfg.Speed); n > 0; n-- {
		f.Step()
	}
}

func (f *FallingSand) Compute(w, h int) gallery.PixelBuffer {
	g := f.cells
	return render(w, h, g.W, g.H, func(cx, cy int) gallery.Color {
		i := g.Index(cx, cy)
		m := Material(g.Cells[i])
		if m == Fire {
			heat := min(f.temp[i]/fireTemperature, 1)
			return gallery.Color{R: 255, G: uint8(200 * (1 - heat))}
		}
		if int(m) >= len(materialColors) {
			return gallery.Black
		}
		return materialColors[m]
	})
}
