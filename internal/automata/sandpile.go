package automata

import (
	"fmt"
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/palette"
)

type DropMode int

const (
	DropCenter DropMode = iota
	DropRandom
	DropSpiral
)

var dropModeNames = []string{"center", "random", "spiral"}

func (m DropMode) String() string {
	if m < 0 || int(m) >= len(dropModeNames) {
		return "unknown"
	}
	return dropModeNames[m]
}

type SandpileConfig struct {
	Width        int
	Height       int
	CriticalMass int
	DropRate     float64 // grains per second
	Mode         DropMode
	Seed         int64
}

func DefaultSandpileConfig() SandpileConfig {
	return SandpileConfig{Width: 150, Height: 150, CriticalMass: 4, DropRate: 10, Seed: 1}
}

func (c *SandpileConfig) params() []gallery.Param {
	return []gallery.Param{
		gallery.Int("width", &c.Width, 1, 2000),
		gallery.Int("height", &c.Height, 1, 2000),
		gallery.Int("critical_mass", &c.CriticalMass, 4, 16),
		gallery.Float("drop_rate", &c.DropRate, 0, 10000),
		gallery.Choice("mode", &c.Mode, dropModeNames...),
	}
}

var avalancheColor = gallery.Color{R: 255, G: 255}

// Sandpile is the abelian sandpile. Grains that topple off the border are
// lost, so every drop settles in finitely many topples.
type Sandpile struct {
	cfg    SandpileConfig
	rng    *gallery.RNG
	w, h   int
	height []int32
	marked []bool
	work   []int
	grains int64
	topple int64
	spiral float64
	clock  clock
}

func NewSandpile() *Sandpile {
	return NewSandpileWith(DefaultSandpileConfig())
}

func NewSandpileWith(cfg SandpileConfig) *Sandpile {
	s := &Sandpile{cfg: cfg, rng: gallery.NewRNG(cfg.Seed)}
	s.init()
	return s
}

func (s *Sandpile) Name() string           { return "Abelian Sandpile" }
func (s *Sandpile) Config() SandpileConfig { return s.cfg }
func (s *Sandpile) Size() (int, int)       { return s.w, s.h }
func (s *Sandpile) Grains() int64          { return s.grains }
func (s *Sandpile) Topples() int64         { return s.topple }

// Height returns the grain count at (x, y), or 0 off the grid.
func (s *Sandpile) Height(x, y int) int {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0
	}
	return int(s.height[y*s.w+x])
}

func (s *Sandpile) Presets() []string { return append([]string(nil), dropModeNames...) }

func (s *Sandpile) ApplyPreset(name string) error {
	for i, n := range dropModeNames {
		if n == name {
			s.cfg.Mode = DropMode(i)
			s.Reset()
			return nil
		}
	}
	return fmt.Errorf("unknown drop mode: %s", name)
}

func (s *Sandpile) SetParameters(cfg SandpileConfig) {
	old := s.cfg
	cfg.CriticalMass = min(max(cfg.CriticalMass, 4), 16)
	s.cfg = cfg
	if cfg.Width != old.Width || cfg.Height != old.Height || cfg.Mode != old.Mode {
		s.Reset()
		return
	}
	if cfg.CriticalMass < old.CriticalMass {
		s.enqueueAll()
		s.Topple()
	}
}

func (s *Sandpile) Params() []gallery.Param {
	cfg := s.cfg
	return cfg.params()
}

func (s *Sandpile) GetParams() map[string]float64 { return gallery.Values(s.Params()) }

func (s *Sandpile) SetParam(name string, v float64) error {
	cfg := s.cfg
	if err := gallery.Assign(s.Name(), cfg.params(), name, v); err != nil {
		return err
	}
	s.SetParameters(cfg)
	return nil
}

func (s *Sandpile) Seed(seed int64) {
	s.cfg.Seed = seed
	s.rng.Reseed(seed)
	s.init()
}

func (s *Sandpile) Reset() {
	s.rng.Restart()
	s.init()
}

func (s *Sandpile) init() {
	s.w, s.h = max(s.cfg.Width, 0), max(s.cfg.Height, 0)
	if s.w == 0 || s.h == 0 {
		s.w, s.h = 0, 0
	}
	s.cfg.CriticalMass = min(max(s.cfg.CriticalMass, 4), 16)
	s.height = make([]int32, s.w*s.h)
	s.marked = make([]bool, s.w*s.h)
	s.work = s.work[:0]
	s.grains, s.topple, s.spiral = 0, 0, 0
	s.clock.reset()
}

// AddGrain drops one grain at (x, y) without toppling. Off-grid drops are
// ignored.
func (s *Sandpile) AddGrain(x, y int) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	i := y*s.w + x
	s.height[i]++
	s.grains++
	if int(s.height[i]) >= s.cfg.CriticalMass {
		s.work = append(s.work, i)
	}
}

func (s *Sandpile) enqueueAll() {
	for i, v := range s.height {
		if int(v) >= s.cfg.CriticalMass {
			s.work = append(s.work, i)
		}
	}
}

// Topple relaxes the pile until no cell holds the critical mass and returns
// how many topplings happened. Cells that toppled are marked for the next
// Compute.
func (s *Sandpile) Topple() int {
	crit := int32(s.cfg.CriticalMass)
	share := crit / 4
	n := 0
	for len(s.work) > 0 {
		i := s.work[len(s.work)-1]
		s.work = s.work[:len(s.work)-1]
		v := s.height[i]
		if v < crit {
			continue
		}
		k := v / crit
		s.height[i] -= k * crit
		s.marked[i] = true
		n += int(k)

		x, y := i%s.w, i/s.w
		for _, o := range neighborhoodOffsets[VonNeumann] {
			nx, ny := x+o[0], y+o[1]
			if nx < 0 || ny < 0 || nx >= s.w || ny >= s.h {
				continue
			}
			j := ny*s.w + nx
			before := s.height[j]
			s.height[j] += k * share
			if before < crit && s.height[j] >= crit {
				s.work = append(s.work, j)
			}
		}
	}
	s.topple += int64(n)
	return n
}

func (s *Sandpile) dropSite() (int, int) {
	switch s.cfg.Mode {
	case DropRandom:
		return s.rng.IntN(s.w), s.rng.IntN(s.h)
	case DropSpiral:
		s.spiral += 0.1
		r := float64(min(s.w, s.h)) / 4
		x := s.w/2 + int(math.Round(r*math.Cos(s.spiral)))
		y := s.h/2 + int(math.Round(r*math.Sin(s.spiral)))
		return x, y
	default:
		return s.w / 2, s.h / 2
	}
}

// Step drops one grain at the mode's site and topples to quiescence.
func (s *Sandpile) Step() {
	if len(s.height) == 0 {
		return
	}
	clear(s.marked)
	s.AddGrain(s.dropSite())
	s.Topple()
}

func (s *Sandpile) Tick(dt float32) {
	n := s.clock.advance(dt, s.cfg.DropRate)
	if n == 0 {
		return
	}
	clear(s.marked)
	for ; n > 0; n-- {
		s.AddGrain(s.dropSite())
		s.Topple()
	}
}

func (s *Sandpile) Compute(w, h int) gallery.PixelBuffer {
	crit := float64(s.cfg.CriticalMass - 1)
	return render(w, h, s.w, s.h, func(cx, cy int) gallery.Color {
		i := cy*s.w + cx
		if s.marked[i] {
			return avalancheColor
		}
		v := s.height[i]
		if v == 0 {
			return gallery.Black
		}
		return palette.Fire.MapClamped(float64(v) / crit)
	})
}
