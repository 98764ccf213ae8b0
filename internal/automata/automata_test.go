package automata_test

import (
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simgallery/internal/automata"
	"github.com/san-kum/simgallery/internal/gallery"
)

type automaton interface {
	gallery.RasterSimulation
	gallery.Animated
	gallery.Resettable
	Step()
}

var _ = Describe("every automaton", func() {
	kernels := []struct {
		name string
		mk   func() automaton
	}{
		{"life", func() automaton { return automata.NewLife() }},
		{"elementary", func() automaton { return automata.NewElementary() }},
		{"cyclic", func() automaton { return automata.NewCyclic() }},
		{"brain", func() automaton { return automata.NewBriansBrain() }},
		{"ant", func() automaton { return automata.NewAnt() }},
		{"sandpile", func() automaton { return automata.NewSandpile() }},
		{"sand", func() automaton { return automata.NewFallingSand() }},
		{"gray-scott", func() automaton { return automata.NewGrayScott() }},
		{"dla", func() automaton { return automata.NewDLA() }},
		{"slime", func() automaton { return automata.NewSlime() }},
	}

	for _, k := range kernels {
		name, mk := k.name, k.mk
		It(name+" renders the requested size", func() {
			s := mk()
			Expect(s.Compute(64, 48).Pix).To(HaveLen(64 * 48))
			Expect(s.Compute(0, 10).Empty()).To(BeTrue())
		})

		It(name+" replays from the start on reset", func() {
			s := mk()
			initial := s.Compute(40, 30)
			for i := 0; i < 5; i++ {
				s.Step()
			}
			s.Reset()
			Expect(s.Compute(40, 30).Pix).To(Equal(initial.Pix))
		})

		It(name+" ignores degenerate deltas", func() {
			s := mk()
			before := s.Compute(40, 30)
			for _, dt := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
				s.Tick(dt)
			}
			Expect(s.Compute(40, 30).Pix).To(Equal(before.Pix))
		})
	}
})

var _ = Describe("Grid", func() {
	It("wraps toroidally", func() {
		g := automata.NewGrid(10, 5)
		g.Set(9, 2, 1)
		Expect(g.At(-1, 2)).To(Equal(uint8(1)))
		Expect(g.At(9, 7)).To(Equal(uint8(1)))
		Expect(automata.CountNeighbors(g, 0, 2, automata.Moore, func(v uint8) bool { return v == 1 }, true)).To(Equal(1))
		Expect(automata.CountNeighbors(g, 0, 2, automata.Moore, func(v uint8) bool { return v == 1 }, false)).To(Equal(0))
	})

	It("keeps W*H cells across resizes", func() {
		g := automata.NewGrid(4, 4)
		g.Set(1, 1, 7)
		for _, sz := range [][2]int{{8, 3}, {2, 9}, {5, 5}, {0, 3}, {3, 3}} {
			g.Resize(sz[0], sz[1])
			Expect(g.Len()).To(Equal(g.W * g.H))
		}
		g = automata.NewGrid(4, 4)
		g.Set(1, 1, 7)
		g.Resize(6, 2)
		Expect(g.At(1, 1)).To(Equal(uint8(7)))
	})

	It("drops out of range writes", func() {
		g := automata.NewGrid(3, 3)
		g.Set(3, 0, 1)
		g.Set(-1, 0, 1)
		Expect(g.Count(1)).To(Equal(0))
	})

	It("counts 4, 8 and 12 neighbors", func() {
		Expect(automata.VonNeumann.Offsets()).To(HaveLen(4))
		Expect(automata.Moore.Offsets()).To(HaveLen(8))
		Expect(automata.Extended.Offsets()).To(HaveLen(12))
	})
})

var _ = Describe("Rule", func() {
	DescribeTable("parsing",
		func(in string, birth, survive uint16) {
			r, err := automata.ParseRule(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Birth).To(Equal(birth))
			Expect(r.Survive).To(Equal(survive))
		},
		Entry("conway", "B3/S23", uint16(1<<3), uint16(1<<2|1<<3)),
		Entry("lower case", "b36/s23", uint16(1<<3|1<<6), uint16(1<<2|1<<3)),
		Entry("reversed", "S23/B3", uint16(1<<3), uint16(1<<2|1<<3)),
		Entry("empty survival", "B2/S", uint16(1<<2), uint16(0)),
	)

	DescribeTable("rejecting",
		func(in string) {
			_, err := automata.ParseRule(in)
			Expect(err).To(HaveOccurred())
		},
		Entry("no slash", "B3S23"),
		Entry("count 9", "B9/S23"),
		Entry("repeated part", "B3/B2"),
		Entry("empty", ""),
	)

	It("round trips through String", func() {
		for _, name := range automata.RuleNames() {
			r, ok := automata.LookupRule(name)
			Expect(ok).To(BeTrue())
			Expect(automata.MustParseRule(r.String())).To(Equal(r))
		}
	})

	DescribeTable("Conway transitions",
		func(alive bool, n int, want bool) {
			Expect(automata.MustParseRule("B3/S23").NextState(alive, n)).To(Equal(want))
		},
		Entry("dead with 3 is born", false, 3, true),
		Entry("dead with 2 stays dead", false, 2, false),
		Entry("live with 2 survives", true, 2, true),
		Entry("live with 3 survives", true, 3, true),
		Entry("live with 1 dies", true, 1, false),
		Entry("live with 4 dies", true, 4, false),
		Entry("out of range count", true, 9, false),
	)
})

var _ = Describe("Life", func() {
	It("oscillates a blinker with period 2", func() {
		l := automata.NewLife()
		Expect(l.SetPattern("blinker")).To(Succeed())
		start := slices.Clone(l.Grid().Cells)

		l.Step()
		Expect(l.Grid().Cells).NotTo(Equal(start))
		Expect(l.Population()).To(Equal(3))
		l.Step()
		Expect(l.Grid().Cells).To(Equal(start))
		Expect(l.Generation()).To(Equal(2))
	})

	It("wraps a blinker across the edge", func() {
		cfg := automata.DefaultLifeConfig()
		cfg.Width, cfg.Height = 8, 8
		cfg.Pattern = slices.Index(automata.PatternNames(), "random")
		cfg.Density = 0
		l := automata.NewLifeWith(cfg)
		l.Toggle(7, 4)
		l.Toggle(0, 4)
		l.Toggle(1, 4)
		l.Step()
		g := l.Grid()
		Expect(g.At(0, 3)).To(Equal(uint8(1)))
		Expect(g.At(0, 5)).To(Equal(uint8(1)))
		Expect(l.Population()).To(Equal(3))
	})

	It("switches rules by preset and string", func() {
		l := automata.NewLife()
		Expect(l.ApplyPreset("highlife")).To(Succeed())
		Expect(l.Rule().String()).To(Equal("B36/S23"))
		Expect(l.SetRule("B1/S1")).To(Succeed())
		Expect(l.SetRule("nonsense")).NotTo(Succeed())
		Expect(l.ApplyPreset("nope")).NotTo(Succeed())
	})

	It("caps generations per tick", func() {
		l := automata.NewLife()
		l.Tick(10)
		Expect(l.Generation()).To(Equal(1))
		for i := 0; i < 60; i++ {
			l.Tick(float32(gallery.ReferenceFrame))
		}
		Expect(l.Generation()).To(BeNumerically("~", 11, 1))
	})
})

var _ = Describe("Elementary", func() {
	It("grows rule 90 as a Sierpinski triangle", func() {
		e := automata.NewElementaryRule(90)
		c := e.Config().Width / 2
		e.Step()
		row := e.Row(1)
		Expect(row[c-1]).To(Equal(uint8(1)))
		Expect(row[c]).To(Equal(uint8(0)))
		Expect(row[c+1]).To(Equal(uint8(1)))
	})

	It("applies the Wolfram numbering", func() {
		e := automata.NewElementaryRule(30)
		want := []uint8{0, 1, 1, 1, 1, 0, 0, 0}
		for idx, w := range want {
			l, c, r := uint8(idx>>2&1), uint8(idx>>1&1), uint8(idx&1)
			Expect(e.Apply(l, c, r)).To(Equal(w), "neighborhood %03b", idx)
		}
	})

	It("scrolls once the history is full", func() {
		cfg := automata.DefaultElementaryConfig()
		cfg.History = 3
		e := automata.NewElementaryWith(cfg)
		for i := 0; i < 5; i++ {
			e.Step()
		}
		Expect(e.Rows()).To(Equal(3))
		Expect(e.Generation()).To(Equal(5))
	})

	It("keeps stepping with a single history row", func() {
		e := automata.NewElementaryRule(90)
		Expect(e.SetParam("history", 1)).To(Succeed())
		c := e.Config().Width / 2
		Expect(func() { e.Step() }).NotTo(Panic())
		Expect(e.Rows()).To(Equal(1))
		row := e.Row(0)
		Expect(row[c-1]).To(Equal(uint8(1)))
		Expect(row[c]).To(Equal(uint8(0)))
		Expect(row[c+1]).To(Equal(uint8(1)))
		Expect(func() { e.Tick(1) }).NotTo(Panic())
	})
})

var _ = Describe("Cyclic", func() {
	It("only ever advances a cell by one state", func() {
		c := automata.NewCyclic()
		k := c.Config().States
		before := slices.Clone(c.Grid().Cells)
		c.Step()
		for i, s := range c.Grid().Cells {
			Expect(s == before[i] || int(s) == (int(before[i])+1)%k).To(BeTrue())
		}
	})

	It("accepts every seed layout", func() {
		c := automata.NewCyclic()
		for _, name := range c.Presets() {
			Expect(c.ApplyPreset(name)).To(Succeed())
			for _, s := range c.Grid().Cells {
				Expect(int(s)).To(BeNumerically("<", c.Config().States))
			}
		}
	})
})

var _ = Describe("BriansBrain", func() {
	It("sends every firing cell through dying to off", func() {
		b := automata.NewBriansBrain()
		first := slices.Clone(b.Grid().Cells)
		b.Step()
		second := slices.Clone(b.Grid().Cells)
		b.Step()
		for i := range first {
			if first[i] == 1 {
				Expect(second[i]).To(Equal(uint8(2)))
				Expect(b.Grid().Cells[i]).To(Equal(uint8(0)))
			}
		}
	})
})

var _ = Describe("Ant", func() {
	small := func(edge automata.Edge) *automata.Ant {
		return automata.NewAntWith(automata.AntConfig{Width: 5, Height: 5, Speed: 100, Edge: edge})
	}

	It("turns right on white, flips, then turns left on black", func() {
		a := small(automata.EdgeWrap)
		a.Step()
		x, y, h := a.Position()
		Expect([]int{x, y}).To(Equal([]int{3, 2}))
		Expect(h).To(Equal(automata.Right))
		Expect(a.Grid().At(2, 2)).To(Equal(uint8(1)))

		for i := 0; i < 3; i++ {
			a.Step()
		}
		x, y, h = a.Position()
		Expect([]int{x, y}).To(Equal([]int{2, 2}))
		Expect(h).To(Equal(automata.Up))

		a.Step()
		x, y, h = a.Position()
		Expect(h).To(Equal(automata.Left))
		Expect([]int{x, y}).To(Equal([]int{1, 2}))
		Expect(a.Grid().At(2, 2)).To(Equal(uint8(0)))
	})

	It("wraps or bounces at the edge", func() {
		w := automata.NewAntWith(automata.AntConfig{Width: 1, Height: 1, Edge: automata.EdgeWrap})
		w.Step()
		x, y, h := w.Position()
		Expect([]int{x, y}).To(Equal([]int{0, 0}))
		Expect(h).To(Equal(automata.Right))

		b := automata.NewAntWith(automata.AntConfig{Width: 1, Height: 1, Edge: automata.EdgeBounce})
		b.Step()
		x, y, h = b.Position()
		Expect([]int{x, y}).To(Equal([]int{0, 0}))
		Expect(h).To(Equal(automata.Left))
	})
})

var _ = Describe("Sandpile", func() {
	It("topples to a stable state and stays there", func() {
		s := automata.NewSandpile()
		w, h := s.Size()
		for i := 0; i < 500; i++ {
			s.AddGrain(w/2, h/2)
		}
		Expect(s.Topple()).To(BeNumerically(">", 0))
		Expect(s.Topple()).To(Equal(0))
		total := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				Expect(s.Height(x, y)).To(BeNumerically("<", s.Config().CriticalMass))
				total += s.Height(x, y)
			}
		}
		Expect(total).To(Equal(500))
	})

	It("sheds grains off the border", func() {
		s := automata.NewSandpileWith(automata.SandpileConfig{Width: 3, Height: 3, CriticalMass: 4, DropRate: 10})
		for i := 0; i < 100; i++ {
			s.AddGrain(1, 1)
			s.Topple()
		}
		total := 0
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				total += s.Height(x, y)
			}
		}
		Expect(total).To(BeNumerically("<", 100))
		Expect(total).To(BeNumerically("<=", 9*3))
	})

	It("is order independent", func() {
		a, b := automata.NewSandpile(), automata.NewSandpile()
		sites := [][2]int{{70, 70}, {71, 70}, {70, 71}, {75, 75}}
		for i := 0; i < 40; i++ {
			for _, p := range sites {
				a.AddGrain(p[0], p[1])
			}
		}
		a.Topple()
		for i := len(sites) - 1; i >= 0; i-- {
			for j := 0; j < 40; j++ {
				b.AddGrain(sites[i][0], sites[i][1])
				b.Topple()
			}
		}
		w, h := a.Size()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				Expect(a.Height(x, y)).To(Equal(b.Height(x, y)))
			}
		}
	})

	It("clamps critical mass to a stable range", func() {
		s := automata.NewSandpile()
		Expect(s.SetParam("critical_mass", 2)).To(MatchError(gallery.ErrParameterBounds))
		Expect(s.SetParam("critical_mass", 8)).To(Succeed())
		Expect(s.Config().CriticalMass).To(Equal(8))
	})
})

var _ = Describe("FallingSand", func() {
	quiet := func() *automata.FallingSand {
		cfg := automata.DefaultSandConfig()
		cfg.Width, cfg.Height = 20, 20
		cfg.SpawnOnTop = false
		return automata.NewFallingSandWith(cfg)
	}

	It("drops sand to the floor", func() {
		f := quiet()
		f.Place(5, 0, automata.Sand)
		for i := 0; i < 30; i++ {
			f.Step()
		}
		Expect(f.At(5, 19)).To(Equal(automata.Sand))
		Expect(f.Count(automata.Sand)).To(Equal(1))
	})

	It("lets sand sink through water", func() {
		f := quiet()
		f.Place(5, 19, automata.Water)
		f.Place(5, 18, automata.Sand)
		f.Step()
		Expect(f.At(5, 19)).To(Equal(automata.Sand))
		Expect(f.Count(automata.Water)).To(Equal(1))
	})

	It("conserves sand and water", func() {
		f := quiet()
		f.Paint(10, 0, 5, automata.Sand)
		f.Paint(10, 8, 4, automata.Water)
		sand, water := f.Count(automata.Sand), f.Count(automata.Water)
		for i := 0; i < 100; i++ {
			f.Step()
		}
		Expect(f.Count(automata.Sand)).To(Equal(sand))
		Expect(f.Count(automata.Water)).To(Equal(water))
	})

	It("keeps stone in place and burns fire out", func() {
		f := quiet()
		f.Place(3, 3, automata.Stone)
		f.Place(10, 10, automata.Fire)
		for i := 0; i < 100; i++ {
			f.Step()
		}
		Expect(f.At(3, 3)).To(Equal(automata.Stone))
		Expect(f.Count(automata.Fire)).To(Equal(0))
	})

	It("spawns the selected material", func() {
		f := automata.NewFallingSand()
		Expect(f.SetParam("spawn_p", 1)).To(Succeed())
		f.Step()
		Expect(f.Count(automata.Sand)).To(BeNumerically(">", 0))
	})

	It("selects the spawned material through its parameter", func() {
		f := quiet()
		Expect(f.SetParam("material", float64(automata.Water))).To(Succeed())
		Expect(f.Config().Material).To(Equal(automata.Water))
		Expect(f.GetParams()["material"]).To(Equal(float64(automata.Water)))
		Expect(f.SetParam("material", 9)).NotTo(Succeed())
	})

	It("parses material names", func() {
		m, err := automata.ParseMaterial("wood")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(automata.Wood))
		_, err = automata.ParseMaterial("lava")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("GrayScott", func() {
	It("keeps concentrations in [0, 1]", func() {
		g := automata.NewGrayScott()
		for i := 0; i < 20; i++ {
			g.Step()
		}
		a, b := g.Concentrations()
		for i := range a {
			Expect(a[i]).To(BeNumerically(">=", 0))
			Expect(a[i]).To(BeNumerically("<=", 1))
			Expect(b[i]).To(BeNumerically(">=", 0))
			Expect(b[i]).To(BeNumerically("<=", 1))
		}
	})

	It("applies named presets", func() {
		g := automata.NewGrayScott()
		Expect(g.Presets()).To(ContainElements("coral", "maze"))
		Expect(g.ApplyPreset("waves")).To(Succeed())
		Expect(g.Config().Feed).To(BeNumerically("~", 0.014, 1e-6))
		Expect(g.ApplyPreset("nope")).NotTo(Succeed())
	})
})

var _ = Describe("DLA", func() {
	small := func() automata.DLAConfig {
		cfg := automata.DefaultDLAConfig()
		cfg.Width, cfg.Height = 64, 64
		cfg.MaxParticles = 150
		return cfg
	}

	It("stops growing at the particle limit", func() {
		d := automata.NewDLAWith(small())
		for i := 0; i < 3000 && !d.Done(); i++ {
			d.Step()
		}
		Expect(d.Stuck()).To(BeNumerically(">", 1))
		Expect(d.Stuck()).To(BeNumerically("<=", 150))
		Expect(d.Grid().Count(1)).To(Equal(d.Stuck()))
		d.Tick(1)
		Expect(d.Stuck()).To(BeNumerically("<=", 150))
	})

	It("attaches every walker to an older cell", func() {
		d := automata.NewDLAWith(small())
		for i := 0; i < 500; i++ {
			d.Step()
		}
		g := d.Grid()
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				age := d.Age(x, y)
				if age <= 0 {
					continue
				}
				older := false
				for _, o := range automata.Moore.Offsets() {
					if n := d.Age(x+o[0], y+o[1]); n >= 0 && n < age {
						older = true
					}
				}
				Expect(older).To(BeTrue(), "cell (%d, %d) aged %d has no older neighbor", x, y, age)
			}
		}
	})

	It("is reproducible for a seed", func() {
		a, b := automata.NewDLAWith(small()), automata.NewDLAWith(small())
		for i := 0; i < 200; i++ {
			a.Step()
			b.Step()
		}
		Expect(a.Grid().Cells).To(Equal(b.Grid().Cells))
		b.Seed(99)
		Expect(b.Stuck()).To(Equal(1))
	})

	DescribeTable("seed shapes",
		func(seed string, stuck int) {
			d := automata.NewDLA()
			Expect(d.ApplyPreset(seed)).To(Succeed())
			Expect(d.Stuck()).To(Equal(stuck))
			Expect(d.Grid().Count(1)).To(Equal(stuck))
		},
		Entry("point", "point", 1),
		Entry("line", "line", 40),
		Entry("cross", "cross", 37),
	)

	It("rings the centre with the circle seed", func() {
		d := automata.NewDLA()
		Expect(d.ApplyPreset("circle")).To(Succeed())
		Expect(d.Stuck()).To(BeNumerically(">", 50))
		Expect(d.Radius()).To(BeNumerically("~", 15, 1))
		Expect(d.ApplyPreset("spiral")).NotTo(Succeed())
	})

	It("leaves grids too small to walk alone", func() {
		cfg := automata.DefaultDLAConfig()
		cfg.Width, cfg.Height = 2, 2
		d := automata.NewDLAWith(cfg)
		Expect(func() {
			d.Step()
			d.Tick(1)
		}).NotTo(Panic())
		Expect(d.Stuck()).To(Equal(1))
	})
})

var _ = Describe("Slime", func() {
	small := func() automata.SlimeConfig {
		cfg := automata.DefaultSlimeConfig()
		cfg.Width, cfg.Height = 80, 60
		cfg.Agents = 400
		cfg.SpawnRadius = 20
		return cfg
	}

	It("keeps the trail within [0, 255]", func() {
		cfg := small()
		cfg.Deposit = 255
		cfg.Decay = 0
		s := automata.NewSlimeWith(cfg)
		for i := 0; i < 30; i++ {
			s.Step()
		}
		for _, v := range s.Trail() {
			Expect(v).To(BeNumerically(">=", 0))
			Expect(v).To(BeNumerically("<=", 255))
		}
		Expect(slices.Max(s.Trail())).To(BeNumerically(">", 0))
	})

	It("keeps agents on the field", func() {
		s := automata.NewSlimeWith(small())
		for i := 0; i < 100; i++ {
			s.Step()
		}
		Expect(s.Agents()).To(HaveLen(400))
		for _, a := range s.Agents() {
			Expect(a[0]).To(BeNumerically(">=", 0))
			Expect(a[0]).To(BeNumerically("<", 80))
			Expect(a[1]).To(BeNumerically(">=", 0))
			Expect(a[1]).To(BeNumerically("<", 60))
		}
	})

	It("wipes the trail at full decay", func() {
		cfg := small()
		cfg.Decay = 1
		s := automata.NewSlimeWith(cfg)
		s.Step()
		Expect(slices.Max(s.Trail())).To(BeZero())
	})

	It("lays no trail without agents", func() {
		cfg := small()
		cfg.Agents = 0
		s := automata.NewSlimeWith(cfg)
		for i := 0; i < 10; i++ {
			s.Step()
		}
		Expect(s.Agents()).To(BeEmpty())
		Expect(slices.Max(s.Trail())).To(BeZero())
		Expect(s.Generation()).To(Equal(10))
	})

	It("is reproducible for a seed", func() {
		a, b := automata.NewSlimeWith(small()), automata.NewSlimeWith(small())
		for i := 0; i < 20; i++ {
			a.Step()
			b.Step()
		}
		Expect(a.Trail()).To(Equal(b.Trail()))
		Expect(a.Agents()).To(Equal(b.Agents()))
	})

	It("rebuilds the swarm when the agent count changes", func() {
		s := automata.NewSlimeWith(small())
		Expect(s.SetParam("agents", 50)).To(Succeed())
		Expect(s.Agents()).To(HaveLen(50))
		Expect(s.SetParam("decay", 2)).NotTo(Succeed())
	})
})
