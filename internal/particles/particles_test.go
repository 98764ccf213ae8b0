package particles_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/particles"
)

const frame = float32(gallery.ReferenceFrame)

func stepN(s gallery.PointCloudSimulation, n int) {
	for i := 0; i < n; i++ {
		s.Step(frame)
	}
}

func expectInBox(points []gallery.Point3, half float32) {
	for _, p := range points {
		for axis := 0; axis < 3; axis++ {
			Expect(p[axis]).To(BeNumerically(">=", -half), "point %v", p)
			Expect(p[axis]).To(BeNumerically("<=", half), "point %v", p)
		}
	}
}

func expectFinite(points []gallery.Point3) {
	for _, p := range points {
		for _, c := range p {
			Expect(math.IsNaN(float64(c)) || math.IsInf(float64(c), 0)).To(BeFalse(), "point %v", p)
		}
	}
}

var _ = Describe("every particle kernel", func() {
	kernels := []struct {
		name string
		mk   func() gallery.PointCloudSimulation
	}{
		{"sph", func() gallery.PointCloudSimulation { return particles.NewSPHWith(smallSPH()) }},
		{"nbody", func() gallery.PointCloudSimulation { return particles.NewNBody() }},
		{"boids", func() gallery.PointCloudSimulation { return particles.NewBoids() }},
		{"magnetic", func() gallery.PointCloudSimulation { return particles.NewMagneticField() }},
		{"vortex", func() gallery.PointCloudSimulation { return particles.NewVortex() }},
		{"galaxy", func() gallery.PointCloudSimulation { return particles.NewGalaxy() }},
		{"flow", func() gallery.PointCloudSimulation { return particles.NewFlowField() }},
	}

	for _, k := range kernels {
		name, mk := k.name, k.mk
		It(name+" is reproducible for a fixed seed", func() {
			a, b := mk(), mk()
			stepN(a, 20)
			stepN(b, 20)
			Expect(a.Points()).To(Equal(b.Points()))
			expectFinite(a.Points())
		})

		It(name+" replays its initial state on reset", func() {
			s := mk()
			initial := s.Points()
			stepN(s, 10)
			s.Reset()
			Expect(s.Points()).To(Equal(initial))
		})

		It(name+" ignores degenerate deltas", func() {
			s := mk()
			before := s.Points()
			for _, dt := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
				s.Step(dt)
			}
			Expect(s.Points()).To(Equal(before))
		})

		It(name+" rejects unknown parameters", func() {
			s := mk().(gallery.Configurable)
			err := s.SetParam("no_such_param", 1)
			Expect(errors.Is(err, gallery.ErrUnknownParam)).To(BeTrue())
		})

		It(name+" diverges from another seed", func() {
			a, b := mk(), mk()
			b.(gallery.Seeded).Seed(99)
			stepN(a, 2)
			stepN(b, 2)
			Expect(a.Points()).NotTo(Equal(b.Points()))
		})
	}
})

var _ = Describe("a kernel with no particles", func() {
	empty := []struct {
		name  string
		mk    func() gallery.PointCloudSimulation
		fixed int // sources drawn regardless of the particle count
	}{
		{"sph", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultSPHConfig()
			cfg.Particles = 0
			return particles.NewSPHWith(cfg)
		}, 0},
		{"boids", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultBoidsConfig()
			cfg.Count = 0
			return particles.NewBoidsWith(cfg)
		}, 0},
		{"flow", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultFlowConfig()
			cfg.Particles = 0
			return particles.NewFlowFieldWith(cfg)
		}, 0},
		{"galaxy", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultGalaxyConfig()
			cfg.StarsPerArm, cfg.CoreStars = 0, 0
			return particles.NewGalaxyWith(cfg)
		}, 0},
		{"magnetic", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultMagneticConfig()
			cfg.Particles = 0
			return particles.NewMagneticFieldWith(cfg)
		}, 2},
		{"vortex", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultVortexConfig()
			cfg.Particles = 0
			return particles.NewVortexWith(cfg)
		}, 3},
		{"nbody", func() gallery.PointCloudSimulation {
			cfg := particles.DefaultNBodyConfig()
			cfg.Bodies = 0
			return particles.NewNBodyWith(cfg)
		}, 1},
	}

	for _, k := range empty {
		name, mk, fixed := k.name, k.mk, k.fixed
		It(name+" emits only its fixed sources", func() {
			s := mk()
			Expect(s.Points()).To(HaveLen(fixed))
			stepN(s, 10)
			Expect(s.Points()).To(HaveLen(fixed))
			expectFinite(s.Points())
			s.Reset()
			Expect(s.Points()).To(HaveLen(fixed))
		})
	}
})

func smallSPH() particles.SPHConfig {
	cfg := particles.DefaultSPHConfig()
	cfg.Particles = 125
	return cfg
}

var _ = Describe("SPH", func() {
	It("starts with the configured particle count", func() {
		Expect(particles.NewSPHWith(smallSPH()).ParticleCount()).To(Equal(125))
	})

	DescribeTable("keeps particles inside the box",
		func(policy particles.Boundary) {
			cfg := smallSPH()
			cfg.Policy = policy
			cfg.Gravity = 20
			s := particles.NewSPHWith(cfg)
			for i := 0; i < 50; i++ {
				s.Step(frame * 4)
				expectInBox(s.Points(), cfg.Boundary/2)
			}
		},
		Entry("bounce", particles.Bounce),
		Entry("wrap", particles.Wrap),
	)

	It("never drops density below rest density", func() {
		s := particles.NewSPHWith(smallSPH())
		stepN(s, 5)
		for _, d := range s.Densities() {
			Expect(d).To(BeNumerically(">=", smallSPH().RestDensity))
		}
	})

	It("applies named presets", func() {
		s := particles.NewSPHWith(smallSPH())
		Expect(s.Presets()).To(ConsistOf("gas-cloud", "honey", "water-drop"))
		Expect(s.ApplyPreset("honey")).To(Succeed())
		Expect(s.Config().Viscosity).To(BeNumerically("==", 1.5))
		Expect(s.ApplyPreset("lava")).NotTo(Succeed())
	})

	It("reseeds when the particle count changes", func() {
		s := particles.NewSPHWith(smallSPH())
		Expect(s.SetParam("particles", 64)).To(Succeed())
		Expect(s.ParticleCount()).To(Equal(64))
		Expect(errors.Is(s.SetParam("viscosity", 9), gallery.ErrParameterBounds)).To(BeTrue())
	})
})

var _ = Describe("NBody", func() {
	It("spawns a central mass plus the configured bodies", func() {
		Expect(particles.NewNBody().BodyCount()).To(Equal(101))
	})

	It("pins the central body", func() {
		n := particles.NewNBody()
		stepN(n, 30)
		Expect(n.Points()[0]).To(Equal(gallery.Point3{}))
	})

	It("conserves momentum in the binary layout", func() {
		n := particles.NewNBody()
		Expect(n.ApplyPreset("binary")).To(Succeed())
		Expect(n.BodyCount()).To(Equal(32))

		before := n.Momentum()
		stepN(n, 120)
		after := n.Momentum()
		Expect(after.Sub(before).Len()).To(BeNumerically("<", 1e-2))
	})

	It("keeps energy nearly constant over short runs", func() {
		n := particles.NewNBody()
		Expect(n.ApplyPreset("binary")).To(Succeed())
		e0 := n.Energy()
		stepN(n, 10)
		Expect(math.Abs(n.Energy()-e0) / math.Abs(e0)).To(BeNumerically("<", 0.01))
	})

	It("bounds every trail", func() {
		cfg := particles.DefaultNBodyConfig()
		cfg.Bodies, cfg.TrailLength = 5, 4
		n := particles.NewNBodyWith(cfg)
		stepN(n, 40)
		// center body has no trail because it is pinned
		Expect(n.Points()).To(HaveLen(1 + 5*(1+4)))
	})

	It("never runs unsoftened", func() {
		cfg := particles.DefaultNBodyConfig()
		cfg.Softening = 0
		n := particles.NewNBodyWith(cfg)
		Expect(n.Config().Softening).To(BeNumerically(">=", 0.01))

		cfg = n.Config()
		cfg.Softening = float32(math.NaN())
		n.SetParameters(cfg)
		Expect(n.Config().Softening).To(BeNumerically(">=", 0.01))

		cfg.Softening = -3
		n.SetParameters(cfg)
		Expect(n.Config().Softening).To(BeNumerically(">=", 0.01))
		stepN(n, 20)
		expectFinite(n.Points())
		Expect(math.IsNaN(n.Energy())).To(BeFalse())
	})

	It("seeds different orbits", func() {
		a, b := particles.NewNBody(), particles.NewNBody()
		b.Seed(7)
		Expect(a.Points()[1:]).NotTo(Equal(b.Points()[1:]))
	})
})

var _ = Describe("Boids", func() {
	It("wraps a periodic flock inside the cube", func() {
		cfg := particles.DefaultBoidsConfig()
		cfg.Policy = particles.Wrap
		cfg.MaxSpeed = 10
		b := particles.NewBoidsWith(cfg)
		for i := 0; i < 200; i++ {
			b.Step(frame)
			expectInBox(b.Points(), cfg.BoundRadius)
		}
	})

	It("switches boundary policy through parameters", func() {
		b := particles.NewBoids()
		Expect(b.GetParams()["boundary_policy"]).To(BeNumerically("==", 0))
		Expect(b.SetParam("boundary_policy", 1)).To(Succeed())
		Expect(b.Config().Policy).To(Equal(particles.Wrap))
	})

	It("reports a polarization between zero and one", func() {
		b := particles.NewBoids()
		stepN(b, 100)
		Expect(b.Polarization()).To(And(BeNumerically(">=", 0), BeNumerically("<=", 1)))
		Expect(b.Count()).To(Equal(50))
	})
})

var _ = Describe("MagneticField", func() {
	DescribeTable("builds magnet layouts",
		func(magnets, want int) {
			cfg := particles.DefaultMagneticConfig()
			cfg.Magnets = magnets
			Expect(particles.NewMagneticFieldWith(cfg).MagnetCount()).To(Equal(want))
		},
		Entry("monopole", 1, 1),
		Entry("dipole", 2, 2),
		Entry("triangle", 3, 3),
		Entry("quadrupole", 4, 4),
	)

	It("respawns particles that stray too far", func() {
		m := particles.NewMagneticField()
		limit := 2 * m.Config().SpawnRadius
		for i := 0; i < 300; i++ {
			m.Step(frame * 4)
			for _, p := range m.Points() {
				Expect(p.Len()).To(BeNumerically("<=", limit*1.0001))
			}
		}
	})

	It("clamps the field strength", func() {
		m := particles.NewMagneticField()
		f := m.Field(gallery.Point3{-10, 0.01, 0})
		Expect(f.Len()).To(BeNumerically("<=", m.Config().FieldStrength*1.0001))
	})
})

var _ = Describe("Vortex", func() {
	It("expires tracers that outlive their lifetime", func() {
		cfg := particles.DefaultVortexConfig()
		cfg.SpawnRate = 0
		cfg.Lifetime = 0.5
		v := particles.NewVortexWith(cfg)
		stepN(v, 60)
		Expect(v.ParticleCount()).To(Equal(0))
	})

	It("never exceeds the configured population", func() {
		v := particles.NewVortex()
		for i := 0; i < 100; i++ {
			v.Step(frame)
			Expect(v.ParticleCount()).To(BeNumerically("<=", v.Config().Particles))
		}
	})

	It("lifts tracers above the cores", func() {
		v := particles.NewVortex()
		Expect(v.Force(gallery.Point3{0, 0, 0})[1]).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Galaxy", func() {
	It("places arm and core stars", func() {
		Expect(particles.NewGalaxy().StarCount()).To(Equal(4*200 + 100))
	})

	It("rotates stars without changing their radius", func() {
		g := particles.NewGalaxy()
		before := g.Points()
		stepN(g, 30)
		after := g.Points()
		for i := range before {
			r0 := math.Hypot(float64(before[i][0]), float64(before[i][1]))
			r1 := math.Hypot(float64(after[i][0]), float64(after[i][1]))
			Expect(r1).To(BeNumerically("~", r0, 1e-3))
		}
	})

	It("regenerates for presets", func() {
		g := particles.NewGalaxy()
		Expect(g.ApplyPreset("grand-design")).To(Succeed())
		Expect(g.StarCount()).To(Equal(2*200 + 100))
	})
})

var _ = Describe("FlowField", func() {
	It("wraps particles inside the domain", func() {
		f := particles.NewFlowField()
		for i := 0; i < 100; i++ {
			f.Step(frame * 4)
			expectInBox(f.Points(), f.Config().Domain)
		}
	})

	It("stays planar in two dimensions", func() {
		cfg := particles.DefaultFlowConfig()
		cfg.ThreeD = false
		f := particles.NewFlowFieldWith(cfg)
		stepN(f, 20)
		for _, p := range f.Points() {
			Expect(p[2]).To(BeZero())
		}
	})

	It("yields unit directions", func() {
		f := particles.NewFlowField()
		d := f.Direction(gallery.Point3{3, -7, 11})
		Expect(d.Len()).To(BeNumerically("~", 1, 1e-5))
	})
})
