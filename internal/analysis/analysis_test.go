package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/simgallery/internal/attractors"
	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

type damped struct{}

func (damped) Derive(x gallery.State, _ float64) gallery.State {
	return gallery.State{x[1], -x[0] - 0.5*x[1]}
}

func (damped) Dim() int { return 2 }

func TestLyapunovLorenzChaotic(t *testing.T) {
	lorenz := attractors.NewLorenzModel()
	x0 := gallery.State{1, 1, 1}
	lambda := LyapunovExponent(lorenz, integrators.NewRK4(), x0, 0.01, 200, 1e-8)
	if lambda < 0.5 || lambda > 1.5 {
		t.Errorf("expected lorenz exponent near 0.9, got %.3f", lambda)
	}
}

func TestLyapunovDampedStable(t *testing.T) {
	lambda := LyapunovExponent(damped{}, integrators.NewRK4(), gallery.State{1, 0}, 0.01, 50, 1e-8)
	if lambda >= 0 {
		t.Errorf("expected a negative exponent, got %.3f", lambda)
	}
}

func TestLyapunovDegenerate(t *testing.T) {
	rk4 := integrators.NewRK4()
	tests := []struct {
		name string
		x0   gallery.State
		dt   float64
	}{
		{"empty state", gallery.State{}, 0.01},
		{"zero dt", gallery.State{1, 0}, 0},
		{"negative dt", gallery.State{1, 0}, -0.1},
	}
	for _, tt := range tests {
		if got := LyapunovExponent(damped{}, rk4, tt.x0, tt.dt, 10, 1e-8); got != 0 {
			t.Errorf("%s: expected 0, got %v", tt.name, got)
		}
	}
}

func TestAxisExponents(t *testing.T) {
	exps := AxisExponents(damped{}, integrators.NewEuler(), gallery.State{1, 0}, 0.01, 20, 1e-8)
	if len(exps) != 2 {
		t.Fatalf("expected 2 exponents, got %d", len(exps))
	}
	for i, e := range exps {
		if e >= 0 {
			t.Errorf("axis %d: expected negative, got %v", i, e)
		}
	}
}

func TestTrajectory(t *testing.T) {
	xs := Trajectory(damped{}, integrators.NewRK4(), gallery.State{1, 0}, 0, 0.01, 100)
	if len(xs) != 100 {
		t.Fatalf("expected 100 samples, got %d", len(xs))
	}
	if Trajectory(damped{}, integrators.NewRK4(), gallery.State{1, 0}, 5, 0.01, 10) != nil {
		t.Error("expected nil for an axis out of range")
	}
}

func TestDominantFrequency(t *testing.T) {
	const rate = 100.0
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 3 + math.Sin(2*math.Pi*5*float64(i)/rate)
	}
	bin, ok := DominantFrequency(samples, rate)
	if !ok {
		t.Fatal("expected a dominant frequency")
	}
	if math.Abs(bin.Freq-5) > 0.2 {
		t.Errorf("expected 5 Hz, got %v", bin.Freq)
	}

	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 2
	}
	if _, ok := DominantFrequency(flat, rate); ok {
		t.Error("a constant signal has no dominant frequency")
	}
	if Spectrum(samples[:1], rate) != nil || Spectrum(samples, 0) != nil {
		t.Error("expected nil spectrum for degenerate input")
	}
}

func TestStats(t *testing.T) {
	pts := []gallery.Point3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0},
		{float32(math.NaN()), 0, 0},
	}
	s := Stats(pts)
	if s.Count != 4 {
		t.Fatalf("expected 4 finite points, got %d", s.Count)
	}
	for i := 0; i < 3; i++ {
		if math.Abs(s.Mean[i]) > 1e-12 {
			t.Errorf("axis %d: expected zero mean, got %v", i, s.Mean[i])
		}
	}
	if math.Abs(s.Radius-1) > 1e-9 || math.Abs(s.MaxRadius-1) > 1e-9 {
		t.Errorf("expected unit radius, got %v / %v", s.Radius, s.MaxRadius)
	}
	if e := s.Extent(); e != [3]float64{2, 2, 0} {
		t.Errorf("unexpected extent %v", e)
	}
	if math.Abs(s.StdDev[0]-math.Sqrt(2.0/3.0)) > 1e-9 {
		t.Errorf("unexpected x deviation %v", s.StdDev[0])
	}

	if Stats(nil).Count != 0 {
		t.Error("expected empty stats")
	}
	if one := Stats([]gallery.Point3{{2, 2, 2}}); one.StdDev[0] != 0 || one.Radius != 0 {
		t.Errorf("single point should have no spread: %+v", one)
	}
}

func TestCoverage(t *testing.T) {
	buf := gallery.NewPixelBuffer(4, 2)
	buf.Set(0, 0, gallery.Color{R: 1})
	buf.Set(3, 1, gallery.Color{G: 1})
	if got := Coverage(buf, gallery.Black); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
	if Coverage(gallery.NewPixelBuffer(0, 0), gallery.Black) != 0 {
		t.Error("empty buffer has no coverage")
	}
}

func TestBifurcationRossler(t *testing.T) {
	r := attractors.NewRosslerModel()
	sw := Sweep{
		Param:      "c",
		Min:        2.5,
		Max:        5.7,
		Steps:      3,
		Axis:       0,
		Dt:         0.01,
		Transient:  300,
		Record:     200,
		Resolution: 0.05,
	}
	data, err := BifurcationDiagram(r, integrators.NewRK4(), gallery.State{1, 1, 0}, sw)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3 {
		t.Fatalf("expected 3 sweep points, got %d", len(data))
	}
	if n := len(data[0].Values); n == 0 || n > 2 {
		t.Errorf("c=2.5 should be a single loop, got %d maxima", n)
	}
	if n := len(data[2].Values); n <= 5 {
		t.Errorf("c=5.7 should be chaotic, got %d maxima", n)
	}
	if r.C != 5.7 {
		t.Errorf("parameter not restored: c=%v", r.C)
	}

	plot := BifurcationToASCII(data, 30, 10)
	if strings.Count(plot, "\n") != 10 {
		t.Errorf("expected 10 rows, got %q", plot)
	}

	sw.Param = "omega"
	if _, err := BifurcationDiagram(r, integrators.NewRK4(), gallery.State{1, 1, 0}, sw); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
