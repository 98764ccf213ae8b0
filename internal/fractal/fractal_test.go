package fractal

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/simgallery/internal/compute"
	"github.com/san-kum/simgallery/internal/gallery"
)

func TestComputeDeterministic(t *testing.T) {
	for _, fam := range []Family{Mandelbrot, Julia, BurningShip} {
		f := New(fam)
		a := f.Compute(64, 48)
		b := f.Compute(64, 48)
		if len(a.Pix) != 64*48 {
			t.Fatalf("%s: expected %d pixels, got %d", fam, 64*48, len(a.Pix))
		}
		for i := range a.Pix {
			if a.Pix[i] != b.Pix[i] {
				t.Fatalf("%s: pixel %d differs between calls", fam, i)
			}
		}
	}
}

func TestComputeParallelMatchesSerial(t *testing.T) {
	par := NewMandelbrot()
	par.SetBackend(compute.NewCPUBackend(8))
	ser := NewMandelbrot()
	ser.SetBackend(compute.Serial{})

	a := par.Compute(120, 90)
	b := ser.Compute(120, 90)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs: parallel %v serial %v", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestComputeDegenerate(t *testing.T) {
	f := NewMandelbrot()
	tests := []struct{ w, h int }{{0, 0}, {0, 10}, {10, 0}, {-3, -3}}
	for _, tt := range tests {
		buf := f.Compute(tt.w, tt.h)
		if !buf.Empty() {
			t.Errorf("%dx%d: expected empty buffer", tt.w, tt.h)
		}
	}
}

func TestOriginNeverEscapes(t *testing.T) {
	for _, iters := range []int{1, 2, 10, 100, 1000} {
		cfg := DefaultConfig(Mandelbrot)
		cfg.MaxIterations = iters
		v, escaped := EscapeTime(Mandelbrot, 0, 0, &cfg)
		if escaped || v != float64(iters) {
			t.Errorf("max=%d: expected %d without escape, got %v (escaped=%v)", iters, iters, v, escaped)
		}
	}
}

func TestEscapeOutsideSet(t *testing.T) {
	cfg := DefaultConfig(Mandelbrot)
	v, escaped := EscapeTime(Mandelbrot, 2, 2, &cfg)
	if !escaped {
		t.Fatal("expected c=2+2i to escape")
	}
	if v < 0 || v > 3 {
		t.Errorf("expected an early escape, got %v", v)
	}

	cfg.MaxIterations = 0
	if _, escaped := EscapeTime(Mandelbrot, 2, 2, &cfg); escaped {
		t.Error("zero iterations must report no escape")
	}
}

func TestSmoothColoringContinuous(t *testing.T) {
	cfg := DefaultConfig(Mandelbrot)
	cfg.MaxIterations = 500
	cfg.EscapeRadius = 1000

	const samples = 2000
	prevSmooth := math.NaN()
	prevInt := math.NaN()
	maxSmoothJump := 0.0
	maxIntJump := 0.0

	for i := 0; i <= samples; i++ {
		c := 0.5 + 1.5*float64(i)/samples

		cfg.Smooth = true
		s, ok := EscapeTime(Mandelbrot, c, 0, &cfg)
		if !ok {
			t.Fatalf("c=%v should escape", c)
		}
		cfg.Smooth = false
		n, _ := EscapeTime(Mandelbrot, c, 0, &cfg)

		if i > 0 {
			maxSmoothJump = math.Max(maxSmoothJump, math.Abs(s-prevSmooth))
			maxIntJump = math.Max(maxIntJump, math.Abs(n-prevInt))
		}
		prevSmooth, prevInt = s, n
	}

	if maxIntJump < 1 {
		t.Fatalf("expected the sweep to cross an integer boundary, max jump %v", maxIntJump)
	}
	if maxSmoothJump > 0.2 {
		t.Errorf("smooth count jumped by %v across the sweep", maxSmoothJump)
	}
}

func TestNonEscapingPixelsBlack(t *testing.T) {
	f := NewMandelbrot()
	cfg := f.Config()
	cfg.CenterX, cfg.CenterY = 0, 0
	cfg.Zoom = 1000
	f.SetParameters(cfg)

	buf := f.Compute(9, 9)
	if c := buf.At(4, 4); c != gallery.Black {
		t.Errorf("expected black at the origin, got %v", c)
	}
}

func TestZoomClamped(t *testing.T) {
	f := NewMandelbrot()
	for i := 0; i < 100; i++ {
		f.ZoomBy(5000)
	}
	if f.Zoom() != MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MaxZoom, f.Zoom())
	}
	for i := 0; i < 100; i++ {
		f.ZoomBy(-999)
	}
	if f.Zoom() != MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MinZoom, f.Zoom())
	}
	f.ZoomBy(-5000)
	if f.Zoom() != MinZoom {
		t.Errorf("negative factor must clamp, got %v", f.Zoom())
	}

	if err := f.SetParam("zoom", 1e6); !errors.Is(err, gallery.ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
}

func TestPanMovesByViewExtent(t *testing.T) {
	f := NewMandelbrot()
	x0, y0 := f.Center()

	f.Pan(100, 50, 200, 100)
	x1, y1 := f.Center()

	// 4/zoom over 100 px vertically, 8/zoom over 200 px horizontally.
	if math.Abs((x0-x1)-4.0) > 1e-12 {
		t.Errorf("expected x shift 4, got %v", x0-x1)
	}
	if math.Abs((y0-y1)-2.0) > 1e-12 {
		t.Errorf("expected y shift 2, got %v", y0-y1)
	}

	f.Pan(10, 10, 0, 0)
	if x2, _ := f.Center(); x2 != x1 {
		t.Error("pan on an empty canvas must be a no-op")
	}
}

func TestJuliaAnimation(t *testing.T) {
	f := NewJulia()
	if err := f.SetParam("animate", 1); err != nil {
		t.Fatal(err)
	}
	before := f.Config()
	f.Tick(0.5)
	after := f.Config()

	r := math.Hypot(after.CX, after.CY)
	if math.Abs(r-before.AnimationRadius) > 1e-9 {
		t.Errorf("expected c on radius %v, got %v", before.AnimationRadius, r)
	}

	f.Reset()
	if f.Config() != DefaultConfig(Julia) {
		t.Error("reset should restore the construction config")
	}
}

func TestColorCycling(t *testing.T) {
	f := NewMandelbrot()
	a := f.Compute(32, 24)
	if err := f.SetParam("cycle_colors", 1); err != nil {
		t.Fatal(err)
	}
	f.Tick(1)
	b := f.Compute(32, 24)

	differ := false
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			differ = true
			break
		}
	}
	if !differ {
		t.Error("expected color cycling to change the image")
	}
}

func TestGeneralizedPower(t *testing.T) {
	cfg := DefaultConfig(Mandelbrot)
	cfg.Power = 3
	if _, escaped := EscapeTime(Mandelbrot, 0, 0, &cfg); escaped {
		t.Error("origin should not escape for power 3")
	}
	if _, escaped := EscapeTime(Mandelbrot, 1.5, 1.5, &cfg); !escaped {
		t.Error("expected 1.5+1.5i to escape for power 3")
	}
}

func TestPresets(t *testing.T) {
	f := NewMandelbrot()
	for _, l := range Locations {
		if err := f.ApplyLocation(l.Name); err != nil {
			t.Errorf("%s: %v", l.Name, err)
		}
	}
	if err := f.ApplyLocation("atlantis"); err == nil {
		t.Error("expected error for unknown location")
	}

	j := NewJulia()
	if err := j.ApplyConstant("douady-rabbit"); err != nil {
		t.Fatal(err)
	}
	if cfg := j.Config(); cfg.CX != -0.123 || cfg.CY != 0.745 {
		t.Errorf("unexpected constant %v, %v", cfg.CX, cfg.CY)
	}
}

func BenchmarkMandelbrotCompute(b *testing.B) {
	f := NewMandelbrot()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Compute(320, 240)
	}
}

func TestApplyPresetByFamily(t *testing.T) {
	var p gallery.Presetter = NewJulia()
	if len(p.Presets()) != len(Constants) {
		t.Errorf("expected %d julia presets, got %d", len(Constants), len(p.Presets()))
	}
	if err := p.ApplyPreset("seahorse-valley"); err == nil {
		t.Error("julia should not accept a view location")
	}

	m := NewBurningShip()
	if err := m.ApplyPreset("seahorse-valley"); err != nil {
		t.Error(err)
	}
}
