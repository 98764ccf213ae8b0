package gallery

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ReferenceFrame is the frame delta, in seconds, that fixed-substep kernels
// treat as one nominal frame.
const ReferenceFrame = 1.0 / 60.0

// MaxFrameScale caps how many nominal frames a single Step may advance.
const MaxFrameScale = 4.0

type Color struct {
	R, G, B uint8
}

// Black is the color of points that never escape.
var Black = Color{}

func (c Color) Invert() Color {
	return Color{255 - c.R, 255 - c.G, 255 - c.B}
}

// PixelBuffer is a row-major image of Width*Height colors.
type PixelBuffer struct {
	Width, Height int
	Pix           []Color
}

// NewPixelBuffer allocates a buffer. Non-positive dimensions yield an empty
// buffer with both dimensions zero.
func NewPixelBuffer(w, h int) PixelBuffer {
	if w <= 0 || h <= 0 {
		return PixelBuffer{}
	}
	return PixelBuffer{Width: w, Height: h, Pix: make([]Color, w*h)}
}

func (b PixelBuffer) Empty() bool { return len(b.Pix) == 0 }

func (b PixelBuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Black
	}
	return b.Pix[y*b.Width+x]
}

func (b PixelBuffer) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// Row returns the slice backing row y.
func (b PixelBuffer) Row(y int) []Color {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Point3 is a single vertex of a point cloud.
type Point3 = mgl32.Vec3

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Point converts the first three components to a scaled Point3.
func (s State) Point(scale float64) Point3 {
	var p Point3
	for i := 0; i < 3 && i < len(s); i++ {
		p[i] = float32(s[i] * scale)
	}
	return p
}

type Simulation interface {
	Name() string
}

// RasterSimulation produces a full image per call.
type RasterSimulation interface {
	Simulation
	Compute(width, height int) PixelBuffer
}

// PointCloudSimulation advances internal state and exposes it as points.
type PointCloudSimulation interface {
	Simulation
	Step(dt float32)
	Points() []Point3
	Reset()
}

// Animated is implemented by raster simulations whose state evolves with time.
type Animated interface {
	Tick(dt float32)
}

type Resettable interface {
	Reset()
}

// Seeded is implemented by simulations that own a random generator.
type Seeded interface {
	Seed(seed int64)
}

// Presetter is implemented by simulations with named parameter sets.
type Presetter interface {
	Presets() []string
	ApplyPreset(name string) error
}

// FrameScale converts a frame delta into a number of nominal frames, clamped
// to [0, MaxFrameScale]. Non-finite or negative deltas scale to zero.
func FrameScale(dt float32) float64 {
	if !ValidDelta(dt) {
		return 0
	}
	return math.Min(float64(dt)/ReferenceFrame, MaxFrameScale)
}

// ValidDelta reports whether dt can advance a simulation.
func ValidDelta(dt float32) bool {
	d := float64(dt)
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 0
}
