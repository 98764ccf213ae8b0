package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/simgallery/internal/gallery"
)

const (
	minZoom = 0.1
	maxZoom = 10
	near    = 0.1
)

// Camera projects world points onto a dot canvas. Points are centred on
// Center, scaled so Scale world units reach the edge of the shorter screen
// side, rotated, then optionally given perspective.
type Camera struct {
	Yaw, Pitch, Roll float32
	Zoom             float32
	Scale            float32
	Distance         float32 // eye distance in view units; 0 is orthographic
	Center           gallery.Point3
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Scale: 1, Distance: 4}
}

// ZUp tilts the camera so the world z axis points up the screen.
func (c *Camera) ZUp() {
	c.Pitch = -math.Pi/2 + 0.35
}

func (c *Camera) Rotate(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch += pitch
}

func (c *Camera) ZoomIn()  { c.Zoom = min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = max(minZoom, c.Zoom/1.2) }

// Rotation returns the world-to-view rotation.
func (c *Camera) Rotation() mgl32.Mat3 {
	return mgl32.Rotate3DZ(c.Roll).Mul3(mgl32.Rotate3DX(c.Pitch)).Mul3(mgl32.Rotate3DY(c.Yaw))
}

// Fit centres the camera on the bounding box of points and scales it so the
// farthest point lands just inside the screen.
func (c *Camera) Fit(points []gallery.Point3) {
	var lo, hi gallery.Point3
	n := 0
	for _, p := range points {
		if !finitePoint(p) {
			continue
		}
		if n == 0 {
			lo, hi = p, p
		}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
		n++
	}
	if n == 0 {
		return
	}
	c.Center = lo.Add(hi).Mul(0.5)
	r := float32(0)
	for _, p := range points {
		if finitePoint(p) {
			r = max(r, p.Sub(c.Center).Len())
		}
	}
	c.Scale = max(r*1.1, 1e-6)
}

// Project maps p to dot coordinates on a sw×sh canvas and reports its view
// depth and whether it lands on screen.
func (c *Camera) Project(p gallery.Point3, sw, sh int) (x, y int, depth float32, ok bool) {
	if sw <= 0 || sh <= 0 || !finitePoint(p) {
		return 0, 0, 0, false
	}
	scale := c.Zoom / max(c.Scale, 1e-6)
	v := c.Rotation().Mul3x1(p.Sub(c.Center)).Mul(scale)
	persp := float32(1)
	if c.Distance > 0 {
		if v.Z() >= c.Distance-near {
			return 0, 0, v.Z(), false
		}
		persp = c.Distance / (c.Distance - v.Z())
	}
	half := float32(min(sw, sh)) / 2
	x = int(v.X()*persp*half) + sw/2
	y = int(-v.Y()*persp*half) + sh/2
	return x, y, v.Z(), x >= 0 && x < sw && y >= 0 && y < sh
}

// DrawPoints plots every visible point and returns how many landed.
func DrawPoints(cv *Canvas, cam *Camera, points []gallery.Point3) int {
	sw, sh := cv.Dots()
	n := 0
	for _, p := range points {
		if x, y, _, ok := cam.Project(p, sw, sh); ok {
			cv.Set(x, y)
			n++
		}
	}
	return n
}

// DrawAxes draws the three world axes from the camera centre.
func DrawAxes(cv *Canvas, cam *Camera, length float32) {
	sw, sh := cv.Dots()
	o := cam.Center
	x0, y0, _, ok := cam.Project(o, sw, sh)
	if !ok {
		return
	}
	for _, axis := range []gallery.Point3{{length, 0, 0}, {0, length, 0}, {0, 0, length}} {
		if x1, y1, _, ok := cam.Project(o.Add(axis), sw, sh); ok {
			cv.DrawLine(x0, y0, x1, y1)
		}
	}
}

func finitePoint(p gallery.Point3) bool {
	for _, v := range p {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
