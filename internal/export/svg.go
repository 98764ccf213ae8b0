package export

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/viz"
)

// SVGStyle sets the colors and dot size of a point cloud drawing.
type SVGStyle struct {
	Background string
	Fill       string
	Radius     float64
}

func DefaultSVGStyle() SVGStyle {
	return SVGStyle{Background: "#0a0a0a", Fill: "#00ffcc", Radius: 1}
}

func svgHeader(w io.Writer, width, height int, bg string) {
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// WritePointsSVG projects points through cam onto a width×height drawing,
// one circle per visible point. Farther points are drawn first.
func WritePointsSVG(w io.Writer, points []gallery.Point3, cam *viz.Camera, width, height int, style SVGStyle) error {
	if width <= 0 || height <= 0 {
		return ErrEmptyFrame
	}
	type dot struct {
		x, y  int
		depth float32
	}
	dots := make([]dot, 0, len(points))
	for _, p := range points {
		if x, y, d, ok := cam.Project(p, width, height); ok {
			dots = append(dots, dot{x, y, d})
		}
	}
	slices.SortStableFunc(dots, func(a, b dot) int { return cmp.Compare(a.depth, b.depth) })

	bw := bufio.NewWriter(w)
	svgHeader(bw, width, height, style.Background)
	fmt.Fprintf(bw, "<g fill=\"%s\">\n", style.Fill)
	for _, d := range dots {
		fmt.Fprintf(bw, "<circle cx=\"%d\" cy=\"%d\" r=\"%.1f\"/>\n", d.x, d.y, style.Radius)
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

// WritePathSVG draws the polyline (xs[i], ys[i]) scaled to fit with a ten
// percent margin. Non-finite samples break the line.
func WritePathSVG(w io.Writer, xs, ys []float64, width, height int, stroke string) error {
	n := min(len(xs), len(ys))
	if n < 2 || width <= 0 || height <= 0 {
		return ErrEmptyFrame
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if minX > maxX {
		return ErrEmptyFrame
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	bw := bufio.NewWriter(w)
	svgHeader(bw, width, height, "#0a0a0a")
	fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	move := true
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			move = true
			continue
		}
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		cmd := "L"
		if move {
			cmd = "M"
			move = false
		}
		fmt.Fprintf(bw, "%s%.1f,%.1f ", cmd, x, y)
	}
	bw.WriteString("\"/>\n</svg>\n")
	return bw.Flush()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
