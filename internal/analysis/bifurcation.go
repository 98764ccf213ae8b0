package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/simgallery/internal/gallery"
	"github.com/san-kum/simgallery/internal/integrators"
)

// Tunable is a system whose coefficients are bound as parameters.
type Tunable interface {
	integrators.System
	Params() []gallery.Param
}

// BifurcationPoint holds the distinct local maxima of one coordinate for a
// given parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Sweep describes a parameter sweep.
type Sweep struct {
	Param      string
	Min, Max   float64
	Steps      int
	Axis       int
	Dt         float64
	Transient  float64 // time discarded before recording
	Record     float64 // time recorded per parameter value
	Resolution float64 // maxima closer than this are merged
}

// BifurcationDiagram sweeps a parameter of sys and records the local maxima
// of one coordinate, the usual way to see period doubling on the way to
// chaos. The parameter is restored afterwards.
func BifurcationDiagram(sys Tunable, integ integrators.Integrator, x0 gallery.State, sw Sweep) ([]BifurcationPoint, error) {
	if sw.Dt <= 0 || sw.Axis < 0 || sw.Axis >= len(x0) {
		return nil, fmt.Errorf("invalid sweep: dt %v, axis %d", sw.Dt, sw.Axis)
	}
	params := sys.Params()
	original := gallery.Values(params)[sw.Param]
	if err := gallery.Assign("bifurcation", params, sw.Param, original); err != nil {
		return nil, err
	}
	defer func() { _ = gallery.Assign("bifurcation", params, sw.Param, original) }()

	steps := max(sw.Steps, 2)
	res := sw.Resolution
	if res <= 0 {
		res = 1e-3
	}
	results := make([]BifurcationPoint, 0, steps)
	stride := (sw.Max - sw.Min) / float64(steps-1)

	for i := 0; i < steps; i++ {
		p := sw.Min + float64(i)*stride
		if err := gallery.Assign("bifurcation", params, sw.Param, p); err != nil {
			return nil, err
		}

		x := x0.Clone()
		t := 0.0
		for t < sw.Transient {
			x = integ.Step(sys, x, t, sw.Dt)
			t += sw.Dt
		}

		seen := make(map[int64]bool)
		var values []float64
		prev, cur := x[sw.Axis], x[sw.Axis]
		for t < sw.Transient+sw.Record && x.IsValid() {
			x = integ.Step(sys, x, t, sw.Dt)
			t += sw.Dt
			next := x[sw.Axis]
			if cur > prev && cur >= next {
				key := int64(cur / res)
				if !seen[key] {
					seen[key] = true
					values = append(values, cur)
				}
			}
			prev, cur = cur, next
		}
		results = append(results, BifurcationPoint{Param: p, Values: values})
	}
	return results, nil
}

// BifurcationToASCII plots the diagram with one column per parameter value.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
