package automata

import (
	"math"

	"github.com/san-kum/simgallery/internal/gallery"
)

// clock turns frame deltas into whole generations at a fixed rate.
type clock struct {
	acc float64
}

// advance accumulates dt and returns how many generations are due, at most
// as many as MaxFrameScale reference frames would produce.
func (c *clock) advance(dt float32, rate float64) int {
	if !gallery.ValidDelta(dt) || rate <= 0 || math.IsNaN(rate) {
		return 0
	}
	c.acc += float64(dt) * rate
	limit := max(1, int(math.Ceil(rate*gallery.ReferenceFrame*gallery.MaxFrameScale)))
	n := int(c.acc)
	if n > limit {
		n = limit
		c.acc = 0
		return n
	}
	c.acc -= float64(n)
	return n
}

func (c *clock) reset() { c.acc = 0 }
