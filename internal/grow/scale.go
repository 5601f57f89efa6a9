package grow

import (
	"math"
	"sync/atomic"
)

// ScaleController holds the global elongation scale applied to every
// growth-rate evaluation. The budget controller is the single writer; the
// engine and any trial clone read it through the shared pointer, so a value
// set between trial and commit reaches both.
//
// SetScale stores whatever it is given. Keeping the value in (0, 1] is the
// writer's contract, not enforced here.
type ScaleController struct {
	bits atomic.Uint64
}

// NewScaleController returns a controller at the neutral scale 1.0.
func NewScaleController() *ScaleController {
	c := &ScaleController{}
	c.SetScale(1)
	return c
}

func (c *ScaleController) SetScale(s float64) {
	c.bits.Store(math.Float64bits(s))
}

func (c *ScaleController) Scale() float64 {
	return math.Float64frombits(c.bits.Load())
}
