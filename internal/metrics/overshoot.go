package metrics

import (
	"github.com/rhizotron/rhizosim/internal/grow"
)

// MaxOvershoot tracks the worst committed overrun of the day budget. The
// correction is first order, so a limited day can land slightly above the
// cap; unlimited days never overshoot by definition.
type MaxOvershoot struct {
	name  string
	worst float64
}

func NewMaxOvershoot() *MaxOvershoot {
	return &MaxOvershoot{
		name: "max_overshoot",
	}
}

func (o *MaxOvershoot) Name() string { return o.name }

func (o *MaxOvershoot) Observe(rec grow.DayRecord) {
	over := rec.CommittedIncrement - rec.Budget
	if over > o.worst {
		o.worst = over
	}
}

func (o *MaxOvershoot) Value() float64 {
	return o.worst
}

func (o *MaxOvershoot) Reset() {
	o.worst = 0
}
