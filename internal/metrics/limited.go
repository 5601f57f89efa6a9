package metrics

import (
	"github.com/rhizotron/rhizosim/internal/grow"
)

// LimitedFraction is the share of days on which the cap bound.
type LimitedFraction struct {
	name    string
	limited int
	samples int
}

func NewLimitedFraction() *LimitedFraction {
	return &LimitedFraction{
		name: "limited_fraction",
	}
}

func (l *LimitedFraction) Name() string { return l.name }

func (l *LimitedFraction) Observe(rec grow.DayRecord) {
	l.samples++
	if rec.Limited {
		l.limited++
	}
}

func (l *LimitedFraction) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.limited) / float64(l.samples)
}

func (l *LimitedFraction) Reset() {
	l.limited = 0
	l.samples = 0
}
