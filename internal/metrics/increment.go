package metrics

import (
	"github.com/rhizotron/rhizosim/internal/grow"
)

// PeakIncrement tracks the largest unconstrained daily demand seen in a run.
type PeakIncrement struct {
	name string
	peak float64
}

func NewPeakIncrement() *PeakIncrement {
	return &PeakIncrement{
		name: "peak_increment",
	}
}

func (p *PeakIncrement) Name() string { return p.name }

func (p *PeakIncrement) Observe(rec grow.DayRecord) {
	if rec.TrialIncrement > p.peak {
		p.peak = rec.TrialIncrement
	}
}

func (p *PeakIncrement) Value() float64 {
	return p.peak
}

func (p *PeakIncrement) Reset() {
	p.peak = 0
}

type TotalGrowth struct {
	name string
	sum  float64
}

func NewTotalGrowth() *TotalGrowth {
	return &TotalGrowth{
		name: "total_growth",
	}
}

func (g *TotalGrowth) Name() string { return g.name }

func (g *TotalGrowth) Observe(rec grow.DayRecord) {
	g.sum += rec.CommittedIncrement
}

func (g *TotalGrowth) Value() float64 {
	return g.sum
}

func (g *TotalGrowth) Reset() {
	g.sum = 0
}
