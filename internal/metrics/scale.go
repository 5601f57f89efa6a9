package metrics

import (
	"github.com/rhizotron/rhizosim/internal/grow"
)

// MeanScale averages the elongation scale over a run. A value of 1 means the
// budget never interfered; lower values mean harder rationing.
type MeanScale struct {
	name    string
	sum     float64
	samples int
}

func NewMeanScale() *MeanScale {
	return &MeanScale{
		name: "mean_scale",
	}
}

func (m *MeanScale) Name() string { return m.name }

func (m *MeanScale) Observe(rec grow.DayRecord) {
	m.sum += rec.Scale
	m.samples++
}

func (m *MeanScale) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanScale) Reset() {
	m.sum = 0
	m.samples = 0
}
