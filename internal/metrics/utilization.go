package metrics

import (
	"github.com/rhizotron/rhizosim/internal/grow"
)

// BudgetUtilization averages how much of the daily allowance was spent.
type BudgetUtilization struct {
	name    string
	sum     float64
	samples int
}

func NewBudgetUtilization() *BudgetUtilization {
	return &BudgetUtilization{
		name: "budget_utilization",
	}
}

func (b *BudgetUtilization) Name() string { return b.name }

func (b *BudgetUtilization) Observe(rec grow.DayRecord) {
	b.sum += rec.Utilization()
	b.samples++
}

func (b *BudgetUtilization) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.sum / float64(b.samples)
}

func (b *BudgetUtilization) Reset() {
	b.sum = 0
	b.samples = 0
}
