package metrics

import "github.com/rhizotron/rhizosim/internal/sim"

// Default returns the standard set of season metrics.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPeakIncrement(),
		NewTotalGrowth(),
		NewBudgetUtilization(),
		NewMeanScale(),
		NewLimitedFraction(),
		NewMaxOvershoot(),
	}
}
