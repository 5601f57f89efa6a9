package metrics

import (
	"math"
	"testing"

	"github.com/rhizotron/rhizosim/internal/grow"
)

func TestDefaultNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 default metrics, got %d", len(seen))
	}
}

func day(trial, committed, scale float64, limited bool) grow.DayRecord {
	return grow.DayRecord{
		TrialIncrement:     trial,
		Budget:             20,
		Scale:              scale,
		CommittedIncrement: committed,
		Limited:            limited,
	}
}

func TestPeakIncrement(t *testing.T) {
	m := NewPeakIncrement()

	m.Observe(day(5, 5, 1, false))
	m.Observe(day(35, 20, 20.0/35, true))
	m.Observe(day(12, 12, 1, false))

	if m.Value() != 35 {
		t.Errorf("expected peak 35, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %g", m.Value())
	}
}

func TestTotalGrowth(t *testing.T) {
	m := NewTotalGrowth()

	m.Observe(day(5, 5, 1, false))
	m.Observe(day(35, 20, 20.0/35, true))

	if m.Value() != 25 {
		t.Errorf("expected total 25, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %g", m.Value())
	}
}

func TestBudgetUtilization(t *testing.T) {
	m := NewBudgetUtilization()

	if m.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %g", m.Value())
	}

	m.Observe(day(10, 10, 1, false)) // 0.5
	m.Observe(day(35, 20, 20.0/35, true))

	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected utilization 0.75, got %g", m.Value())
	}
}

func TestMeanScale(t *testing.T) {
	m := NewMeanScale()

	if m.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %g", m.Value())
	}

	m.Observe(day(10, 10, 1, false))
	m.Observe(day(40, 20, 0.5, true))

	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected mean scale 0.75, got %g", m.Value())
	}

	m.Reset()
	m.Observe(day(10, 10, 1, false))
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset and one free day, got %g", m.Value())
	}
}

func TestMaxOvershoot(t *testing.T) {
	m := NewMaxOvershoot()

	m.Observe(day(10, 10, 1, false))    // under budget, no overshoot
	m.Observe(day(35, 20.8, 0.57, true))
	m.Observe(day(40, 20.3, 0.5, true))

	if math.Abs(m.Value()-0.8) > 1e-9 {
		t.Errorf("expected worst overshoot 0.8, got %g", m.Value())
	}

	m.Reset()
	m.Observe(day(12, 12, 1, false))
	if m.Value() != 0 {
		t.Errorf("expected zero when nothing overshoots, got %g", m.Value())
	}
}

func TestLimitedFraction(t *testing.T) {
	m := NewLimitedFraction()

	m.Observe(day(10, 10, 1, false))
	m.Observe(day(40, 20, 0.5, true))
	m.Observe(day(30, 20, 2.0/3, true))
	m.Observe(day(15, 15, 1, false))

	if m.Value() != 0.5 {
		t.Errorf("expected fraction 0.5, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %g", m.Value())
	}
}
