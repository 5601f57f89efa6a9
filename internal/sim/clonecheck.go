package sim

import (
	"fmt"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// CloneCheck verifies the clone contract a day stepper relies on: a clone
// matches its source exactly, replays identical growth when advanced in
// lockstep, and stays frozen when only the original grows.
//
// The state is advanced preDays steps before cloning and postDays steps
// after, all at step size dt. A nil return means the contract holds.
func CloneCheck(st grow.State, stepper grow.Stepper, preDays, postDays int, dt float64) error {
	if st == nil {
		return grow.ErrNilState
	}
	if dt <= 0 {
		return grow.ErrNonPositiveStep
	}

	for i := 0; i < preDays; i++ {
		if err := stepper.Advance(st, dt); err != nil {
			return fmt.Errorf("warmup step %d: %w", i+1, err)
		}
	}

	cp := st.Clone()
	if err := compareGeometry(st, cp); err != nil {
		return fmt.Errorf("fresh clone: %w", err)
	}

	for i := 0; i < postDays; i++ {
		if err := stepper.Advance(st, dt); err != nil {
			return fmt.Errorf("original step %d: %w", i+1, err)
		}
		if err := stepper.Advance(cp, dt); err != nil {
			return fmt.Errorf("clone step %d: %w", i+1, err)
		}
	}
	if err := compareGeometry(st, cp); err != nil {
		return fmt.Errorf("after %d lockstep steps: %w", postDays, err)
	}

	frozen := cp.TotalLength()
	if err := stepper.Advance(st, dt); err != nil {
		return fmt.Errorf("divergence step: %w", err)
	}
	if got := cp.TotalLength(); got != frozen {
		return fmt.Errorf("clone not independent: length moved %g -> %g while only the original grew", frozen, got)
	}
	return nil
}

func compareGeometry(a, b grow.State) error {
	if la, lb := a.TotalLength(), b.TotalLength(); la != lb {
		return fmt.Errorf("total length differs: %g vs %g", la, lb)
	}
	pa, pb := a.NodePositions(), b.NodePositions()
	if len(pa) != len(pb) {
		return fmt.Errorf("node count differs: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return fmt.Errorf("node %d differs: %v vs %v", i, pa[i], pb[i])
		}
	}
	return nil
}
