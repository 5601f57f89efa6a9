// Package budget implements the daily carbon cap on root growth.
//
// The controller cannot know in advance how much a root system wants to
// grow, so each day it runs a throwaway trial: clone the state, advance the
// clone unconstrained, and measure the increment. If the trial overshoots
// the day's budget, the committed step runs with the elongation scale set to
// budget/trial, which brings total growth back under the cap.
package budget

import (
	"fmt"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// Controller runs the trial/commit cycle of one day. It is the single
// writer of the shared scale controller.
type Controller struct {
	capacity float64 // cm of elongation per day
	sc       *grow.ScaleController
	stepper  grow.Stepper
}

// New builds a day controller. capPerDay is the growth allowance in cm of
// total elongation per day and must be positive.
func New(capPerDay float64, sc *grow.ScaleController, stepper grow.Stepper) (*Controller, error) {
	if capPerDay <= 0 {
		return nil, fmt.Errorf("budget: daily cap must be positive, got %g", capPerDay)
	}
	if sc == nil {
		return nil, fmt.Errorf("budget: scale controller required")
	}
	if stepper == nil {
		return nil, fmt.Errorf("budget: stepper required")
	}
	return &Controller{capacity: capPerDay, sc: sc, stepper: stepper}, nil
}

// Cap returns the daily growth allowance, cm.
func (c *Controller) Cap() float64 { return c.capacity }

// Step runs one day cycle on st:
//
//  1. reset the scale to 1.0
//  2. record the current total length
//  3. clone the state
//  4. advance the clone by dt, unconstrained
//  5. measure the trial increment
//  6. if the trial exceeds the budget cap*dt, set scale = budget/trial
//  7. advance st by dt under whatever scale is now in effect
//  8. report the day's accounting
//
// The trial touches only the clone; st changes only in step 7. A trial
// increment of zero never divides: the scale stays at 1.0.
func (c *Controller) Step(st grow.State, dt float64) (grow.DayRecord, error) {
	var rec grow.DayRecord
	if st == nil {
		return rec, grow.ErrNilState
	}
	if dt <= 0 {
		return rec, grow.ErrNonPositiveStep
	}

	c.sc.SetScale(1)
	start := st.TotalLength()

	trial := st.Clone()
	if err := c.stepper.Advance(trial, dt); err != nil {
		return rec, fmt.Errorf("trial step: %w", err)
	}
	inc := trial.TotalLength() - start

	bgt := c.capacity * dt
	scale := 1.0
	limited := false
	if inc > bgt {
		scale = bgt / inc
		c.sc.SetScale(scale)
		limited = true
	}

	if err := c.stepper.Advance(st, dt); err != nil {
		return rec, fmt.Errorf("committed step: %w", err)
	}
	end := st.TotalLength()

	rec = grow.DayRecord{
		StartLength:        start,
		TrialIncrement:     inc,
		Budget:             bgt,
		Scale:              scale,
		CommittedIncrement: end - start,
		EndLength:          end,
		Limited:            limited,
	}
	return rec, nil
}
