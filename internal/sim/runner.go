// Package sim drives day-loop growth simulations.
//
// A [Runner] owns the outer loop: N = SimTime/Dt day cycles, each delegated
// to a [DayStepper], with metrics and observers fed after every committed
// day. Parallel replicates run through [Ensemble]; [CloneCheck] verifies
// clone independence of a state implementation.
package sim

import (
	"context"

	"github.com/rhizotron/rhizosim/internal/grow"
)

type Runner struct {
	stepper   DayStepper
	metrics   []Metric
	observers []Observer
}

func New(stepper DayStepper) *Runner {
	return &Runner{
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run grows st for cfg.Days() day cycles. On a collaborator failure the
// partial result is returned together with a [grow.DayError] naming the day.
// Cancellation via ctx also returns the partial result.
func (r *Runner) Run(ctx context.Context, st grow.State, cfg grow.Config) (*grow.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, grow.ErrNilState
	}

	days := cfg.Days()
	result := &grow.Result{
		Records: make([]grow.DayRecord, 0, days),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for day := 1; day <= days; day++ {
		select {
		case <-ctx.Done():
			r.finish(result, st)
			return result, ctx.Err()
		default:
		}

		rec, err := r.stepper.Step(st, cfg.Dt)
		if err != nil {
			r.finish(result, st)
			return result, &grow.DayError{Day: day, Err: err}
		}
		rec.Day = day
		rec.Time = float64(day) * cfg.Dt

		result.Records = append(result.Records, rec)
		if rec.Limited {
			result.LimitedDays++
		}

		for _, m := range r.metrics {
			m.Observe(rec)
		}
		for _, obs := range r.observers {
			obs.OnDay(rec)
		}
	}

	r.finish(result, st)
	return result, nil
}

func (r *Runner) finish(result *grow.Result, st grow.State) {
	result.FinalState = st
	result.FinalLength = st.TotalLength()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
