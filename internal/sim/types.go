package sim

import "github.com/rhizotron/rhizosim/internal/grow"

// DayStepper runs one trial/commit day cycle on a state and reports the
// day's accounting. The budget controller is the production implementation.
type DayStepper interface {
	Step(st grow.State, dt float64) (grow.DayRecord, error)
}

// Metric aggregates day records over a run.
type Metric interface {
	Name() string
	Observe(rec grow.DayRecord)
	Value() float64
	Reset()
}

// Observer is notified after every committed day.
type Observer interface {
	OnDay(rec grow.DayRecord)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(rec grow.DayRecord)

func (f ObserverFunc) OnDay(rec grow.DayRecord) { f(rec) }
