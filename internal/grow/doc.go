// Package grow provides core primitives for root architecture simulation.
//
// The package defines the fundamental interfaces and types shared by the
// growth engine, the carbon budget controller and the day-loop driver:
//
//   - [State]: an opaque, cloneable root system snapshot
//   - [Stepper]: advances a state by one time step
//   - [ScaleController]: shared elongation scale in (0, 1]
//   - [Config]: run parameters (horizon, step, daily cap)
//   - [DayRecord]: per-day accounting of the trial/commit cycle
//
// # Example
//
//	rs, _ := rootsys.New(plant, seed, sc)
//	ctrl, _ := budget.New(cfg.MaxInc, sc, rootsys.Stepper{})
//	runner := sim.New(ctrl)
//	result, _ := runner.Run(ctx, rs, cfg)
//
// # Thread Safety
//
// A State is NOT safe for concurrent mutation. The [ScaleController] is
// safe for concurrent reads against a single writer, so a trial clone and
// its source can share one controller across a day cycle.
package grow
