package sim

import (
	"context"
	"runtime"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// RunSetup builds one replicate: a fresh state and its day stepper, both
// wired to their own scale controller so replicates cannot interfere.
type RunSetup func(seed int64) (grow.State, DayStepper, error)

// Ensemble runs replicate simulations with consecutive seeds.
type Ensemble struct {
	setup     RunSetup
	numRuns   int
	seedStart int64
	metrics   []func() Metric
}

func NewEnsemble(setup RunSetup, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{setup: setup, numRuns: numRuns, seedStart: seedStart}
}

// AddMetric registers a metric constructor. Each replicate gets its own
// instance, so values never mix across goroutines.
func (e *Ensemble) AddMetric(newMetric func() Metric) {
	e.metrics = append(e.metrics, newMetric)
}

// Run executes all replicates and returns their results in seed order. The
// first replicate error wins; remaining results are discarded.
func (e *Ensemble) Run(ctx context.Context, cfg grow.Config) ([]*grow.Result, error) {
	results := make([]*grow.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	pool := newWorkerPool(runtime.NumCPU())
	for i := 0; i < e.numRuns; i++ {
		idx := i
		pool.submit(func() {
			seed := e.seedStart + int64(idx)
			st, stepper, err := e.setup(seed)
			if err != nil {
				errs[idx] = err
				return
			}

			cfgCopy := cfg
			cfgCopy.Seed = seed

			runner := New(stepper)
			for _, newMetric := range e.metrics {
				runner.AddMetric(newMetric())
			}
			results[idx], errs[idx] = runner.Run(ctx, st, cfgCopy)
		})
	}
	pool.wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
