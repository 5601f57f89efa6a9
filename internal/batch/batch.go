// Package batch runs scripted simulation campaigns loaded from yaml. A
// scenario lists seasons to grow in order, each with its own plant, horizon
// and cap, and optionally an artifact to write or a database save.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rhizotron/rhizosim/internal/budget"
	"github.com/rhizotron/rhizosim/internal/config"
	"github.com/rhizotron/rhizosim/internal/export"
	"github.com/rhizotron/rhizosim/internal/grow"
	"github.com/rhizotron/rhizosim/internal/rootsys"
	"github.com/rhizotron/rhizosim/internal/sim"
	"github.com/rhizotron/rhizosim/internal/storage"
)

// Scenario is a scripted sequence of seasons.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is one season in a scenario. Zero fields fall back to the defaults.
type Step struct {
	Name   string  `yaml:"name,omitempty"`
	Plant  string  `yaml:"plant"`
	Days   float64 `yaml:"days,omitempty"`
	Dt     float64 `yaml:"dt,omitempty"`
	MaxInc float64 `yaml:"max_inc,omitempty"`
	Seed   int64   `yaml:"seed,omitempty"`
	Growth string  `yaml:"growth,omitempty"`
	SaveAs string  `yaml:"save_as,omitempty"` // .vtp, .rsml, .svg or .csv
	Save   bool    `yaml:"save,omitempty"`    // record the run in the database
}

// StepResult pairs a step with its season outcome.
type StepResult struct {
	Step   Step
	Result *grow.Result
	RunID  int64 // 0 when the step was not saved
}

// LoadScenario loads a scenario from a yaml file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// stepConfig fills a step's zero fields from the defaults.
func stepConfig(step Step) *config.Config {
	cfg := config.DefaultConfig()
	if step.Plant != "" {
		cfg.Plant = step.Plant
	}
	if step.Days > 0 {
		cfg.Days = step.Days
	}
	if step.Dt > 0 {
		cfg.Dt = step.Dt
	}
	if step.MaxInc > 0 {
		cfg.MaxInc = step.MaxInc
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.Growth != "" {
		cfg.Growth = step.Growth
	}
	return cfg
}

// RunScenario executes all steps in order. store may be nil when no step
// saves to the database. Artifacts are written as steps finish, so a later
// failure keeps the earlier files.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		label := step.Name
		if label == "" {
			label = step.Plant
		}
		fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), label)

		cfg := stepConfig(step)
		gcfg := cfg.GrowConfig()
		if err := gcfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		plant, err := cfg.ResolvePlant()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sc := grow.NewScaleController()
		rs, err := rootsys.New(plant, cfg.Seed, sc)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		ctrl, err := budget.New(gcfg.MaxInc, sc, rootsys.Stepper{})
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := sim.New(ctrl).Run(ctx, rs, gcfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: res}

		if step.SaveAs != "" {
			if err := writeArtifact(step.SaveAs, rs, res); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a database", i+1)
			}
			id, err := store.SaveRun(plant.Name, cfg.Growth, gcfg, res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}

		results = append(results, sr)
	}
	return results, nil
}

// writeArtifact writes a step's output file. A .csv extension gets the day
// records; geometry extensions dispatch through export.WriteFile.
func writeArtifact(path string, rs *rootsys.RootSystem, res *grow.Result) error {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return export.WriteFile(path, rs.Polylines())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := export.WriteDaysCSV(bw, res.Records); err != nil {
		return err
	}
	return bw.Flush()
}
