// Package optim searches parameter grids for the season configuration that
// best matches a target observation.
package optim

import (
	"context"
	"fmt"
	"math"
)

// Objective scores one parameter combination. Lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// Param is one searched dimension: Steps values evenly spaced over [Min, Max].
// A single step pins the parameter at Min.
type Param struct {
	Name  string
	Min   float64
	Max   float64
	Steps int
}

type GridSearch struct {
	params []Param
}

func NewGridSearch(params []Param) (*GridSearch, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("optim: no parameters to search")
	}
	for _, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("optim: unnamed parameter")
		}
		if p.Steps < 1 {
			return nil, fmt.Errorf("optim: parameter %s needs at least 1 step", p.Name)
		}
		if p.Steps > 1 && p.Max <= p.Min {
			return nil, fmt.Errorf("optim: parameter %s range is empty", p.Name)
		}
	}
	return &GridSearch{params: params}, nil
}

// Size is the number of grid points Search will evaluate.
func (g *GridSearch) Size() int {
	n := 1
	for _, p := range g.params {
		n *= p.Steps
	}
	return n
}

// Search evaluates the full grid and returns the best combination with its
// score. An evaluation error aborts the search.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.walk(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		score, err := obj(ctx, params)
		if err != nil {
			return err
		}
		if score < best {
			best = score
			bestParams = make(map[string]float64, len(params))
			for k, v := range params {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) walk(ctx context.Context, depth int, current map[string]float64, eval func(map[string]float64) error) error {
	if depth == len(g.params) {
		return eval(current)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := g.params[depth]
	for i := 0; i < p.Steps; i++ {
		v := p.Min
		if p.Steps > 1 {
			v = p.Min + float64(i)*(p.Max-p.Min)/float64(p.Steps-1)
		}
		current[p.Name] = v
		if err := g.walk(ctx, depth+1, current, eval); err != nil {
			return err
		}
	}
	delete(current, p.Name)
	return nil
}
