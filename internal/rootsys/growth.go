package rootsys

import (
	"fmt"
	"math"
)

// Growth function names accepted in parameter files.
const (
	GrowthNegExp = "negexp"
	GrowthLinear = "linear"
)

// GrowthFunction maps root age to length and back. r is the initial
// elongation rate in cm/day, k the maximum length in cm. Length is
// nondecreasing in age and bounded by k; Age is its inverse on [0, k).
type GrowthFunction interface {
	Name() string
	Length(age, r, k float64) float64
	Age(length, r, k float64) float64
}

func growthFunction(name string) (GrowthFunction, error) {
	switch name {
	case GrowthNegExp, "":
		return NegExp{}, nil
	case GrowthLinear:
		return Linear{}, nil
	default:
		return nil, fmt.Errorf("rootsys: unknown growth function %q", name)
	}
}

// NegExp is the negative exponential growth law l(t) = k(1 - e^(-rt/k)).
// Elongation starts at rate r and tails off as length approaches k.
type NegExp struct{}

func (NegExp) Name() string { return GrowthNegExp }

func (NegExp) Length(age, r, k float64) float64 {
	if age <= 0 || k <= 0 {
		return 0
	}
	return k * (1 - math.Exp(-r*age/k))
}

func (NegExp) Age(length, r, k float64) float64 {
	if length <= 0 {
		return 0
	}
	if length >= k || r <= 0 {
		return math.Inf(1)
	}
	return -k / r * math.Log(1-length/k)
}

// Linear is constant-rate growth l(t) = min(r*t, k).
type Linear struct{}

func (Linear) Name() string { return GrowthLinear }

func (Linear) Length(age, r, k float64) float64 {
	if age <= 0 || k <= 0 {
		return 0
	}
	return math.Min(r*age, k)
}

func (Linear) Age(length, r, k float64) float64 {
	if length <= 0 {
		return 0
	}
	if length >= k || r <= 0 {
		return math.Inf(1)
	}
	return length / r
}
