package rootsys

import (
	"fmt"
	"math"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// Tropism kinds.
const (
	TropismGravi  = "gravi"  // bend downward
	TropismPlagio = "plagio" // bend horizontal
	TropismExo    = "exo"    // bend upward
)

// Tropism steers new tip segments. Each time a root lays down a node it
// draws N+1 candidate headings, each deviating from the current heading by a
// random angle with standard deviation Sigma*sqrt(dx), and keeps the one
// that best satisfies the objective. Larger N bends harder, larger Sigma
// wanders more.
type Tropism struct {
	Kind  string  `yaml:"kind"`
	N     float64 `yaml:"n"`
	Sigma float64 `yaml:"sigma"`
}

func (t Tropism) validate() error {
	switch t.Kind {
	case TropismGravi, TropismPlagio, TropismExo, "":
	default:
		return fmt.Errorf("rootsys: unknown tropism %q", t.Kind)
	}
	if t.N < 0 {
		return fmt.Errorf("rootsys: tropism n must be >= 0, got %g", t.N)
	}
	if t.Sigma < 0 {
		return fmt.Errorf("rootsys: tropism sigma must be >= 0, got %g", t.Sigma)
	}
	return nil
}

// objective scores a candidate heading; lower is better.
func (t Tropism) objective(h grow.Vec3) float64 {
	switch t.Kind {
	case TropismPlagio:
		return math.Abs(h.Z)
	case TropismExo:
		return -h.Z
	default:
		return h.Z
	}
}

// nextHeading picks the heading of the next tip segment.
func (t Tropism) nextHeading(heading grow.Vec3, dx float64, rd *rng) grow.Vec3 {
	trials := 1 + int(math.Round(t.N))
	best := heading
	bestScore := math.Inf(1)
	for i := 0; i < trials; i++ {
		beta := 2 * math.Pi * rd.Float64()
		alpha := math.Abs(t.Sigma * math.Sqrt(dx) * rd.NormFloat64())
		cand := rotate(heading, alpha, beta)
		if score := t.objective(cand); score < bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// rotate tilts unit vector h away from itself by polar angle alpha, around
// azimuth beta in the plane orthogonal to h.
func rotate(h grow.Vec3, alpha, beta float64) grow.Vec3 {
	u, v := orthoBasis(h)
	lat := u.Scale(math.Cos(beta)).Add(v.Scale(math.Sin(beta)))
	return h.Scale(math.Cos(alpha)).Add(lat.Scale(math.Sin(alpha))).Normalize()
}

// orthoBasis returns two unit vectors spanning the plane orthogonal to h.
func orthoBasis(h grow.Vec3) (grow.Vec3, grow.Vec3) {
	ref := grow.Vec3{Z: 1}
	if math.Abs(h.Z) > 0.9 {
		ref = grow.Vec3{X: 1}
	}
	u := h.Cross(ref).Normalize()
	v := h.Cross(u)
	return u, v
}
