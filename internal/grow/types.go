package grow

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in 3D space. The z axis points up, so root
// depth is negative z, in centimeters.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Norm()
}

func (v Vec3) IsValid() bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// State is a root system snapshot. Implementations own all dynamic growth
// state (geometry, per-root progress, RNG) and deep-copy it on Clone, so a
// clone and its source evolve independently. Immutable plant parameters and
// the scale controller are shared between clones.
type State interface {
	Clone() State
	TotalLength() float64
	NodePositions() []Vec3
}

// Stepper advances a state by dt days. A trial step and a committed step go
// through the same Stepper; the current elongation scale decides how far
// roots actually extend.
type Stepper interface {
	Advance(st State, dt float64) error
}

// Optional capabilities a State may expose, discovered by type assertion.
type (
	// Clock reports the simulated time in days since germination.
	Clock interface {
		Time() float64
	}

	// TipCounter reports the number of root tips still able to elongate.
	TipCounter interface {
		TipCount() int
	}

	// RootCounter reports the total number of roots in the system.
	RootCounter interface {
		RootCount() int
	}

	// Geometry exposes the root system as polylines for export and analysis.
	Geometry interface {
		Polylines() []Polyline
	}
)

// Polyline is one root rendered as a node chain. Parent indexes the polyline
// this root branched from, -1 for roots emerging from the seed.
type Polyline struct {
	Type   int
	Order  int
	Parent int
	Radius float64
	Nodes  []Vec3
	Times  []float64
}

// Config holds the run parameters of a day-loop simulation.
type Config struct {
	SimTime float64 // horizon in days
	Dt      float64 // step size in days
	MaxInc  float64 // carbon cap as max total elongation per day, cm
	Seed    int64
}

func DefaultConfig() Config {
	return Config{
		SimTime: 30,
		Dt:      1,
		MaxInc:  20,
		Seed:    1,
	}
}

func (c Config) Validate() error {
	if c.SimTime <= 0 {
		return fmt.Errorf("simulation time must be positive, got %g", c.SimTime)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.MaxInc <= 0 {
		return fmt.Errorf("max increment must be positive, got %g", c.MaxInc)
	}
	if c.Days() < 1 {
		return fmt.Errorf("horizon %g shorter than one step %g", c.SimTime, c.Dt)
	}
	return nil
}

// Days is the number of day cycles the driver runs.
func (c Config) Days() int {
	return int(math.Round(c.SimTime / c.Dt))
}

// Budget is the growth allowance of one step, cm of total elongation.
func (c Config) Budget() float64 {
	return c.MaxInc * c.Dt
}

// DayRecord is the accounting of one trial/commit cycle.
type DayRecord struct {
	Day                int     // 1-based
	Time               float64 // days at end of cycle
	StartLength        float64
	TrialIncrement     float64 // unconstrained growth measured on the clone
	Budget             float64 // MaxInc * Dt
	Scale              float64 // elongation scale used for the committed step
	CommittedIncrement float64
	EndLength          float64
	Limited            bool // true when the trial exceeded the budget
}

// Utilization is the fraction of the day budget the committed step used.
func (r DayRecord) Utilization() float64 {
	if r.Budget <= 0 {
		return 0
	}
	return r.CommittedIncrement / r.Budget
}

// Result collects the outcome of a full run.
type Result struct {
	Records     []DayRecord
	FinalState  State
	FinalLength float64
	LimitedDays int
	Metrics     map[string]float64
}
