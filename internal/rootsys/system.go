package rootsys

import (
	"fmt"
	"math"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// RootSystem is a growing root architecture. It implements [grow.State];
// Copy deep-copies all dynamic state (roots, RNG position, clock) and
// shares the immutable plant description and the scale controller.
type RootSystem struct {
	plant *Plant
	sc    *grow.ScaleController
	rng   *rng

	seed      int64
	time      float64
	baseRoots []*Root
	nextBasal int
	nroots    int
}

// New initializes a root system for the given plant. The tap root (type 1)
// is created at the seed, more basal roots emerge later per the plant's
// schedule. sc may be nil, in which case the system gets its own controller.
func New(p *Plant, seed int64, sc *grow.ScaleController) (*RootSystem, error) {
	if p == nil {
		return nil, fmt.Errorf("rootsys: nil plant")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		sc = grow.NewScaleController()
	}
	p.AttachScale(sc)

	s := &RootSystem{
		plant: p,
		sc:    sc,
		rng:   newRNG(seed),
		seed:  seed,
	}
	down := grow.Vec3{Z: -1}
	tap := s.newRoot(1, s.seedPos(), down, 0, 0, nil)
	s.baseRoots = append(s.baseRoots, tap)
	return s, nil
}

func (s *RootSystem) seedPos() grow.Vec3 {
	return grow.Vec3{Z: -s.plant.SeedDepth}
}

// newRoot realizes parameters for one root and places it. axis is the
// direction the insertion angle is measured from: the parent's local axis
// for laterals, straight down for roots emerging from the seed.
func (s *RootSystem) newRoot(typ int, pos, axis grow.Vec3, ctime float64, order int, parent *Root) *Root {
	p := &s.plant.Types[typ-1]
	rp := p.realize(s.rng)
	gf, _ := growthFunction(p.GrowthFunc)

	r := &Root{
		id:     s.nroots,
		order:  order,
		parent: parent,
		param:  rp,
		gf:     gf,
		ctime:  ctime,
		nodes:  []grow.Vec3{pos, pos},
		ntimes: []float64{ctime, ctime},
	}
	beta := 2 * math.Pi * s.rng.Float64()
	r.heading = rotate(axis.Normalize(), rp.theta, beta)
	s.nroots++
	return r
}

// pickSuccessor draws the lateral type branching off a root of parentType,
// or 0 when the draw lands in the no-lateral remainder.
func (s *RootSystem) pickSuccessor(parentType int) int {
	succ := s.plant.Types[parentType-1].Successors
	if len(succ) == 0 {
		return 0
	}
	d := s.rng.Float64()
	acc := 0.0
	for _, sc := range succ {
		acc += sc.P
		if d < acc {
			return sc.Type
		}
	}
	return 0
}

func (s *RootSystem) scaleFor(typ int) float64 {
	return s.plant.Types[typ-1].scale()
}

// Grow advances the whole system by dt days: existing roots elongate and
// branch, then any basal roots scheduled inside the step emerge with the
// rest of the day as their first growth.
func (s *RootSystem) Grow(dt float64) error {
	if dt <= 0 {
		return grow.ErrNonPositiveStep
	}
	if len(s.baseRoots) == 0 {
		return grow.ErrNotInitialized
	}
	t0 := s.time
	existing := len(s.baseRoots)
	for i := 0; i < existing; i++ {
		s.baseRoots[i].grow(s, t0, dt)
	}
	s.spawnBasals(t0, dt)
	s.time = t0 + dt
	return nil
}

func (s *RootSystem) spawnBasals(t0, dt float64) {
	p := s.plant
	if p.MaxB <= 0 {
		return
	}
	for s.nextBasal < p.MaxB {
		et := p.FirstB + float64(s.nextBasal)*p.DelayB
		if et >= t0+dt-lengthEps {
			return
		}
		down := grow.Vec3{Z: -1}
		b := s.newRoot(p.BasalType, s.seedPos(), down, et, 0, nil)
		s.baseRoots = append(s.baseRoots, b)
		s.nextBasal++
		if rest := t0 + dt - et; rest > lengthEps {
			b.grow(s, et, rest)
		}
	}
}

// Copy deep-copies the system including the RNG position, so originals and
// copies grown identically stay identical. Plant parameters and the scale
// controller are shared.
func (s *RootSystem) Copy() *RootSystem {
	c := &RootSystem{
		plant:     s.plant,
		sc:        s.sc,
		rng:       s.rng.clone(),
		seed:      s.seed,
		time:      s.time,
		nextBasal: s.nextBasal,
		nroots:    s.nroots,
	}
	c.baseRoots = make([]*Root, len(s.baseRoots))
	for i, r := range s.baseRoots {
		c.baseRoots[i] = r.clone(nil)
	}
	return c
}

// Clone implements [grow.State].
func (s *RootSystem) Clone() grow.State {
	return s.Copy()
}

// TotalLength is the summed length of every root, cm.
func (s *RootSystem) TotalLength() float64 {
	sum := 0.0
	s.visit(func(r *Root) {
		sum += r.length
	})
	return sum
}

// NodePositions returns every node of every root in stable depth-first
// creation order.
func (s *RootSystem) NodePositions() []grow.Vec3 {
	pts := make([]grow.Vec3, 0, s.NodeCount())
	s.visit(func(r *Root) {
		pts = append(pts, r.nodes...)
	})
	return pts
}

func (s *RootSystem) NodeCount() int {
	n := 0
	s.visit(func(r *Root) {
		n += len(r.nodes)
	})
	return n
}

// Roots returns all roots in depth-first creation order.
func (s *RootSystem) Roots() []*Root {
	out := make([]*Root, 0, s.nroots)
	s.visit(func(r *Root) {
		out = append(out, r)
	})
	return out
}

func (s *RootSystem) visit(fn func(*Root)) {
	var walk func(*Root)
	walk = func(r *Root) {
		fn(r)
		for _, l := range r.laterals {
			walk(l)
		}
	}
	for _, b := range s.baseRoots {
		walk(b)
	}
}

// Polylines implements [grow.Geometry].
func (s *RootSystem) Polylines() []grow.Polyline {
	polys := make([]grow.Polyline, 0, s.nroots)

	var walk func(r *Root, parentIdx int)
	walk = func(r *Root, parentIdx int) {
		nodes := make([]grow.Vec3, len(r.nodes))
		copy(nodes, r.nodes)
		times := make([]float64, len(r.ntimes))
		copy(times, r.ntimes)
		polys = append(polys, grow.Polyline{
			Type:   r.param.typ,
			Order:  r.order,
			Parent: parentIdx,
			Radius: r.param.radius,
			Nodes:  nodes,
			Times:  times,
		})
		idx := len(polys) - 1
		for _, l := range r.laterals {
			walk(l, idx)
		}
	}
	for _, b := range s.baseRoots {
		walk(b, -1)
	}
	return polys
}

// Time implements [grow.Clock].
func (s *RootSystem) Time() float64 { return s.time }

// RootCount implements [grow.RootCounter].
func (s *RootSystem) RootCount() int { return s.nroots }

// TipCount implements [grow.TipCounter]: roots still able to elongate.
func (s *RootSystem) TipCount() int {
	n := 0
	s.visit(func(r *Root) {
		if r.active() {
			n++
		}
	})
	return n
}

// Scale reads the current elongation scale.
func (s *RootSystem) Scale() float64 { return s.sc.Scale() }

// ScaleController returns the controller shared by this system and all of
// its clones.
func (s *RootSystem) ScaleController() *grow.ScaleController { return s.sc }

func (s *RootSystem) Plant() *Plant { return s.plant }
func (s *RootSystem) Seed() int64   { return s.seed }

// MaxDepth is the deepest node, cm below the surface (positive number).
func (s *RootSystem) MaxDepth() float64 {
	maxd := 0.0
	s.visit(func(r *Root) {
		for _, n := range r.nodes {
			if d := -n.Z; d > maxd {
				maxd = d
			}
		}
	})
	return maxd
}

// Stepper adapts a RootSystem to the [grow.Stepper] interface.
type Stepper struct{}

func (Stepper) Advance(st grow.State, dt float64) error {
	rs, ok := st.(*RootSystem)
	if !ok {
		return fmt.Errorf("rootsys: unsupported state %T", st)
	}
	return rs.Grow(dt)
}

var _ grow.State = (*RootSystem)(nil)
var _ grow.Clock = (*RootSystem)(nil)
var _ grow.Geometry = (*RootSystem)(nil)
var _ grow.TipCounter = (*RootSystem)(nil)
var _ grow.RootCounter = (*RootSystem)(nil)
var _ grow.Stepper = Stepper{}
