package rootsys

import (
	"math"

	"github.com/rhizotron/rhizosim/internal/grow"
)

const lengthEps = 1e-9

// Root is one root axis: a polyline from its base node to a moving tip
// node, plus the laterals branched off it. The final node tracks the tip
// exactly; tipLen is the length of that last, still-filling segment, so
// every interior segment measures exactly dx.
type Root struct {
	id     int
	order  int // 0 for roots emerging from the seed
	parent *Root

	param   rootParams
	gf      GrowthFunction
	heading grow.Vec3 // unit direction of the filling tip segment

	nodes  []grow.Vec3
	ntimes []float64 // node creation times, days

	ctime   float64 // emergence time, days
	age     float64
	length  float64
	tipLen  float64
	nextLat int // index of the next lateral to emerge

	laterals []*Root
}

func (r *Root) clone(parent *Root) *Root {
	c := &Root{
		id:      r.id,
		order:   r.order,
		parent:  parent,
		param:   r.param.clone(),
		gf:      r.gf,
		heading: r.heading,
		ctime:   r.ctime,
		age:     r.age,
		length:  r.length,
		tipLen:  r.tipLen,
		nextLat: r.nextLat,
	}
	c.nodes = make([]grow.Vec3, len(r.nodes))
	copy(c.nodes, r.nodes)
	c.ntimes = make([]float64, len(r.ntimes))
	copy(c.ntimes, r.ntimes)
	if len(r.laterals) > 0 {
		c.laterals = make([]*Root, len(r.laterals))
		for i, l := range r.laterals {
			c.laterals[i] = l.clone(c)
		}
	}
	return c
}

func (r *Root) tip() grow.Vec3 {
	return r.nodes[len(r.nodes)-1]
}

func (r *Root) Length() float64 { return r.length }
func (r *Root) Age() float64    { return r.age }
func (r *Root) Order() int      { return r.order }
func (r *Root) Type() int       { return r.param.typ }

// active reports whether the root can still elongate.
func (r *Root) active() bool {
	return r.age <= r.param.rlt && r.length < r.param.k-lengthEps && r.param.r > 0
}

// targetIncrement is the unconstrained elongation over dt, derived from the
// current length so that budget-scaled roots resume where they stopped.
func (r *Root) targetIncrement(dt float64) float64 {
	if !r.active() {
		return 0
	}
	p := r.param
	age := r.gf.Age(r.length, p.r, p.k)
	inc := r.gf.Length(age+dt, p.r, p.k) - r.length
	if inc < 0 {
		return 0
	}
	return inc
}

// grow advances this root and its pre-existing laterals by dt, starting at
// simulation time t0. Laterals created during the step only receive their
// partial-day growth at creation.
func (r *Root) grow(sys *RootSystem, t0, dt float64) {
	if dt <= 0 {
		return
	}
	existing := len(r.laterals)
	if r.age <= r.param.rlt {
		raw := r.targetIncrement(dt)
		e := raw * sys.scaleFor(r.param.typ)
		l0 := r.length
		if e > lengthEps {
			r.elongate(sys, t0+dt, e)
		}
		r.spawnLaterals(sys, t0, dt, r.length-l0)
	}
	r.age += dt
	for i := 0; i < existing; i++ {
		r.laterals[i].grow(sys, t0, dt)
	}
}

// elongate extends the tip by delta cm, completing dx segments with
// tropism-bent headings as it goes. now stamps the nodes being laid down.
func (r *Root) elongate(sys *RootSystem, now, delta float64) {
	p := r.param
	tr := sys.plant.Types[p.typ-1].Tropism
	remaining := delta
	for remaining > lengthEps {
		space := p.dx - r.tipLen
		if space <= lengthEps {
			// Tip segment is full: bend and open the next one.
			r.heading = tr.nextHeading(r.heading, p.dx, sys.rng)
			r.nodes = append(r.nodes, r.tip())
			r.ntimes = append(r.ntimes, now)
			r.tipLen = 0
			space = p.dx
		}
		step := math.Min(remaining, space)
		last := len(r.nodes) - 1
		r.nodes[last] = r.nodes[last].Add(r.heading.Scale(step))
		r.ntimes[last] = now
		r.tipLen += step
		r.length += step
		remaining -= step
	}
}

// spawnLaterals emerges every lateral whose mark the tip passed during a
// step that grew the root by `growth` cm. A lateral created mid-step gets
// the remaining fraction of the day as its first growth.
func (r *Root) spawnLaterals(sys *RootSystem, t0, dt, growth float64) {
	p := r.param
	for r.nextLat < p.nob {
		mark := p.emergeMark(r.nextLat)
		if r.length < mark-lengthEps {
			return
		}
		frac := 0.0
		if growth > lengthEps {
			frac = (r.length - mark) / growth
			frac = math.Min(1, math.Max(0, frac))
		}
		latDt := frac * dt
		ctime := t0 + dt - latDt

		typ := sys.pickSuccessor(p.typ)
		if typ > 0 {
			pos, dir := r.positionAt(p.branchMark(r.nextLat))
			lat := sys.newRoot(typ, pos, dir, ctime, r.order+1, r)
			r.laterals = append(r.laterals, lat)
			if latDt > lengthEps {
				lat.grow(sys, ctime, latDt)
			}
		}
		r.nextLat++
	}
}

// positionAt walks the polyline to arc length s and returns the point and
// the local axis direction there.
func (r *Root) positionAt(s float64) (grow.Vec3, grow.Vec3) {
	rem := s
	for i := 0; i+1 < len(r.nodes); i++ {
		seg := r.nodes[i+1].Sub(r.nodes[i])
		segLen := seg.Norm()
		if segLen <= 0 {
			continue
		}
		if rem <= segLen || i+2 == len(r.nodes) {
			t := math.Min(1, rem/segLen)
			return r.nodes[i].Add(seg.Scale(t)), seg.Scale(1 / segLen)
		}
		rem -= segLen
	}
	return r.tip(), r.heading
}

