package rootsys

import (
	"fmt"
	"math"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// RootTypeParameter describes one root type. Paired fields hold a mean and a
// standard deviation; each root draws its own realization at creation.
// Lengths are cm, times days, angles radians.
type RootTypeParameter struct {
	Type int    `yaml:"type"` // 1-based
	Name string `yaml:"name"`

	LB  float64 `yaml:"lb"`  // basal zone length
	LBs float64 `yaml:"lbs"` //
	LA  float64 `yaml:"la"`  // apical zone length
	LAs float64 `yaml:"las"` //
	LN  float64 `yaml:"ln"`  // inter-lateral spacing
	LNs float64 `yaml:"lns"` //
	Nob float64 `yaml:"nob"` // number of branches
	Nos float64 `yaml:"nos"` //

	R  float64 `yaml:"r"`  // initial elongation rate, cm/day
	Rs float64 `yaml:"rs"` //

	Radius float64 `yaml:"radius"`
	Theta  float64 `yaml:"theta"`  // insertion angle from parent axis
	Thetas float64 `yaml:"thetas"` //
	RLT    float64 `yaml:"rlt"`    // root life time, days
	RLTs   float64 `yaml:"rlts"`   //
	Dx     float64 `yaml:"dx"`     // axial node spacing

	GrowthFunc string      `yaml:"growth"` // negexp (default) or linear
	Tropism    Tropism     `yaml:"tropism"`
	Successors []Successor `yaml:"successors,omitempty"`

	gf GrowthFunction
	se *grow.ScaleController
}

// Successor is a candidate lateral type with its branching probability.
// Probabilities below a total of 1 leave the remainder as "no lateral".
type Successor struct {
	Type int     `yaml:"type"`
	P    float64 `yaml:"p"`
}

// scale reads the shared elongation scale attached to this type.
func (p *RootTypeParameter) scale() float64 {
	if p.se == nil {
		return 1
	}
	return p.se.Scale()
}

func (p *RootTypeParameter) validate(n int) error {
	if p.Dx <= 0 {
		return fmt.Errorf("type %d: dx must be positive, got %g", p.Type, p.Dx)
	}
	if p.LB < 0 || p.LA < 0 || p.LN < 0 || p.Nob < 0 {
		return fmt.Errorf("type %d: negative branching zone parameter", p.Type)
	}
	if p.R < 0 {
		return fmt.Errorf("type %d: negative elongation rate %g", p.Type, p.R)
	}
	if p.Nob >= 1 && len(p.Successors) > 0 && p.LN <= 0 {
		return fmt.Errorf("type %d: nob %g needs positive inter-lateral spacing", p.Type, p.Nob)
	}
	if _, err := growthFunction(p.GrowthFunc); err != nil {
		return fmt.Errorf("type %d: %w", p.Type, err)
	}
	if err := p.Tropism.validate(); err != nil {
		return fmt.Errorf("type %d: %w", p.Type, err)
	}
	sum := 0.0
	for _, s := range p.Successors {
		if s.Type < 1 || s.Type > n {
			return fmt.Errorf("type %d: successor type %d out of range 1..%d", p.Type, s.Type, n)
		}
		if s.P < 0 || s.P > 1 {
			return fmt.Errorf("type %d: successor probability %g outside [0,1]", p.Type, s.P)
		}
		sum += s.P
	}
	if sum > 1+1e-9 {
		return fmt.Errorf("type %d: successor probabilities sum to %g", p.Type, sum)
	}
	return nil
}

// realize draws the per-root parameter set. Draws are clamped to stay
// physical; nob rounds to the nearest whole count.
func (p *RootTypeParameter) realize(rd *rng) rootParams {
	rp := rootParams{typ: p.Type}
	rp.lb = math.Max(0, p.LB+p.LBs*rd.NormFloat64())
	rp.la = math.Max(0, p.LA+p.LAs*rd.NormFloat64())
	nob := int(math.Round(math.Max(0, p.Nob+p.Nos*rd.NormFloat64())))
	if len(p.Successors) == 0 {
		nob = 0
	}
	rp.nob = nob
	if nob > 1 {
		rp.ln = make([]float64, nob-1)
		for i := range rp.ln {
			rp.ln[i] = math.Max(1e-2, p.LN+p.LNs*rd.NormFloat64())
		}
	}
	rp.r = math.Max(0, p.R+p.Rs*rd.NormFloat64())
	rp.radius = p.Radius
	rp.theta = math.Max(0, p.Theta+p.Thetas*rd.NormFloat64())
	rp.rlt = math.Inf(1) // zero RLT means unlimited
	if p.RLT > 0 {
		rp.rlt = math.Max(0, p.RLT+p.RLTs*rd.NormFloat64())
	}
	rp.dx = p.Dx
	rp.k = rp.lb + rp.la
	for _, g := range rp.ln {
		rp.k += g
	}
	return rp
}

// rootParams is one realized draw. ln holds the nob-1 inter-lateral gaps;
// k caches the resulting maximum length lb + sum(ln) + la.
type rootParams struct {
	typ    int
	lb     float64
	la     float64
	ln     []float64
	nob    int
	r      float64
	radius float64
	theta  float64
	rlt    float64
	dx     float64
	k      float64
}

func (rp rootParams) clone() rootParams {
	c := rp
	if rp.ln != nil {
		c.ln = make([]float64, len(rp.ln))
		copy(c.ln, rp.ln)
	}
	return c
}

// branchMark is the length at which lateral i sits, measured from the base.
func (rp rootParams) branchMark(i int) float64 {
	m := rp.lb
	for j := 0; j < i && j < len(rp.ln); j++ {
		m += rp.ln[j]
	}
	return m
}

// emergeMark is the length the root must reach before lateral i appears:
// the apical zone has to clear the branch point first.
func (rp rootParams) emergeMark(i int) float64 {
	return rp.branchMark(i) + rp.la
}

// Plant bundles the root types of one plant with its seed parameters.
// Basal roots emerge from the seed at FirstB, then every DelayB days, up to
// MaxB of them.
type Plant struct {
	Name      string  `yaml:"name"`
	SeedDepth float64 `yaml:"seed_depth"` // planting depth, cm
	MaxB      int     `yaml:"maxb"`
	FirstB    float64 `yaml:"firstb"`
	DelayB    float64 `yaml:"delayb"`
	BasalType int     `yaml:"basal_type"`

	Types []RootTypeParameter `yaml:"types"`
}

func (p *Plant) Validate() error {
	if len(p.Types) == 0 {
		return fmt.Errorf("plant %q: no root types", p.Name)
	}
	for i := range p.Types {
		if p.Types[i].Type != i+1 {
			return fmt.Errorf("plant %q: types must be numbered 1..%d in order, got %d at position %d",
				p.Name, len(p.Types), p.Types[i].Type, i)
		}
		if err := p.Types[i].validate(len(p.Types)); err != nil {
			return fmt.Errorf("plant %q: %w", p.Name, err)
		}
	}
	if p.SeedDepth < 0 {
		return fmt.Errorf("plant %q: negative seed depth %g", p.Name, p.SeedDepth)
	}
	if p.MaxB > 0 {
		if p.BasalType < 1 || p.BasalType > len(p.Types) {
			return fmt.Errorf("plant %q: basal type %d out of range 1..%d", p.Name, p.BasalType, len(p.Types))
		}
		if p.DelayB < 0 || p.FirstB < 0 {
			return fmt.Errorf("plant %q: negative basal emergence time", p.Name)
		}
	}
	return nil
}

// SetGrowthFunction switches every root type to the named growth law.
func (p *Plant) SetGrowthFunction(name string) error {
	if _, err := growthFunction(name); err != nil {
		return err
	}
	for i := range p.Types {
		p.Types[i].GrowthFunc = name
	}
	return nil
}

// AttachScale points every root type at the shared elongation scale.
func (p *Plant) AttachScale(sc *grow.ScaleController) {
	for i := range p.Types {
		p.Types[i].se = sc
	}
}
