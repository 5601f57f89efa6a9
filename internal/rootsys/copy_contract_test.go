package rootsys_test

import (
	"github.com/rhizotron/rhizosim/internal/grow"
	"github.com/rhizotron/rhizosim/internal/rootsys"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// wildPlant has noise on every parameter so copies must reproduce the RNG
// position, not just the geometry, to stay in lockstep.
func wildPlant() *rootsys.Plant {
	return &rootsys.Plant{
		Name:      "wild",
		SeedDepth: 3,
		MaxB:      4, FirstB: 2, DelayB: 1, BasalType: 3,
		Types: []rootsys.RootTypeParameter{
			{
				Type: 1, Name: "tap",
				LB: 1.5, LBs: 0.3, LA: 2.5, LAs: 0.4, LN: 0.7, LNs: 0.15,
				Nob: 15, Nos: 3, R: 2.8, Rs: 0.4, Radius: 0.1, Dx: 0.5,
				Theta: 0.1, Thetas: 0.05,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1.5, Sigma: 0.25},
				Successors: []rootsys.Successor{{Type: 2, P: 0.85}},
			},
			{
				Type: 2, Name: "lateral",
				LA: 3.5, LAs: 0.6, R: 1.3, Rs: 0.25, Radius: 0.04, Dx: 0.25,
				Theta: 1.25, Thetas: 0.15,
				Tropism: rootsys.Tropism{Kind: rootsys.TropismPlagio, N: 0.8, Sigma: 0.4},
			},
			{
				Type: 3, Name: "basal",
				LB: 1, LBs: 0.2, LA: 2, LAs: 0.3, LN: 0.9, LNs: 0.2,
				Nob: 8, Nos: 2, R: 2, Rs: 0.3, Radius: 0.07, Dx: 0.5,
				Theta: 0.4, Thetas: 0.1,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1, Sigma: 0.3},
				Successors: []rootsys.Successor{{Type: 2, P: 0.8}},
			},
		},
	}
}

var _ = Describe("RootSystem copies", func() {
	var (
		sc  *grow.ScaleController
		sys *rootsys.RootSystem
	)

	BeforeEach(func() {
		sc = grow.NewScaleController()
		var err error
		sys, err = rootsys.New(wildPlant(), 42, sc)
		Expect(err).NotTo(HaveOccurred())
		for day := 0; day < 5; day++ {
			Expect(sys.Grow(1)).To(Succeed())
		}
	})

	It("preserves geometry at the moment of copying", func() {
		cp := sys.Copy()
		Expect(cp.TotalLength()).To(Equal(sys.TotalLength()))
		Expect(cp.RootCount()).To(Equal(sys.RootCount()))
		Expect(cp.NodePositions()).To(Equal(sys.NodePositions()))
	})

	It("replays identical growth when grown in lockstep", func() {
		cp := sys.Copy()
		for day := 0; day < 5; day++ {
			Expect(sys.Grow(1)).To(Succeed())
			Expect(cp.Grow(1)).To(Succeed())
		}
		Expect(cp.TotalLength()).To(Equal(sys.TotalLength()))
		Expect(cp.NodePositions()).To(Equal(sys.NodePositions()))
	})

	It("leaves the original untouched while the copy grows on", func() {
		length := sys.TotalLength()
		nodes := sys.NodeCount()
		roots := sys.RootCount()

		cp := sys.Copy()
		for day := 0; day < 4; day++ {
			Expect(cp.Grow(1)).To(Succeed())
		}

		Expect(cp.TotalLength()).To(BeNumerically(">", length))
		Expect(sys.TotalLength()).To(Equal(length))
		Expect(sys.NodeCount()).To(Equal(nodes))
		Expect(sys.RootCount()).To(Equal(roots))
	})

	It("shares the elongation scale with its copies", func() {
		cp := sys.Copy()
		sc.SetScale(0.3)
		Expect(cp.Scale()).To(Equal(0.3))
		Expect(sys.Scale()).To(Equal(0.3))
		Expect(cp.ScaleController()).To(BeIdenticalTo(sys.ScaleController()))
	})

	It("supports measuring a trial step on a clone before committing", func() {
		start := sys.TotalLength()

		trial := sys.Clone().(*rootsys.RootSystem)
		Expect(trial.Grow(1)).To(Succeed())
		unconstrained := trial.TotalLength() - start

		Expect(unconstrained).To(BeNumerically(">", 0))
		Expect(sys.TotalLength()).To(Equal(start), "trial must not touch the original")

		sc.SetScale(0.5)
		Expect(sys.Grow(1)).To(Succeed())
		committed := sys.TotalLength() - start

		Expect(committed).To(BeNumerically(">", 0))
		Expect(committed).To(BeNumerically("<", unconstrained))
	})
})
