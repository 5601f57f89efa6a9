package config

import (
	"sort"

	"github.com/rhizotron/rhizosim/internal/rootsys"
)

// GetPreset returns a fresh copy of a builtin plant, or nil. Copies keep
// callers from attaching one run's scale controller to another run's types.
func GetPreset(name string) *rootsys.Plant {
	switch name {
	case "anagallis":
		return anagallis()
	case "zeamays":
		return zeamays()
	case "lupinus":
		return lupinus()
	default:
		return nil
	}
}

func ListPresets() []string {
	names := []string{"anagallis", "zeamays", "lupinus"}
	sort.Strings(names)
	return names
}

// anagallis is a small dicot with a densely branched tap root and a few
// basal roots, after Anagallis femina.
func anagallis() *rootsys.Plant {
	return &rootsys.Plant{
		Name:      "anagallis",
		SeedDepth: 3,
		MaxB:      4, FirstB: 3, DelayB: 2, BasalType: 4,
		Types: []rootsys.RootTypeParameter{
			{
				Type: 1, Name: "taproot",
				LB: 2, LBs: 0.3, LA: 3.5, LAs: 0.5, LN: 0.6, LNs: 0.1,
				Nob: 35, Nos: 4, R: 3, Rs: 0.3,
				Radius: 0.1, Theta: 0, Dx: 0.5,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1.5, Sigma: 0.2},
				Successors: []rootsys.Successor{{Type: 2, P: 1}},
			},
			{
				Type: 2, Name: "lateral",
				LB: 0.2, LBs: 0.05, LA: 2.5, LAs: 0.4, LN: 0.45, LNs: 0.08,
				Nob: 9, Nos: 2, R: 1.5, Rs: 0.2,
				Radius: 0.04, Theta: 1.22, Thetas: 0.15, Dx: 0.25,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 0.8, Sigma: 0.4},
				Successors: []rootsys.Successor{{Type: 3, P: 0.8}},
			},
			{
				Type: 3, Name: "fine lateral",
				LA: 1.8, LAs: 0.3, R: 0.7, Rs: 0.1,
				Radius: 0.02, Theta: 1.35, Thetas: 0.2, Dx: 0.25,
				Tropism: rootsys.Tropism{Kind: rootsys.TropismGravi, N: 0.3, Sigma: 0.5},
			},
			{
				Type: 4, Name: "basal",
				LB: 1.5, LBs: 0.3, LA: 3, LAs: 0.5, LN: 0.7, LNs: 0.1,
				Nob: 25, Nos: 3, R: 2.2, Rs: 0.3,
				Radius: 0.08, Theta: 0.35, Thetas: 0.1, Dx: 0.5,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1.2, Sigma: 0.25},
				Successors: []rootsys.Successor{{Type: 2, P: 1}},
			},
		},
	}
}

// zeamays is a fast monocot: a vigorous tap root plus seminal roots, after
// Zea mays.
func zeamays() *rootsys.Plant {
	return &rootsys.Plant{
		Name:      "zeamays",
		SeedDepth: 2,
		MaxB:      5, FirstB: 1.5, DelayB: 1.5, BasalType: 4,
		Types: []rootsys.RootTypeParameter{
			{
				Type: 1, Name: "taproot",
				LB: 4, LBs: 0.5, LA: 1.3, LAs: 0.3, LN: 0.6, LNs: 0.1,
				Nob: 60, Nos: 6, R: 6, Rs: 0.8,
				Radius: 0.2, Theta: 0, Dx: 0.5,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 2, Sigma: 0.15},
				Successors: []rootsys.Successor{{Type: 2, P: 1}},
			},
			{
				Type: 2, Name: "lateral",
				LB: 0.4, LBs: 0.1, LA: 1.2, LAs: 0.2, LN: 0.4, LNs: 0.08,
				Nob: 12, Nos: 2, R: 2, Rs: 0.3,
				Radius: 0.05, Theta: 1.22, Thetas: 0.15, Dx: 0.25,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1, Sigma: 0.35},
				Successors: []rootsys.Successor{{Type: 3, P: 0.7}},
			},
			{
				Type: 3, Name: "fine lateral",
				LA: 1, LAs: 0.2, R: 0.8, Rs: 0.1,
				Radius: 0.02, Theta: 1.3, Thetas: 0.2, Dx: 0.25,
				Tropism: rootsys.Tropism{Kind: rootsys.TropismGravi, N: 0.3, Sigma: 0.5},
			},
			{
				Type: 4, Name: "seminal",
				LB: 2, LBs: 0.3, LA: 2, LAs: 0.4, LN: 0.7, LNs: 0.1,
				Nob: 30, Nos: 4, R: 4, Rs: 0.5,
				Radius: 0.1, Theta: 0.5, Thetas: 0.1, Dx: 0.5,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1.5, Sigma: 0.2},
				Successors: []rootsys.Successor{{Type: 2, P: 1}},
			},
		},
	}
}

// lupinus is a slower legume with plagiotropic fine laterals, after
// Lupinus albus.
func lupinus() *rootsys.Plant {
	return &rootsys.Plant{
		Name:      "lupinus",
		SeedDepth: 3,
		MaxB:      2, FirstB: 4, DelayB: 3, BasalType: 1,
		Types: []rootsys.RootTypeParameter{
			{
				Type: 1, Name: "taproot",
				LB: 1.5, LBs: 0.3, LA: 4, LAs: 0.6, LN: 0.9, LNs: 0.15,
				Nob: 28, Nos: 3, R: 2.2, Rs: 0.3,
				Radius: 0.12, Theta: 0, Dx: 0.5,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 1.8, Sigma: 0.15},
				Successors: []rootsys.Successor{{Type: 2, P: 1}},
			},
			{
				Type: 2, Name: "lateral",
				LB: 0.3, LBs: 0.1, LA: 3, LAs: 0.5, LN: 0.8, LNs: 0.1,
				Nob: 6, Nos: 1.5, R: 1, Rs: 0.15,
				Radius: 0.05, Theta: 1.1, Thetas: 0.15, Dx: 0.25,
				Tropism:    rootsys.Tropism{Kind: rootsys.TropismGravi, N: 0.7, Sigma: 0.4},
				Successors: []rootsys.Successor{{Type: 3, P: 0.6}},
			},
			{
				Type: 3, Name: "fine lateral",
				LA: 1.5, LAs: 0.3, R: 0.5, Rs: 0.08,
				Radius: 0.02, Theta: 1.3, Thetas: 0.2, Dx: 0.25,
				Tropism: rootsys.Tropism{Kind: rootsys.TropismPlagio, N: 0.4, Sigma: 0.5},
			},
		},
	}
}
