package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// Profile is a histogram of root length over soil depth. Bin i holds the
// length found between depths [i*BinSize, (i+1)*BinSize), in cm below the
// surface.
type Profile struct {
	BinSize float64
	Bins    []float64
}

// DepthProfile bins the length of every segment by the depth of its
// midpoint. Segments above the surface count as depth zero.
func DepthProfile(lines []grow.Polyline, binSize float64) *Profile {
	if binSize <= 0 {
		binSize = 5
	}
	profile := &Profile{BinSize: binSize}

	for _, pl := range lines {
		for i := 1; i < len(pl.Nodes); i++ {
			a, b := pl.Nodes[i-1], pl.Nodes[i]
			length := a.Dist(b)
			if length == 0 {
				continue
			}
			depth := math.Max(0, -(a.Z+b.Z)/2)
			bin := int(depth / binSize)
			for len(profile.Bins) <= bin {
				profile.Bins = append(profile.Bins, 0)
			}
			profile.Bins[bin] += length
		}
	}
	return profile
}

// Total is the summed length over all bins.
func (p *Profile) Total() float64 {
	total := 0.0
	for _, v := range p.Bins {
		total += v
	}
	return total
}

// ToASCII renders the profile as a horizontal bar chart, surface at the top.
func (p *Profile) ToASCII(width int) string {
	if len(p.Bins) == 0 {
		return ""
	}
	if width <= 0 {
		width = 40
	}

	maxBin := 0.0
	for _, v := range p.Bins {
		if v > maxBin {
			maxBin = v
		}
	}

	var sb strings.Builder
	for i, v := range p.Bins {
		bar := 0
		if maxBin > 0 {
			bar = int(math.Round(v / maxBin * float64(width)))
		}
		sb.WriteString(fmt.Sprintf("%4.0f-%4.0f cm |%-*s| %7.1f cm\n",
			float64(i)*p.BinSize, float64(i+1)*p.BinSize,
			width, strings.Repeat("#", bar), v))
	}
	return sb.String()
}

// MaxDepth is the depth of the deepest node, in cm below the surface.
func MaxDepth(lines []grow.Polyline) float64 {
	depth := 0.0
	for _, pl := range lines {
		for _, n := range pl.Nodes {
			if d := -n.Z; d > depth {
				depth = d
			}
		}
	}
	return depth
}

// Spread is the largest horizontal distance of any node from the plant axis.
func Spread(lines []grow.Polyline) float64 {
	spread := 0.0
	for _, pl := range lines {
		for _, n := range pl.Nodes {
			if r := math.Hypot(n.X, n.Y); r > spread {
				spread = r
			}
		}
	}
	return spread
}
