package analysis

import (
	"sort"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// GroupStats aggregates the roots sharing one key, either a root type or a
// branching order.
type GroupStats struct {
	Key    int
	Roots  int
	Length float64
}

// ByType groups root length and counts per root type, ascending.
func ByType(lines []grow.Polyline) []GroupStats {
	return group(lines, func(pl grow.Polyline) int { return pl.Type })
}

// ByOrder groups root length and counts per branching order, tap root first.
func ByOrder(lines []grow.Polyline) []GroupStats {
	return group(lines, func(pl grow.Polyline) int { return pl.Order })
}

func group(lines []grow.Polyline, key func(grow.Polyline) int) []GroupStats {
	stats := make([]GroupStats, 0, 4)
	for _, pl := range lines {
		k := key(pl)
		idx := -1
		for i := range stats {
			if stats[i].Key == k {
				idx = i
				break
			}
		}
		if idx < 0 {
			stats = append(stats, GroupStats{Key: k})
			idx = len(stats) - 1
		}
		stats[idx].Roots++
		stats[idx].Length += polylineLength(pl)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Key < stats[j].Key })
	return stats
}

func polylineLength(pl grow.Polyline) float64 {
	length := 0.0
	for i := 1; i < len(pl.Nodes); i++ {
		length += pl.Nodes[i-1].Dist(pl.Nodes[i])
	}
	return length
}
