package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// vertical root: 12 cm straight down from the surface.
func verticalLine() grow.Polyline {
	return grow.Polyline{
		Type: 1, Order: 0, Parent: -1,
		Nodes: []grow.Vec3{{Z: 0}, {Z: -4}, {Z: -8}, {Z: -12}},
	}
}

func TestDepthProfile(t *testing.T) {
	p := DepthProfile([]grow.Polyline{verticalLine()}, 4)

	// Segment midpoints sit at depths 2, 6 and 10.
	if len(p.Bins) != 3 {
		t.Fatalf("expected 3 bins, got %d", len(p.Bins))
	}
	for i, want := range []float64{4, 4, 4} {
		if math.Abs(p.Bins[i]-want) > 1e-9 {
			t.Errorf("bin %d: expected %g cm, got %g", i, want, p.Bins[i])
		}
	}
	if math.Abs(p.Total()-12) > 1e-9 {
		t.Errorf("expected total 12, got %g", p.Total())
	}
}

func TestDepthProfileAboveSurface(t *testing.T) {
	up := grow.Polyline{Nodes: []grow.Vec3{{Z: 0}, {Z: 2}}}
	p := DepthProfile([]grow.Polyline{up}, 5)

	if len(p.Bins) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(p.Bins))
	}
	if math.Abs(p.Bins[0]-2) > 1e-9 {
		t.Errorf("length above the surface should count at depth zero, got %g", p.Bins[0])
	}
}

func TestDepthProfileEmpty(t *testing.T) {
	p := DepthProfile(nil, 5)
	if len(p.Bins) != 0 || p.Total() != 0 {
		t.Errorf("expected empty profile, got %+v", p)
	}
	if p.ToASCII(40) != "" {
		t.Error("expected empty rendering for empty profile")
	}
}

func TestProfileToASCII(t *testing.T) {
	p := DepthProfile([]grow.Polyline{verticalLine()}, 4)
	out := p.ToASCII(20)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "0-") || !strings.Contains(lines[0], "#") {
		t.Errorf("unexpected first row: %q", lines[0])
	}
}

func TestMaxDepthAndSpread(t *testing.T) {
	lines := []grow.Polyline{
		verticalLine(),
		{Nodes: []grow.Vec3{{Z: -2}, {X: 3, Y: 4, Z: -5}}},
	}

	if d := MaxDepth(lines); d != 12 {
		t.Errorf("expected max depth 12, got %g", d)
	}
	if s := Spread(lines); math.Abs(s-5) > 1e-9 {
		t.Errorf("expected spread 5, got %g", s)
	}
	if d := MaxDepth(nil); d != 0 {
		t.Errorf("expected zero depth without roots, got %g", d)
	}
}

func TestGrouping(t *testing.T) {
	lines := []grow.Polyline{
		{Type: 1, Order: 0, Nodes: []grow.Vec3{{}, {Z: -10}}},
		{Type: 2, Order: 1, Nodes: []grow.Vec3{{}, {X: 3}}},
		{Type: 2, Order: 1, Nodes: []grow.Vec3{{}, {X: 4}}},
	}

	byType := ByType(lines)
	if len(byType) != 2 {
		t.Fatalf("expected 2 type groups, got %d", len(byType))
	}
	if byType[0].Key != 1 || byType[0].Roots != 1 || math.Abs(byType[0].Length-10) > 1e-9 {
		t.Errorf("unexpected type 1 stats: %+v", byType[0])
	}
	if byType[1].Key != 2 || byType[1].Roots != 2 || math.Abs(byType[1].Length-7) > 1e-9 {
		t.Errorf("unexpected type 2 stats: %+v", byType[1])
	}

	byOrder := ByOrder(lines)
	if len(byOrder) != 2 || byOrder[0].Key != 0 || byOrder[1].Roots != 2 {
		t.Errorf("unexpected order stats: %+v", byOrder)
	}
}
