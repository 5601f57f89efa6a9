package viz

import (
	"fmt"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// View is the world window drawn onto a canvas: the X/Z plane seen from the
// side, surface at Z = 0, depth increasing downward.
type View struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// FitView frames every node with a margin and keeps the surface in view.
func FitView(lines []grow.Polyline) View {
	v := View{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 0}
	found := false
	for _, pl := range lines {
		for _, n := range pl.Nodes {
			if !found {
				v.MinX, v.MaxX = n.X, n.X
				v.MinZ, v.MaxZ = n.Z, n.Z
				found = true
				continue
			}
			if n.X < v.MinX {
				v.MinX = n.X
			}
			if n.X > v.MaxX {
				v.MaxX = n.X
			}
			if n.Z < v.MinZ {
				v.MinZ = n.Z
			}
			if n.Z > v.MaxZ {
				v.MaxZ = n.Z
			}
		}
	}
	if v.MaxZ < 0 {
		v.MaxZ = 0
	}

	padX := (v.MaxX - v.MinX) * 0.1
	padZ := (v.MaxZ - v.MinZ) * 0.1
	if padX == 0 {
		padX = 1
	}
	if padZ == 0 {
		padZ = 1
	}
	v.MinX -= padX
	v.MaxX += padX
	v.MinZ -= padZ
	v.MaxZ += padZ
	return v
}

func (v View) project(x, z float64, pw, ph int) (int, int) {
	px := (x - v.MinX) / (v.MaxX - v.MinX) * float64(pw-1)
	py := (v.MaxZ - z) / (v.MaxZ - v.MinZ) * float64(ph-1)
	return int(px), int(py)
}

// DrawRoots renders the polylines onto the canvas through the view.
func DrawRoots(c *Canvas, lines []grow.Polyline, v View) {
	pw, ph := c.PixelSize()
	for _, pl := range lines {
		for i := 1; i < len(pl.Nodes); i++ {
			x0, y0 := v.project(pl.Nodes[i-1].X, pl.Nodes[i-1].Z, pw, ph)
			x1, y1 := v.project(pl.Nodes[i].X, pl.Nodes[i].Z, pw, ph)
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

// RenderRootSystem draws a one-shot side view with the soil surface marked.
func RenderRootSystem(lines []grow.Polyline, width, height int) string {
	if len(lines) == 0 {
		return ""
	}

	v := FitView(lines)
	c := NewCanvas(width, height)
	pw, ph := c.PixelSize()

	_, surfaceY := v.project(0, 0, pw, ph)
	c.DrawHLine(surfaceY)
	DrawRoots(c, lines, v)

	footer := fmt.Sprintf(" depth %.1f cm   spread %.1f to %.1f cm",
		-v.MinZ, v.MinX, v.MaxX)
	return c.String() + footer + "\n"
}
