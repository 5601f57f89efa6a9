package export

import (
	"fmt"
	"strings"

	"github.com/rhizotron/rhizosim/internal/grow"
)

var orderColors = []string{"#e8c35a", "#5ad17a", "#5aa9e8", "#d15ab4", "#e86a5a", "#5ae0d1"}

// RootsToSVG draws the root system projected onto the X/Z plane, surface up.
// Stroke width follows root radius, color follows branching order.
func RootsToSVG(lines []grow.Polyline, width, height int) string {
	if len(lines) == 0 {
		return ""
	}

	// Find bounds
	first := lines[0].Nodes[0]
	minX, maxX := first.X, first.X
	minZ, maxZ := first.Z, first.Z
	for _, pl := range lines {
		for _, n := range pl.Nodes {
			if n.X < minX {
				minX = n.X
			}
			if n.X > maxX {
				maxX = n.X
			}
			if n.Z < minZ {
				minZ = n.Z
			}
			if n.Z > maxZ {
				maxZ = n.Z
			}
		}
	}
	if maxZ < 0 {
		maxZ = 0 // keep the surface in the frame
	}

	// Add padding
	rangeX := maxX - minX
	rangeZ := maxZ - minZ
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeZ == 0 {
		rangeZ = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minZ -= rangeZ * 0.1
	maxZ += rangeZ * 0.1
	rangeX = maxX - minX
	rangeZ = maxZ - minZ

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(z float64) float64 { return (maxZ - z) / rangeZ * float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Soil surface
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#555555" stroke-width="1" stroke-dasharray="6,4"/>
`, toY(0), width, toY(0)))

	pxPerCm := float64(width) / rangeX
	for _, pl := range lines {
		if len(pl.Nodes) < 2 {
			continue
		}
		stroke := 2 * pl.Radius * pxPerCm
		if stroke < 0.8 {
			stroke = 0.8
		}
		color := orderColors[pl.Order%len(orderColors)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round" d="M`,
			color, stroke))
		for i, n := range pl.Nodes {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(n.X), toY(n.Z)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(n.X), toY(n.Z)))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
