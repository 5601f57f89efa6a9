package export

import (
	"fmt"
	"io"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// WriteVTP writes the root system as a VTK PolyData file, one line cell per
// root. Node creation times go to point data; root type, branching order and
// radius go to cell data, so ParaView can color by any of them.
func WriteVTP(w io.Writer, lines []grow.Polyline) error {
	points := 0
	for _, pl := range lines {
		points += len(pl.Nodes)
	}

	var err error
	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n")
	pr("<VTKFile type=\"PolyData\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	pr("<PolyData>\n")
	pr("<Piece NumberOfPoints=\"%d\" NumberOfLines=\"%d\">\n", points, len(lines))

	pr("<PointData Scalars=\"time\">\n")
	pr("<DataArray type=\"Float64\" Name=\"time\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, pl := range lines {
		for _, t := range pl.Times {
			pr("%g ", t)
		}
	}
	pr("\n</DataArray>\n")
	pr("</PointData>\n")

	pr("<CellData Scalars=\"type\">\n")
	pr("<DataArray type=\"Int32\" Name=\"type\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, pl := range lines {
		pr("%d ", pl.Type)
	}
	pr("\n</DataArray>\n")
	pr("<DataArray type=\"Int32\" Name=\"order\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, pl := range lines {
		pr("%d ", pl.Order)
	}
	pr("\n</DataArray>\n")
	pr("<DataArray type=\"Float64\" Name=\"radius\" NumberOfComponents=\"1\" format=\"ascii\">\n")
	for _, pl := range lines {
		pr("%g ", pl.Radius)
	}
	pr("\n</DataArray>\n")
	pr("</CellData>\n")

	pr("<Points>\n")
	pr("<DataArray type=\"Float64\" Name=\"Points\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, pl := range lines {
		for _, n := range pl.Nodes {
			pr("%g %g %g ", n.X, n.Y, n.Z)
		}
	}
	pr("\n</DataArray>\n")
	pr("</Points>\n")

	pr("<Lines>\n")
	pr("<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	idx := 0
	for _, pl := range lines {
		for range pl.Nodes {
			pr("%d ", idx)
			idx++
		}
	}
	pr("\n</DataArray>\n")
	pr("<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	offset := 0
	for _, pl := range lines {
		offset += len(pl.Nodes)
		pr("%d ", offset)
	}
	pr("\n</DataArray>\n")
	pr("</Lines>\n")

	pr("</Piece>\n")
	pr("</PolyData>\n")
	pr("</VTKFile>\n")
	return err
}
