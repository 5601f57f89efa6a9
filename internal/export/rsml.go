package export

import (
	"fmt"
	"io"
	"time"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// WriteRSML writes the root system in the Root System Markup Language.
// Laterals nest inside their parent root element, so the branching topology
// survives the export.
func WriteRSML(w io.Writer, lines []grow.Polyline) error {
	children := make([][]int, len(lines))
	base := make([]int, 0, len(lines))
	for i, pl := range lines {
		if pl.Parent < 0 {
			base = append(base, i)
		} else {
			children[pl.Parent] = append(children[pl.Parent], i)
		}
	}

	var err error
	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	pr("<rsml xmlns:po=\"http://www.plantontology.org/xml-dtd/po.xml\">\n")
	pr("\t<metadata>\n")
	pr("\t\t<version>1</version>\n")
	pr("\t\t<unit>cm</unit>\n")
	pr("\t\t<resolution>1</resolution>\n")
	pr("\t\t<software>rhizosim</software>\n")
	pr("\t\t<last-modified>%s</last-modified>\n", time.Now().Format("2006-01-02"))
	pr("\t</metadata>\n")
	pr("\t<scene>\n")
	pr("\t\t<plant>\n")

	var writeRoot func(idx int, indent string)
	writeRoot = func(idx int, indent string) {
		pl := lines[idx]
		pr("%s<root ID=\"%d\" label=\"root %d\" po:accession=\"PO:0009005\">\n", indent, idx+1, idx+1)

		pr("%s\t<properties>\n", indent)
		pr("%s\t\t<type>%d</type>\n", indent, pl.Type)
		pr("%s\t\t<order>%d</order>\n", indent, pl.Order)
		pr("%s\t\t<radius>%g</radius>\n", indent, pl.Radius)
		pr("%s\t</properties>\n", indent)

		pr("%s\t<geometry>\n", indent)
		pr("%s\t\t<polyline>\n", indent)
		for _, n := range pl.Nodes {
			pr("%s\t\t\t<point x=\"%g\" y=\"%g\" z=\"%g\"/>\n", indent, n.X, n.Y, n.Z)
		}
		pr("%s\t\t</polyline>\n", indent)
		pr("%s\t</geometry>\n", indent)

		pr("%s\t<functions>\n", indent)
		pr("%s\t\t<function name=\"emergence_time\" domain=\"polyline\">\n", indent)
		for _, t := range pl.Times {
			pr("%s\t\t\t<sample>%g</sample>\n", indent, t)
		}
		pr("%s\t\t</function>\n", indent)
		pr("%s\t</functions>\n", indent)

		for _, c := range children[idx] {
			writeRoot(c, indent+"\t")
		}
		pr("%s</root>\n", indent)
	}

	for _, idx := range base {
		writeRoot(idx, "\t\t\t")
	}

	pr("\t\t</plant>\n")
	pr("\t</scene>\n")
	pr("</rsml>\n")
	return err
}
