package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// a short tap root with one lateral attached to its middle node.
func taprootLines() []grow.Polyline {
	return []grow.Polyline{
		{Type: 1, Order: 0, Parent: -1, Radius: 0.1,
			Nodes: []grow.Vec3{{Z: -3}, {Z: -5}, {Z: -7}},
			Times: []float64{0, 1, 2}},
		{Type: 2, Order: 1, Parent: 0, Radius: 0.04,
			Nodes: []grow.Vec3{{Z: -5}, {X: 1.5, Z: -5.5}},
			Times: []float64{2, 3}},
	}
}

func assertWellFormedXML(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed xml: %v", err)
		}
	}
}

func TestWriteVTP(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVTP(&buf, taprootLines()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	assertWellFormedXML(t, buf.Bytes())

	if !strings.Contains(out, `<VTKFile type="PolyData"`) {
		t.Error("missing VTKFile header")
	}
	if !strings.Contains(out, `NumberOfPoints="5" NumberOfLines="2"`) {
		t.Errorf("wrong piece dimensions in:\n%s", out)
	}
	if !strings.Contains(out, "0 1 2 3 4") {
		t.Error("connectivity should enumerate all nodes")
	}
	if !strings.Contains(out, "3 5") {
		t.Error("offsets should accumulate node counts")
	}
	if !strings.Contains(out, `Name="radius"`) || !strings.Contains(out, `Name="time"`) {
		t.Error("missing data arrays")
	}
}

func TestWriteRSML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRSML(&buf, taprootLines()); err != nil {
		t.Fatalf("write: %v", err)
	}

	assertWellFormedXML(t, buf.Bytes())

	// The lateral must nest inside the tap root element.
	depth, maxDepth := 0, 0
	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "root" {
				depth++
				if depth > maxDepth {
					maxDepth = depth
				}
			}
		case xml.EndElement:
			if el.Name.Local == "root" {
				depth--
			}
		}
	}
	if maxDepth != 2 {
		t.Errorf("expected lateral nested at depth 2, got max depth %d", maxDepth)
	}

	out := buf.String()
	if strings.Count(out, "<polyline>") != 2 {
		t.Error("expected one polyline per root")
	}
	if !strings.Contains(out, `<function name="emergence_time"`) {
		t.Error("missing node time samples")
	}
}

func TestRootsToSVG(t *testing.T) {
	out := RootsToSVG(taprootLines(), 400, 400)

	if !strings.Contains(out, "<svg") {
		t.Fatal("missing svg element")
	}
	if got := strings.Count(out, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Error("missing soil surface line")
	}

	if RootsToSVG(nil, 400, 400) != "" {
		t.Error("expected empty output without roots")
	}
}

func TestWriteDaysCSV(t *testing.T) {
	records := []grow.DayRecord{
		{Day: 1, Time: 1, TrialIncrement: 5, Budget: 20, Scale: 1, CommittedIncrement: 5, EndLength: 5},
		{Day: 2, Time: 2, StartLength: 5, TrialIncrement: 35, Budget: 20, Scale: 20.0 / 35, CommittedIncrement: 20, EndLength: 25, Limited: true},
	}

	var buf bytes.Buffer
	if err := WriteDaysCSV(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "day" || rows[0][8] != "limited" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[2][0] != "2" || rows[2][8] != "true" {
		t.Errorf("unexpected second row: %v", rows[2])
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"roots.vtp", "roots.rsml", "roots.svg"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, taprootLines()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s not created: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if err := WriteFile(filepath.Join(dir, "roots.xyz"), taprootLines()); err == nil {
		t.Error("expected error for unknown extension")
	}
}
