package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhizotron/rhizosim/internal/grow"
)

// WriteFile writes the root system to path, picking the format from the
// file extension: .vtp, .rsml or .svg.
func WriteFile(path string, lines []grow.Polyline) error {
	var write func(w io.Writer) error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".vtp":
		write = func(w io.Writer) error { return WriteVTP(w, lines) }
	case ".rsml":
		write = func(w io.Writer) error { return WriteRSML(w, lines) }
	case ".svg":
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, RootsToSVG(lines, 800, 800))
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (want .vtp, .rsml or .svg)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	return bw.Flush()
}
