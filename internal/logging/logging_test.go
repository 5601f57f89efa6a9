package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init("rhizosim", "debug", &buf)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	logger.Debug().Msg("roots growing")
	if !strings.Contains(buf.String(), "roots growing") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestInitLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Init("rhizosim", "error", &buf)
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	logger.Info().Msg("quiet day")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at error level, got %q", buf.String())
	}

	logger.Error().Msg("loud day")
	if !strings.Contains(buf.String(), "loud day") {
		t.Error("error message should pass")
	}
}

func TestInitUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Init("rhizosim", "shout", &buf); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	logger, closer, err := NewTrace(path)
	if err != nil {
		t.Fatalf("new trace: %v", err)
	}

	logger.Info().Int("day", 1).Float64("scale", 0.571).Msg("day committed")
	logger.Info().Int("day", 2).Float64("scale", 1).Msg("day committed")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var events []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev map[string]any
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("line %d is not json: %v", len(events)+1, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0]["day"] != float64(1) || events[1]["day"] != float64(2) {
		t.Errorf("day fields wrong: %v, %v", events[0]["day"], events[1]["day"])
	}
	if events[0]["scale"] != 0.571 {
		t.Errorf("scale field wrong: %v", events[0]["scale"])
	}
}
