package stats

import (
	"strings"
	"testing"
)

func TestFormatTable(t *testing.T) {
	headers := []string{"Topic", "Score"}
	rows := [][]string{
		{"History", "8/10"},
		{"Sci", "10/10"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Topic") {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	// Right-aligned column pads on the left.
	if !strings.HasSuffix(lines[1], " 8/10") {
		t.Fatalf("expected right alignment: %q", lines[1])
	}
	// All data lines share the first-column width.
	if strings.Index(lines[1], "8/10") != strings.Index(lines[2], "10/10")+1 {
		t.Fatalf("columns misaligned:\n%q\n%q", lines[1], lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	headers := []string{"Topic"}
	rows := [][]string{
		{"विज्ञान"},
		{"History"},
	}
	lines := formatTable(headers, rows, nil)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if displayWidth(lines[2]) < displayWidth("History") {
		t.Fatalf("line narrower than its content: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %v", lines)
	}
}
