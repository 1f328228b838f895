package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapText(t *testing.T) {
	out := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(out, "\n") {
		if runewidth.StringWidth(line) > 10 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Contains(out, "  ") {
		t.Fatalf("unexpected double space in output: %q", out)
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	out := wrapText("antidisestablishmentarianism", 8)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected the word broken across lines, got %q", out)
	}
	for _, line := range lines {
		if runewidth.StringWidth(line) > 8 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Join(lines, "") != "antidisestablishmentarianism" {
		t.Fatalf("word content changed: %q", out)
	}
}

func TestWrapTextWideRunes(t *testing.T) {
	out := wrapText("भारत की राजधानी क्या है", 12)
	for _, line := range strings.Split(out, "\n") {
		if runewidth.StringWidth(line) > 12 {
			t.Fatalf("line exceeds display width: %q", line)
		}
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	text := "unchanged text"
	if got := wrapText(text, 0); got != text {
		t.Fatalf("zero width must pass text through, got %q", got)
	}
	if got := wrapText(text, -3); got != text {
		t.Fatalf("negative width must pass text through, got %q", got)
	}
}
