package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Learning Curves", []Series{
		{Name: "Accuracy", Values: []float64{50, 60, 80, 70, 90}},
		{Name: "XP", Values: []float64{20, 35, 93, 60, 110}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning Curves") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "scaled to its own range") {
		t.Fatalf("expected scale note in output")
	}
	if !strings.Contains(out, "Accuracy: min=50.00 max=90.00") {
		t.Fatalf("expected series range in output, got %q", out)
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Title + note + 2 ranges + 4 plot rows + legend.
	if len(lines) < 9 {
		t.Fatalf("expected at least 9 lines, got %d", len(lines))
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Empty", nil, 20, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty series, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-6 {
		t.Fatalf("PlotWidthFor(80) = %d, want %d", got, 80-6)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("narrow width must clamp to minimum, got %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("zero width must clamp to minimum, got %d", got)
	}
}

func TestResampleSeries(t *testing.T) {
	values := []float64{0, 10}
	up := resampleSeries(values, 5)
	if len(up) != 5 {
		t.Fatalf("expected 5 values, got %d", len(up))
	}
	if up[0] != 0 || up[4] != 10 {
		t.Fatalf("endpoints must be preserved: %v", up)
	}

	down := resampleSeries([]float64{1, 1, 5, 5}, 2)
	if len(down) != 2 || down[0] != 1 || down[1] != 5 {
		t.Fatalf("downsample must average buckets: %v", down)
	}

	same := resampleSeries([]float64{1, 2, 3}, 3)
	if len(same) != 3 || same[1] != 2 {
		t.Fatalf("same-width resample must copy: %v", same)
	}
}
