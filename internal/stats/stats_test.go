package stats

import (
	"math"
	"testing"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	got = MovingAverage(values, 1)
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("window 1 must be identity, got %v", got)
		}
	}

	if got := MovingAverage(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10})
	if len(out) != 3 {
		t.Fatalf("expected 3 chars, got %q", out)
	}
	if out[0] != ' ' || out[2] != '@' {
		t.Fatalf("expected full range, got %q", out)
	}

	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 || flat[0] != flat[1] || flat[1] != flat[2] {
		t.Fatalf("expected uniform output for flat series, got %q", flat)
	}

	if Sparkline(nil) != "" {
		t.Fatalf("expected empty output for empty input")
	}
}

func TestFilterHistory(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	history := []model.Summary{
		{ID: "a", Topic: "History", Timestamp: base},
		{ID: "b", Topic: "Science", Timestamp: base.AddDate(0, 0, 1)},
		{ID: "c", Topic: "History", Timestamp: base.AddDate(0, 0, 2)},
		{ID: "d", Topic: "History", Timestamp: base.AddDate(0, 0, 3)},
	}

	got := FilterHistory(history, model.StatsConfig{Topic: "History"})
	if len(got) != 3 {
		t.Fatalf("topic filter: expected 3, got %d", len(got))
	}

	since := base.AddDate(0, 0, 2)
	got = FilterHistory(history, model.StatsConfig{Since: &since})
	if len(got) != 2 || got[0].ID != "c" {
		t.Fatalf("since filter: %+v", got)
	}

	got = FilterHistory(history, model.StatsConfig{Last: 2})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" {
		t.Fatalf("last filter: %+v", got)
	}

	got = FilterHistory(history, model.StatsConfig{Topic: "History", Last: 2})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" {
		t.Fatalf("combined filter: %+v", got)
	}
}

func TestFilterProgress(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	points := []model.ProgressPoint{
		{QuizID: "a", Topic: "History", Timestamp: base},
		{QuizID: "b", Topic: "Science", Timestamp: base.AddDate(0, 0, 1)},
		{QuizID: "c", Topic: "History", Timestamp: base.AddDate(0, 0, 2)},
	}

	got := FilterProgress(points, model.StatsConfig{Topic: "Science"})
	if len(got) != 1 || got[0].QuizID != "b" {
		t.Fatalf("topic filter: %+v", got)
	}

	got = FilterProgress(points, model.StatsConfig{Last: 1})
	if len(got) != 1 || got[0].QuizID != "c" {
		t.Fatalf("last filter: %+v", got)
	}
}

func TestSeriesExtraction(t *testing.T) {
	points := []model.ProgressPoint{
		{Accuracy: 50, XPEarned: 20},
		{Accuracy: 80, XPEarned: 93},
	}
	accs := AccuracySeries(points)
	if len(accs) != 2 || accs[0] != 50 || accs[1] != 80 {
		t.Fatalf("accuracy series: %v", accs)
	}
	xps := XPSeries(points)
	if len(xps) != 2 || xps[0] != 20 || xps[1] != 93 {
		t.Fatalf("xp series: %v", xps)
	}
}
