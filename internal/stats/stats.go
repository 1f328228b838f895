// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dkaul/quizdeck/internal/game"
	"github.com/dkaul/quizdeck/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// AccuracySeries extracts per-quiz accuracy values, oldest first.
func AccuracySeries(points []model.ProgressPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Accuracy
	}
	return out
}

// XPSeries extracts per-quiz XP values, oldest first.
func XPSeries(points []model.ProgressPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.XPEarned)
	}
	return out
}

// RenderSummary prints the lifetime overview for a report.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.History) == 0 {
		_, err := fmt.Fprintln(w, "No quizzes found.")
		return err
	}
	agg := game.Aggregate(report.History)
	bestAccuracy := 0.0
	for _, s := range report.History {
		if s.Accuracy > bestAccuracy {
			bestAccuracy = s.Accuracy
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Quizzes: %d", agg.TotalQuizzes),
		fmt.Sprintf("Level: %d (%d XP)", report.Xp.Level, report.Xp.TotalXP),
		fmt.Sprintf("Daily streak: %d", report.Streak.CurrentStreak),
		fmt.Sprintf("Correct answers: %d", agg.TotalCorrect),
		fmt.Sprintf("Avg accuracy: %.2f%%", agg.OverallAccuracy),
		fmt.Sprintf("Best accuracy: %.2f%%", bestAccuracy),
		fmt.Sprintf("Topics: %d", agg.UniqueTopics),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints one row per completed quiz.
func RenderHistoryTable(w io.Writer, history []model.Summary) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No quizzes found.")
		return err
	}
	headers := []string{"Date", "Topic", "Mode", "Score", "Accuracy", "Net", "XP"}
	rows := make([][]string, 0, len(history))
	for _, s := range history {
		rows = append(rows, []string{
			s.Timestamp.Format("2006-01-02 15:04"),
			s.Topic,
			string(s.Mode),
			fmt.Sprintf("%d/%d", s.Score, s.TotalQuestions),
			fmt.Sprintf("%.1f%%", s.Accuracy),
			fmt.Sprintf("%.2f", s.NetScore),
			fmt.Sprintf("%d", s.XPEarned),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderAchievements prints the achievement catalog with unlock state.
func RenderAchievements(w io.Writer, achs []model.Achievement, lang string) error {
	if len(achs) == 0 {
		_, err := fmt.Fprintln(w, "No achievements found.")
		return err
	}
	headers := []string{"", "Achievement", "Progress", "Unlocked"}
	rows := make([][]string, 0, len(achs))
	for _, ach := range achs {
		mark := " "
		unlockedAt := "-"
		if ach.Unlocked {
			mark = "*"
			unlockedAt = ach.UnlockedAt.Format("2006-01-02")
		}
		progress := "-"
		if ach.Target > 0 {
			progress = fmt.Sprintf("%.0f/%d", ach.Progress, ach.Target)
		}
		rows = append(rows, []string{mark, ach.Name.Get(lang), progress, unlockedAt})
	}
	rightAlign := map[int]bool{2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints learning curves for accuracy and XP.
func RenderCurves(w io.Writer, points []model.ProgressPoint, window int) error {
	return RenderCurvesWithSize(w, points, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, points []model.ProgressPoint, window, totalWidth, height int, useColor bool) error {
	if len(points) == 0 {
		return nil
	}
	accs := MovingAverage(AccuracySeries(points), window)
	xps := MovingAverage(XPSeries(points), window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Accuracy", Values: accs},
		{Name: "XP", Values: xps},
	}, width, height, useColor)
}

// FilterHistory applies the stats filters to a history slice.
func FilterHistory(history []model.Summary, cfg model.StatsConfig) []model.Summary {
	out := make([]model.Summary, 0, len(history))
	for _, s := range history {
		if cfg.Topic != "" && s.Topic != cfg.Topic {
			continue
		}
		if cfg.Since != nil && s.Timestamp.Before(*cfg.Since) {
			continue
		}
		out = append(out, s)
	}
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out
}

// FilterProgress applies the stats filters to progress points.
func FilterProgress(points []model.ProgressPoint, cfg model.StatsConfig) []model.ProgressPoint {
	out := make([]model.ProgressPoint, 0, len(points))
	for _, p := range points {
		if cfg.Topic != "" && p.Topic != cfg.Topic {
			continue
		}
		if cfg.Since != nil && p.Timestamp.Before(*cfg.Since) {
			continue
		}
		out = append(out, p)
	}
	if cfg.Last > 0 && len(out) > cfg.Last {
		out = out[len(out)-cfg.Last:]
	}
	return out
}
