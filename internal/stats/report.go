// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/dkaul/quizdeck/internal/game"
	"github.com/dkaul/quizdeck/internal/model"
)

// Report bundles everything the stats surfaces need, with the
// configured filters already applied to History and Progress.
type Report struct {
	History      []model.Summary
	Progress     []model.ProgressPoint
	Xp           model.XpData
	Streak       model.StreakData
	Achievements []model.Achievement
}

// BuildReport loads all records from the store and applies the filters.
func BuildReport(ctx context.Context, st game.Store, cfg model.StatsConfig) (Report, error) {
	history, err := st.History(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load history: %w", err)
	}
	progress, err := st.ProgressData(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load progress: %w", err)
	}
	xp, err := st.XpData(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load xp: %w", err)
	}
	streak, err := st.StreakData(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load streak: %w", err)
	}
	achs, err := st.Achievements(ctx, game.DefaultAchievements())
	if err != nil {
		return Report{}, fmt.Errorf("failed to load achievements: %w", err)
	}

	return Report{
		History:      FilterHistory(history, cfg),
		Progress:     FilterProgress(progress, cfg),
		Xp:           xp,
		Streak:       streak,
		Achievements: achs,
	}, nil
}

// WriteReport prints the full text report the stats command emits when
// not attached to a terminal.
func WriteReport(w io.Writer, report Report, cfg model.StatsConfig, lang string) error {
	if err := RenderSummary(w, report); err != nil {
		return err
	}
	if err := RenderTopics(w, AggregateTopics(report.History)); err != nil {
		return err
	}
	if err := RenderHistoryTable(w, report.History); err != nil {
		return err
	}
	if err := RenderCurves(w, report.Progress, cfg.CurveWindow); err != nil {
		return err
	}
	return RenderAchievements(w, report.Achievements, lang)
}
