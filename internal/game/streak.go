package game

import (
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

// DateLayout is the calendar-date form used by StreakData.
const DateLayout = "2006-01-02"

// AdvanceStreak updates the daily streak for a quiz completed on the
// given day. Completing on the day after the last recorded quiz extends
// the streak; a second quiz on the same day leaves it unchanged; any
// gap (or a first-ever quiz) resets it to 1. Dates are calendar days,
// not timestamps, so multiple quizzes on one day never inflate the
// count.
func AdvanceStreak(current model.StreakData, today time.Time) model.StreakData {
	todayStr := today.Format(DateLayout)
	yesterdayStr := today.AddDate(0, 0, -1).Format(DateLayout)

	streak := current.CurrentStreak
	switch current.LastQuizDate {
	case yesterdayStr:
		streak++
	case todayStr:
		// Same-day repeat, streak unchanged.
	default:
		streak = 1
	}
	return model.StreakData{CurrentStreak: streak, LastQuizDate: todayStr}
}
