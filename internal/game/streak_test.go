package game

import (
	"testing"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 18, 30, 0, 0, time.UTC)
}

func TestAdvanceStreakSequence(t *testing.T) {
	s := model.StreakData{}

	s = AdvanceStreak(s, day(2024, time.January, 1))
	if s.CurrentStreak != 1 || s.LastQuizDate != "2024-01-01" {
		t.Fatalf("first quiz: %+v", s)
	}

	// Second quiz on the same day leaves the streak unchanged.
	s = AdvanceStreak(s, day(2024, time.January, 1))
	if s.CurrentStreak != 1 {
		t.Fatalf("same day: %+v", s)
	}

	s = AdvanceStreak(s, day(2024, time.January, 2))
	if s.CurrentStreak != 2 || s.LastQuizDate != "2024-01-02" {
		t.Fatalf("next day: %+v", s)
	}

	// A gap resets to 1.
	s = AdvanceStreak(s, day(2024, time.January, 5))
	if s.CurrentStreak != 1 || s.LastQuizDate != "2024-01-05" {
		t.Fatalf("after gap: %+v", s)
	}
}

func TestAdvanceStreakMonthBoundary(t *testing.T) {
	s := model.StreakData{CurrentStreak: 3, LastQuizDate: "2024-02-29"}
	s = AdvanceStreak(s, day(2024, time.March, 1))
	if s.CurrentStreak != 4 {
		t.Fatalf("leap-day boundary: %+v", s)
	}

	s = model.StreakData{CurrentStreak: 7, LastQuizDate: "2023-12-31"}
	s = AdvanceStreak(s, day(2024, time.January, 1))
	if s.CurrentStreak != 8 {
		t.Fatalf("year boundary: %+v", s)
	}
}
