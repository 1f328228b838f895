package game

import (
	"testing"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

func TestLevelOf(t *testing.T) {
	cases := []struct {
		totalXP int
		level   int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{-5, 1},
	}
	for _, tc := range cases {
		if got := LevelOf(tc.totalXP); got != tc.level {
			t.Fatalf("LevelOf(%d) = %d, want %d", tc.totalXP, got, tc.level)
		}
	}
}

func TestApplyXPLevelUp(t *testing.T) {
	xp, leveledUp := ApplyXP(model.XpData{TotalXP: 90, Level: 1}, 20)
	if xp.TotalXP != 110 || xp.Level != 2 {
		t.Fatalf("unexpected xp: %+v", xp)
	}
	if !leveledUp {
		t.Fatalf("expected level up")
	}

	xp, leveledUp = ApplyXP(xp, 10)
	if xp.TotalXP != 120 || xp.Level != 2 {
		t.Fatalf("unexpected xp: %+v", xp)
	}
	if leveledUp {
		t.Fatalf("unexpected level up")
	}
}

func TestStreakBonus(t *testing.T) {
	cases := []struct {
		streak int
		bonus  int
	}{
		{0, 0},
		{2, 0},
		{3, 2},
		{4, 2},
		{5, 5},
		{9, 5},
		{10, 10},
		{25, 10},
	}
	for _, tc := range cases {
		if got := StreakBonus(tc.streak); got != tc.bonus {
			t.Fatalf("StreakBonus(%d) = %d, want %d", tc.streak, got, tc.bonus)
		}
	}
}

func TestAwardXP(t *testing.T) {
	// 8 of 10 correct with an in-quiz streak of 6:
	// 80 base + 5 streak + 8 accuracy.
	if got := AwardXP(8, 10, 6); got != 93 {
		t.Fatalf("AwardXP(8, 10, 6) = %d, want 93", got)
	}
	if got := AwardXP(0, 0, 0); got != 0 {
		t.Fatalf("AwardXP(0, 0, 0) = %d, want 0", got)
	}
	if got := AwardXP(10, 10, 10); got != 120 {
		t.Fatalf("AwardXP(10, 10, 10) = %d, want 120", got)
	}
}

func TestNetScoreByMode(t *testing.T) {
	tally := Tally{Correct: 6, Incorrect: 3, Skipped: 1}
	if got := NetScore(tally, model.ModeAttempt); got != 5.25 {
		t.Fatalf("attempt net score = %v, want 5.25", got)
	}
	if got := NetScore(tally, model.ModePractice); got != 6 {
		t.Fatalf("practice net score = %v, want 6", got)
	}
}

func TestBuildSummary(t *testing.T) {
	questions := make([]model.Question, 4)
	answers := []model.Answer{
		{QuestionIndex: 0, SelectedIndex: 1, Correct: true, TimeTaken: 2},
		{QuestionIndex: 1, SelectedIndex: 0, Correct: false, TimeTaken: 4},
		{QuestionIndex: 2, SelectedIndex: model.SkippedIndex, TimeTaken: 1},
		{QuestionIndex: 3, SelectedIndex: 2, Correct: true, TimeTaken: 6},
	}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	s := BuildSummary("History", questions, answers, model.ModeAttempt, 2, now)

	if s.Score != 2 || s.TotalQuestions != 4 || s.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Accuracy != 50 {
		t.Fatalf("accuracy = %v, want 50", s.Accuracy)
	}
	if s.NetScore != 1.75 {
		t.Fatalf("net score = %v, want 1.75", s.NetScore)
	}
	// Timing covers answered questions only: 2 + 4 + 6.
	if s.TotalTime != 12 || s.AvgTimePerQuestion != 4 {
		t.Fatalf("timing = %v / %v, want 12 / 4", s.TotalTime, s.AvgTimePerQuestion)
	}
	// 20 base + 0 streak + round(2/4*10) accuracy.
	if s.XPEarned != 25 {
		t.Fatalf("xp earned = %d, want 25", s.XPEarned)
	}
	if s.ID == "" || s.Topic != "History" {
		t.Fatalf("unexpected identity fields: %+v", s)
	}
}

func TestProgressPointFor(t *testing.T) {
	s := model.Summary{ID: "x", Topic: "", Accuracy: 80, AvgTimePerQuestion: 3, XPEarned: 42}
	p := ProgressPointFor(s)
	if p.Topic != "Untitled" {
		t.Fatalf("topic = %q, want Untitled", p.Topic)
	}
	if p.QuizID != "x" || p.Accuracy != 80 || p.XPEarned != 42 {
		t.Fatalf("unexpected progress point: %+v", p)
	}
}
