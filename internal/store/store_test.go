package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "quizdeck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestHistoryRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	sum := model.Summary{
		ID:                 "1700000000000-history",
		Timestamp:          time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Score:              8,
		TotalQuestions:     10,
		Accuracy:           80,
		TotalTime:          45.5,
		AvgTimePerQuestion: 4.55,
		Answers: []model.Answer{
			{QuestionIndex: 0, SelectedIndex: 1, Correct: true, TimeTaken: 2.5, Bookmarked: true},
			{QuestionIndex: 1, SelectedIndex: model.SkippedIndex, TimeTaken: 1},
		},
		Questions: []model.Question{
			{
				Text:         model.Text{"en": "Capital of France?", "hi": "फ्रांस की राजधानी?"},
				Options:      []model.Text{{"en": "Paris"}, {"en": "Lyon"}},
				CorrectIndex: 0,
				Explanation:  model.Text{"en": "Paris is the capital."},
			},
		},
		Mode:     model.ModeAttempt,
		NetScore: 7.5,
		Topic:    "History",
		Skipped:  1,
		XPEarned: 93,
	}
	if err := st.AppendHistory(ctx, sum); err != nil {
		t.Fatalf("append history: %v", err)
	}

	history, err := st.History(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(history))
	}
	got := history[0]
	if got.ID != sum.ID || !got.Timestamp.Equal(sum.Timestamp) {
		t.Fatalf("identity mismatch: %+v", got)
	}
	if got.Score != 8 || got.TotalQuestions != 10 || got.Accuracy != 80 {
		t.Fatalf("score mismatch: %+v", got)
	}
	if got.Mode != model.ModeAttempt || got.NetScore != 7.5 || got.Skipped != 1 || got.XPEarned != 93 {
		t.Fatalf("result mismatch: %+v", got)
	}
	if len(got.Answers) != 2 || !got.Answers[0].Bookmarked || !got.Answers[1].Skipped() {
		t.Fatalf("answers mismatch: %+v", got.Answers)
	}
	if len(got.Questions) != 1 || got.Questions[0].Text.Get("hi") != "फ्रांस की राजधानी?" {
		t.Fatalf("questions mismatch: %+v", got.Questions)
	}
}

func TestHistoryOrderAndClear(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sum := model.Summary{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(2-i) * time.Hour),
			Topic:     "History",
			Mode:      model.ModePractice,
			Answers:   []model.Answer{},
			Questions: []model.Question{},
		}
		if err := st.AppendHistory(ctx, sum); err != nil {
			t.Fatalf("append history: %v", err)
		}
	}

	history, err := st.History(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(history))
	}
	// Oldest first regardless of insertion order.
	if history[0].ID != "c" || history[2].ID != "a" {
		t.Fatalf("unexpected order: %s %s %s", history[0].ID, history[1].ID, history[2].ID)
	}

	if err := st.ClearHistory(ctx); err != nil {
		t.Fatalf("clear history: %v", err)
	}
	history, err = st.History(ctx)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history not cleared")
	}
}

func TestXpRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	xp, err := st.XpData(ctx)
	if err != nil {
		t.Fatalf("load xp: %v", err)
	}
	if xp.TotalXP != 0 || xp.Level != 1 {
		t.Fatalf("unexpected default xp: %+v", xp)
	}

	if err := st.SaveXpData(ctx, model.XpData{TotalXP: 250, Level: 3}); err != nil {
		t.Fatalf("save xp: %v", err)
	}
	if err := st.SaveXpData(ctx, model.XpData{TotalXP: 350, Level: 4}); err != nil {
		t.Fatalf("save xp again: %v", err)
	}
	xp, err = st.XpData(ctx)
	if err != nil {
		t.Fatalf("load xp: %v", err)
	}
	if xp.TotalXP != 350 || xp.Level != 4 {
		t.Fatalf("unexpected xp: %+v", xp)
	}
}

func TestStreakRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	streak, err := st.StreakData(ctx)
	if err != nil {
		t.Fatalf("load streak: %v", err)
	}
	if streak.CurrentStreak != 0 || streak.LastQuizDate != "" {
		t.Fatalf("unexpected default streak: %+v", streak)
	}

	if err := st.SaveStreakData(ctx, model.StreakData{CurrentStreak: 5, LastQuizDate: "2024-01-15"}); err != nil {
		t.Fatalf("save streak: %v", err)
	}
	streak, err = st.StreakData(ctx)
	if err != nil {
		t.Fatalf("load streak: %v", err)
	}
	if streak.CurrentStreak != 5 || streak.LastQuizDate != "2024-01-15" {
		t.Fatalf("unexpected streak: %+v", streak)
	}
}

func TestAchievementsMergeState(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	defaults := []model.Achievement{
		{ID: "one", Name: model.Text{"en": "One"}, Target: 1},
		{ID: "two", Name: model.Text{"en": "Two"}, Target: 2},
	}

	// Before any save, defaults come back untouched.
	achs, err := st.Achievements(ctx, defaults)
	if err != nil {
		t.Fatalf("load achievements: %v", err)
	}
	if len(achs) != 2 || achs[0].Unlocked || achs[1].Unlocked {
		t.Fatalf("unexpected defaults: %+v", achs)
	}

	stamp := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	achs[0].Unlocked = true
	achs[0].UnlockedAt = stamp
	achs[0].Progress = 1
	achs[1].Progress = 0.5
	if err := st.SaveAchievements(ctx, achs); err != nil {
		t.Fatalf("save achievements: %v", err)
	}

	achs, err = st.Achievements(ctx, defaults)
	if err != nil {
		t.Fatalf("load achievements: %v", err)
	}
	if !achs[0].Unlocked || !achs[0].UnlockedAt.Equal(stamp) || achs[0].Progress != 1 {
		t.Fatalf("state not merged: %+v", achs[0])
	}
	if achs[1].Unlocked || achs[1].Progress != 0.5 {
		t.Fatalf("state not merged: %+v", achs[1])
	}
	// Static fields always come from the catalog.
	if achs[0].Name.Get("en") != "One" {
		t.Fatalf("catalog field lost: %+v", achs[0])
	}
}

func TestProgressRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p := model.ProgressPoint{
		QuizID:    "q1",
		Timestamp: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Topic:     "History",
		Accuracy:  80,
		AvgTime:   4.5,
		XPEarned:  93,
	}
	if err := st.AppendProgress(ctx, p); err != nil {
		t.Fatalf("append progress: %v", err)
	}

	points, err := st.ProgressData(ctx)
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	got := points[0]
	if got.QuizID != p.QuizID || !got.Timestamp.Equal(p.Timestamp) || got.Topic != p.Topic {
		t.Fatalf("progress mismatch: %+v", got)
	}
	if got.Accuracy != 80 || got.AvgTime != 4.5 || got.XPEarned != 93 {
		t.Fatalf("progress mismatch: %+v", got)
	}

	if err := st.ClearProgress(ctx); err != nil {
		t.Fatalf("clear progress: %v", err)
	}
	points, err = st.ProgressData(ctx)
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("progress not cleared")
	}
}

func TestCustomSubjectsRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	subjects := []model.Subject{
		{
			Name:   model.Text{"en": "My Pack", "hi": "मेरा पैक"},
			Topics: []model.Topic{{Name: model.Text{"en": "Topic A"}, File: "/tmp/a.json"}},
			Custom: true,
			Icon:   "badge",
		},
		{Name: model.Text{"en": "Other"}, Custom: true},
	}
	if err := st.SaveCustomSubjects(ctx, subjects); err != nil {
		t.Fatalf("save custom subjects: %v", err)
	}

	got, err := st.CustomSubjects(ctx)
	if err != nil {
		t.Fatalf("load custom subjects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(got))
	}
	if got[0].Name.Get("hi") != "मेरा पैक" || len(got[0].Topics) != 1 || !got[0].Custom {
		t.Fatalf("subject mismatch: %+v", got[0])
	}

	// Save replaces the whole collection.
	if err := st.SaveCustomSubjects(ctx, got[:1]); err != nil {
		t.Fatalf("save custom subjects: %v", err)
	}
	got, err = st.CustomSubjects(ctx)
	if err != nil {
		t.Fatalf("load custom subjects: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(got))
	}
}
