package game

import (
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

const fastAnswerSeconds = 5

// Aggregates are the lifetime totals the achievement rules compare
// against. All are derived from the full quiz history.
type Aggregates struct {
	TotalQuizzes       int
	TotalCorrect       int
	OverallAccuracy    float64
	UniqueTopics       int
	PerfectQuizzes     int
	LongestQuiz        int
	AttemptModeCorrect int
	FastCorrect        int
	HasPreciseQuiz     bool
}

// Aggregate scans the full history once and computes every aggregate
// the rules need. Appending a summary never decreases any counter.
func Aggregate(history []model.Summary) Aggregates {
	var agg Aggregates
	agg.TotalQuizzes = len(history)
	topics := map[string]struct{}{}
	var accuracySum float64
	for _, s := range history {
		agg.TotalCorrect += s.Score
		accuracySum += s.Accuracy
		topics[s.Topic] = struct{}{}
		if s.Accuracy >= 100 && s.TotalQuestions >= 10 {
			agg.PerfectQuizzes++
		}
		if s.TotalQuestions > agg.LongestQuiz {
			agg.LongestQuiz = s.TotalQuestions
		}
		if s.Mode == model.ModeAttempt {
			agg.AttemptModeCorrect += s.Score
		}
		if s.Accuracy >= 95 && s.TotalQuestions >= 20 {
			agg.HasPreciseQuiz = true
		}
		for _, a := range s.Answers {
			if a.Correct && a.TimeTaken <= fastAnswerSeconds {
				agg.FastCorrect++
			}
		}
	}
	agg.UniqueTopics = len(topics)
	if agg.TotalQuizzes > 0 {
		agg.OverallAccuracy = accuracySum / float64(agg.TotalQuizzes)
	}
	return agg
}

// DefaultAchievements returns the fixed catalog in evaluation order.
// Only display text is localized; ids, criteria, and targets are the
// same for every language.
func DefaultAchievements() []model.Achievement {
	return []model.Achievement{
		{
			ID:          "firstStep",
			Name:        model.Text{"en": "First Step", "hi": "पहला कदम"},
			Description: model.Text{"en": "Complete your first quiz", "hi": "अपनी पहली प्रश्नोत्तरी पूरी करें"},
			Icon:        "badge",
			Criteria:    "quiz_completed_count >= 1",
			Target:      1,
		},
		{
			ID:          "knowledgeable",
			Name:        model.Text{"en": "Knowledgeable", "hi": "ज्ञानवान"},
			Description: model.Text{"en": "Complete 50 quizzes", "hi": "50 प्रश्नोत्तरी पूरी करें"},
			Icon:        "badge",
			Criteria:    "quiz_completed_count >= 50",
			Target:      50,
		},
		{
			ID:          "sharpWitted",
			Name:        model.Text{"en": "Sharp-Witted", "hi": "तीव्र बुद्धि"},
			Description: model.Text{"en": "Answer 250 questions correctly within 5 seconds", "hi": "5 सेकंड के भीतर 250 प्रश्नों के सही उत्तर दें"},
			Icon:        "badge",
			Criteria:    "total_fast_correct_answers >= 250",
			Target:      250,
		},
		{
			ID:          "champion",
			Name:        model.Text{"en": "Champion", "hi": "चैंपियन"},
			Description: model.Text{"en": "Answer 1000 questions correctly", "hi": "1000 प्रश्नों के सही उत्तर दें"},
			Icon:        "badge",
			Criteria:    "total_correct_answers >= 1000",
			Target:      1000,
		},
		{
			ID:          "mastermind",
			Name:        model.Text{"en": "Mastermind", "hi": "मास्टरमाइंड"},
			Description: model.Text{"en": "Earn 2000 XP", "hi": "2000 XP अर्जित करें"},
			Icon:        "badge",
			Criteria:    "total_xp >= 2000",
			Target:      2000,
		},
		{
			ID:          "guru",
			Name:        model.Text{"en": "Guru", "hi": "गुरु"},
			Description: model.Text{"en": "Earn 5000 XP", "hi": "5000 XP अर्जित करें"},
			Icon:        "trophy",
			Criteria:    "total_xp >= 5000",
			Target:      5000,
		},
		{
			ID:          "precise",
			Name:        model.Text{"en": "Precise", "hi": "सटीक"},
			Description: model.Text{"en": "Score 95% or higher on a quiz of 20+ questions", "hi": "20+ प्रश्नों की प्रश्नोत्तरी में 95% या अधिक स्कोर करें"},
			Icon:        "badge",
			Criteria:    "single_quiz_accuracy >= 95 && single_quiz_questions >= 20",
		},
		{
			ID:          "fearless",
			Name:        model.Text{"en": "Fearless", "hi": "निडर"},
			Description: model.Text{"en": "Finish a quiz of 100 questions", "hi": "100 प्रश्नों की प्रश्नोत्तरी पूरी करें"},
			Icon:        "trophy",
			Criteria:    "longest_quiz_questions >= 100",
			Target:      100,
		},
		{
			ID:          "victorious",
			Name:        model.Text{"en": "Victorious", "hi": "विजयी"},
			Description: model.Text{"en": "Score 100% on 10 quizzes of 10+ questions", "hi": "10+ प्रश्नों की 10 प्रश्नोत्तरियों में 100% स्कोर करें"},
			Icon:        "trophy",
			Criteria:    "perfect_quizzes_count >= 10",
			Target:      10,
		},
		{
			ID:          "rocketSpeed",
			Name:        model.Text{"en": "Rocket Speed", "hi": "रॉकेट गति"},
			Description: model.Text{"en": "Answer 100 questions correctly within 5 seconds", "hi": "5 सेकंड के भीतर 100 प्रश्नों के सही उत्तर दें"},
			Icon:        "badge",
			Criteria:    "total_fast_correct_answers >= 100",
			Target:      100,
		},
		{
			ID:          "oceanOfKnowledge",
			Name:        model.Text{"en": "Ocean of Knowledge", "hi": "ज्ञान का सागर"},
			Description: model.Text{"en": "Complete quizzes across 10 different topics", "hi": "10 विभिन्न विषयों की प्रश्नोत्तरी पूरी करें"},
			Icon:        "badge",
			Criteria:    "unique_topics_completed >= 10",
			Target:      10,
		},
		{
			ID:          "theAce",
			Name:        model.Text{"en": "The Ace", "hi": "इक्का"},
			Description: model.Text{"en": "Reach 1500 XP with an overall accuracy of 85%", "hi": "85% समग्र सटीकता के साथ 1500 XP तक पहुँचें"},
			Icon:        "trophy",
			Criteria:    "total_xp >= 1500 && overall_accuracy >= 85",
			Target:      85,
		},
		{
			ID:          "theGambler",
			Name:        model.Text{"en": "The Gambler", "hi": "जुआरी"},
			Description: model.Text{"en": "Answer 200 questions correctly in attempt mode", "hi": "प्रयास मोड में 200 प्रश्नों के सही उत्तर दें"},
			Icon:        "badge",
			Criteria:    "attempt_mode_correct_answers >= 200",
			Target:      200,
		},
		{
			ID:          "worldConqueror",
			Name:        model.Text{"en": "World Conqueror", "hi": "विश्व विजेता"},
			Description: model.Text{"en": "Complete 200 quizzes", "hi": "200 प्रश्नोत्तरी पूरी करें"},
			Icon:        "trophy",
			Criteria:    "total_quizzes_completed >= 200",
			Target:      200,
		},
		{
			ID:          "theEmperor",
			Name:        model.Text{"en": "The Emperor", "hi": "सम्राट"},
			Description: model.Text{"en": "Earn 10000 XP", "hi": "10000 XP अर्जित करें"},
			Icon:        "trophy",
			Criteria:    "total_xp >= 10000",
			Target:      10000,
		},
	}
}

// EvaluateAchievements recomputes unlock status and progress for the
// catalog against the full history and current XP. Already-unlocked
// entries are skipped, so an unlock never reverts. The second return
// value lists entries that transitioned to unlocked in this pass, in
// catalog order.
func EvaluateAchievements(catalog []model.Achievement, history []model.Summary, xp model.XpData, justCompleted *model.Summary, now time.Time) ([]model.Achievement, []model.Achievement) {
	agg := Aggregate(history)

	updated := make([]model.Achievement, 0, len(catalog))
	var newlyUnlocked []model.Achievement
	for _, ach := range catalog {
		if ach.Unlocked {
			updated = append(updated, ach)
			continue
		}
		unlocked, progress := checkRule(ach, agg, xp, justCompleted)
		ach.Progress = progress
		if unlocked {
			ach.Unlocked = true
			ach.UnlockedAt = now
			if ach.Target > 0 {
				ach.Progress = float64(ach.Target)
			}
			newlyUnlocked = append(newlyUnlocked, ach)
		}
		updated = append(updated, ach)
	}
	return updated, newlyUnlocked
}

func checkRule(ach model.Achievement, agg Aggregates, xp model.XpData, justCompleted *model.Summary) (bool, float64) {
	switch ach.ID {
	case "firstStep", "knowledgeable", "worldConqueror":
		return agg.TotalQuizzes >= ach.Target, float64(agg.TotalQuizzes)
	case "sharpWitted", "rocketSpeed":
		return agg.FastCorrect >= ach.Target, float64(agg.FastCorrect)
	case "champion":
		return agg.TotalCorrect >= ach.Target, float64(agg.TotalCorrect)
	case "mastermind", "guru", "theEmperor":
		return xp.TotalXP >= ach.Target, float64(xp.TotalXP)
	case "precise":
		if preciseQuiz(justCompleted) || agg.HasPreciseQuiz {
			return true, 1
		}
		return false, 0
	case "fearless":
		return agg.LongestQuiz >= ach.Target, float64(agg.LongestQuiz)
	case "victorious":
		return agg.PerfectQuizzes >= ach.Target, float64(agg.PerfectQuizzes)
	case "oceanOfKnowledge":
		return agg.UniqueTopics >= ach.Target, float64(agg.UniqueTopics)
	case "theAce":
		return xp.TotalXP >= 1500 && agg.OverallAccuracy >= 85, agg.OverallAccuracy
	case "theGambler":
		return agg.AttemptModeCorrect >= ach.Target, float64(agg.AttemptModeCorrect)
	default:
		return false, ach.Progress
	}
}

func preciseQuiz(s *model.Summary) bool {
	return s != nil && s.Accuracy >= 95 && s.TotalQuestions >= 20
}
