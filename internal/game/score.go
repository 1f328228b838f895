package game

import (
	"fmt"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

const attemptPenalty = 0.25

// Tally counts answers by outcome.
type Tally struct {
	Correct   int
	Incorrect int
	Skipped   int
}

// TallyAnswers splits an answer list into correct, incorrect, and
// skipped counts. Skipped answers are never counted as incorrect.
func TallyAnswers(answers []model.Answer) Tally {
	var t Tally
	for _, a := range answers {
		switch {
		case a.Skipped():
			t.Skipped++
		case a.Correct:
			t.Correct++
		default:
			t.Incorrect++
		}
	}
	return t
}

// NetScore applies the mode's scoring rules. Attempt mode subtracts a
// quarter point per incorrect answer; skipped answers cost nothing.
func NetScore(t Tally, mode model.Mode) float64 {
	if mode == model.ModeAttempt {
		return float64(t.Correct) - float64(t.Incorrect)*attemptPenalty
	}
	return float64(t.Correct)
}

// BuildSummary assembles the immutable result record for one finished
// quiz. Timing aggregates only cover answered questions.
func BuildSummary(topic string, questions []model.Question, answers []model.Answer, mode model.Mode, quizStreak int, now time.Time) model.Summary {
	tally := TallyAnswers(answers)

	var totalTime float64
	answered := 0
	for _, a := range answers {
		if a.Skipped() {
			continue
		}
		totalTime += a.TimeTaken
		answered++
	}
	avgTime := 0.0
	if answered > 0 {
		avgTime = totalTime / float64(answered)
	}

	accuracy := 0.0
	if len(questions) > 0 {
		accuracy = float64(tally.Correct) / float64(len(questions)) * 100
	}

	return model.Summary{
		ID:                 fmt.Sprintf("%d-%s", now.UnixMilli(), topicOrDefault(topic)),
		Timestamp:          now,
		Score:              tally.Correct,
		TotalQuestions:     len(questions),
		Accuracy:           accuracy,
		TotalTime:          totalTime,
		AvgTimePerQuestion: avgTime,
		Answers:            answers,
		Questions:          questions,
		Mode:               mode,
		NetScore:           NetScore(tally, mode),
		Topic:              topic,
		Skipped:            tally.Skipped,
		XPEarned:           AwardXP(tally.Correct, len(questions), quizStreak),
	}
}

// ProgressPointFor derives the charting record for a summary.
func ProgressPointFor(s model.Summary) model.ProgressPoint {
	topic := s.Topic
	if topic == "" {
		topic = "Untitled"
	}
	return model.ProgressPoint{
		QuizID:    s.ID,
		Timestamp: s.Timestamp,
		Topic:     topic,
		Accuracy:  s.Accuracy,
		AvgTime:   s.AvgTimePerQuestion,
		XPEarned:  s.XPEarned,
	}
}

func topicOrDefault(topic string) string {
	if topic == "" {
		return "quiz"
	}
	return topic
}
