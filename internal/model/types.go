// Package model defines shared data structures.
package model

import "time"

// Text holds a label keyed by language tag.
type Text map[string]string

// Get returns the label for lang, falling back to English, then to any
// available language.
func (t Text) Get(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t["en"]; ok && s != "" {
		return s
	}
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}

// Mode selects the scoring rules for a quiz.
type Mode string

// Quiz modes. Practice has no wrong-answer penalty; attempt subtracts
// 0.25 per incorrect answer from the net score.
const (
	ModePractice Mode = "practice"
	ModeAttempt  Mode = "attempt"
)

// SkippedIndex is the sentinel selected-option index for a skipped question.
const SkippedIndex = -1

// Question is one multiple-choice question. Immutable once loaded.
type Question struct {
	Text         Text   `json:"text"`
	Options      []Text `json:"options"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  Text   `json:"explanation,omitempty"`
	ImageRef     string `json:"image_ref,omitempty"`
}

// Answer records one response given during a quiz session.
type Answer struct {
	QuestionIndex int     `json:"question_index"`
	SelectedIndex int     `json:"selected_index"`
	Correct       bool    `json:"correct"`
	TimeTaken     float64 `json:"time_taken"`
	Bookmarked    bool    `json:"bookmarked,omitempty"`
}

// Skipped reports whether the question was left unanswered.
func (a Answer) Skipped() bool {
	return a.SelectedIndex == SkippedIndex
}

// Summary is the result of one completed quiz attempt. History rows are
// append-only and never mutated after creation.
type Summary struct {
	ID                 string     `json:"id"`
	Timestamp          time.Time  `json:"timestamp"`
	Score              int        `json:"score"`
	TotalQuestions     int        `json:"total_questions"`
	Accuracy           float64    `json:"accuracy"`
	TotalTime          float64    `json:"total_time"`
	AvgTimePerQuestion float64    `json:"avg_time_per_question"`
	Answers            []Answer   `json:"answers"`
	Questions          []Question `json:"questions"`
	Mode               Mode       `json:"mode"`
	NetScore           float64    `json:"net_score"`
	Topic              string     `json:"topic"`
	Skipped            int        `json:"skipped"`
	XPEarned           int        `json:"xp_earned"`
}

// XpData is the cumulative experience record. Level is derived from
// TotalXP and must always match LevelOf.
type XpData struct {
	TotalXP int `json:"total_xp"`
	Level   int `json:"level"`
}

// StreakData tracks consecutive days with at least one completed quiz.
// LastQuizDate is a calendar date string in 2006-01-02 form.
type StreakData struct {
	CurrentStreak int    `json:"current_streak"`
	LastQuizDate  string `json:"last_quiz_date"`
}

// Achievement merges a static catalog entry with its mutable unlock
// state. Once Unlocked is true it never reverts.
type Achievement struct {
	ID          string    `json:"id"`
	Name        Text      `json:"name"`
	Description Text      `json:"description"`
	Icon        string    `json:"icon"`
	Criteria    string    `json:"criteria"`
	Target      int       `json:"target,omitempty"`
	Unlocked    bool      `json:"unlocked"`
	UnlockedAt  time.Time `json:"unlocked_at,omitempty"`
	Progress    float64   `json:"progress"`
}

// ProgressPoint is one derived per-quiz record for charting.
type ProgressPoint struct {
	QuizID    string    `json:"quiz_id"`
	Timestamp time.Time `json:"timestamp"`
	Topic     string    `json:"topic"`
	Accuracy  float64   `json:"accuracy"`
	AvgTime   float64   `json:"avg_time"`
	XPEarned  int       `json:"xp_earned"`
}

// Topic names one question set within a subject.
type Topic struct {
	Name Text   `json:"name"`
	File string `json:"file,omitempty"`
}

// Subject groups topics for the topic picker.
type Subject struct {
	Name   Text    `json:"name"`
	Topics []Topic `json:"topics"`
	Custom bool    `json:"custom,omitempty"`
	Icon   string  `json:"icon,omitempty"`
}

// Config defines quiz settings.
type Config struct {
	Lang      string
	Questions int
	Mode      Mode
	FocusWeak bool
	WeakTop   int
	WeakRuns  int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Topic       string
	Since       *time.Time
	Last        int
	CurveWindow int
}
