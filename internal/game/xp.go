// Package game implements the gamification rules: XP and levels,
// achievement evaluation, and the daily completion streak.
package game

import (
	"math"

	"github.com/dkaul/quizdeck/internal/model"
)

// XPPerLevel is the flat XP cost of each level.
const XPPerLevel = 100

// LevelOf converts a cumulative XP total into a level. Level 1 starts
// at 0 XP and each level costs XPPerLevel.
func LevelOf(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/XPPerLevel + 1
}

// ApplyXP adds gained XP to the current record and reports whether the
// addition crossed a level boundary.
func ApplyXP(current model.XpData, gained int) (model.XpData, bool) {
	newTotal := current.TotalXP + gained
	newLevel := LevelOf(newTotal)
	leveledUp := newLevel > LevelOf(current.TotalXP)
	return model.XpData{TotalXP: newTotal, Level: newLevel}, leveledUp
}

// StreakBonus returns bonus XP for the longest run of consecutive
// correct answers within a single quiz.
func StreakBonus(quizStreak int) int {
	switch {
	case quizStreak >= 10:
		return 10
	case quizStreak >= 5:
		return 5
	case quizStreak >= 3:
		return 2
	default:
		return 0
	}
}

// AccuracyBonus returns bonus XP proportional to the share of correct
// answers, 0..10.
func AccuracyBonus(correct, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(totalQuestions) * 10))
}

// AwardXP computes the XP earned by one finished quiz. The award is the
// same in both modes; the attempt-mode penalty only affects the net
// score, never XP.
func AwardXP(correct, totalQuestions, quizStreak int) int {
	return correct*10 + StreakBonus(quizStreak) + AccuracyBonus(correct, totalQuestions)
}
