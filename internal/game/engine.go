package game

import (
	"context"
	"fmt"
	"time"

	"github.com/dkaul/quizdeck/internal/model"
)

// Store persists each record type as a whole value. History and
// progress are append-only with bulk clears.
type Store interface {
	History(ctx context.Context) ([]model.Summary, error)
	AppendHistory(ctx context.Context, s model.Summary) error
	ClearHistory(ctx context.Context) error

	XpData(ctx context.Context) (model.XpData, error)
	SaveXpData(ctx context.Context, xp model.XpData) error

	StreakData(ctx context.Context) (model.StreakData, error)
	SaveStreakData(ctx context.Context, s model.StreakData) error

	Achievements(ctx context.Context, defaults []model.Achievement) ([]model.Achievement, error)
	SaveAchievements(ctx context.Context, achs []model.Achievement) error

	ProgressData(ctx context.Context) ([]model.ProgressPoint, error)
	AppendProgress(ctx context.Context, p model.ProgressPoint) error
	ClearProgress(ctx context.Context) error

	CustomSubjects(ctx context.Context) ([]model.Subject, error)
	SaveCustomSubjects(ctx context.Context, subjects []model.Subject) error
}

// QuestionLoader supplies the question set for a topic. Loaders may do
// slow work (file reads); a failure aborts the quiz start with no
// partial state.
type QuestionLoader func(ctx context.Context) ([]model.Question, error)

// Engine drives every state transition of the quiz application. All
// persistence runs strictly in sequence; there is a single active
// session and no concurrent-writer protection.
type Engine struct {
	store Store
}

// NewEngine wires the dispatcher to its persistence collaborator.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Result reports everything one quiz completion changed.
type Result struct {
	Summary   model.Summary
	Xp        model.XpData
	Streak    model.StreakData
	LeveledUp bool
	Unlocked  []model.Achievement
}

// Snapshot is the full persisted state, reloaded fresh on restart.
type Snapshot struct {
	History        []model.Summary
	Xp             model.XpData
	Streak         model.StreakData
	Achievements   []model.Achievement
	Progress       []model.ProgressPoint
	CustomSubjects []model.Subject
}

// StartQuiz runs the question supplier for a topic. On failure nothing
// is persisted and the caller returns to a stable screen.
func (e *Engine) StartQuiz(ctx context.Context, loader QuestionLoader, topic string) ([]model.Question, error) {
	questions, err := loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %q: %w", topic, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("topic %q has no questions", topic)
	}
	return questions, nil
}

// FinishQuiz applies every gamification update for one completed quiz:
// daily streak, XP, history, progress point, then achievement
// re-evaluation. Each step awaits the previous write.
func (e *Engine) FinishQuiz(ctx context.Context, topic string, questions []model.Question, answers []model.Answer, quizStreak int, mode model.Mode, now time.Time) (Result, error) {
	streak, err := e.store.StreakData(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load streak: %w", err)
	}
	streak = AdvanceStreak(streak, now)
	if err := e.store.SaveStreakData(ctx, streak); err != nil {
		return Result{}, fmt.Errorf("failed to save streak: %w", err)
	}

	summary := BuildSummary(topic, questions, answers, mode, quizStreak, now)

	xp, err := e.store.XpData(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load xp: %w", err)
	}
	xp, leveledUp := ApplyXP(xp, summary.XPEarned)
	if err := e.store.SaveXpData(ctx, xp); err != nil {
		return Result{}, fmt.Errorf("failed to save xp: %w", err)
	}

	if err := e.store.AppendHistory(ctx, summary); err != nil {
		return Result{}, fmt.Errorf("failed to append history: %w", err)
	}
	if err := e.store.AppendProgress(ctx, ProgressPointFor(summary)); err != nil {
		return Result{}, fmt.Errorf("failed to append progress: %w", err)
	}

	unlocked, err := e.evaluate(ctx, xp, &summary, now)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Summary:   summary,
		Xp:        xp,
		Streak:    streak,
		LeveledUp: leveledUp,
		Unlocked:  unlocked,
	}, nil
}

// ViewHistoryItem returns one summary by id for the review screen.
func (e *Engine) ViewHistoryItem(ctx context.Context, id string) (model.Summary, error) {
	history, err := e.store.History(ctx)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to load history: %w", err)
	}
	for _, s := range history {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Summary{}, fmt.Errorf("no history item %q", id)
}

// ClearHistory wipes quiz history and its derived progress points.
func (e *Engine) ClearHistory(ctx context.Context) error {
	if err := e.store.ClearHistory(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	if err := e.store.ClearProgress(ctx); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

// SaveCustomSubject appends a user-defined subject and re-evaluates
// achievements, since catalog size can feed future criteria.
func (e *Engine) SaveCustomSubject(ctx context.Context, subject model.Subject, now time.Time) ([]model.Achievement, error) {
	subjects, err := e.store.CustomSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load custom subjects: %w", err)
	}
	subject.Custom = true
	subjects = append(subjects, subject)
	if err := e.store.SaveCustomSubjects(ctx, subjects); err != nil {
		return nil, fmt.Errorf("failed to save custom subjects: %w", err)
	}

	xp, err := e.store.XpData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load xp: %w", err)
	}
	return e.evaluate(ctx, xp, nil, now)
}

// DeleteCustomSubject removes a user-defined subject by its English
// name. Confirmation is the caller's responsibility.
func (e *Engine) DeleteCustomSubject(ctx context.Context, name string) error {
	subjects, err := e.store.CustomSubjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load custom subjects: %w", err)
	}
	kept := subjects[:0]
	found := false
	for _, s := range subjects {
		if s.Name.Get("en") == name {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return fmt.Errorf("no custom subject %q", name)
	}
	if err := e.store.SaveCustomSubjects(ctx, kept); err != nil {
		return fmt.Errorf("failed to save custom subjects: %w", err)
	}
	return nil
}

// Snapshot reloads every persisted record, for app restart.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	history, err := e.store.History(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load history: %w", err)
	}
	xp, err := e.store.XpData(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load xp: %w", err)
	}
	streak, err := e.store.StreakData(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load streak: %w", err)
	}
	achievements, err := e.store.Achievements(ctx, DefaultAchievements())
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load achievements: %w", err)
	}
	progress, err := e.store.ProgressData(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load progress: %w", err)
	}
	subjects, err := e.store.CustomSubjects(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load custom subjects: %w", err)
	}
	return Snapshot{
		History:        history,
		Xp:             xp,
		Streak:         streak,
		Achievements:   achievements,
		Progress:       progress,
		CustomSubjects: subjects,
	}, nil
}

func (e *Engine) evaluate(ctx context.Context, xp model.XpData, justCompleted *model.Summary, now time.Time) ([]model.Achievement, error) {
	history, err := e.store.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	catalog, err := e.store.Achievements(ctx, DefaultAchievements())
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	updated, unlocked := EvaluateAchievements(catalog, history, xp, justCompleted, now)
	if err := e.store.SaveAchievements(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save achievements: %w", err)
	}
	return unlocked, nil
}
