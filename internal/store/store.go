// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dkaul/quizdeck/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for quiz records. Each record type is read
// and written as a whole value; history and progress are append-only.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			id TEXT PRIMARY KEY,
			finished_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			total_time REAL NOT NULL,
			avg_time REAL NOT NULL,
			mode TEXT NOT NULL,
			net_score REAL NOT NULL,
			topic TEXT NOT NULL,
			skipped INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			answers_json TEXT NOT NULL,
			questions_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			quiz_id TEXT PRIMARY KEY,
			finished_at TEXT NOT NULL,
			topic TEXT NOT NULL,
			accuracy REAL NOT NULL,
			avg_time REAL NOT NULL,
			xp_earned INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS xp (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_xp INTEGER NOT NULL,
			level INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS streak (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_streak INTEGER NOT NULL,
			last_quiz_date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked INTEGER NOT NULL,
			unlocked_at TEXT NOT NULL,
			progress REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS custom_subjects (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			subject_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_finished_at ON history(finished_at);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_finished_at ON progress(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// History returns all summaries ordered oldest first.
func (s *Store) History(ctx context.Context) ([]model.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finished_at, score, total_questions, accuracy, total_time, avg_time,
			mode, net_score, topic, skipped, xp_earned, answers_json, questions_json
		 FROM history ORDER BY finished_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var history []model.Summary
	for rows.Next() {
		var sum model.Summary
		var finishedAt, mode, answersJSON, questionsJSON string
		if err := rows.Scan(&sum.ID, &finishedAt, &sum.Score, &sum.TotalQuestions,
			&sum.Accuracy, &sum.TotalTime, &sum.AvgTimePerQuestion, &mode,
			&sum.NetScore, &sum.Topic, &sum.Skipped, &sum.XPEarned,
			&answersJSON, &questionsJSON); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		sum.Timestamp = parsed
		sum.Mode = model.Mode(mode)
		if err := json.Unmarshal([]byte(answersJSON), &sum.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers for %s: %w", sum.ID, err)
		}
		if err := json.Unmarshal([]byte(questionsJSON), &sum.Questions); err != nil {
			return nil, fmt.Errorf("failed to decode questions for %s: %w", sum.ID, err)
		}
		history = append(history, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// AppendHistory stores one completed quiz summary.
func (s *Store) AppendHistory(ctx context.Context, sum model.Summary) error {
	answersJSON, err := json.Marshal(sum.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	questionsJSON, err := json.Marshal(sum.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, finished_at, score, total_questions, accuracy, total_time,
			avg_time, mode, net_score, topic, skipped, xp_earned, answers_json, questions_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID,
		sum.Timestamp.Format(time.RFC3339Nano),
		sum.Score,
		sum.TotalQuestions,
		sum.Accuracy,
		sum.TotalTime,
		sum.AvgTimePerQuestion,
		string(sum.Mode),
		sum.NetScore,
		sum.Topic,
		sum.Skipped,
		sum.XPEarned,
		string(answersJSON),
		string(questionsJSON),
	)
	return err
}

// ClearHistory deletes all summaries.
func (s *Store) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}

// XpData returns the single XP record, zero-valued when absent.
func (s *Store) XpData(ctx context.Context) (model.XpData, error) {
	var xp model.XpData
	err := s.db.QueryRowContext(ctx, `SELECT total_xp, level FROM xp WHERE id = 1`).
		Scan(&xp.TotalXP, &xp.Level)
	if err == sql.ErrNoRows {
		return model.XpData{TotalXP: 0, Level: 1}, nil
	}
	if err != nil {
		return model.XpData{}, err
	}
	return xp, nil
}

// SaveXpData writes the single XP record.
func (s *Store) SaveXpData(ctx context.Context, xp model.XpData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO xp (id, total_xp, level) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET total_xp = excluded.total_xp, level = excluded.level`,
		xp.TotalXP, xp.Level)
	return err
}

// StreakData returns the single streak record, zero-valued when absent.
func (s *Store) StreakData(ctx context.Context) (model.StreakData, error) {
	var streak model.StreakData
	err := s.db.QueryRowContext(ctx,
		`SELECT current_streak, last_quiz_date FROM streak WHERE id = 1`).
		Scan(&streak.CurrentStreak, &streak.LastQuizDate)
	if err == sql.ErrNoRows {
		return model.StreakData{}, nil
	}
	if err != nil {
		return model.StreakData{}, err
	}
	return streak, nil
}

// SaveStreakData writes the single streak record.
func (s *Store) SaveStreakData(ctx context.Context, streak model.StreakData) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO streak (id, current_streak, last_quiz_date) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET current_streak = excluded.current_streak,
			last_quiz_date = excluded.last_quiz_date`,
		streak.CurrentStreak, streak.LastQuizDate)
	return err
}

// Achievements merges the static catalog with persisted unlock state.
// Missing rows fall back to the locked default, so new catalog entries
// appear automatically.
func (s *Store) Achievements(ctx context.Context, defaults []model.Achievement) ([]model.Achievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, unlocked, unlocked_at, progress FROM achievements`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	type state struct {
		unlocked   bool
		unlockedAt time.Time
		progress   float64
	}
	states := map[string]state{}
	for rows.Next() {
		var id, unlockedAt string
		var unlocked int
		var progress float64
		if err := rows.Scan(&id, &unlocked, &unlockedAt, &progress); err != nil {
			return nil, err
		}
		st := state{unlocked: unlocked != 0, progress: progress}
		if unlockedAt != "" {
			parsed, err := time.Parse(time.RFC3339Nano, unlockedAt)
			if err != nil {
				return nil, err
			}
			st.unlockedAt = parsed
		}
		states[id] = st
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	merged := make([]model.Achievement, 0, len(defaults))
	for _, ach := range defaults {
		if st, ok := states[ach.ID]; ok {
			ach.Unlocked = st.unlocked
			ach.UnlockedAt = st.unlockedAt
			ach.Progress = st.progress
		}
		merged = append(merged, ach)
	}
	return merged, nil
}

// SaveAchievements writes the mutable state of the full catalog.
func (s *Store) SaveAchievements(ctx context.Context, achs []model.Achievement) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO achievements (id, unlocked, unlocked_at, progress) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET unlocked = excluded.unlocked,
			unlocked_at = excluded.unlocked_at, progress = excluded.progress`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, ach := range achs {
		unlocked := 0
		if ach.Unlocked {
			unlocked = 1
		}
		unlockedAt := ""
		if !ach.UnlockedAt.IsZero() {
			unlockedAt = ach.UnlockedAt.Format(time.RFC3339Nano)
		}
		if _, err = stmt.ExecContext(ctx, ach.ID, unlocked, unlockedAt, ach.Progress); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

// ProgressData returns all progress points ordered oldest first.
func (s *Store) ProgressData(ctx context.Context) ([]model.ProgressPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT quiz_id, finished_at, topic, accuracy, avg_time, xp_earned
		 FROM progress ORDER BY finished_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var points []model.ProgressPoint
	for rows.Next() {
		var p model.ProgressPoint
		var finishedAt string
		if err := rows.Scan(&p.QuizID, &finishedAt, &p.Topic, &p.Accuracy, &p.AvgTime, &p.XPEarned); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		p.Timestamp = parsed
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// AppendProgress stores one progress point.
func (s *Store) AppendProgress(ctx context.Context, p model.ProgressPoint) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (quiz_id, finished_at, topic, accuracy, avg_time, xp_earned)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.QuizID,
		p.Timestamp.Format(time.RFC3339Nano),
		p.Topic,
		p.Accuracy,
		p.AvgTime,
		p.XPEarned,
	)
	return err
}

// ClearProgress deletes all progress points.
func (s *Store) ClearProgress(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM progress`)
	return err
}

// CustomSubjects returns user-defined subjects in insertion order.
func (s *Store) CustomSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_json FROM custom_subjects ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var subjects []model.Subject
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var subject model.Subject
		if err := json.Unmarshal([]byte(raw), &subject); err != nil {
			return nil, fmt.Errorf("failed to decode custom subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subjects, nil
}

// SaveCustomSubjects replaces the custom subject collection.
func (s *Store) SaveCustomSubjects(ctx context.Context, subjects []model.Subject) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM custom_subjects`); err != nil {
		return err
	}
	for _, subject := range subjects {
		raw, merr := json.Marshal(subject)
		if merr != nil {
			err = fmt.Errorf("failed to encode custom subject: %w", merr)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO custom_subjects (subject_json) VALUES (?)`, string(raw)); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}
