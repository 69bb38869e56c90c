package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/learntrack/internal/ledger"
	"github.com/abhisek/learntrack/internal/quiz"
	"github.com/abhisek/learntrack/internal/streak"
	"github.com/abhisek/learntrack/internal/topic"
)

const (
	kindTopic   = "topic"
	kindContent = "content"
)

func subjectKind(s quiz.Subject) string {
	if s.Kind == quiz.SubjectContent {
		return kindContent
	}
	return kindTopic
}

func subjectFrom(kind, id string) quiz.Subject {
	if kind == kindContent {
		return quiz.ContentSubject(id)
	}
	return quiz.TopicSubject(id)
}

// TopicRepo persists per-topic learner progress. Only progress fields are
// stored; the curriculum itself (names, prerequisites) is authored in code.
type TopicRepo struct {
	db *sql.DB
}

func (r *TopicRepo) ListTopics(ctx context.Context) (map[string]topic.Topic, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topic_id, status, score, best_score, attempts, last_attempt FROM topic_progress`)
	if err != nil {
		return nil, fmt.Errorf("list topic progress: %w", err)
	}
	defer rows.Close()

	result := make(map[string]topic.Topic)
	for rows.Next() {
		var (
			t           topic.Topic
			status      string
			lastAttempt sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &status, &t.Score, &t.BestScore, &t.Attempts, &lastAttempt); err != nil {
			return nil, fmt.Errorf("scan topic progress: %w", err)
		}
		t.Status = topic.Status(status)
		if lastAttempt.Valid {
			at := time.Unix(lastAttempt.Int64, 0).UTC()
			t.LastAttempt = &at
		}
		result[t.ID] = t
	}
	return result, rows.Err()
}

func (r *TopicRepo) UpdateTopicProgress(ctx context.Context, t topic.Topic) (topic.Topic, error) {
	var lastAttempt any
	if t.LastAttempt != nil {
		lastAttempt = t.LastAttempt.Unix()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO topic_progress (topic_id, status, score, best_score, attempts, last_attempt)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (topic_id) DO UPDATE SET
			status = excluded.status,
			score = excluded.score,
			best_score = excluded.best_score,
			attempts = excluded.attempts,
			last_attempt = excluded.last_attempt`,
		t.ID, string(t.Status), t.Score, t.BestScore, t.Attempts, lastAttempt)
	if err != nil {
		return topic.Topic{}, fmt.Errorf("upsert topic %s: %w", t.ID, err)
	}
	return t, nil
}

// AttemptRepo persists completed attempts. Attempts are append-only; there
// is no update or delete.
type AttemptRepo struct {
	db *sql.DB
}

func (r *AttemptRepo) CreateAttempt(ctx context.Context, a ledger.Attempt) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, subject_kind, subject_id, questions_json, answers_json,
			score, correct_answers, total_questions, started_at, completed_at,
			time_taken_seconds, is_retake, original_attempt_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, subjectKind(a.Subject), a.Subject.ID, string(questions), string(answers),
		a.Score, a.CorrectAnswers, a.TotalQuestions, a.StartedAt.Unix(), a.CompletedAt.Unix(),
		a.TimeTakenSeconds, a.IsRetake, a.OriginalAttemptID)
	if err != nil {
		return fmt.Errorf("insert attempt %s: %w", a.ID, err)
	}
	return nil
}

func (r *AttemptRepo) ListAttempts(ctx context.Context, subject quiz.Subject) ([]ledger.Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject_kind, subject_id, questions_json, answers_json,
			score, correct_answers, total_questions, started_at, completed_at,
			time_taken_seconds, is_retake, original_attempt_id
		 FROM attempts
		 WHERE subject_kind = ? AND subject_id = ?
		 ORDER BY completed_at, id`,
		subjectKind(subject), subject.ID)
	if err != nil {
		return nil, fmt.Errorf("list attempts for %s: %w", subject.Key(), err)
	}
	defer rows.Close()

	var attempts []ledger.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ListAllAttempts returns every attempt across topic and content subjects,
// oldest completion first. The engine warms its in-memory ledger from this
// at startup.
func (r *AttemptRepo) ListAllAttempts(ctx context.Context) ([]ledger.Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject_kind, subject_id, questions_json, answers_json,
			score, correct_answers, total_questions, started_at, completed_at,
			time_taken_seconds, is_retake, original_attempt_id
		 FROM attempts
		 ORDER BY completed_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []ledger.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// GetAttempt returns one attempt by id for review.
func (r *AttemptRepo) GetAttempt(ctx context.Context, id string) (ledger.Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subject_kind, subject_id, questions_json, answers_json,
			score, correct_answers, total_questions, started_at, completed_at,
			time_taken_seconds, is_retake, original_attempt_id
		 FROM attempts WHERE id = ?`, id)
	if err != nil {
		return ledger.Attempt{}, fmt.Errorf("get attempt %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ledger.Attempt{}, err
		}
		return ledger.Attempt{}, fmt.Errorf("attempt %s: %w", id, sql.ErrNoRows)
	}
	return scanAttempt(rows)
}

func scanAttempt(rows *sql.Rows) (ledger.Attempt, error) {
	var (
		a                      ledger.Attempt
		kind, subjectID        string
		questionsJSON, answers string
		startedAt, completedAt int64
	)
	if err := rows.Scan(&a.ID, &kind, &subjectID, &questionsJSON, &answers,
		&a.Score, &a.CorrectAnswers, &a.TotalQuestions, &startedAt, &completedAt,
		&a.TimeTakenSeconds, &a.IsRetake, &a.OriginalAttemptID); err != nil {
		return ledger.Attempt{}, fmt.Errorf("scan attempt: %w", err)
	}
	a.Subject = subjectFrom(kind, subjectID)
	a.StartedAt = time.Unix(startedAt, 0).UTC()
	a.CompletedAt = time.Unix(completedAt, 0).UTC()
	if err := json.Unmarshal([]byte(questionsJSON), &a.Questions); err != nil {
		return ledger.Attempt{}, fmt.Errorf("decode questions for %s: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return ledger.Attempt{}, fmt.Errorf("decode answers for %s: %w", a.ID, err)
	}
	return a, nil
}

// StreakRepo persists the single-row streak record.
type StreakRepo struct {
	db *sql.DB
}

func (r *StreakRepo) UpdateStreak(ctx context.Context, state streak.State) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO streak (id, streak, last_activity_date) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			streak = excluded.streak,
			last_activity_date = excluded.last_activity_date`,
		state.Streak, state.LastActivityDate.String())
	if err != nil {
		return fmt.Errorf("upsert streak: %w", err)
	}
	return nil
}

// LoadStreak reads the persisted streak. Returns the zero state when no
// activity has been recorded yet.
func (r *StreakRepo) LoadStreak(ctx context.Context) (streak.State, error) {
	var (
		state streak.State
		date  string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT streak, last_activity_date FROM streak WHERE id = 1`).Scan(&state.Streak, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return streak.State{}, nil
	}
	if err != nil {
		return streak.State{}, fmt.Errorf("load streak: %w", err)
	}
	state.LastActivityDate, err = streak.ParseDate(date)
	if err != nil {
		return streak.State{}, fmt.Errorf("parse streak date %q: %w", date, err)
	}
	return state, nil
}
