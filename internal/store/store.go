// Package store persists learner progress, attempts, and the streak in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Topics returns the topic progress repository.
func (s *Store) Topics() *TopicRepo {
	return &TopicRepo{db: s.db}
}

// Attempts returns the attempt repository.
func (s *Store) Attempts() *AttemptRepo {
	return &AttemptRepo{db: s.db}
}

// Streaks returns the streak repository.
func (s *Store) Streaks() *StreakRepo {
	return &StreakRepo{db: s.db}
}

// Reset deletes all learner data: topic progress, attempts, and the
// streak. The schema stays in place.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"topic_progress", "attempts", "streak"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS topic_progress (
			topic_id     TEXT PRIMARY KEY,
			status       TEXT NOT NULL,
			score        INTEGER NOT NULL DEFAULT 0,
			best_score   INTEGER NOT NULL DEFAULT 0,
			attempts     INTEGER NOT NULL DEFAULT 0,
			last_attempt INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id                  TEXT PRIMARY KEY,
			subject_kind        TEXT NOT NULL,
			subject_id          TEXT NOT NULL,
			questions_json      TEXT NOT NULL,
			answers_json        TEXT NOT NULL,
			score               INTEGER NOT NULL,
			correct_answers     INTEGER NOT NULL,
			total_questions     INTEGER NOT NULL,
			started_at          INTEGER NOT NULL,
			completed_at        INTEGER NOT NULL,
			time_taken_seconds  INTEGER NOT NULL,
			is_retake           INTEGER NOT NULL DEFAULT 0,
			original_attempt_id TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_subject
			ON attempts (subject_kind, subject_id, completed_at)`,
		`CREATE TABLE IF NOT EXISTS streak (
			id                 INTEGER PRIMARY KEY CHECK (id = 1),
			streak             INTEGER NOT NULL,
			last_activity_date TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEARNTRACK_DB environment variable
// 2. $XDG_DATA_HOME/learntrack/learntrack.db
// 3. ~/.local/share/learntrack/learntrack.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEARNTRACK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "learntrack", "learntrack.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
