// Package history keeps a durable record of submitted sessions in SQLite,
// one row per session plus one per graded question. It backs the stats
// command and per-session missed-question reports.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    started_at TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    correct INTEGER NOT NULL,
    total INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
    session_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    question_text TEXT NOT NULL,
    selected TEXT NOT NULL,
    correct_letters TEXT NOT NULL,
    is_correct INTEGER NOT NULL,
    flagged INTEGER NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (session_id, question_id),
    FOREIGN KEY (session_id) REFERENCES sessions(id)
);
`

// SessionRecord is one submitted session.
type SessionRecord struct {
	ID          string
	Mode        string // "standard" or "targeted:<topic>"
	StartedAt   time.Time
	SubmittedAt time.Time
	Correct     int
	Total       int
}

// Percent returns the session score as a percentage.
func (s SessionRecord) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}

// AttemptRecord is one graded question within a session.
type AttemptRecord struct {
	SessionID      string
	QuestionID     string
	QuestionText   string
	Selected       string
	CorrectLetters string
	IsCorrect      bool
	Flagged        bool
	Position       int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user durability.
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

// RecordSession writes a session and its attempts in one transaction.
func (s *Store) RecordSession(sess SessionRecord, attempts []AttemptRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO sessions (id, mode, started_at, submitted_at, correct, total) VALUES (?, ?, ?, ?, ?, ?)",
		sess.ID, sess.Mode,
		sess.StartedAt.UTC().Format(time.RFC3339),
		sess.SubmittedAt.UTC().Format(time.RFC3339),
		sess.Correct, sess.Total,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for _, a := range attempts {
		_, err = tx.Exec(
			`INSERT INTO attempts
			 (session_id, question_id, question_text, selected, correct_letters, is_correct, flagged, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, a.QuestionID, a.QuestionText, a.Selected, a.CorrectLetters,
			boolToInt(a.IsCorrect), boolToInt(a.Flagged), a.Position,
		)
		if err != nil {
			return fmt.Errorf("insert attempt %s: %w", a.QuestionID, err)
		}
	}

	return tx.Commit()
}

// ListSessions returns the most recent sessions, newest first. limit 0
// means all.
func (s *Store) ListSessions(limit int) ([]SessionRecord, error) {
	q := "SELECT id, mode, started_at, submitted_at, correct, total FROM sessions ORDER BY submitted_at DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var started, submitted string
		if err := rows.Scan(&rec.ID, &rec.Mode, &started, &submitted, &rec.Correct, &rec.Total); err != nil {
			return nil, err
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, started)
		rec.SubmittedAt, _ = time.Parse(time.RFC3339, submitted)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionAttempts returns the graded questions of one session in exam
// order.
func (s *Store) SessionAttempts(sessionID string) ([]AttemptRecord, error) {
	rows, err := s.db.Query(
		`SELECT session_id, question_id, question_text, selected, correct_letters, is_correct, flagged, position
		 FROM attempts WHERE session_id = ? ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		var isCorrect, flagged int
		if err := rows.Scan(&a.SessionID, &a.QuestionID, &a.QuestionText, &a.Selected,
			&a.CorrectLetters, &isCorrect, &flagged, &a.Position); err != nil {
			return nil, err
		}
		a.IsCorrect = isCorrect != 0
		a.Flagged = flagged != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// SessionMissed returns the incorrect attempts of one session.
func (s *Store) SessionMissed(sessionID string) ([]AttemptRecord, error) {
	all, err := s.SessionAttempts(sessionID)
	if err != nil {
		return nil, err
	}
	var missed []AttemptRecord
	for _, a := range all {
		if !a.IsCorrect {
			missed = append(missed, a)
		}
	}
	return missed, nil
}

// MissedEver returns one attempt per question ever answered wrong, keeping
// the most recent miss of each, newest first. Question text travels with
// the attempt, so misses resolve even when the current bank no longer holds
// the question.
func (s *Store) MissedEver() ([]AttemptRecord, error) {
	rows, err := s.db.Query(
		`SELECT a.session_id, a.question_id, a.question_text, a.selected, a.correct_letters, a.is_correct, a.flagged, a.position
		 FROM attempts a JOIN sessions s ON s.id = a.session_id
		 WHERE a.is_correct = 0
		 ORDER BY s.submitted_at DESC, a.position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		var isCorrect, flagged int
		if err := rows.Scan(&a.SessionID, &a.QuestionID, &a.QuestionText, &a.Selected,
			&a.CorrectLetters, &isCorrect, &flagged, &a.Position); err != nil {
			return nil, err
		}
		if seen[a.QuestionID] {
			continue
		}
		seen[a.QuestionID] = true
		a.IsCorrect = isCorrect != 0
		a.Flagged = flagged != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// Totals returns the all-time session count and answer counters.
func (s *Store) Totals() (sessions, correct, answered int, err error) {
	err = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(total), 0) FROM sessions",
	).Scan(&sessions, &correct, &answered)
	return
}

// DefaultPath resolves the history database location: PEPREP_DB env var,
// $XDG_DATA_HOME/peprep/history.db, then ~/.local/share/peprep/history.db.
func DefaultPath() (string, error) {
	if p := os.Getenv("PEPREP_DB"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "peprep", "history.db")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
