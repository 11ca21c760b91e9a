// Package storage provides SQLite-based persistence for run recaps.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/compulsive-charlie/internal/director"
	"github.com/vovakirdan/compulsive-charlie/internal/emotion"
)

// ErrNotFound is returned when a run ID has no record.
var ErrNotFound = errors.New("storage: run not found")

// activitySep joins the visited activities in one column.
const activitySep = "|"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is a stored run.
type RunRecord struct {
	ID        int64
	RunID     string
	Seed      int64
	Recap     director.Recap
	CreatedAt time.Time
}

// Stats aggregates all stored runs.
type Stats struct {
	Runs          int
	Finished      int
	HighScore     int
	AvgScore      float64
	TotalHits     int64
	BestCombo     int
	LongestRun    int
	LastPlayed    time.Time
	OnSchedulePct float64 // schedule points per step, over all runs
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			schedule_points INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			misses INTEGER NOT NULL DEFAULT 0,
			auto_hits INTEGER NOT NULL DEFAULT 0,
			deflects INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			energy INTEGER NOT NULL DEFAULT 0,
			anxiety INTEGER NOT NULL DEFAULT 0,
			frustration INTEGER NOT NULL DEFAULT 0,
			despair INTEGER NOT NULL DEFAULT 0,
			activities TEXT NOT NULL DEFAULT '',
			done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a recap and returns the generated run ID.
func (s *Store) SaveRun(seed int64, r director.Recap) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, seed, score, steps, schedule_points, max_combo,
			hits, misses, auto_hits, deflects, height, energy,
			anxiety, frustration, despair, activities, done)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, seed, r.Score, r.Steps, r.SchedulePoints, r.MaxCombo,
		r.Hits, r.Misses, r.AutoHits, r.Deflects, r.Height, r.Energy,
		r.Emotions.Anxiety, r.Emotions.Frustration, r.Emotions.Despair,
		strings.Join(r.Activities, activitySep), r.Done,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return runID, nil
}

const runColumns = `id, run_id, seed, score, steps, schedule_points, max_combo,
	hits, misses, auto_hits, deflects, height, energy,
	anxiety, frustration, despair, activities, done, created_at`

// TopRuns returns the best runs by score.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`, limit)
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
}

// RunByID looks up a run by its run ID.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			r          = &rec.Recap
			e          emotion.State
			activities string
			createdAt  any
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Seed, &r.Score, &r.Steps,
			&r.SchedulePoints, &r.MaxCombo, &r.Hits, &r.Misses, &r.AutoHits, &r.Deflects,
			&r.Height, &r.Energy, &e.Anxiety, &e.Frustration, &e.Despair,
			&activities, &r.Done, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Emotions = e
		if activities != "" {
			r.Activities = strings.Split(activities, activitySep)
		}
		rec.CreatedAt = parseTime(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// HighScore returns the best score, or 0 without runs.
func (s *Store) HighScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM runs`).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	return score, nil
}

// Stats aggregates all stored runs.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	var steps, points int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(done), 0), COALESCE(MAX(score), 0),
			COALESCE(AVG(score), 0), COALESCE(SUM(hits), 0), COALESCE(MAX(max_combo), 0),
			COALESCE(MAX(steps), 0), COALESCE(SUM(steps), 0),
			COALESCE(SUM(schedule_points), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&st.Runs, &st.Finished, &st.HighScore, &st.AvgScore, &st.TotalHits,
		&st.BestCombo, &st.LongestRun, &steps, &points, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	if steps > 0 {
		st.OnSchedulePct = float64(points) / float64(steps) * 100
	}
	return st, nil
}

// ClearRuns deletes every stored run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
