// Package storage provides SQLite-based persistence for finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/snek/internal/games/snake"
)

// Store manages the SQLite database connection for round history.
type Store struct {
	db *sql.DB
}

// Round is a single recorded round.
type Round struct {
	ID        int64
	Ticks     int64
	Width     int
	Height    int
	Length1   int
	Length2   int
	Eaten1    int
	Eaten2    int
	EndReason string // "quit", "restart", "resize"
	CreatedAt time.Time
}

// Winner returns 1 or 2 for the player with the longer snake, 0 on a tie.
func (r Round) Winner() int {
	switch {
	case r.Length1 > r.Length2:
		return 1
	case r.Length2 > r.Length1:
		return 2
	default:
		return 0
	}
}

// Totals aggregates all recorded rounds.
type Totals struct {
	Rounds     int
	Wins1      int
	Wins2      int
	Ties       int
	BestLength int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ticks INTEGER NOT NULL DEFAULT 0,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			length1 INTEGER NOT NULL,
			length2 INTEGER NOT NULL,
			eaten1 INTEGER NOT NULL DEFAULT 0,
			eaten2 INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at);
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

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(r Round) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (ticks, width, height, length1, length2, eaten1, eaten2, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Ticks, r.Width, r.Height, r.Length1, r.Length2, r.Eaten1, r.Eaten2, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRound implements snake.RoundRecorder.
func (s *Store) RecordRound(r snake.RoundResult, reason snake.EndReason) error {
	_, err := s.SaveRound(Round{
		Ticks:     int64(r.Ticks),
		Width:     r.Width,
		Height:    r.Height,
		Length1:   r.Length1,
		Length2:   r.Length2,
		Eaten1:    r.Eaten1,
		Eaten2:    r.Eaten2,
		EndReason: string(reason),
	})
	return err
}

// Ensure Store implements RoundRecorder
var _ snake.RoundRecorder = (*Store)(nil)

// RecentRounds retrieves the most recent rounds, newest first.
func (s *Store) RecentRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, ticks, width, height, length1, length2, eaten1, eaten2, end_reason, created_at
		 FROM rounds
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Ticks,
			&r.Width,
			&r.Height,
			&r.Length1,
			&r.Length2,
			&r.Eaten1,
			&r.Eaten2,
			&r.EndReason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// Totals returns aggregated statistics over all rounds.
func (s *Store) Totals() (*Totals, error) {
	t := &Totals{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN length1 > length2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN length2 > length1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN length1 = length2 THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(MAX(length1, length2)), 0),
		        MAX(created_at)
		 FROM rounds`,
	).Scan(&t.Rounds, &t.Wins1, &t.Wins2, &t.Ties, &t.BestLength, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}
	t.LastPlayed = parseTime(lastPlayed)

	return t, nil
}

// ClearRounds deletes all recorded rounds.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
