// Package storage keeps the history of finished games in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Record is one finished game.
type Record struct {
	ID         string // UUID
	Mode       string
	Difficulty string
	Player     string // empty until a name was entered
	Origin     string // "local" or "ssh"
	Score      int
	Eaten      int
	Ticks      int64
	Duration   time.Duration
	EndReason  string
	CreatedAt  time.Time
}

// Stats aggregates the history of one mode, or of all modes.
type Stats struct {
	Games      int
	Best       int
	TotalScore int
	TotalEaten int
	PlayTime   time.Duration
}

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultPath is where the history database lives unless --db says otherwise.
const DefaultPath = "~/.snake/history.db"

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

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SSH sessions write from many goroutines; let SQLite queue them.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot configure database: %w", err)
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
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			eaten INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);
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

// SaveSession records a finished game and returns its ID. A missing ID or
// timestamp is filled in.
func (s *Store) SaveSession(r Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Origin == "" {
		r.Origin = "local"
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, mode, difficulty, player, origin, score, eaten, ticks, duration_ms, end_reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Mode, r.Difficulty, r.Player, r.Origin,
		r.Score, r.Eaten, r.Ticks, r.Duration.Milliseconds(), r.EndReason,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	return r.ID, nil
}

// SetPlayer attaches a player name to a recorded game.
func (s *Store) SetPlayer(id, player string) error {
	res, err := s.db.Exec("UPDATE sessions SET player = ? WHERE id = ?", player, id)
	if err != nil {
		return fmt.Errorf("storage: cannot update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: session %s not found", id)
	}
	return nil
}

// Session retrieves a game by ID. Returns nil if it does not exist.
func (s *Store) Session(id string) (*Record, error) {
	rows, err := s.db.Query(selectSessions+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// RecentSessions retrieves the most recent games, newest first.
func (s *Store) RecentSessions(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(selectSessions+" ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanRecords(rows)
}

// TopSessions retrieves the best games of a mode ("" for all modes).
// Results are ordered by score descending, older games first on ties.
func (s *Store) TopSessions(mode string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		selectSessions+` WHERE (? = '' OR mode = ?)
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanRecords(rows)
}

// Stats aggregates the history of a mode ("" for all modes).
func (s *Store) Stats(mode string) (Stats, error) {
	var st Stats
	var best, total, eaten, ms sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), MAX(score), SUM(score), SUM(eaten), SUM(duration_ms)
		 FROM sessions
		 WHERE (? = '' OR mode = ?)`,
		mode, mode,
	).Scan(&st.Games, &best, &total, &eaten, &ms)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	st.Best = int(best.Int64)
	st.TotalScore = int(total.Int64)
	st.TotalEaten = int(eaten.Int64)
	st.PlayTime = time.Duration(ms.Int64) * time.Millisecond
	return st, nil
}

// ClearSessions deletes the history of a mode ("" for all modes).
func (s *Store) ClearSessions(mode string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE (? = '' OR mode = ?)", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

const selectSessions = `SELECT id, mode, difficulty, player, origin, score, eaten,
		ticks, duration_ms, end_reason, created_at
	FROM sessions`

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Difficulty, &r.Player, &r.Origin,
			&r.Score, &r.Eaten, &r.Ticks, &ms, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
