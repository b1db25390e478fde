// Package storage provides SQLite-based persistence for finished session
// summaries. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the leaderboard lives unless --db says otherwise.
const DefaultPath = "~/.rps/scores.db"

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// SessionRecord is the summary of one finished session.
type SessionRecord struct {
	ID         int64
	Variant    string
	Player     string
	Wins       int
	Losses     int
	Draws      int
	TotalGames int
	BestStreak int
	Duration   time.Duration
	CreatedAt  time.Time
}

// WinRate returns wins as a percentage of total games.
func (r SessionRecord) WinRate() float64 {
	if r.TotalGames == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.TotalGames) * 100
}

// Stats aggregates every stored session of a variant.
type Stats struct {
	Sessions   int
	Wins       int
	Losses     int
	Draws      int
	TotalGames int
	BestStreak int
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			total_games INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(variant, best_streak DESC, wins DESC);
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

// SaveSession records a finished session and returns its ID.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	if rec.Variant == "" {
		return 0, errors.New("storage: session variant is required")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (variant, player, wins, losses, draws, total_games, best_streak, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Variant,
		rec.Player,
		rec.Wins,
		rec.Losses,
		rec.Draws,
		rec.TotalGames,
		rec.BestStreak,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopSessions returns the best sessions of a variant, ranked by best streak
// then wins. An empty variant ranks across all variants.
func (s *Store) TopSessions(variant string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, player, wins, losses, draws, total_games, best_streak, duration_ms, created_at
		 FROM sessions
		 WHERE ? = '' OR variant = ?
		 ORDER BY best_streak DESC, wins DESC, id ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			r          SessionRecord
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.Variant, &r.Player, &r.Wins, &r.Losses, &r.Draws,
			&r.TotalGames, &r.BestStreak, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BestStreak returns the highest best streak stored for a variant.
// Returns 0 if no sessions exist.
func (s *Store) BestStreak(variant string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(best_streak) FROM sessions WHERE variant = ?",
		variant,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best streak: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats aggregates all sessions of a variant.
func (s *Store) Stats(variant string) (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(wins), 0), COALESCE(SUM(losses), 0), COALESCE(SUM(draws), 0),
		        COALESCE(SUM(total_games), 0), COALESCE(MAX(best_streak), 0)
		 FROM sessions
		 WHERE variant = ?`,
		variant,
	).Scan(&st.Sessions, &st.Wins, &st.Losses, &st.Draws, &st.TotalGames, &st.BestStreak)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// ClearSessions deletes all sessions of a variant.
func (s *Store) ClearSessions(variant string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
