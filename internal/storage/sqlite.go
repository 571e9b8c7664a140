// Package storage provides SQLite-based persistence for match results and
// the highscore board. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/bomb-arena/internal/arena"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// MatchRecord is a stored game outcome.
type MatchRecord struct {
	ID           int64
	RoomCode     string
	Mode         string
	WinnerPseudo string
	WinningTeam  string
	Draw         bool
	DurationSecs int
	Players      int
	CreatedAt    time.Time
}

// ScoreRecord is one stored per-player game score.
type ScoreRecord struct {
	ID        int64
	Pseudo    string
	Score     int
	RoomCode  string
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS match_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_code TEXT NOT NULL,
			mode TEXT NOT NULL,
			winner_pseudo TEXT,
			winning_team TEXT,
			draw INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			players INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_room ON match_results(room_code);

		CREATE TABLE IF NOT EXISTS highscores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pseudo TEXT NOT NULL,
			score INTEGER NOT NULL,
			room_code TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_highscores_top ON highscores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_highscores_pseudo ON highscores(pseudo);
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

// SaveMatchResult records the outcome of a finished game.
func (s *Store) SaveMatchResult(res arena.ResultData) error {
	_, err := s.db.Exec(
		`INSERT INTO match_results
		 (room_code, mode, winner_pseudo, winning_team, draw, duration_secs, players)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RoomCode,
		res.Mode,
		res.WinnerPseudo,
		res.WinningTeam,
		boolToInt(res.Draw),
		res.DurationSecs,
		res.Players,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match result: %w", err)
	}
	return nil
}

// SavePlayerScore records one player's final score for a game.
func (s *Store) SavePlayerScore(pseudo string, score int, roomCode string) error {
	_, err := s.db.Exec(
		"INSERT INTO highscores (pseudo, score, room_code) VALUES (?, ?, ?)",
		pseudo, score, roomCode,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save player score: %w", err)
	}
	return nil
}

// TopScores retrieves the top N scores across all games, best score per
// pseudo, ordered descending.
func (s *Store) TopScores(limit int) ([]arena.ScoreRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT pseudo, MAX(score) AS best
		 FROM highscores
		 GROUP BY pseudo
		 ORDER BY best DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query highscores: %w", err)
	}
	defer rows.Close()

	var top []arena.ScoreRow
	for rows.Next() {
		var r arena.ScoreRow
		if err := rows.Scan(&r.Pseudo, &r.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		top = append(top, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return top, nil
}

// RecentMatches retrieves the most recent match results.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, room_code, mode, winner_pseudo, winning_team, draw,
		        duration_secs, players, created_at
		 FROM match_results
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var winner, team sql.NullString
		var draw int
		var createdAt any
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.Mode, &winner, &team, &draw,
			&m.DurationSecs, &m.Players, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.WinnerPseudo = winner.String
		m.WinningTeam = team.String
		m.Draw = draw != 0
		m.CreatedAt = parseCreatedAt(createdAt)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// PlayerScores retrieves a player's score history, newest first.
func (s *Store) PlayerScores(pseudo string, limit int) ([]ScoreRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pseudo, score, room_code, created_at
		 FROM highscores
		 WHERE pseudo = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		pseudo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player scores: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Pseudo, &r.Score, &r.RoomCode, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseCreatedAt(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseCreatedAt handles both time.Time and string datetimes from the
// driver.
func parseCreatedAt(v any) time.Time {
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure Store implements the arena's result store.
var _ arena.ResultStore = (*Store)(nil)
