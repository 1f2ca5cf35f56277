// Package storage provides SQLite-based persistence for player saves, level
// results and the sync outbox.
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

// Store manages the SQLite database connection. Safe for concurrent use;
// SSH sessions share one store.
type Store struct {
	db *sql.DB
}

// SnapshotRecord is a saved player snapshot.
type SnapshotRecord struct {
	PlayerID      string
	SchemaVersion int
	Payload       []byte
	UpdatedAt     time.Time
}

// Outcome is how a level attempt ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

// LevelResult records one finished level attempt.
type LevelResult struct {
	ID        int64
	PlayerID  string
	LevelID   int
	Outcome   Outcome
	Stars     int
	Moves     int
	Budget    int
	Duration  time.Duration
	CreatedAt time.Time
}

// OutboxEntry is a payload waiting to be pushed to a remote backend.
type OutboxEntry struct {
	ID        string // UUID
	PlayerID  string
	Kind      string // e.g. "snapshot", "achievement"
	Payload   []byte
	Attempts  int
	LastError string
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
		CREATE TABLE IF NOT EXISTS snapshots (
			player_id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL,
			budget INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_id, stars DESC, moves ASC);
		CREATE INDEX IF NOT EXISTS idx_level_results_player ON level_results(player_id);

		CREATE TABLE IF NOT EXISTS sync_outbox (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			player_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			sent_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sync_outbox_pending ON sync_outbox(sent_at, seq);
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

// SaveSnapshot stores the latest snapshot for a player, replacing any
// previous one.
func (s *Store) SaveSnapshot(playerID string, schemaVersion int, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (player_id, schema_version, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player_id) DO UPDATE SET
		   schema_version = excluded.schema_version,
		   payload = excluded.payload,
		   updated_at = CURRENT_TIMESTAMP`,
		playerID, schemaVersion, string(payload),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the player's snapshot, or nil if none was saved.
func (s *Store) LoadSnapshot(playerID string) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	var payload string
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT player_id, schema_version, payload, updated_at
		 FROM snapshots
		 WHERE player_id = ?`,
		playerID,
	).Scan(&rec.PlayerID, &rec.SchemaVersion, &payload, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	rec.Payload = []byte(payload)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}

// SaveResult records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_results
		 (player_id, level_id, outcome, stars, moves, budget, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.PlayerID, r.LevelID, string(r.Outcome), r.Stars, r.Moves, r.Budget, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopResults retrieves the best completed attempts for a level: most stars,
// then fewest moves, then fastest.
func (s *Store) TopResults(levelID, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryResults(
		`SELECT id, player_id, level_id, outcome, stars, moves, budget, duration_ms, created_at
		 FROM level_results
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY stars DESC, moves ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		levelID, string(OutcomeCompleted), limit,
	)
}

// RecentResults retrieves a player's latest attempts, newest first.
func (s *Store) RecentResults(playerID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryResults(
		`SELECT id, player_id, level_id, outcome, stars, moves, budget, duration_ms, created_at
		 FROM level_results
		 WHERE player_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		playerID, limit,
	)
}

// ClearResults deletes all results for the given player.
func (s *Store) ClearResults(playerID string) error {
	_, err := s.db.Exec("DELETE FROM level_results WHERE player_id = ?", playerID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]LevelResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var outcome string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.LevelID, &outcome, &r.Stars, &r.Moves, &r.Budget, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Enqueue adds a payload to the sync outbox and returns its ID.
func (s *Store) Enqueue(playerID, kind string, payload []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sync_outbox (id, player_id, kind, payload) VALUES (?, ?, ?, ?)",
		id, playerID, kind, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot enqueue %s: %w", kind, err)
	}
	return id, nil
}

// PendingOutbox returns unsent entries, oldest first.
func (s *Store) PendingOutbox(limit int) ([]OutboxEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, player_id, kind, payload, attempts, last_error, created_at
		 FROM sync_outbox
		 WHERE sent_at IS NULL
		 ORDER BY seq ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		var payload string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Kind, &payload, &e.Attempts, &e.LastError, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Payload = []byte(payload)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// MarkSent records a successful push.
func (s *Store) MarkSent(id string) error {
	_, err := s.db.Exec(
		"UPDATE sync_outbox SET sent_at = CURRENT_TIMESTAMP, attempts = attempts + 1, last_error = '' WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark %s sent: %w", id, err)
	}
	return nil
}

// MarkFailed records a failed push; the entry stays pending.
func (s *Store) MarkFailed(id, reason string) error {
	_, err := s.db.Exec(
		"UPDATE sync_outbox SET attempts = attempts + 1, last_error = ? WHERE id = ?",
		reason, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark %s failed: %w", id, err)
	}
	return nil
}

// OutboxCounts returns the number of pending and sent entries.
func (s *Store) OutboxCounts() (pending, sent int, err error) {
	err = s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN sent_at IS NULL THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN sent_at IS NULL THEN 0 ELSE 1 END), 0)
		 FROM sync_outbox`,
	).Scan(&pending, &sent)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot count outbox: %w", err)
	}
	return pending, sent, nil
}

// parseTime handles DATETIME values returned either as time.Time or string.
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
