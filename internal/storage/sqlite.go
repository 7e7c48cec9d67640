// Package storage provides SQLite-based persistence for the settings
// change journal. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-arena/internal/settings"
)

// DefaultPath is the default journal database location.
const DefaultPath = "~/.arena/history.db"

// timeLayout is the format used for the changed_at column.
const timeLayout = "2006-01-02 15:04:05.000"

// Store manages the SQLite database connection for the change journal.
type Store struct {
	db *sql.DB
}

// ChangeEntry is one journaled settings change.
type ChangeEntry struct {
	ID        int64
	Key       string
	OldValue  string
	NewValue  string
	ChangedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	dbPath = settings.ExpandPath(dbPath)

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
		CREATE TABLE IF NOT EXISTS setting_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			setting_key TEXT NOT NULL,
			old_value TEXT NOT NULL,
			new_value TEXT NOT NULL,
			changed_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_setting_changes_key ON setting_changes(setting_key);
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

// SaveChange records a settings change.
// Returns the ID of the inserted record.
func (s *Store) SaveChange(c settings.Change) (int64, error) {
	at := c.At
	if at.IsZero() {
		at = time.Now()
	}

	result, err := s.db.Exec(
		"INSERT INTO setting_changes (setting_key, old_value, new_value, changed_at) VALUES (?, ?, ?, ?)",
		c.Key, c.Old, c.New, at.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save change: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordChange implements settings.ChangeRecorder.
func (s *Store) RecordChange(c settings.Change) error {
	_, err := s.SaveChange(c)
	return err
}

// Ensure Store implements ChangeRecorder
var _ settings.ChangeRecorder = (*Store)(nil)

// RecentChanges retrieves the most recent changes, newest first.
func (s *Store) RecentChanges(limit int) ([]ChangeEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, setting_key, old_value, new_value, changed_at
		 FROM setting_changes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query changes: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

// KeyHistory retrieves every change of a single key, newest first.
func (s *Store) KeyHistory(key string) ([]ChangeEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, setting_key, old_value, new_value, changed_at
		 FROM setting_changes
		 WHERE setting_key = ?
		 ORDER BY id DESC`,
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query key history: %w", err)
	}
	defer rows.Close()

	return scanChanges(rows)
}

// ClearChanges deletes the whole journal.
func (s *Store) ClearChanges() error {
	_, err := s.db.Exec("DELETE FROM setting_changes")
	if err != nil {
		return fmt.Errorf("storage: cannot clear changes: %w", err)
	}
	return nil
}

func scanChanges(rows *sql.Rows) ([]ChangeEntry, error) {
	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		var changedAt string
		if err := rows.Scan(&e.ID, &e.Key, &e.OldValue, &e.NewValue, &changedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if parsed, err := time.Parse(timeLayout, changedAt); err == nil {
			e.ChangedAt = parsed
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
