package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the sqlite-backed storage provider, the default backend.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'rhythm init' first")
	}

	db, err := sql.Open("sqlite", s.path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent, so re-running them on load also
	// picks up tables added since the database was first initialized.
	return s.migrate()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rhythms (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			activity_name TEXT NOT NULL DEFAULT '',
			goal_type TEXT NOT NULL DEFAULT '',
			goal_value INTEGER NOT NULL DEFAULT 0,
			goal_unit TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL DEFAULT '',
			frequency_target INTEGER NOT NULL DEFAULT 0,
			duration_threshold_seconds INTEGER NOT NULL DEFAULT 360,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_completed_date TEXT NOT NULL DEFAULT '',
			cached_chain_stats TEXT,
			created_at TEXT NOT NULL,
			deleted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rhythms_user ON rhythms(user_id)`,

		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			timestamp TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			payload TEXT,
			created_at TEXT NOT NULL,
			deleted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_time ON entries(user_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS encouragements (
			id TEXT PRIMARY KEY,
			stage TEXT NOT NULL,
			context TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			tier_name TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_encouragements_lookup
			ON encouragements(stage, context, activity_type, tier_name)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}
