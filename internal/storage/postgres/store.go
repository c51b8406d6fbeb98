package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	_ "github.com/lib/pq"

	"github.com/quietloop/rhythm/internal/keyring"
	"github.com/quietloop/rhythm/internal/logger"
)

// Store is the postgres-backed storage provider. The connection string must
// not embed a password; it is resolved from RHYTHM_DB_PASSWORD or the OS
// keyring at connect time.
type Store struct {
	connStr string
	db      *sql.DB
}

var ErrEmbeddedCredentials = errors.New("connection string must not contain a password")

func New(connStr string) *Store {
	return &Store{connStr: connStr}
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.connect(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.connStr
}

func (s *Store) connect() error {
	if hasEmbeddedPassword(s.connStr) {
		return ErrEmbeddedCredentials
	}

	connStr := s.connStr
	if pw := resolvePassword(); pw != "" {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			u, err := url.Parse(connStr)
			if err != nil {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			u.User = url.UserPassword(u.User.Username(), pw)
			connStr = u.String()
		} else {
			connStr = strings.TrimSpace(connStr) + " password=" + pw
		}
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

// resolvePassword prefers the environment, then the OS keyring. An empty
// result is fine for trust-based auth setups.
func resolvePassword() string {
	if pw := os.Getenv("RHYTHM_DB_PASSWORD"); pw != "" {
		return pw
	}
	pw, err := keyring.GetDatabasePassword()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("keyring lookup failed", "error", err)
		}
		return ""
	}
	return pw
}

func hasEmbeddedPassword(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
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
			cached_chain_stats JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rhythms_user ON rhythms(user_id)`,

		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL,
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			payload JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_time ON entries(user_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS encouragements (
			id TEXT PRIMARY KEY,
			stage TEXT NOT NULL,
			context TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			tier_name TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_encouragements_lookup
			ON encouragements(stage, context, activity_type, tier_name)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
