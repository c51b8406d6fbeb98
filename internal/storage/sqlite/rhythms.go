package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/logger"
	"github.com/quietloop/rhythm/internal/models"
)

const rhythmColumns = `id, user_id, name, activity_type, category, subcategory,
	activity_name, goal_type, goal_value, goal_unit, frequency, frequency_target,
	duration_threshold_seconds, current_streak, longest_streak,
	last_completed_date, cached_chain_stats, created_at, deleted_at`

func (s *Store) AddRhythm(r models.Rhythm) error {
	return s.UpdateRhythm(r)
}

func (s *Store) GetRhythm(id string) (models.Rhythm, error) {
	row := s.db.QueryRow(`
		SELECT `+rhythmColumns+`
		FROM rhythms WHERE id = ? AND deleted_at IS NULL`, id)
	return scanRhythm(row)
}

func (s *Store) GetRhythmByName(userID, name string) (models.Rhythm, error) {
	row := s.db.QueryRow(`
		SELECT `+rhythmColumns+`
		FROM rhythms WHERE user_id = ? AND name = ? AND deleted_at IS NULL`,
		userID, name)
	return scanRhythm(row)
}

func (s *Store) GetAllRhythms(userID string, includeDeleted bool) ([]models.Rhythm, error) {
	query := "SELECT " + rhythmColumns + " FROM rhythms WHERE user_id = ?"
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rhythms []models.Rhythm
	for rows.Next() {
		r, err := scanRhythm(rows)
		if err != nil {
			return nil, err
		}
		rhythms = append(rhythms, r)
	}
	return rhythms, rows.Err()
}

func (s *Store) UpdateRhythm(r models.Rhythm) error {
	var cached sql.NullString
	if r.CachedChainStats != nil {
		blob, err := json.Marshal(r.CachedChainStats)
		if err != nil {
			return fmt.Errorf("failed to encode chain snapshot: %w", err)
		}
		cached = sql.NullString{String: string(blob), Valid: true}
	}
	var deletedAt sql.NullString
	if r.DeletedAt != nil {
		deletedAt = sql.NullString{String: r.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO rhythms (`+rhythmColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			activity_type = excluded.activity_type,
			category = excluded.category,
			subcategory = excluded.subcategory,
			activity_name = excluded.activity_name,
			goal_type = excluded.goal_type,
			goal_value = excluded.goal_value,
			goal_unit = excluded.goal_unit,
			frequency = excluded.frequency,
			frequency_target = excluded.frequency_target,
			duration_threshold_seconds = excluded.duration_threshold_seconds,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_completed_date = excluded.last_completed_date,
			cached_chain_stats = excluded.cached_chain_stats,
			deleted_at = excluded.deleted_at`,
		r.ID, r.UserID, r.Name, r.ActivityType, r.Category, r.Subcategory,
		r.ActivityName, r.GoalType, r.GoalValue, r.GoalUnit, r.Frequency,
		r.FrequencyTarget, r.DurationThresholdSeconds, r.CurrentStreak,
		r.LongestStreak, r.LastCompletedDate, cached,
		r.CreatedAt.Format(time.RFC3339), deletedAt)

	return err
}

func (s *Store) DeleteRhythm(id string) error {
	result, err := s.db.Exec(`
		UPDATE rhythms SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("rhythm not found or already deleted")
	}
	return nil
}

func (s *Store) RestoreRhythm(id string) error {
	result, err := s.db.Exec(`
		UPDATE rhythms SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("rhythm not found or not deleted")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRhythm(row rowScanner) (models.Rhythm, error) {
	var r models.Rhythm
	var createdAt string
	var cached, deletedAt sql.NullString

	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.ActivityType, &r.Category,
		&r.Subcategory, &r.ActivityName, &r.GoalType, &r.GoalValue, &r.GoalUnit,
		&r.Frequency, &r.FrequencyTarget, &r.DurationThresholdSeconds,
		&r.CurrentStreak, &r.LongestStreak, &r.LastCompletedDate,
		&cached, &createdAt, &deletedAt)
	if err != nil {
		return models.Rhythm{}, err
	}

	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Rhythm{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Rhythm{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		r.DeletedAt = &t
	}
	if cached.Valid {
		r.CachedChainStats = decodeSnapshot(r.ID, []byte(cached.String))
	}

	return r, nil
}

// decodeSnapshot interprets a stored chain-stats blob. Blobs that fail to
// decode or that carry any version other than the current one are discarded;
// the caller will recalculate instead of reading a historical schema shape.
func decodeSnapshot(rhythmID string, blob []byte) *models.CachedChainData {
	var data models.CachedChainData
	if err := json.Unmarshal(blob, &data); err != nil {
		logger.Warn("discarding unreadable chain snapshot", "rhythm", rhythmID, "error", err)
		return nil
	}
	if data.Version != models.CacheVersion {
		logger.Debug("discarding chain snapshot from another engine version",
			"rhythm", rhythmID, "version", data.Version)
		return nil
	}
	return &data
}
