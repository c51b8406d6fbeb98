package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

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
		FROM rhythms WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanRhythm(row)
}

func (s *Store) GetRhythmByName(userID, name string) (models.Rhythm, error) {
	row := s.db.QueryRow(`
		SELECT `+rhythmColumns+`
		FROM rhythms WHERE user_id = $1 AND name = $2 AND deleted_at IS NULL`,
		userID, name)
	return scanRhythm(row)
}

func (s *Store) GetAllRhythms(userID string, includeDeleted bool) ([]models.Rhythm, error) {
	query := "SELECT " + rhythmColumns + " FROM rhythms WHERE user_id = $1"
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
	var cached any
	if r.CachedChainStats != nil {
		blob, err := json.Marshal(r.CachedChainStats)
		if err != nil {
			return fmt.Errorf("failed to encode chain snapshot: %w", err)
		}
		cached = string(blob)
	}
	var deletedAt any
	if r.DeletedAt != nil {
		deletedAt = *r.DeletedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO rhythms (`+rhythmColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
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
		r.LongestStreak, r.LastCompletedDate, cached, r.CreatedAt, deletedAt)

	return err
}

func (s *Store) DeleteRhythm(id string) error {
	result, err := s.db.Exec(`
		UPDATE rhythms SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
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
		UPDATE rhythms SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
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
	var cached sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.ActivityType, &r.Category,
		&r.Subcategory, &r.ActivityName, &r.GoalType, &r.GoalValue, &r.GoalUnit,
		&r.Frequency, &r.FrequencyTarget, &r.DurationThresholdSeconds,
		&r.CurrentStreak, &r.LongestStreak, &r.LastCompletedDate,
		&cached, &r.CreatedAt, &deletedAt)
	if err != nil {
		return models.Rhythm{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		r.DeletedAt = &t
	}
	if cached.Valid {
		r.CachedChainStats = decodeSnapshot(r.ID, []byte(cached.String))
	}

	return r, nil
}

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
