package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

const entryColumns = `id, user_id, activity_type, category, subcategory, name,
	timestamp, duration_seconds, payload, created_at, deleted_at`

func (s *Store) AddEntry(e models.ActivityEntry) error {
	var payload any
	if e.Payload != nil {
		blob, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode entry payload: %w", err)
		}
		payload = string(blob)
	}
	var deletedAt any
	if e.DeletedAt != nil {
		deletedAt = *e.DeletedAt
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT(id) DO UPDATE SET
			activity_type = excluded.activity_type,
			category = excluded.category,
			subcategory = excluded.subcategory,
			name = excluded.name,
			timestamp = excluded.timestamp,
			duration_seconds = excluded.duration_seconds,
			payload = excluded.payload,
			deleted_at = excluded.deleted_at`,
		e.ID, e.UserID, e.ActivityType, e.Category, e.Subcategory, e.Name,
		e.Timestamp, e.DurationSeconds, payload, e.CreatedAt, deletedAt)

	return err
}

func (s *Store) GetEntry(id string) (models.ActivityEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+entryColumns+`
		FROM entries WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanEntry(row)
}

func (s *Store) GetEntriesForRhythm(userID string, rhythm models.Rhythm, start, end time.Time) ([]models.ActivityEntry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE user_id = $1 AND deleted_at IS NULL"
	args := []any{userID}
	query, args = appendCriteria(query, args, rhythm)
	if !start.IsZero() {
		args = append(args, start)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if !end.IsZero() {
		args = append(args, end)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	query += " ORDER BY timestamp"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) GetLatestEntryTimestamp(userID string, rhythm models.Rhythm) (time.Time, error) {
	query := "SELECT MAX(timestamp) FROM entries WHERE user_id = $1 AND deleted_at IS NULL"
	args := []any{userID}
	query, args = appendCriteria(query, args, rhythm)

	var latest sql.NullTime
	if err := s.db.QueryRow(query, args...).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return latest.Time, nil
}

func (s *Store) DeleteEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE entries SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("entry not found or already deleted")
	}
	return nil
}

func (s *Store) RestoreEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE entries SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("entry not found or not deleted")
	}
	return nil
}

func appendCriteria(query string, args []any, r models.Rhythm) (string, []any) {
	if r.ActivityType != "" {
		args = append(args, r.ActivityType)
		query += fmt.Sprintf(" AND activity_type = $%d", len(args))
	}
	if r.Category != "" {
		args = append(args, r.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if r.Subcategory != "" {
		args = append(args, r.Subcategory)
		query += fmt.Sprintf(" AND subcategory = $%d", len(args))
	}
	if r.ActivityName != "" {
		args = append(args, r.ActivityName)
		query += fmt.Sprintf(" AND name = $%d", len(args))
	}
	return query, args
}

func scanEntry(row rowScanner) (models.ActivityEntry, error) {
	var e models.ActivityEntry
	var payload sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(&e.ID, &e.UserID, &e.ActivityType, &e.Category,
		&e.Subcategory, &e.Name, &e.Timestamp, &e.DurationSeconds,
		&payload, &e.CreatedAt, &deletedAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}

	if deletedAt.Valid {
		t := deletedAt.Time
		e.DeletedAt = &t
	}
	if payload.Valid {
		var p models.EntryPayload
		if err := json.Unmarshal([]byte(payload.String), &p); err == nil {
			e.Payload = &p
		}
	}

	return e, nil
}
