package sqlite

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
	var payload sql.NullString
	if e.Payload != nil {
		blob, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("failed to encode entry payload: %w", err)
		}
		payload = sql.NullString{String: string(blob), Valid: true}
	}
	var deletedAt sql.NullString
	if e.DeletedAt != nil {
		deletedAt = sql.NullString{String: e.DeletedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
		e.Timestamp.Format(time.RFC3339), e.DurationSeconds, payload,
		e.CreatedAt.Format(time.RFC3339), deletedAt)

	return err
}

func (s *Store) GetEntry(id string) (models.ActivityEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+entryColumns+`
		FROM entries WHERE id = ? AND deleted_at IS NULL`, id)
	return scanEntry(row)
}

func (s *Store) GetEntriesForRhythm(userID string, rhythm models.Rhythm, start, end time.Time) ([]models.ActivityEntry, error) {
	query := "SELECT " + entryColumns + " FROM entries WHERE user_id = ? AND deleted_at IS NULL"
	args := []any{userID}
	query, args = appendCriteria(query, args, rhythm)
	if !start.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, end.Format(time.RFC3339))
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
	query := "SELECT MAX(timestamp) FROM entries WHERE user_id = ? AND deleted_at IS NULL"
	args := []any{userID}
	query, args = appendCriteria(query, args, rhythm)

	var latest sql.NullString
	if err := s.db.QueryRow(query, args...).Scan(&latest); err != nil {
		return time.Time{}, err
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, latest.String)
}

func (s *Store) DeleteEntry(id string) error {
	result, err := s.db.Exec(`
		UPDATE entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().Format(time.RFC3339), id)
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
		UPDATE entries SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
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

// appendCriteria adds one AND clause per set match criterion of the rhythm.
func appendCriteria(query string, args []any, r models.Rhythm) (string, []any) {
	if r.ActivityType != "" {
		query += " AND activity_type = ?"
		args = append(args, r.ActivityType)
	}
	if r.Category != "" {
		query += " AND category = ?"
		args = append(args, r.Category)
	}
	if r.Subcategory != "" {
		query += " AND subcategory = ?"
		args = append(args, r.Subcategory)
	}
	if r.ActivityName != "" {
		query += " AND name = ?"
		args = append(args, r.ActivityName)
	}
	return query, args
}

func scanEntry(row rowScanner) (models.ActivityEntry, error) {
	var e models.ActivityEntry
	var timestamp, createdAt string
	var payload, deletedAt sql.NullString

	err := row.Scan(&e.ID, &e.UserID, &e.ActivityType, &e.Category,
		&e.Subcategory, &e.Name, &timestamp, &e.DurationSeconds,
		&payload, &createdAt, &deletedAt)
	if err != nil {
		return models.ActivityEntry{}, err
	}

	e.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return models.ActivityEntry{}, fmt.Errorf("failed to parse timestamp for entry %s: %w", e.ID, err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.ActivityEntry{}, fmt.Errorf("failed to parse created_at for entry %s: %w", e.ID, err)
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.ActivityEntry{}, fmt.Errorf("failed to parse deleted_at for entry %s: %w", e.ID, err)
		}
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
