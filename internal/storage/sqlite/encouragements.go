package sqlite

import (
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

func (s *Store) AddEncouragement(e models.Encouragement) error {
	active := 0
	if e.IsActive {
		active = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO encouragements (id, stage, context, activity_type, tier_name, message, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			stage = excluded.stage,
			context = excluded.context,
			activity_type = excluded.activity_type,
			tier_name = excluded.tier_name,
			message = excluded.message,
			is_active = excluded.is_active`,
		e.ID, string(e.Stage), e.Context, e.ActivityType, e.TierName,
		e.Message, active, e.CreatedAt.Format(time.RFC3339))
	return err
}

// FindEncouragements matches one cascade step exactly: empty activityType or
// tierName selects the generic rows, not "any".
func (s *Store) FindEncouragements(stage models.JourneyStage, context, activityType, tierName string, activeOnly bool) ([]models.Encouragement, error) {
	query := `
		SELECT id, stage, context, activity_type, tier_name, message, is_active, created_at
		FROM encouragements
		WHERE stage = ? AND context = ? AND activity_type = ? AND tier_name = ?`
	args := []any{string(stage), context, activityType, tierName}
	if activeOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Encouragement
	for rows.Next() {
		var e models.Encouragement
		var stage, createdAt string
		var active int
		if err := rows.Scan(&e.ID, &stage, &e.Context, &e.ActivityType,
			&e.TierName, &e.Message, &active, &createdAt); err != nil {
			return nil, err
		}
		e.Stage = models.JourneyStage(stage)
		e.IsActive = active != 0
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for encouragement %s: %w", e.ID, err)
		}
		msgs = append(msgs, e)
	}
	return msgs, rows.Err()
}
