package postgres

import (
	"github.com/quietloop/rhythm/internal/models"
)

func (s *Store) AddEncouragement(e models.Encouragement) error {
	_, err := s.db.Exec(`
		INSERT INTO encouragements (id, stage, context, activity_type, tier_name, message, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(id) DO UPDATE SET
			stage = excluded.stage,
			context = excluded.context,
			activity_type = excluded.activity_type,
			tier_name = excluded.tier_name,
			message = excluded.message,
			is_active = excluded.is_active`,
		e.ID, string(e.Stage), e.Context, e.ActivityType, e.TierName,
		e.Message, e.IsActive, e.CreatedAt)
	return err
}

// FindEncouragements matches one cascade step exactly: empty activityType or
// tierName selects the generic rows, not "any".
func (s *Store) FindEncouragements(stage models.JourneyStage, context, activityType, tierName string, activeOnly bool) ([]models.Encouragement, error) {
	query := `
		SELECT id, stage, context, activity_type, tier_name, message, is_active, created_at
		FROM encouragements
		WHERE stage = $1 AND context = $2 AND activity_type = $3 AND tier_name = $4`
	if activeOnly {
		query += " AND is_active"
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, string(stage), context, activityType, tierName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.Encouragement
	for rows.Next() {
		var e models.Encouragement
		var stage string
		if err := rows.Scan(&e.ID, &stage, &e.Context, &e.ActivityType,
			&e.TierName, &e.Message, &e.IsActive, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Stage = models.JourneyStage(stage)
		msgs = append(msgs, e)
	}
	return msgs, rows.Err()
}
