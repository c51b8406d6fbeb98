package models

import "time"

// ActivityEntry is one row of the user's activity log. The engine consumes
// entries read-only; creation and editing happen elsewhere.
type ActivityEntry struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	ActivityType string `json:"activity_type,omitempty"`
	Category     string `json:"category,omitempty"`
	Subcategory  string `json:"subcategory,omitempty"`
	Name         string `json:"name,omitempty"`

	// Timestamp is the canonical timeline position of the activity, already
	// localized to the user's day boundaries. It is never the row's creation
	// time.
	Timestamp time.Time `json:"timestamp"`

	// DurationSeconds is 0 for entries without a recorded duration.
	DurationSeconds int `json:"duration_seconds,omitempty"`

	// Payload carries optional structured data, e.g. a rep count.
	Payload *EntryPayload `json:"payload,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// EntryPayload is the structured extra data an entry may carry.
type EntryPayload struct {
	Count int `json:"count,omitempty"`
}

// CountValue returns the payload count, 0 when no payload is present.
func (e ActivityEntry) CountValue() int {
	if e.Payload == nil {
		return 0
	}
	return e.Payload.Count
}
