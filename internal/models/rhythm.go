package models

import "time"

// Rhythm represents a recurring practice the user is tracking. Its chains
// bend rather than break: a missed day can lower the achieved tier without
// zeroing the history.
type Rhythm struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	// Match criteria. Empty fields match anything; set fields are AND-combined.
	ActivityType string `json:"activity_type,omitempty"`
	Category     string `json:"category,omitempty"`
	Subcategory  string `json:"subcategory,omitempty"`
	ActivityName string `json:"activity_name,omitempty"`

	// Goal descriptor.
	GoalType        string `json:"goal_type,omitempty"`
	GoalValue       int    `json:"goal_value,omitempty"`
	GoalUnit        string `json:"goal_unit,omitempty"`
	Frequency       string `json:"frequency,omitempty"`
	FrequencyTarget int    `json:"frequency_target,omitempty"`

	// DurationThresholdSeconds is the minimum practiced time for a day to
	// count as complete for duration-bearing chain types.
	DurationThresholdSeconds int `json:"duration_threshold_seconds"`

	// Denormalized fallbacks for consumers that don't read the snapshot.
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // YYYY-MM-DD

	// CachedChainStats is the last computed snapshot, nil when never
	// calculated or when the stored blob predates the current version.
	CachedChainStats *CachedChainData `json:"cached_chain_stats,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// TargetMinutes returns the duration target for the weekly and monthly
// target tiers, in minutes.
func (r Rhythm) TargetMinutes() int {
	if r.GoalUnit == "hours" {
		return r.GoalValue * 60
	}
	return r.GoalValue
}

// MatchesEntry reports whether an entry satisfies every set criterion of the
// rhythm. Ownership and soft-deletion are filtered at the storage layer.
func (r Rhythm) MatchesEntry(e ActivityEntry) bool {
	if r.ActivityType != "" && r.ActivityType != e.ActivityType {
		return false
	}
	if r.Category != "" && r.Category != e.Category {
		return false
	}
	if r.Subcategory != "" && r.Subcategory != e.Subcategory {
		return false
	}
	if r.ActivityName != "" && r.ActivityName != e.Name {
		return false
	}
	return true
}
