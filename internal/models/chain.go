package models

import "time"

// ChainType identifies one of the tiered chain algorithms. The set is closed;
// switches over it should enumerate every case.
type ChainType string

const (
	ChainDaily         ChainType = "daily"
	ChainWeeklyHigh    ChainType = "weekly_high"
	ChainWeeklyLow     ChainType = "weekly_low"
	ChainWeeklyTarget  ChainType = "weekly_target"
	ChainMonthlyTarget ChainType = "monthly_target"
)

// AllChainTypes lists every chain type in tier order.
var AllChainTypes = []ChainType{
	ChainDaily,
	ChainWeeklyHigh,
	ChainWeeklyLow,
	ChainWeeklyTarget,
	ChainMonthlyTarget,
}

// Unit returns the period unit the chain type is counted in.
func (t ChainType) Unit() string {
	switch t {
	case ChainDaily:
		return "days"
	case ChainWeeklyHigh, ChainWeeklyLow, ChainWeeklyTarget:
		return "weeks"
	case ChainMonthlyTarget:
		return "months"
	}
	return ""
}

// DayStatus is the per-calendar-day aggregate of matching entries. It is
// derived for one calculation pass and never persisted.
type DayStatus struct {
	Date         time.Time `json:"date"`
	TotalSeconds int       `json:"total_seconds"`
	TotalCount   int       `json:"total_count"`
	EntryCount   int       `json:"entry_count"`
	IsComplete   bool      `json:"is_complete"`
}

// ChainStat is the calculator output for one chain type.
type ChainStat struct {
	Type    ChainType `json:"type"`
	Current int       `json:"current"`
	Longest int       `json:"longest"`
	Unit    string    `json:"unit"`
}

// RhythmTotals holds lifetime aggregates, recomputed in full on every pass.
type RhythmTotals struct {
	TotalSessions  int        `json:"total_sessions"`
	TotalSeconds   int        `json:"total_seconds"`
	TotalHours     float64    `json:"total_hours"`
	TotalCount     int        `json:"total_count"`
	FirstEntryDate *time.Time `json:"first_entry_date,omitempty"`
	WeeksActive    int        `json:"weeks_active"`
	MonthsActive   int        `json:"months_active"`
}

// CurrentChainState is the open-period view inside a snapshot, kept so
// presentation code can answer "how many more days this week" without
// re-deriving it from the chain stats.
type CurrentChainState struct {
	LastCompleteDate  string `json:"last_complete_date,omitempty"` // YYYY-MM-DD
	LastPeriodKey     string `json:"last_period_key,omitempty"`    // week start, YYYY-MM-DD
	ThisPeriodDays    int    `json:"this_period_days"`
	ThisPeriodSeconds int    `json:"this_period_seconds"`
}

// CacheVersion tags snapshots produced by the current engine. Blobs with any
// other version (including unversioned ones from earlier schema shapes) are
// discarded and recomputed rather than partially read.
const CacheVersion = 2

// CachedChainData is the persisted calculation snapshot for a rhythm.
type CachedChainData struct {
	Version            int               `json:"version"`
	Chains             []ChainStat       `json:"chains"`
	CurrentChain       CurrentChainState `json:"current_chain"`
	Totals             RhythmTotals      `json:"totals"`
	LastCalculatedAt   time.Time         `json:"last_calculated_at"`
	LastEntryTimestamp time.Time         `json:"last_entry_timestamp"`
}

// StaleAgainst reports whether a newer matching entry exists than the one the
// snapshot was computed from. Stale snapshots must be recomputed, not read.
func (c *CachedChainData) StaleAgainst(latestEntry time.Time) bool {
	if c == nil || c.Version != CacheVersion {
		return true
	}
	return latestEntry.After(c.LastEntryTimestamp)
}
