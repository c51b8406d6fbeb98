package chain

import (
	"math"
	"time"

	"github.com/quietloop/rhythm/internal/constants"
	"github.com/quietloop/rhythm/internal/models"
)

// Totals computes lifetime aggregates over the full entry and day-status
// sets. Only the active week/month counts look at the completion threshold;
// everything else sums the raw data.
func Totals(entries []models.ActivityEntry, days []models.DayStatus) models.RhythmTotals {
	t := models.RhythmTotals{TotalSessions: len(entries)}

	var first time.Time
	for _, e := range entries {
		t.TotalSeconds += e.DurationSeconds
		t.TotalCount += e.CountValue()
		if e.Timestamp.IsZero() {
			continue
		}
		if first.IsZero() || e.Timestamp.Before(first) {
			first = e.Timestamp
		}
	}
	t.TotalHours = math.Round(float64(t.TotalSeconds)/3600*10) / 10
	if !first.IsZero() {
		firstDay := DayOf(first)
		t.FirstEntryDate = &firstDay
	}

	weeks := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, d := range days {
		if !d.IsComplete {
			continue
		}
		weeks[WeekStart(d.Date).Format(constants.DateFormat)] = struct{}{}
		months[MonthKey(d.Date)] = struct{}{}
	}
	t.WeeksActive = len(weeks)
	t.MonthsActive = len(months)

	return t
}
