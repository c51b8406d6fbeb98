package chain

import (
	"sort"
	"time"

	"github.com/quietloop/rhythm/internal/constants"
	"github.com/quietloop/rhythm/internal/models"
)

// DayStatuses folds matching entries into one status record per calendar day,
// sorted ascending by date. Input order does not matter; summation is
// commutative. Entries without a usable timestamp are skipped so that a
// single bad row cannot sink the whole calculation.
func DayStatuses(entries []models.ActivityEntry, thresholdSeconds int) []models.DayStatus {
	if thresholdSeconds <= 0 {
		thresholdSeconds = constants.DefaultDurationThresholdSeconds
	}

	byDay := make(map[string]*models.DayStatus)
	for _, e := range entries {
		if e.Timestamp.IsZero() {
			continue
		}
		day := DayOf(e.Timestamp)
		key := day.Format(constants.DateFormat)
		st, ok := byDay[key]
		if !ok {
			st = &models.DayStatus{Date: day}
			byDay[key] = st
		}
		st.TotalSeconds += e.DurationSeconds
		st.TotalCount += e.CountValue()
		st.EntryCount++
	}

	statuses := make([]models.DayStatus, 0, len(byDay))
	for _, st := range byDay {
		st.IsComplete = st.TotalSeconds >= thresholdSeconds
		statuses = append(statuses, *st)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Date.Before(statuses[j].Date)
	})

	return statuses
}

// DayOf normalizes a timestamp to midnight of its calendar day, keeping the
// location the timestamp is already expressed in.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
