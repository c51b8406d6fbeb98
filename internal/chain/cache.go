package chain

import (
	"time"

	"github.com/quietloop/rhythm/internal/constants"
	"github.com/quietloop/rhythm/internal/models"
)

// BuildCache packages chain results, totals and the open-period view into a
// versioned snapshot. lastEntryTS is the canonical timestamp of the newest
// matching entry seen during this pass; consumers compare it against the
// store to detect staleness.
//
// The current-chain block repeats information derivable from the chain stats
// so presentation code can answer "how many more days this week" without
// re-walking raw chain output.
func BuildCache(chains []models.ChainStat, totals models.RhythmTotals, days []models.DayStatus, lastEntryTS, now time.Time) models.CachedChainData {
	data := models.CachedChainData{
		Version:            models.CacheVersion,
		Chains:             chains,
		Totals:             totals,
		LastCalculatedAt:   now,
		LastEntryTimestamp: lastEntryTS,
	}

	thisWeek := WeekStart(now)
	for _, d := range days {
		if d.IsComplete {
			data.CurrentChain.LastCompleteDate = d.Date.Format(constants.DateFormat)
		}
		data.CurrentChain.LastPeriodKey = WeekStart(d.Date).Format(constants.DateFormat)
		if sameDay(WeekStart(d.Date), thisWeek) {
			if d.IsComplete {
				data.CurrentChain.ThisPeriodDays++
			}
			data.CurrentChain.ThisPeriodSeconds += d.TotalSeconds
		}
	}

	return data
}
