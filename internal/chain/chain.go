package chain

import (
	"sort"
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

const (
	// Complete days per week required by the weekly tiers.
	weeklyHighDays = 5
	weeklyLowDays  = 3
)

// Calculate computes the current and longest chain for one chain type.
// targetMinutes applies only to the *_target types. today anchors the
// current-chain walk and must be expressed at the user's day resolution.
//
// "Longest" and "current" are answered by two independent linear scans: a
// forward maximum-run-length pass over all periods, and a backward walk from
// the most recent period. A long chain that ended in the past keeps its
// longest value while the current value drops to zero.
func Calculate(dayStatuses []models.DayStatus, chainType models.ChainType, targetMinutes int, today time.Time) models.ChainStat {
	stat := models.ChainStat{Type: chainType, Unit: chainType.Unit()}
	if len(dayStatuses) == 0 {
		return stat
	}

	days := make([]models.DayStatus, len(dayStatuses))
	copy(days, dayStatuses)
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	targetSeconds := targetMinutes * 60

	switch chainType {
	case models.ChainDaily:
		stat.Current, stat.Longest = dailyChain(days, today)
	case models.ChainWeeklyHigh:
		stat.Current, stat.Longest = weeklyChain(weekStatuses(days), today, func(w weekStatus) bool {
			return w.completeDays >= weeklyHighDays
		})
	case models.ChainWeeklyLow:
		stat.Current, stat.Longest = weeklyChain(weekStatuses(days), today, func(w weekStatus) bool {
			return w.completeDays >= weeklyLowDays
		})
	case models.ChainWeeklyTarget:
		stat.Current, stat.Longest = weeklyChain(weekStatuses(days), today, func(w weekStatus) bool {
			return w.totalSeconds >= targetSeconds
		})
	case models.ChainMonthlyTarget:
		stat.Current, stat.Longest = monthlyChain(monthStatuses(days), today, targetSeconds)
	}

	return stat
}

// dailyChain walks complete days. The current chain survives when the most
// recent day status is today or yesterday; a gap of two or more days with no
// activity zeroes the current count without touching the longest.
func dailyChain(days []models.DayStatus, today time.Time) (current, longest int) {
	run := 0
	for i, d := range days {
		if !d.IsComplete {
			run = 0
			continue
		}
		if run > 0 && sameDay(days[i-1].Date.AddDate(0, 0, 1), d.Date) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	td := DayOf(today)
	if !sameDay(last.Date, td) && !sameDay(last.Date, td.AddDate(0, 0, -1)) {
		return 0, longest
	}
	if !last.IsComplete {
		return 0, longest
	}
	current = 1
	for i := len(days) - 2; i >= 0; i-- {
		if !days[i].IsComplete {
			break
		}
		if !sameDay(days[i].Date.AddDate(0, 0, 1), days[i+1].Date) {
			break
		}
		current++
	}
	return current, longest
}

// weekStatus aggregates one Monday-to-Sunday week of day statuses.
type weekStatus struct {
	start        time.Time
	completeDays int
	totalSeconds int
}

// weekStatuses buckets ascending day statuses into per-week aggregates.
func weekStatuses(days []models.DayStatus) []weekStatus {
	var weeks []weekStatus
	for _, d := range days {
		ws := WeekStart(d.Date)
		if n := len(weeks); n > 0 && sameDay(weeks[n-1].start, ws) {
			w := &weeks[n-1]
			if d.IsComplete {
				w.completeDays++
			}
			w.totalSeconds += d.TotalSeconds
			continue
		}
		w := weekStatus{start: ws, totalSeconds: d.TotalSeconds}
		if d.IsComplete {
			w.completeDays = 1
		}
		weeks = append(weeks, w)
	}
	return weeks
}

func weeklyChain(weeks []weekStatus, today time.Time, meets func(weekStatus) bool) (current, longest int) {
	if len(weeks) == 0 {
		return 0, 0
	}

	run := 0
	for i, w := range weeks {
		if !meets(w) {
			run = 0
			continue
		}
		if run > 0 && IsConsecutiveWeek(weeks[i-1].start, w.start) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// The most recent week with data must be this week or last week for a
	// current chain to exist at all. An in-progress week below its threshold
	// yields a current chain of 0 without being an error.
	last := weeks[len(weeks)-1]
	thisWeek := WeekStart(today)
	if !sameDay(last.start, thisWeek) && !IsConsecutiveWeek(last.start, thisWeek) {
		return 0, longest
	}
	if !meets(last) {
		return 0, longest
	}
	current = 1
	for i := len(weeks) - 2; i >= 0; i-- {
		if !IsConsecutiveWeek(weeks[i].start, weeks[i+1].start) {
			break
		}
		if !meets(weeks[i]) {
			break
		}
		current++
	}
	return current, longest
}

// monthStatus aggregates one calendar month of day statuses.
type monthStatus struct {
	key          string // YYYY-MM
	totalSeconds int
}

func monthStatuses(days []models.DayStatus) []monthStatus {
	var months []monthStatus
	for _, d := range days {
		mk := MonthKey(d.Date)
		if n := len(months); n > 0 && months[n-1].key == mk {
			months[n-1].totalSeconds += d.TotalSeconds
			continue
		}
		months = append(months, monthStatus{key: mk, totalSeconds: d.TotalSeconds})
	}
	return months
}

func monthlyChain(months []monthStatus, today time.Time, targetSeconds int) (current, longest int) {
	if len(months) == 0 {
		return 0, 0
	}

	meets := func(m monthStatus) bool { return m.totalSeconds >= targetSeconds }

	run := 0
	for i, m := range months {
		if !meets(m) {
			run = 0
			continue
		}
		if run > 0 && IsConsecutiveMonth(months[i-1].key, m.key) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := months[len(months)-1]
	thisMonth := MonthKey(today)
	if last.key != thisMonth && !IsConsecutiveMonth(last.key, thisMonth) {
		return 0, longest
	}
	if !meets(last) {
		return 0, longest
	}
	current = 1
	for i := len(months) - 2; i >= 0; i-- {
		if !IsConsecutiveMonth(months[i].key, months[i+1].key) {
			break
		}
		if !meets(months[i]) {
			break
		}
		current++
	}
	return current, longest
}
