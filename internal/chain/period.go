package chain

import (
	"time"

	"github.com/quietloop/rhythm/internal/constants"
)

// WeekStart returns the Monday on or before date, normalized to midnight.
// No timezone conversion happens here; callers localize timestamps to the
// user's day boundaries upstream.
func WeekStart(date time.Time) time.Time {
	d := DayOf(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthKey returns the YYYY-MM key of the date's calendar month.
func MonthKey(date time.Time) string {
	return date.Format(constants.MonthKeyFormat)
}

// IsConsecutiveWeek reports whether b is the week immediately after a, i.e.
// a advanced by exactly 7 days.
func IsConsecutiveWeek(a, b time.Time) bool {
	return sameDay(a.AddDate(0, 0, 7), b)
}

// IsConsecutiveMonth reports whether month key b is the calendar month
// immediately after a, including the December to January rollover.
func IsConsecutiveMonth(a, b string) bool {
	ta, err := time.Parse(constants.MonthKeyFormat, a)
	if err != nil {
		return false
	}
	return ta.AddDate(0, 1, 0).Format(constants.MonthKeyFormat) == b
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
