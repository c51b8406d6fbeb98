package chain

import (
	"testing"
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

// day builds a DayStatus directly, bypassing the aggregator.
func day(d time.Time, seconds int, complete bool) models.DayStatus {
	return models.DayStatus{
		Date:         d,
		TotalSeconds: seconds,
		EntryCount:   1,
		IsComplete:   complete,
	}
}

func completeDays(dates ...time.Time) []models.DayStatus {
	days := make([]models.DayStatus, 0, len(dates))
	for _, d := range dates {
		days = append(days, day(d, 600, true))
	}
	return days
}

func TestCalculateEmptyInput(t *testing.T) {
	today := date(2026, time.January, 15)
	for _, ct := range models.AllChainTypes {
		stat := Calculate(nil, ct, 60, today)
		if stat.Current != 0 || stat.Longest != 0 {
			t.Errorf("%s: empty input gave {current:%d longest:%d}, want zeros",
				ct, stat.Current, stat.Longest)
		}
		if stat.Type != ct || stat.Unit != ct.Unit() {
			t.Errorf("%s: type/unit not carried through: %+v", ct, stat)
		}
	}
}

func TestDailyChainSimple(t *testing.T) {
	// Three consecutive complete days ending today.
	days := completeDays(
		date(2026, time.January, 1),
		date(2026, time.January, 2),
		date(2026, time.January, 3),
	)
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 3))
	if stat.Current != 3 || stat.Longest != 3 {
		t.Errorf("got {current:%d longest:%d}, want {3 3}", stat.Current, stat.Longest)
	}
	if stat.Unit != "days" {
		t.Errorf("unit = %q, want days", stat.Unit)
	}
}

func TestDailyChainGapBreaksCurrentNotLongest(t *testing.T) {
	// Complete Jan 1-5, nothing on Jan 6, complete Jan 7 (today).
	days := completeDays(
		date(2026, time.January, 1),
		date(2026, time.January, 2),
		date(2026, time.January, 3),
		date(2026, time.January, 4),
		date(2026, time.January, 5),
		date(2026, time.January, 7),
	)
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 7))
	if stat.Longest != 5 {
		t.Errorf("longest = %d, want 5", stat.Longest)
	}
	if stat.Current != 1 {
		t.Errorf("current = %d, want 1", stat.Current)
	}
}

func TestDailyChainYesterdayGrace(t *testing.T) {
	days := completeDays(
		date(2026, time.January, 1),
		date(2026, time.January, 2),
	)
	// Most recent activity was yesterday: chain bends, not breaks.
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 3))
	if stat.Current != 2 {
		t.Errorf("current = %d, want 2 (yesterday grace)", stat.Current)
	}
}

func TestDailyChainStaleActivity(t *testing.T) {
	// A long historical chain whose last day is over two days old.
	days := completeDays(
		date(2026, time.January, 1),
		date(2026, time.January, 2),
		date(2026, time.January, 3),
		date(2026, time.January, 4),
	)
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 10))
	if stat.Current != 0 {
		t.Errorf("current = %d, want 0 for stale activity", stat.Current)
	}
	if stat.Longest != 4 {
		t.Errorf("longest = %d, want 4", stat.Longest)
	}
}

func TestDailyChainIncompleteDayBreaksRun(t *testing.T) {
	days := []models.DayStatus{
		day(date(2026, time.January, 1), 600, true),
		day(date(2026, time.January, 2), 100, false),
		day(date(2026, time.January, 3), 600, true),
	}
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 3))
	if stat.Current != 1 || stat.Longest != 1 {
		t.Errorf("got {current:%d longest:%d}, want {1 1}", stat.Current, stat.Longest)
	}
}

func TestDailyChainSingleDay(t *testing.T) {
	days := completeDays(date(2026, time.January, 3))
	stat := Calculate(days, models.ChainDaily, 0, date(2026, time.January, 3))
	if stat.Current != 1 || stat.Longest != 1 {
		t.Errorf("got {current:%d longest:%d}, want {1 1}", stat.Current, stat.Longest)
	}
}

// fillWeek adds complete days starting at monday.
func fillWeek(monday time.Time, completeCount int) []models.DayStatus {
	var days []models.DayStatus
	for i := 0; i < completeCount; i++ {
		days = append(days, day(monday.AddDate(0, 0, i), 600, true))
	}
	return days
}

func TestWeeklyHighChain(t *testing.T) {
	mon1 := date(2026, time.January, 5)
	mon2 := date(2026, time.January, 12)

	t.Run("five complete days qualify", func(t *testing.T) {
		var days []models.DayStatus
		days = append(days, fillWeek(mon1, 5)...)
		days = append(days, fillWeek(mon2, 5)...)
		stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 16))
		if stat.Current != 2 || stat.Longest != 2 {
			t.Errorf("got {current:%d longest:%d}, want {2 2}", stat.Current, stat.Longest)
		}
		if stat.Unit != "weeks" {
			t.Errorf("unit = %q, want weeks", stat.Unit)
		}
	})

	t.Run("four complete days do not qualify", func(t *testing.T) {
		days := fillWeek(mon1, 4)
		stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 9))
		if stat.Current != 0 || stat.Longest != 0 {
			t.Errorf("got {current:%d longest:%d}, want {0 0}", stat.Current, stat.Longest)
		}
	})
}

func TestWeeklyLowChain(t *testing.T) {
	mon1 := date(2026, time.January, 5)

	t.Run("three complete days qualify", func(t *testing.T) {
		days := fillWeek(mon1, 3)
		stat := Calculate(days, models.ChainWeeklyLow, 0, date(2026, time.January, 9))
		if stat.Current != 1 || stat.Longest != 1 {
			t.Errorf("got {current:%d longest:%d}, want {1 1}", stat.Current, stat.Longest)
		}
	})

	t.Run("two complete days do not qualify", func(t *testing.T) {
		days := fillWeek(mon1, 2)
		stat := Calculate(days, models.ChainWeeklyLow, 0, date(2026, time.January, 9))
		if stat.Current != 0 || stat.Longest != 0 {
			t.Errorf("got {current:%d longest:%d}, want {0 0}", stat.Current, stat.Longest)
		}
	})
}

func TestWeeklyTargetChain(t *testing.T) {
	mon1 := date(2026, time.January, 5)

	tests := []struct {
		name        string
		weekSeconds int
		wantCurrent int
	}{
		{"3700 seconds meets a 60 minute target", 3700, 1},
		{"3500 seconds misses a 60 minute target", 3500, 0},
		{"exactly 3600 seconds meets", 3600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Duration spread across two incomplete-flagged days: the
			// target tier cares about summed seconds, not complete days.
			days := []models.DayStatus{
				day(mon1, tt.weekSeconds/2, false),
				day(mon1.AddDate(0, 0, 2), tt.weekSeconds-tt.weekSeconds/2, false),
			}
			stat := Calculate(days, models.ChainWeeklyTarget, 60, date(2026, time.January, 9))
			if stat.Current != tt.wantCurrent {
				t.Errorf("current = %d, want %d", stat.Current, tt.wantCurrent)
			}
		})
	}
}

func TestWeeklyChainGap(t *testing.T) {
	// Qualifying weeks with an empty week between them: longest stays at the
	// earlier run length, current restarts in the recent week.
	var days []models.DayStatus
	days = append(days, fillWeek(date(2026, time.January, 5), 5)...)
	days = append(days, fillWeek(date(2026, time.January, 12), 5)...)
	days = append(days, fillWeek(date(2026, time.January, 26), 5)...)

	stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 30))
	if stat.Longest != 2 {
		t.Errorf("longest = %d, want 2 (gap week resets the run)", stat.Longest)
	}
	if stat.Current != 1 {
		t.Errorf("current = %d, want 1", stat.Current)
	}
}

func TestWeeklyChainStaleActivity(t *testing.T) {
	days := fillWeek(date(2026, time.January, 5), 5)
	// Two full weeks later: no current chain.
	stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 28))
	if stat.Current != 0 {
		t.Errorf("current = %d, want 0", stat.Current)
	}
	if stat.Longest != 1 {
		t.Errorf("longest = %d, want 1", stat.Longest)
	}
}

func TestWeeklyChainLastWeekGrace(t *testing.T) {
	// Qualifying last week, nothing yet this week: the chain holds.
	days := fillWeek(date(2026, time.January, 5), 5)
	stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 14))
	if stat.Current != 1 {
		t.Errorf("current = %d, want 1 (previous week still counts)", stat.Current)
	}
}

func TestWeeklyChainInProgressWeekBelowThreshold(t *testing.T) {
	// Last week qualified; this week has data but is still below the tier.
	var days []models.DayStatus
	days = append(days, fillWeek(date(2026, time.January, 5), 5)...)
	days = append(days, fillWeek(date(2026, time.January, 12), 2)...)

	stat := Calculate(days, models.ChainWeeklyHigh, 0, date(2026, time.January, 13))
	if stat.Current != 0 {
		t.Errorf("current = %d, want 0 while the open week is below threshold", stat.Current)
	}
	if stat.Longest != 1 {
		t.Errorf("longest = %d, want 1", stat.Longest)
	}
}

func TestMonthlyTargetChain(t *testing.T) {
	t.Run("december january rollover is consecutive", func(t *testing.T) {
		days := []models.DayStatus{
			day(date(2025, time.December, 10), 4000, true),
			day(date(2026, time.January, 8), 4000, true),
		}
		stat := Calculate(days, models.ChainMonthlyTarget, 60, date(2026, time.January, 20))
		if stat.Current != 2 || stat.Longest != 2 {
			t.Errorf("got {current:%d longest:%d}, want {2 2}", stat.Current, stat.Longest)
		}
		if stat.Unit != "months" {
			t.Errorf("unit = %q, want months", stat.Unit)
		}
	})

	t.Run("november to january is not consecutive", func(t *testing.T) {
		days := []models.DayStatus{
			day(date(2025, time.November, 10), 4000, true),
			day(date(2026, time.January, 8), 4000, true),
		}
		stat := Calculate(days, models.ChainMonthlyTarget, 60, date(2026, time.January, 20))
		if stat.Current != 1 {
			t.Errorf("current = %d, want 1", stat.Current)
		}
		if stat.Longest != 1 {
			t.Errorf("longest = %d, want 1", stat.Longest)
		}
	})

	t.Run("month below target", func(t *testing.T) {
		days := []models.DayStatus{
			day(date(2026, time.January, 8), 3000, true),
		}
		stat := Calculate(days, models.ChainMonthlyTarget, 60, date(2026, time.January, 20))
		if stat.Current != 0 || stat.Longest != 0 {
			t.Errorf("got {current:%d longest:%d}, want {0 0}", stat.Current, stat.Longest)
		}
	})
}

func TestCalculateIdempotent(t *testing.T) {
	days := completeDays(
		date(2026, time.January, 1),
		date(2026, time.January, 2),
		date(2026, time.January, 5),
	)
	today := date(2026, time.January, 5)
	for _, ct := range models.AllChainTypes {
		first := Calculate(days, ct, 60, today)
		second := Calculate(days, ct, 60, today)
		if first != second {
			t.Errorf("%s: repeated calls disagree: %+v vs %+v", ct, first, second)
		}
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	// A mixed history exercising every chain type.
	var days []models.DayStatus
	days = append(days, fillWeek(date(2025, time.November, 3), 5)...)
	days = append(days, fillWeek(date(2025, time.December, 1), 3)...)
	days = append(days, fillWeek(date(2026, time.January, 5), 6)...)
	days = append(days, day(date(2026, time.January, 12), 200, false))

	for _, today := range []time.Time{
		date(2026, time.January, 12),
		date(2026, time.February, 1),
		date(2026, time.June, 1),
	} {
		for _, ct := range models.AllChainTypes {
			stat := Calculate(days, ct, 30, today)
			if stat.Current < 0 || stat.Longest < 0 {
				t.Errorf("%s@%v: negative counts: %+v", ct, today, stat)
			}
			if stat.Longest < stat.Current {
				t.Errorf("%s@%v: longest %d < current %d", ct, today, stat.Longest, stat.Current)
			}
		}
	}
}
