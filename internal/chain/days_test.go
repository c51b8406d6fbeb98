package chain

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

func entryAt(ts time.Time, seconds, count int) models.ActivityEntry {
	e := models.ActivityEntry{
		ID:              "e-" + ts.Format(time.RFC3339),
		UserID:          "u1",
		Timestamp:       ts,
		DurationSeconds: seconds,
	}
	if count > 0 {
		e.Payload = &models.EntryPayload{Count: count}
	}
	return e
}

func TestDayStatusesGrouping(t *testing.T) {
	entries := []models.ActivityEntry{
		entryAt(time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC), 300, 10),
		entryAt(time.Date(2026, time.January, 2, 19, 0, 0, 0, time.UTC), 200, 5),
		entryAt(time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC), 600, 0),
	}

	days := DayStatuses(entries, 360)
	if len(days) != 2 {
		t.Fatalf("DayStatuses() returned %d days, want 2", len(days))
	}

	first := days[0]
	if !first.Date.Equal(date(2026, time.January, 1)) {
		t.Errorf("first day = %v, want 2026-01-01", first.Date)
	}
	if first.TotalSeconds != 600 || first.EntryCount != 1 || !first.IsComplete {
		t.Errorf("first day = %+v, want 600s/1 entry/complete", first)
	}

	second := days[1]
	if second.TotalSeconds != 500 || second.TotalCount != 15 || second.EntryCount != 2 {
		t.Errorf("second day = %+v, want 500s/count 15/2 entries", second)
	}
	if !second.IsComplete {
		t.Errorf("second day with 500s should be complete at a 360s threshold")
	}
}

func TestDayStatusesThreshold(t *testing.T) {
	tests := []struct {
		name      string
		seconds   int
		threshold int
		complete  bool
	}{
		{"exactly at threshold", 360, 360, true},
		{"just under threshold", 359, 360, false},
		{"zero duration", 0, 360, false},
		{"default threshold applied when zero", 360, 0, true},
		{"default threshold misses short day", 300, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []models.ActivityEntry{
				entryAt(time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC), tt.seconds, 0),
			}
			days := DayStatuses(entries, tt.threshold)
			if len(days) != 1 {
				t.Fatalf("got %d days, want 1", len(days))
			}
			if days[0].IsComplete != tt.complete {
				t.Errorf("IsComplete = %v, want %v", days[0].IsComplete, tt.complete)
			}
		})
	}
}

func TestDayStatusesOrderIndependence(t *testing.T) {
	var entries []models.ActivityEntry
	for d := 1; d <= 10; d++ {
		for h := 8; h <= 20; h += 6 {
			entries = append(entries, entryAt(
				time.Date(2026, time.January, d, h, 0, 0, 0, time.UTC), 100*d, d))
		}
	}

	want := DayStatuses(entries, 360)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]models.ActivityEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := DayStatuses(shuffled, 360)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: shuffled input produced different day statuses", trial)
		}
	}
}

func TestDayStatusesSkipsBadRows(t *testing.T) {
	entries := []models.ActivityEntry{
		entryAt(time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC), 600, 0),
		{ID: "bad", UserID: "u1", DurationSeconds: 600}, // zero timestamp
	}
	days := DayStatuses(entries, 360)
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1 (bad row skipped)", len(days))
	}
}

func TestDayStatusesEmpty(t *testing.T) {
	if days := DayStatuses(nil, 360); len(days) != 0 {
		t.Errorf("DayStatuses(nil) returned %d days, want 0", len(days))
	}
}
