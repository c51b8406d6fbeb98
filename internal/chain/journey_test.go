package chain

import (
	"testing"

	"github.com/quietloop/rhythm/internal/models"
)

func TestJourneyStage(t *testing.T) {
	tests := []struct {
		hours float64
		want  models.JourneyStage
	}{
		{0, models.StageStarting},
		{19.9, models.StageStarting},
		{20, models.StageBuilding},
		{99.9, models.StageBuilding},
		{100, models.StageBecoming},
		{499.9, models.StageBecoming},
		{500, models.StageBeing},
		{10000, models.StageBeing},
	}

	for _, tt := range tests {
		if got := JourneyStage(tt.hours); got != tt.want {
			t.Errorf("JourneyStage(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestJourneyStageMonotonic(t *testing.T) {
	rank := map[models.JourneyStage]int{
		models.StageStarting: 0,
		models.StageBuilding: 1,
		models.StageBecoming: 2,
		models.StageBeing:    3,
	}

	prev := JourneyStage(0)
	for h := 0.0; h <= 600; h += 0.5 {
		got := JourneyStage(h)
		if rank[got] < rank[prev] {
			t.Fatalf("stage regressed from %q to %q at %v hours", prev, got, h)
		}
		prev = got
	}
}
