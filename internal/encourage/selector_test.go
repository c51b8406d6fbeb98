package encourage

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/quietloop/rhythm/internal/models"
)

// fakeStore records queries and serves canned candidate sets keyed by
// context/activityType/tierName.
type fakeStore struct {
	byQuery map[[3]string][]models.Encouragement
	queries [][3]string
	err     error
}

func (f *fakeStore) FindEncouragements(stage models.JourneyStage, context, activityType, tierName string, activeOnly bool) ([]models.Encouragement, error) {
	key := [3]string{context, activityType, tierName}
	f.queries = append(f.queries, key)
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[key], nil
}

func msg(text string) []models.Encouragement {
	return []models.Encouragement{{Message: text, IsActive: true}}
}

func TestSelectMostSpecificWins(t *testing.T) {
	store := &fakeStore{byQuery: map[[3]string][]models.Encouragement{
		{"streak", "guitar", "weekly_high"}: msg("tier specific"),
		{"streak", "guitar", ""}:            msg("activity specific"),
	}}
	sel := NewSelector(store, rand.New(rand.NewSource(1)))

	got := sel.Select(models.StageBuilding, "streak", "guitar", "weekly_high")
	if got != "tier specific" {
		t.Errorf("Select() = %q, want the tier-specific message", got)
	}
	if len(store.queries) != 1 {
		t.Errorf("expected 1 query, got %d", len(store.queries))
	}
}

func TestSelectCascade(t *testing.T) {
	tests := []struct {
		name    string
		byQuery map[[3]string][]models.Encouragement
		tier    string
		want    string
		queries int
	}{
		{
			name: "falls through to activity level",
			byQuery: map[[3]string][]models.Encouragement{
				{"streak", "guitar", ""}: msg("activity level"),
			},
			tier:    "weekly_high",
			want:    "activity level",
			queries: 2,
		},
		{
			name: "falls through to context level",
			byQuery: map[[3]string][]models.Encouragement{
				{"streak", "", ""}: msg("context level"),
			},
			tier:    "",
			want:    "context level",
			queries: 2,
		},
		{
			name: "falls through to general context",
			byQuery: map[[3]string][]models.Encouragement{
				{"general", "", ""}: msg("general level"),
			},
			tier:    "",
			want:    "general level",
			queries: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{byQuery: tt.byQuery}
			sel := NewSelector(store, rand.New(rand.NewSource(1)))
			got := sel.Select(models.StageBuilding, "streak", "guitar", tt.tier)
			if got != tt.want {
				t.Errorf("Select() = %q, want %q", got, tt.want)
			}
			if len(store.queries) != tt.queries {
				t.Errorf("ran %d queries, want %d", len(store.queries), tt.queries)
			}
		})
	}
}

func TestSelectNoTierSkipsTierQuery(t *testing.T) {
	store := &fakeStore{}
	sel := NewSelector(store, rand.New(rand.NewSource(1)))
	sel.Select(models.StageStarting, "streak", "guitar", "")
	for _, q := range store.queries {
		if q[2] != "" {
			t.Errorf("tier-constrained query %v ran without a tier name", q)
		}
	}
}

func TestSelectEmptyStoreFallsBack(t *testing.T) {
	stages := []models.JourneyStage{
		models.StageStarting, models.StageBuilding,
		models.StageBecoming, models.StageBeing,
		models.JourneyStage("unknown"),
	}
	sel := NewSelector(&fakeStore{}, rand.New(rand.NewSource(1)))
	for _, stage := range stages {
		if got := sel.Select(stage, "streak", "guitar", "weekly_high"); got == "" {
			t.Errorf("stage %q: Select() returned empty against an empty store", stage)
		}
	}
}

func TestSelectStoreErrorFallsBack(t *testing.T) {
	store := &fakeStore{err: errors.New("store unreachable")}
	sel := NewSelector(store, rand.New(rand.NewSource(1)))
	if got := sel.Select(models.StageBuilding, "streak", "guitar", ""); got == "" {
		t.Error("Select() returned empty when every lookup errored")
	}
}

func TestSelectPicksFromCandidateSet(t *testing.T) {
	candidates := []models.Encouragement{
		{Message: "one"}, {Message: "two"}, {Message: "three"},
	}
	store := &fakeStore{byQuery: map[[3]string][]models.Encouragement{
		{"streak", "", ""}: candidates,
	}}
	sel := NewSelector(store, rand.New(rand.NewSource(42)))

	valid := map[string]bool{"one": true, "two": true, "three": true}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got := sel.Select(models.StageBecoming, "streak", "", "")
		if !valid[got] {
			t.Fatalf("Select() = %q, not one of the candidates", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("50 draws never varied; random selection looks broken")
	}
}
