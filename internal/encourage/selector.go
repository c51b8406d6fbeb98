package encourage

import (
	"math/rand"
	"time"

	"github.com/quietloop/rhythm/internal/logger"
	"github.com/quietloop/rhythm/internal/models"
)

// GeneralContext is the catch-all context used as the last cascade step.
const GeneralContext = "general"

// Store is the read-only message lookup the selector queries.
type Store interface {
	FindEncouragements(stage models.JourneyStage, context, activityType, tierName string, activeOnly bool) ([]models.Encouragement, error)
}

// Selector picks an encouragement message for a journey stage with a strict
// specificity cascade. It never returns an empty message: when every lookup
// comes back empty the per-stage fallback is used.
type Selector struct {
	store Store
	rng   *rand.Rand
}

// NewSelector builds a selector. rng may be nil, in which case a time-seeded
// source is used; tests pass a seeded source for determinism.
func NewSelector(store Store, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{store: store, rng: rng}
}

// Select runs the cascade from most to least specific, dropping one
// constraint per step:
//
//	stage + context + activityType + tierName (when a tier is supplied)
//	stage + context + activityType
//	stage + context
//	stage + general context
//
// The first non-empty candidate set wins and one message is chosen uniformly
// at random from it.
func (s *Selector) Select(stage models.JourneyStage, context, activityType, tierName string) string {
	type query struct {
		context      string
		activityType string
		tierName     string
	}

	var queries []query
	if tierName != "" {
		queries = append(queries, query{context, activityType, tierName})
	}
	queries = append(queries,
		query{context, activityType, ""},
		query{context, "", ""},
		query{GeneralContext, "", ""},
	)

	for _, q := range queries {
		msgs, err := s.store.FindEncouragements(stage, q.context, q.activityType, q.tierName, true)
		if err != nil {
			logger.Warn("encouragement lookup failed", "stage", stage, "context", q.context, "error", err)
			continue
		}
		if len(msgs) > 0 {
			return msgs[s.rng.Intn(len(msgs))].Message
		}
	}

	return Fallback(stage)
}

// Fallback returns the hard-coded message for a stage.
func Fallback(stage models.JourneyStage) string {
	if msg, ok := fallbacks[stage]; ok {
		return msg
	}
	return "Keep showing up. The rhythm holds."
}

var fallbacks = map[models.JourneyStage]string{
	models.StageStarting: "Every session plants a seed. Keep going.",
	models.StageBuilding: "Your rhythm is taking shape. Keep showing up.",
	models.StageBecoming: "This practice is becoming part of who you are.",
	models.StageBeing:    "You are living your rhythm.",
}
