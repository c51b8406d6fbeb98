package models

import "time"

// JourneyStage is a qualitative classification of cumulative practice.
type JourneyStage string

const (
	StageStarting JourneyStage = "starting"
	StageBuilding JourneyStage = "building"
	StageBecoming JourneyStage = "becoming"
	StageBeing    JourneyStage = "being"
)

// Encouragement is one message row in the encouragement store.
type Encouragement struct {
	ID           string       `json:"id"`
	Stage        JourneyStage `json:"stage"`
	Context      string       `json:"context"`
	ActivityType string       `json:"activity_type,omitempty"`
	TierName     string       `json:"tier_name,omitempty"`
	Message      string       `json:"message"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}
