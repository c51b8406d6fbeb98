package chain

import "github.com/quietloop/rhythm/internal/models"

// Stage breakpoints, in accumulated practice hours.
const (
	buildingHours = 20
	becomingHours = 100
	beingHours    = 500
)

// JourneyStage classifies accumulated practice hours into a qualitative
// stage. The mapping is monotonic: more hours never yields an earlier stage.
func JourneyStage(hours float64) models.JourneyStage {
	switch {
	case hours >= beingHours:
		return models.StageBeing
	case hours >= becomingHours:
		return models.StageBecoming
	case hours >= buildingHours:
		return models.StageBuilding
	default:
		return models.StageStarting
	}
}
