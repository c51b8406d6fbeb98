package storage

import (
	"time"

	"github.com/quietloop/rhythm/internal/models"
)

// Provider is the persistence boundary. The chain engine itself never touches
// a Provider; callers fetch data through one and hand plain values to the
// engine.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Rhythms
	AddRhythm(models.Rhythm) error
	GetRhythm(id string) (models.Rhythm, error)
	GetRhythmByName(userID, name string) (models.Rhythm, error)
	GetAllRhythms(userID string, includeDeleted bool) ([]models.Rhythm, error)
	UpdateRhythm(models.Rhythm) error
	DeleteRhythm(id string) error
	RestoreRhythm(id string) error

	// Activity log. GetEntriesForRhythm returns non-deleted entries owned by
	// userID that match every set criterion of the rhythm, within [start, end]
	// (zero times mean unbounded), ordered by canonical timestamp ascending.
	AddEntry(models.ActivityEntry) error
	GetEntry(id string) (models.ActivityEntry, error)
	GetEntriesForRhythm(userID string, rhythm models.Rhythm, start, end time.Time) ([]models.ActivityEntry, error)
	GetLatestEntryTimestamp(userID string, rhythm models.Rhythm) (time.Time, error)
	DeleteEntry(id string) error
	RestoreEntry(id string) error

	// Encouragements
	AddEncouragement(models.Encouragement) error
	FindEncouragements(stage models.JourneyStage, context, activityType, tierName string, activeOnly bool) ([]models.Encouragement, error)

	// Utils
	GetConfigPath() string
}
