package service

import (
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/chain"
	"github.com/quietloop/rhythm/internal/constants"
	"github.com/quietloop/rhythm/internal/encourage"
	"github.com/quietloop/rhythm/internal/logger"
	"github.com/quietloop/rhythm/internal/models"
	"github.com/quietloop/rhythm/internal/storage"
)

// Service wires the chain engine to a storage provider. The engine itself
// stays pure; all reads and writes happen here.
type Service struct {
	store    storage.Provider
	selector *encourage.Selector
}

func New(store storage.Provider) *Service {
	return &Service{
		store:    store,
		selector: encourage.NewSelector(store, nil),
	}
}

// PeriodStats summarizes activity within one reporting window.
type PeriodStats struct {
	Sessions        int `json:"sessions"`
	TotalMinutes    int `json:"total_minutes"`
	AverageDuration int `json:"average_duration"` // minutes per session
}

// StreakSummary is the presentation view of the daily chain.
type StreakSummary struct {
	Current       int    `json:"current"`
	Longest       int    `json:"longest"`
	LastCompleted string `json:"last_completed,omitempty"` // YYYY-MM-DD
	StartedAt     string `json:"started_at,omitempty"`     // YYYY-MM-DD
}

// RhythmWithStats is one rhythm plus its reporting windows and streak view.
type RhythmWithStats struct {
	Rhythm    models.Rhythm       `json:"rhythm"`
	Today     PeriodStats         `json:"today"`
	ThisWeek  PeriodStats         `json:"this_week"`
	ThisMonth PeriodStats         `json:"this_month"`
	AllTime   PeriodStats         `json:"all_time"`
	Streak    StreakSummary       `json:"streak"`
	Stage     models.JourneyStage `json:"stage"`
}

// Recalculate computes a fresh snapshot for the rhythm from its matching
// entries and persists it alongside the denormalized streak fields.
func (s *Service) Recalculate(rhythm models.Rhythm, now time.Time) (models.CachedChainData, error) {
	entries, err := s.store.GetEntriesForRhythm(rhythm.UserID, rhythm, time.Time{}, time.Time{})
	if err != nil {
		return models.CachedChainData{}, fmt.Errorf("failed to read entries: %w", err)
	}
	data := compute(rhythm, entries, now)
	if err := s.persist(&rhythm, data); err != nil {
		return models.CachedChainData{}, err
	}
	return data, nil
}

// RhythmsWithStats returns every non-deleted rhythm owned by the user with
// period stats and a streak summary. Snapshots found stale against the entry
// log are recomputed before being read.
func (s *Service) RhythmsWithStats(userID string, now time.Time) ([]RhythmWithStats, error) {
	rhythms, err := s.store.GetAllRhythms(userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read rhythms: %w", err)
	}

	out := make([]RhythmWithStats, 0, len(rhythms))
	for _, r := range rhythms {
		entries, err := s.store.GetEntriesForRhythm(userID, r, time.Time{}, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("failed to read entries for rhythm %s: %w", r.ID, err)
		}

		var latest time.Time
		for _, e := range entries {
			if e.Timestamp.After(latest) {
				latest = e.Timestamp
			}
		}
		if r.CachedChainStats.StaleAgainst(latest) {
			logger.Debug("recomputing stale chain snapshot", "rhythm", r.ID)
			data := compute(r, entries, now)
			if err := s.persist(&r, data); err != nil {
				return nil, err
			}
		}

		out = append(out, buildStats(r, entries, now))
	}
	return out, nil
}

// EncouragementFor picks a message for the rhythm's current standing. The
// tier is the highest chain type that currently holds.
func (s *Service) EncouragementFor(r models.Rhythm) string {
	stage := models.StageStarting
	tier := ""
	if data := r.CachedChainStats; data != nil {
		stage = chain.JourneyStage(data.Totals.TotalHours)
		for _, cs := range data.Chains {
			if cs.Current > 0 {
				tier = string(cs.Type)
				break
			}
		}
	}
	return s.selector.Select(stage, "streak", r.ActivityType, tier)
}

// compute runs the full engine pass over already-fetched entries.
func compute(r models.Rhythm, entries []models.ActivityEntry, now time.Time) models.CachedChainData {
	days := chain.DayStatuses(entries, r.DurationThresholdSeconds)

	chains := make([]models.ChainStat, 0, len(models.AllChainTypes))
	for _, ct := range models.AllChainTypes {
		chains = append(chains, chain.Calculate(days, ct, r.TargetMinutes(), now))
	}
	totals := chain.Totals(entries, days)

	var lastTS time.Time
	for _, e := range entries {
		if e.Timestamp.After(lastTS) {
			lastTS = e.Timestamp
		}
	}

	return chain.BuildCache(chains, totals, days, lastTS, now)
}

// persist writes the snapshot and the denormalized streak columns back.
func (s *Service) persist(r *models.Rhythm, data models.CachedChainData) error {
	r.CachedChainStats = &data
	for _, cs := range data.Chains {
		if cs.Type == models.ChainDaily {
			r.CurrentStreak = cs.Current
			r.LongestStreak = cs.Longest
			break
		}
	}
	r.LastCompletedDate = data.CurrentChain.LastCompleteDate
	if err := s.store.UpdateRhythm(*r); err != nil {
		return fmt.Errorf("failed to save chain snapshot: %w", err)
	}
	return nil
}

func buildStats(r models.Rhythm, entries []models.ActivityEntry, now time.Time) RhythmWithStats {
	today := chain.DayOf(now)
	thisWeek := chain.WeekStart(now)
	thisMonth := chain.MonthKey(now)

	rws := RhythmWithStats{
		Rhythm: r,
		Today: periodStats(entries, func(ts time.Time) bool {
			return chain.DayOf(ts).Equal(today)
		}),
		ThisWeek: periodStats(entries, func(ts time.Time) bool {
			return chain.WeekStart(ts).Equal(thisWeek)
		}),
		ThisMonth: periodStats(entries, func(ts time.Time) bool {
			return chain.MonthKey(ts) == thisMonth
		}),
		AllTime: periodStats(entries, func(time.Time) bool { return true }),
	}

	// Streak and stage come from the snapshot when present; the denormalized
	// columns are the fallback for rhythms never calculated.
	if data := r.CachedChainStats; data != nil && len(data.Chains) > 0 {
		daily := data.Chains[0]
		rws.Streak = StreakSummary{
			Current:       daily.Current,
			Longest:       daily.Longest,
			LastCompleted: data.CurrentChain.LastCompleteDate,
		}
		if daily.Current > 0 {
			rws.Streak.StartedAt = today.AddDate(0, 0, -(daily.Current - 1)).Format(constants.DateFormat)
		}
		rws.Stage = chain.JourneyStage(data.Totals.TotalHours)
	} else {
		rws.Streak = StreakSummary{
			Current:       r.CurrentStreak,
			Longest:       r.LongestStreak,
			LastCompleted: r.LastCompletedDate,
		}
		rws.Stage = models.StageStarting
	}

	return rws
}

func periodStats(entries []models.ActivityEntry, include func(time.Time) bool) PeriodStats {
	var p PeriodStats
	var seconds int
	for _, e := range entries {
		if e.Timestamp.IsZero() || !include(e.Timestamp) {
			continue
		}
		p.Sessions++
		seconds += e.DurationSeconds
	}
	p.TotalMinutes = seconds / 60
	if p.Sessions > 0 {
		p.AverageDuration = p.TotalMinutes / p.Sessions
	}
	return p
}
