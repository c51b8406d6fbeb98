package system

import (
	"fmt"
	"time"

	"github.com/quietloop/rhythm/internal/cli"
	"github.com/quietloop/rhythm/internal/config"
	"github.com/quietloop/rhythm/internal/keyring"
	"github.com/quietloop/rhythm/internal/models"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkRhythmIntegrity(ctx); err != nil {
			fmt.Printf("❌ Rhythm integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Rhythm integrity: OK\n")
		}

		if stale, err := countStaleSnapshots(ctx); err != nil {
			fmt.Printf("❌ Chain snapshots: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else if stale > 0 {
			fmt.Printf("⚠ Chain snapshots: %d stale (run 'rhythm recalc')\n", stale)
		} else {
			fmt.Printf("✓ Chain snapshots: OK\n")
		}
	} else {
		fmt.Printf("⊘ Rhythm integrity: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Chain snapshots: SKIPPED (database not reachable)\n")
	}

	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	if ctx.Config.Backend == config.BackendPostgres {
		if keyring.IsAvailable() {
			fmt.Printf("✓ OS keyring: OK\n")
		} else {
			fmt.Printf("⚠ OS keyring: unavailable (set RHYTHM_DB_PASSWORD instead)\n")
		}
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkRhythmIntegrity(ctx *cli.Context) error {
	rhythms, err := ctx.Store.GetAllRhythms(ctx.Config.UserID, false)
	if err != nil {
		return err
	}
	for _, r := range rhythms {
		if r.Name == "" {
			return fmt.Errorf("rhythm %s has no name", r.ID)
		}
		if r.DurationThresholdSeconds < 0 {
			return fmt.Errorf("rhythm %q has a negative duration threshold", r.Name)
		}
		if data := r.CachedChainStats; data != nil && data.Version != models.CacheVersion {
			return fmt.Errorf("rhythm %q carries a snapshot with version %d", r.Name, data.Version)
		}
	}
	return nil
}

func countStaleSnapshots(ctx *cli.Context) (int, error) {
	rhythms, err := ctx.Store.GetAllRhythms(ctx.Config.UserID, false)
	if err != nil {
		return 0, err
	}
	stale := 0
	for _, r := range rhythms {
		latest, err := ctx.Store.GetLatestEntryTimestamp(ctx.Config.UserID, r)
		if err != nil {
			return 0, err
		}
		if r.CachedChainStats.StaleAgainst(latest) {
			stale++
		}
	}
	return stale, nil
}

func checkClockTimezone(ctx *cli.Context) error {
	loc := ctx.Config.Location()
	now := time.Now().In(loc)
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reads %s, which is implausible", now.Format(time.RFC3339))
	}
	return nil
}
