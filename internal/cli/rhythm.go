package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietloop/rhythm/internal/constants"
	"github.com/quietloop/rhythm/internal/models"
)

type RhythmCmd struct {
	Add     RhythmAddCmd     `cmd:"" help:"Add a new rhythm."`
	List    RhythmListCmd    `cmd:"" help:"List rhythms."`
	Delete  RhythmDeleteCmd  `cmd:"" help:"Delete a rhythm (soft delete)."`
	Restore RhythmRestoreCmd `cmd:"" help:"Restore a deleted rhythm."`
}

type RhythmAddCmd struct {
	Name        string `arg:"" help:"Rhythm name."`
	Type        string `help:"Activity type to match (e.g. music)." default:""`
	Category    string `help:"Category to match." default:""`
	Subcategory string `help:"Subcategory to match." default:""`
	Activity    string `help:"Activity name to match." default:""`
	Goal        int    `help:"Goal value for the weekly and monthly target tiers." default:"0"`
	GoalUnit    string `help:"Goal unit: minutes or hours." enum:"minutes,hours" default:"minutes"`
	Threshold   int    `help:"Minimum seconds for a day to count as complete." default:"0"`
}

func (c *RhythmAddCmd) Run(ctx *Context) error {
	// Check if a rhythm with the same name already exists
	_, err := ctx.Store.GetRhythmByName(ctx.Config.UserID, c.Name)
	if err == nil {
		return fmt.Errorf("rhythm with name %q already exists", c.Name)
	}

	threshold := c.Threshold
	if threshold <= 0 {
		threshold = constants.DefaultDurationThresholdSeconds
	}

	rhythm := models.Rhythm{
		ID:                       uuid.New().String(),
		UserID:                   ctx.Config.UserID,
		Name:                     c.Name,
		ActivityType:             c.Type,
		Category:                 c.Category,
		Subcategory:              c.Subcategory,
		ActivityName:             c.Activity,
		GoalValue:                c.Goal,
		GoalUnit:                 c.GoalUnit,
		DurationThresholdSeconds: threshold,
		CreatedAt:                ctx.Now(),
	}

	if err := ctx.Store.AddRhythm(rhythm); err != nil {
		return err
	}

	fmt.Printf("Added rhythm: %s\n", c.Name)
	return nil
}

type RhythmListCmd struct {
	Deleted bool `help:"Include deleted rhythms."`
}

func (c *RhythmListCmd) Run(ctx *Context) error {
	rhythms, err := ctx.Store.GetAllRhythms(ctx.Config.UserID, c.Deleted)
	if err != nil {
		return err
	}

	if len(rhythms) == 0 {
		fmt.Println("No rhythms found.")
		return nil
	}

	for _, r := range rhythms {
		status := ""
		if r.DeletedAt != nil {
			status = " [DELETED]"
		}
		fmt.Printf("%s (streak %d, best %d)%s\n", r.Name, r.CurrentStreak, r.LongestStreak, status)
	}

	return nil
}

type RhythmDeleteCmd struct {
	Name string `arg:"" help:"Rhythm name."`
}

func (c *RhythmDeleteCmd) Run(ctx *Context) error {
	rhythm, err := ctx.Store.GetRhythmByName(ctx.Config.UserID, c.Name)
	if err != nil {
		return fmt.Errorf("rhythm %q not found", c.Name)
	}

	if err := ctx.Store.DeleteRhythm(rhythm.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted rhythm: %s\n", c.Name)
	return nil
}

type RhythmRestoreCmd struct {
	Name string `arg:"" help:"Rhythm name."`
}

func (c *RhythmRestoreCmd) Run(ctx *Context) error {
	rhythms, err := ctx.Store.GetAllRhythms(ctx.Config.UserID, true)
	if err != nil {
		return err
	}

	for _, r := range rhythms {
		if r.Name == c.Name && r.DeletedAt != nil {
			if err := ctx.Store.RestoreRhythm(r.ID); err != nil {
				return err
			}
			fmt.Printf("Restored rhythm: %s\n", c.Name)
			return nil
		}
	}

	return fmt.Errorf("no deleted rhythm named %q", c.Name)
}
