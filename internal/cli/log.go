package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietloop/rhythm/internal/models"
)

type LogCmd struct {
	Add     LogAddCmd     `cmd:"" help:"Record an activity entry."`
	Delete  LogDeleteCmd  `cmd:"" help:"Delete an entry (soft delete)."`
	Restore LogRestoreCmd `cmd:"" help:"Restore a deleted entry."`
}

type LogAddCmd struct {
	Activity    string `arg:"" help:"Activity name (e.g. guitar)."`
	Type        string `help:"Activity type (e.g. music)." default:""`
	Category    string `help:"Category." default:""`
	Subcategory string `help:"Subcategory." default:""`
	Minutes     int    `help:"Session duration in minutes." default:"0"`
	Count       int    `help:"Optional repetition count (e.g. pages, reps)." default:"0"`
	Date        string `help:"Date in YYYY-MM-DD format (default: now)." default:""`
}

func (c *LogAddCmd) Run(ctx *Context) error {
	ts, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	entry := models.ActivityEntry{
		ID:              uuid.New().String(),
		UserID:          ctx.Config.UserID,
		ActivityType:    c.Type,
		Category:        c.Category,
		Subcategory:     c.Subcategory,
		Name:            c.Activity,
		Timestamp:       ts,
		DurationSeconds: c.Minutes * 60,
		CreatedAt:       ctx.Now(),
	}
	if c.Count > 0 {
		entry.Payload = &models.EntryPayload{Count: c.Count}
	}

	if err := ctx.Store.AddEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Logged %s for %s (%s)\n", FormatMinutes(c.Minutes), c.Activity, ts.Format("2006-01-02"))
	fmt.Printf("Entry ID: %s\n", entry.ID)
	return nil
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *LogDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted entry: %s\n", c.ID)
	return nil
}

type LogRestoreCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *LogRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreEntry(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored entry: %s\n", c.ID)
	return nil
}
