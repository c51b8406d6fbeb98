package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietloop/rhythm/internal/models"
)

type EncourageCmd struct {
	Add EncourageAddCmd `cmd:"" help:"Add an encouragement message."`
}

type EncourageAddCmd struct {
	Message string `arg:"" help:"Message text."`
	Stage   string `help:"Journey stage the message targets." enum:"starting,building,becoming,being" default:"starting"`
	Context string `help:"Delivery context." default:"general"`
	Type    string `help:"Activity type the message is specific to (empty for generic)." default:""`
	Tier    string `help:"Chain tier the message is specific to (empty for generic)." default:""`
}

func (c *EncourageAddCmd) Run(ctx *Context) error {
	e := models.Encouragement{
		ID:           uuid.New().String(),
		Stage:        models.JourneyStage(c.Stage),
		Context:      c.Context,
		ActivityType: c.Type,
		TierName:     c.Tier,
		Message:      c.Message,
		IsActive:     true,
		CreatedAt:    ctx.Now(),
	}
	if err := ctx.Store.AddEncouragement(e); err != nil {
		return err
	}
	fmt.Println("Added encouragement message.")
	return nil
}
