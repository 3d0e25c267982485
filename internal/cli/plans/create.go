package plans

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/models"
)

type CreateCmd struct {
	Title string `help:"Plan title." optional:""`
}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan := models.NewBlankPlan()
	if c.Title != "" {
		plan.Title = c.Title
	}
	if err := ctx.Store.SavePlan(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	fmt.Printf("Created plan %q (ID: %s)\n", plan.Title, plan.ID)
	return nil
}
