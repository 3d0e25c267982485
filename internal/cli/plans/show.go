package plans

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/models"
)

type ShowCmd struct {
	ID string `arg:"" help:"Plan ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s to %s)\n", plan.Title, plan.StartDate, plan.EndDate)
	for i, step := range plan.Steps {
		marker := "·"
		if step.Status == models.StatusConcluded {
			marker = "✓"
		}
		title := step.ActionTitle
		if title == "" {
			title = "(Untitled step)"
		}
		fmt.Printf("  %d. [%s] %-12s %s", i+1, marker, step.Role, title)
		if step.Date != "" {
			fmt.Printf(" (%s)", step.Date)
		}
		fmt.Printf(" - progress %d%%, probability %d%%\n", step.Progress, step.SuccessProbability)
		if step.Status == models.StatusConcluded && step.Review != "" {
			fmt.Printf("      Review: %s\n", step.Review)
		}
	}
	return nil
}
