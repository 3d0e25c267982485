package plans

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/stats"
)

type ListCmd struct {
	Query   string `help:"Filter plans by title (case-insensitive substring)." short:"q"`
	ShowIDs bool   `help:"Show plan IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ed, err := ctx.NewEditor()
	if err != nil {
		return err
	}
	ed.SetSidebarQuery(c.Query)

	plans := ed.FilteredPlans()
	if len(plans) == 0 {
		fmt.Println("No plans found")
		return nil
	}

	fmt.Println("Plans:")
	for _, plan := range plans {
		st := stats.Compute(plan)
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", plan.ID)
		}
		fmt.Printf("  %s%s - %s to %s, %d steps, progress %d%%, probability %d%%\n",
			plan.Title, idStr, plan.StartDate, plan.EndDate, len(plan.Steps),
			st.CurrentProgress, st.DisplayedProbability)
		if len(st.Flags) > 0 {
			fmt.Printf("      ⚠ %d warning(s)\n", len(st.Flags))
		}
	}
	return nil
}
