package plans

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/stats"
)

type StatsCmd struct {
	ID  string `arg:"" help:"Plan ID."`
	All bool   `help:"Show every flag instead of the usual display cap."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(c.ID)
	if err != nil {
		return err
	}

	st := stats.Compute(plan)
	fmt.Printf("%s\n", plan.Title)
	fmt.Printf("  Current progress:      %d%%\n", st.CurrentProgress)
	fmt.Printf("  Success probability:   %d%%\n", st.DisplayedProbability)
	fmt.Printf("  Remaining planned:     %d\n", st.RemainingPlanned)

	flags := st.Flags
	hidden := 0
	if !c.All {
		flags, hidden = stats.TruncateFlags(st.Flags)
	}
	if len(flags) == 0 {
		fmt.Println("  No warnings.")
		return nil
	}
	fmt.Println("  Warnings:")
	for _, f := range flags {
		fmt.Printf("    ⚠ %s\n", f)
	}
	if hidden > 0 {
		fmt.Printf("    +%d more\n", hidden)
	}
	return nil
}
