package plans

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Plan ID."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeletePlan(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted plan %s and all its steps\n", c.ID)
	return nil
}
