package system

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/client"
	"github.com/julianstephens/engage/internal/editor"
	"github.com/julianstephens/engage/internal/tui"
)

type TuiCmd struct {
	Remote string `help:"Edit plans on a remote engage server instead of the local store (e.g. http://127.0.0.1:8787)."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	var ed *editor.Editor

	if c.Remote != "" {
		api := client.New(c.Remote)
		if err := api.Health(); err != nil {
			return err
		}
		plans, err := api.GetAllPlans()
		if err != nil {
			return fmt.Errorf("failed to load plans from %s: %w", c.Remote, err)
		}
		ed = editor.New(api, plans)
	} else {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		if err := ctx.EnsureSeed(); err != nil {
			return err
		}
		var err error
		ed, err = ctx.NewEditor()
		if err != nil {
			return err
		}
	}

	return tui.Run(ed)
}
