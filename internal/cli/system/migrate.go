package system

import (
	"fmt"

	"github.com/julianstephens/engage/internal/cli"
)

type MigrateCmd struct{}

// Run applies pending migrations. Init is idempotent over an existing
// database, so migrating is just re-running it.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Database schema is up to date.")
	return nil
}
