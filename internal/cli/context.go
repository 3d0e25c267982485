package cli

import (
	"fmt"

	"github.com/julianstephens/engage/internal/editor"
	"github.com/julianstephens/engage/internal/logger"
	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/storage"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// EnsureSeed writes the illustrative example plan when the store holds no
// plans at all, so a first run never opens on an empty editor.
func (c *Context) EnsureSeed() error {
	plans, err := c.Store.GetAllPlans()
	if err != nil {
		return fmt.Errorf("failed to check for existing plans: %w", err)
	}
	if len(plans) > 0 {
		return nil
	}
	seed := models.NewExamplePlan()
	if err := c.Store.SavePlan(seed); err != nil {
		return fmt.Errorf("failed to seed example plan: %w", err)
	}
	logger.Info("Seeded example plan", "plan", seed.ID)
	return nil
}

// NewEditor loads the collection from the store, newest first, and wraps
// it in an editor session.
func (c *Context) NewEditor() (*editor.Editor, error) {
	plans, err := c.Store.GetAllPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	return editor.New(c.Store, plans), nil
}
