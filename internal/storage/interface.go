package storage

import (
	"errors"

	"github.com/julianstephens/engage/internal/models"
)

var (
	// ErrNotFound is returned when a plan id does not exist in the store.
	ErrNotFound = errors.New("plan not found")
	// ErrInvalidPlan is returned when a write is rejected at the
	// persistence boundary for violating plan invariants.
	ErrInvalidPlan = errors.New("invalid plan")
)

// Provider is the durable record store for plans. It is deliberately
// dumb: every write replaces the submitted plan wholesale (plan row
// updated, steps deleted and reinserted in order) and no derived values
// are computed server-side. Reads return plans newest-created first with
// steps ordered by their stored position.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Plans
	SavePlan(models.Plan) error
	GetPlan(id string) (models.Plan, error)
	GetAllPlans() ([]models.Plan, error)
	DeletePlan(id string) error

	// Utils
	GetConfigPath() string
}
