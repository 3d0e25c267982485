// Package editor holds the in-memory working copy of all plans for one
// editing session: the collection, the active selection, the sidebar
// filter, and the mutation operations. Every mutation produces a new plan
// snapshot, notifies subscribers synchronously, then hands the snapshot
// to the store without waiting for the write to finish. Display state is
// optimistic; a failed save leaves the in-memory plan as the visible
// truth and only marks it dirty.
package editor

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/engage/internal/constants"
	"github.com/julianstephens/engage/internal/logger"
	"github.com/julianstephens/engage/internal/models"
)

// Store is the slice of the persistence layer the editor depends on. The
// editor trusts it for durability only, never for derived values.
type Store interface {
	SavePlan(models.Plan) error
	DeletePlan(id string) error
}

// Editor is an observable collection of plans for a single session. All
// exported methods are meant to be called from one goroutine (the UI
// loop); only the dirty bookkeeping is touched by persistence goroutines.
type Editor struct {
	store Store

	plans        []models.Plan // display order, newest-created first
	activePlanID string
	sidebarQuery string
	subscribers  []func()

	mu    sync.Mutex
	dirty map[string]bool
	gen   map[string]uint64 // write generation per plan, see persist
}

// New creates an editor over an initial collection, ordered as the store
// returned it. The first plan, if any, becomes active.
func New(store Store, plans []models.Plan) *Editor {
	e := &Editor{
		store: store,
		plans: plans,
		dirty: make(map[string]bool),
		gen:   make(map[string]uint64),
	}
	if len(plans) > 0 {
		e.activePlanID = plans[0].ID
	}
	return e
}

// Subscribe registers a callback invoked synchronously after every
// in-memory mutation, before the persistence call completes.
func (e *Editor) Subscribe(fn func()) {
	e.subscribers = append(e.subscribers, fn)
}

func (e *Editor) notify() {
	for _, fn := range e.subscribers {
		fn()
	}
}

// Plans returns the full collection in display order.
func (e *Editor) Plans() []models.Plan {
	return e.plans
}

// ActivePlan returns the currently selected plan.
func (e *Editor) ActivePlan() (models.Plan, bool) {
	return e.planByID(e.activePlanID)
}

// ActivePlanID returns the id of the selected plan, or "".
func (e *Editor) ActivePlanID() string {
	return e.activePlanID
}

// SetActivePlan selects a plan by id. Unknown ids are ignored.
func (e *Editor) SetActivePlan(id string) {
	if _, ok := e.planByID(id); ok {
		e.activePlanID = id
		e.notify()
	}
}

// SidebarQuery returns the current filter text.
func (e *Editor) SidebarQuery() string {
	return e.sidebarQuery
}

// SetSidebarQuery updates the filter text.
func (e *Editor) SetSidebarQuery(q string) {
	e.sidebarQuery = q
	e.notify()
}

// FilteredPlans returns the plans whose title contains the trimmed
// sidebar query, case-insensitively. An empty query returns the whole
// collection with order preserved.
func (e *Editor) FilteredPlans() []models.Plan {
	query := strings.ToLower(strings.TrimSpace(e.sidebarQuery))
	if query == "" {
		return e.plans
	}
	var out []models.Plan
	for _, p := range e.plans {
		if strings.Contains(strings.ToLower(p.Title), query) {
			out = append(out, p)
		}
	}
	return out
}

// Dirty reports whether the plan has in-memory edits not yet confirmed
// durable by the store.
func (e *Editor) Dirty(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty[id]
}

// CreatePlan constructs a blank plan, prepends it to the collection,
// makes it active, and persists it.
func (e *Editor) CreatePlan() models.Plan {
	plan := models.NewBlankPlan()
	e.plans = append([]models.Plan{plan}, e.plans...)
	e.activePlanID = plan.ID
	e.notify()
	e.persist(plan)
	return plan
}

// DeletePlan removes a plan from the collection and the store. If the
// deleted plan was active, the first remaining plan becomes active.
func (e *Editor) DeletePlan(id string) {
	idx := -1
	for i, p := range e.plans {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	e.plans = append(e.plans[:idx:idx], e.plans[idx+1:]...)
	if e.activePlanID == id {
		e.activePlanID = ""
		if len(e.plans) > 0 {
			e.activePlanID = e.plans[0].ID
		}
	}
	e.notify()

	e.mu.Lock()
	delete(e.dirty, id)
	delete(e.gen, id)
	e.mu.Unlock()

	go func() {
		if err := e.store.DeletePlan(id); err != nil {
			logger.Error("Failed to delete plan from store", "plan", id, "error", err)
		}
	}()
}

// InsertStepAt inserts a new intermediate step into the active plan.
func (e *Editor) InsertStepAt(planID string, index int) error {
	return e.mutate(planID, func(p models.Plan) (models.Plan, error) {
		return InsertStepAt(p, index)
	})
}

// RemoveStep removes an intermediate step from a plan.
func (e *Editor) RemoveStep(planID, stepID string) error {
	return e.mutate(planID, func(p models.Plan) (models.Plan, error) {
		return RemoveStep(p, stepID)
	})
}

// MoveStep swaps an intermediate step with a neighbor.
func (e *Editor) MoveStep(planID, stepID string, direction int) error {
	return e.mutate(planID, func(p models.Plan) (models.Plan, error) {
		return MoveStep(p, stepID, direction)
	})
}

// UpdateStep applies a partial field update to one step.
func (e *Editor) UpdateStep(planID, stepID string, patch models.StepPatch) error {
	return e.mutate(planID, func(p models.Plan) (models.Plan, error) {
		return UpdateStep(p, stepID, patch)
	})
}

// UpdatePlan merges top-level plan fields.
func (e *Editor) UpdatePlan(planID string, patch models.PlanPatch) error {
	return e.mutate(planID, func(p models.Plan) (models.Plan, error) {
		return UpdatePlan(p, patch)
	})
}

func (e *Editor) mutate(planID string, op func(models.Plan) (models.Plan, error)) error {
	idx := -1
	for i, p := range e.plans {
		if p.ID == planID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no such plan: %s", planID)
	}

	next, err := op(e.plans[idx])
	if err != nil {
		return err
	}
	next.UpdatedAt = time.Now().UTC().Format(constants.TimestampFormat)
	e.plans[idx] = next
	e.notify()
	e.persist(next)
	return nil
}

// persist hands the full plan snapshot to the store without blocking the
// caller. The write is last-write-wins; failures are logged and leave the
// plan marked dirty until a later write succeeds. Each write carries a
// generation number, and only the newest generation may clear the dirty
// flag: an older in-flight write landing after a newer edit must not
// report the plan clean while that edit is still unconfirmed.
func (e *Editor) persist(plan models.Plan) {
	e.mu.Lock()
	e.gen[plan.ID]++
	gen := e.gen[plan.ID]
	e.dirty[plan.ID] = true
	e.mu.Unlock()

	go func() {
		if err := e.store.SavePlan(plan); err != nil {
			logger.Error("Failed to persist plan", "plan", plan.ID, "error", err)
			return
		}
		e.mu.Lock()
		if e.gen[plan.ID] == gen {
			delete(e.dirty, plan.ID)
		}
		e.mu.Unlock()
	}()
}

func (e *Editor) planByID(id string) (models.Plan, bool) {
	for _, p := range e.plans {
		if p.ID == id {
			return p, true
		}
	}
	return models.Plan{}, false
}
