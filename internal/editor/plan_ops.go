package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/julianstephens/engage/internal/constants"
	"github.com/julianstephens/engage/internal/models"
)

var (
	// ErrStepNotFound is returned when a step id does not exist in the plan
	ErrStepNotFound = errors.New("step not found")
	// ErrProtectedStep is returned when an operation targets the initial or end step
	ErrProtectedStep = errors.New("initial and end steps cannot be removed")
)

// InsertStepAt returns a copy of the plan with a new intermediate step at
// the given index. Valid indices are the interior positions [1, len-1];
// position 0 and anything past the end slot are rejected so the initial
// and end steps keep their fixed places.
//
// The new step's progress is the rounded midpoint of its neighbors', and
// its success probability shrinks as the plan already holds more
// intermediate steps.
func InsertStepAt(plan models.Plan, index int) (models.Plan, error) {
	if index < 1 || index > len(plan.Steps)-1 {
		return plan, fmt.Errorf("insert index %d outside interior range [1,%d]", index, len(plan.Steps)-1)
	}

	left, right := 0, 100
	if index-1 >= 0 && index-1 < len(plan.Steps) {
		left = plan.Steps[index-1].Progress
	}
	if index < len(plan.Steps) {
		right = plan.Steps[index].Progress
	}

	progress := clamp(int(math.Round(float64(left+right) / 2)))
	probability := clamp(100 - (len(plan.Steps)-2)*constants.InsertProbabilityDecay)

	step := models.NewStep(models.StepPatch{
		Progress:           &progress,
		SuccessProbability: &probability,
	})

	out := plan.Clone()
	out.Steps = append(out.Steps[:index:index], append([]models.Step{step}, out.Steps[index:]...)...)
	return out, nil
}

// RemoveStep returns a copy of the plan without the identified step. Only
// intermediate steps may be removed; the boundary steps are refused.
func RemoveStep(plan models.Plan, stepID string) (models.Plan, error) {
	idx := plan.StepIndex(stepID)
	if idx < 0 {
		return plan, fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}
	if plan.Steps[idx].Role != models.RoleIntermediate {
		return plan, fmt.Errorf("%w: %s has role %s", ErrProtectedStep, stepID, plan.Steps[idx].Role)
	}
	out := plan.Clone()
	out.Steps = append(out.Steps[:idx:idx], out.Steps[idx+1:]...)
	return out, nil
}

// MoveStep swaps an intermediate step with its neighbor in the given
// direction (-1 left, +1 right). Moves that would displace the initial or
// end step, or that target a boundary step, leave the plan unchanged.
// Repeating a boundary move is idempotent.
func MoveStep(plan models.Plan, stepID string, direction int) (models.Plan, error) {
	if direction != -1 && direction != 1 {
		return plan, fmt.Errorf("invalid move direction %d", direction)
	}
	idx := plan.StepIndex(stepID)
	if idx < 0 {
		return plan, fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}
	if plan.Steps[idx].Role != models.RoleIntermediate {
		return plan, nil
	}
	target := idx + direction
	if target < 1 || target > len(plan.Steps)-2 {
		return plan, nil
	}
	out := plan.Clone()
	out.Steps[idx], out.Steps[target] = out.Steps[target], out.Steps[idx]
	return out, nil
}

// UpdateStep merges a partial field update into one step long-hand, then
// re-applies the role locks: initial steps stay at progress 0, end steps
// at progress 100 and success probability 100. The locks run after the
// merge, so including a locked field in the patch cannot bypass them.
// A step's role is fixed at creation; role patches are ignored here.
func UpdateStep(plan models.Plan, stepID string, patch models.StepPatch) (models.Plan, error) {
	idx := plan.StepIndex(stepID)
	if idx < 0 {
		return plan, fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}

	patch.Role = nil

	out := plan.Clone()
	step := patch.Apply(out.Steps[idx])

	switch step.Role {
	case models.RoleInitial:
		if patch.Progress != nil {
			step.Progress = 0
		}
	case models.RoleEnd:
		if patch.Progress != nil {
			step.Progress = 100
		}
		if patch.SuccessProbability != nil {
			step.SuccessProbability = 100
		}
	}

	out.Steps[idx] = step
	return out, nil
}

// UpdatePlan merges the top-level fields of a plan. No locking rules
// apply at this level.
func UpdatePlan(plan models.Plan, patch models.PlanPatch) (models.Plan, error) {
	return patch.Apply(plan.Clone()), nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
