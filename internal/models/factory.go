package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/engage/internal/constants"
)

// StepPatch is a partial update to a step. Nil fields are left untouched.
type StepPatch struct {
	ActionTitle        *string
	ActionDescription  *string
	Date               *string
	Progress           *int
	SuccessProbability *int
	Status             *StepStatus
	Review             *string
	Role               *StepRole
}

// Apply merges the patch into the step and returns the result.
func (p StepPatch) Apply(s Step) Step {
	if p.ActionTitle != nil {
		s.ActionTitle = *p.ActionTitle
	}
	if p.ActionDescription != nil {
		s.ActionDescription = *p.ActionDescription
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Progress != nil {
		s.Progress = *p.Progress
	}
	if p.SuccessProbability != nil {
		s.SuccessProbability = *p.SuccessProbability
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Review != nil {
		s.Review = *p.Review
	}
	if p.Role != nil {
		s.Role = *p.Role
	}
	return s
}

// PlanPatch is a partial update to a plan's top-level fields.
type PlanPatch struct {
	Title     *string
	StartDate *string
	EndDate   *string
}

// Apply merges the patch into the plan and returns the result.
func (p PlanPatch) Apply(plan Plan) Plan {
	if p.Title != nil {
		plan.Title = *p.Title
	}
	if p.StartDate != nil {
		plan.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		plan.EndDate = *p.EndDate
	}
	return plan
}

// NewStep returns an intermediate step with defaults, overridden by the
// supplied patch. Each call produces a fresh unique id.
func NewStep(overrides StepPatch) Step {
	s := Step{
		ID:                 uuid.NewString(),
		Role:               RoleIntermediate,
		Progress:           constants.DefaultStepProgress,
		SuccessProbability: constants.DefaultStepProbability,
		Status:             StatusPlanned,
	}
	return overrides.Apply(s)
}

// NewBlankPlan returns a plan titled with the default title, spanning
// today through today plus the default span, holding exactly an initial
// and an end step.
func NewBlankPlan() Plan {
	return newBlankPlanAt(time.Now())
}

func newBlankPlanAt(now time.Time) Plan {
	start := now.Format(constants.DateFormat)
	end := now.AddDate(0, 0, constants.DefaultPlanSpanDays).Format(constants.DateFormat)
	return Plan{
		ID:        uuid.NewString(),
		Title:     constants.DefaultPlanTitle,
		StartDate: start,
		EndDate:   end,
		Steps: []Step{
			NewStep(StepPatch{
				Role:               ptr(RoleInitial),
				Date:               &start,
				Progress:           ptr(0),
				SuccessProbability: ptr(50),
			}),
			NewStep(StepPatch{
				Role:               ptr(RoleEnd),
				Date:               &end,
				Progress:           ptr(100),
				SuccessProbability: ptr(100),
			}),
		},
		CreatedAt: now.UTC().Format(constants.TimestampFormat),
		UpdatedAt: now.UTC().Format(constants.TimestampFormat),
	}
}

// NewExamplePlan returns the illustrative five-step plan used as a
// first-run seed when the store holds no plans at all.
func NewExamplePlan() Plan {
	now := time.Now()
	plan := newBlankPlanAt(now)
	plan.Title = "Example: Product Launch"

	initial := plan.Steps[0]
	initial.ActionTitle = "Kickoff meeting"
	initial.ActionDescription = "Align the team on scope, owners, and the launch date."
	initial.Status = StatusConcluded
	initial.Review = "Everyone on board, no open questions."

	end := plan.Steps[1]
	end.ActionTitle = "Public launch"
	end.ActionDescription = "Flip the switch and announce."

	mid := func(title, desc string, offsetDays, progress, probability int) Step {
		return NewStep(StepPatch{
			ActionTitle:        &title,
			ActionDescription:  &desc,
			Date:               ptr(now.AddDate(0, 0, offsetDays).Format(constants.DateFormat)),
			Progress:           &progress,
			SuccessProbability: &probability,
		})
	}

	plan.Steps = []Step{
		initial,
		mid("Draft announcement", "Write the launch post and review it with marketing.", 3, 25, 90),
		mid("Finish QA pass", "Close out the remaining test failures.", 7, 50, 80),
		mid("Dry run", "Full rehearsal of the launch checklist.", 11, 75, 75),
		end,
	}
	return plan
}

func ptr[T any](v T) *T { return &v }
