package models

import (
	"fmt"
	"slices"
)

type StepRole string

const (
	RoleInitial      StepRole = "initial"
	RoleIntermediate StepRole = "intermediate"
	RoleEnd          StepRole = "end"
)

type StepStatus string

const (
	StatusPlanned   StepStatus = "Planned"
	StatusConcluded StepStatus = "Concluded"
)

// Step is one unit of action within a plan. Its role is fixed at creation:
// exactly one initial and one end step exist per plan, bounding any number
// of intermediate steps.
type Step struct {
	ID                 string     `json:"id"`
	Role               StepRole   `json:"type"`
	ActionTitle        string     `json:"actionTitle"`
	ActionDescription  string     `json:"actionDescription"`
	Date               string     `json:"date"` // YYYY-MM-DD, may be empty
	Progress           int        `json:"progress"`
	SuccessProbability int        `json:"successProbability"`
	Status             StepStatus `json:"status"`
	Review             string     `json:"review"`
}

// Plan is a titled, dated container for an ordered sequence of steps.
// Step order is meaningful: index 0 is always the initial step and the
// last index the end step.
type Plan struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
	Steps     []Step `json:"steps"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Clone returns a deep copy of the plan. Mutation operations work on
// clones so callers never observe in-place changes.
func (p Plan) Clone() Plan {
	out := p
	out.Steps = slices.Clone(p.Steps)
	return out
}

// StepIndex returns the position of the step with the given id, or -1.
func (p Plan) StepIndex(stepID string) int {
	return slices.IndexFunc(p.Steps, func(s Step) bool { return s.ID == stepID })
}

// EndStep returns the plan's end step, or false when the sequence is
// malformed and has none.
func (p Plan) EndStep() (Step, bool) {
	for _, s := range p.Steps {
		if s.Role == RoleEnd {
			return s, true
		}
	}
	return Step{}, false
}

// InitialStep returns the plan's initial step, or false when missing.
func (p Plan) InitialStep() (Step, bool) {
	for _, s := range p.Steps {
		if s.Role == RoleInitial {
			return s, true
		}
	}
	return Step{}, false
}

// Validate checks the structural invariants of a plan: a non-empty step
// sequence bounded by exactly one initial and one end step, known roles
// and statuses, and numeric fields within [0,100]. Stores call this at
// the persistence boundary and reject rather than accept corrupt data.
func (p Plan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("plan has no id")
	}
	if len(p.Steps) < 2 {
		return fmt.Errorf("plan %s must have at least an initial and an end step", p.ID)
	}
	if p.Steps[0].Role != RoleInitial {
		return fmt.Errorf("plan %s: first step must have role %q, got %q", p.ID, RoleInitial, p.Steps[0].Role)
	}
	if p.Steps[len(p.Steps)-1].Role != RoleEnd {
		return fmt.Errorf("plan %s: last step must have role %q, got %q", p.ID, RoleEnd, p.Steps[len(p.Steps)-1].Role)
	}
	for i, s := range p.Steps {
		if s.ID == "" {
			return fmt.Errorf("plan %s: step at index %d has no id", p.ID, i)
		}
		switch s.Role {
		case RoleInitial, RoleEnd:
			if i != 0 && i != len(p.Steps)-1 {
				return fmt.Errorf("plan %s: boundary role %q at interior index %d", p.ID, s.Role, i)
			}
		case RoleIntermediate:
			if i == 0 || i == len(p.Steps)-1 {
				return fmt.Errorf("plan %s: intermediate step at boundary index %d", p.ID, i)
			}
		default:
			return fmt.Errorf("plan %s: unknown step role %q", p.ID, s.Role)
		}
		if s.Status != StatusPlanned && s.Status != StatusConcluded {
			return fmt.Errorf("plan %s: step %s has unknown status %q", p.ID, s.ID, s.Status)
		}
		if s.Progress < 0 || s.Progress > 100 {
			return fmt.Errorf("plan %s: step %s progress %d out of range [0,100]", p.ID, s.ID, s.Progress)
		}
		if s.SuccessProbability < 0 || s.SuccessProbability > 100 {
			return fmt.Errorf("plan %s: step %s success probability %d out of range [0,100]", p.ID, s.ID, s.SuccessProbability)
		}
	}
	return nil
}
