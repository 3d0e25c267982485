// Package stats derives display statistics and advisory validation flags
// from a plan snapshot. Everything here is a pure function of its input:
// the store is never trusted for derived values, and recomputing on every
// render must be safe.
package stats

import (
	"fmt"

	"github.com/julianstephens/engage/internal/constants"
	"github.com/julianstephens/engage/internal/models"
)

// PlanStats is the derived view of a single plan.
type PlanStats struct {
	// CurrentProgress is the maximum progress among concluded steps, not
	// the last one. Progress need not be monotonic with step order when
	// data entry is inconsistent, and the max is what the plan has
	// demonstrably reached.
	CurrentProgress int

	// DisplayedProbability is min(end step probability, heuristic),
	// clamped to [0,100].
	DisplayedProbability int

	// RemainingPlanned counts steps still in Planned status, excluding
	// the end step. A planned initial step does count: it is a planned
	// action until concluded.
	RemainingPlanned int

	// Flags lists advisory validation warnings in display order. The
	// full list is always computed; the UI truncates it.
	Flags []string
}

// Compute derives the statistics for a plan snapshot.
func Compute(plan models.Plan) PlanStats {
	var st PlanStats

	for _, s := range plan.Steps {
		if s.Status == models.StatusConcluded && s.Progress > st.CurrentProgress {
			st.CurrentProgress = s.Progress
		}
		if s.Status == models.StatusPlanned && s.Role != models.RoleEnd {
			st.RemainingPlanned++
		}
	}

	heuristic := clamp(100 - st.RemainingPlanned*constants.RemainingStepPenalty)

	endProb := 100
	if end, ok := plan.EndStep(); ok {
		endProb = end.SuccessProbability
	}
	st.DisplayedProbability = clamp(min(endProb, heuristic))

	st.Flags = computeFlags(plan)
	return st
}

// computeFlags assembles the advisory warnings in a fixed order; the UI
// shows only the first few, so ordering matters.
func computeFlags(plan models.Plan) []string {
	var flags []string

	// ISO dates compare correctly as strings because of the fixed width.
	if plan.StartDate != "" && plan.EndDate != "" && plan.StartDate > plan.EndDate {
		flags = append(flags, "Plan start date is after end date.")
	}

	for _, s := range plan.Steps {
		if s.Date == "" {
			continue
		}
		name := s.ActionTitle
		if name == "" {
			name = "(Untitled step)"
		}
		if plan.StartDate != "" && s.Date < plan.StartDate {
			flags = append(flags, fmt.Sprintf("%s is dated before the plan start.", name))
		}
		if plan.EndDate != "" && s.Date > plan.EndDate {
			flags = append(flags, fmt.Sprintf("%s is dated after the plan end.", name))
		}
	}

	for i := 1; i < len(plan.Steps); i++ {
		if plan.Steps[i].Progress < plan.Steps[i-1].Progress {
			flags = append(flags, "Progress decreases between steps; later steps should not report less progress than earlier ones.")
			break
		}
	}

	if initial, ok := plan.InitialStep(); ok && initial.Progress != 0 {
		flags = append(flags, "The initial step should have progress 0.")
	}
	if end, ok := plan.EndStep(); ok && end.Progress != 100 {
		flags = append(flags, "The end step should have progress 100.")
	}

	return flags
}

// TruncateFlags returns the flags the UI should display plus the count of
// hidden ones.
func TruncateFlags(flags []string) ([]string, int) {
	if len(flags) <= constants.MaxDisplayedFlags {
		return flags, 0
	}
	return flags[:constants.MaxDisplayedFlags], len(flags) - constants.MaxDisplayedFlags
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
