package stats

import (
	"slices"
	"strings"
	"testing"

	"github.com/julianstephens/engage/internal/models"
)

// testPlan builds a plan whose step roles follow the boundary convention:
// first initial, last end, everything between intermediate.
func testPlan(steps ...models.Step) models.Plan {
	for i := range steps {
		switch i {
		case 0:
			steps[i].Role = models.RoleInitial
		case len(steps) - 1:
			steps[i].Role = models.RoleEnd
		default:
			steps[i].Role = models.RoleIntermediate
		}
		if steps[i].Status == "" {
			steps[i].Status = models.StatusPlanned
		}
	}
	return models.Plan{
		ID:        "plan-1",
		Title:     "Test plan",
		StartDate: "2026-01-01",
		EndDate:   "2026-02-01",
		Steps:     steps,
	}
}

func step(progress int) models.Step {
	return models.Step{ID: "s", Progress: progress, SuccessProbability: 80}
}

func concluded(progress int) models.Step {
	s := step(progress)
	s.Status = models.StatusConcluded
	return s
}

func TestCurrentProgressNoConcluded(t *testing.T) {
	plan := testPlan(step(0), step(40), step(100))
	st := Compute(plan)
	if st.CurrentProgress != 0 {
		t.Errorf("currentProgress = %d, want 0 when no step is concluded", st.CurrentProgress)
	}
}

func TestCurrentProgressIsMaxNotLast(t *testing.T) {
	plan := testPlan(concluded(30), concluded(70), concluded(50), step(100))
	st := Compute(plan)
	if st.CurrentProgress != 70 {
		t.Errorf("currentProgress = %d, want 70 (max over concluded, not last)", st.CurrentProgress)
	}
}

func TestRemainingPlannedExcludesOnlyEnd(t *testing.T) {
	// Planned initial and planned intermediates count; the end step never
	// does, regardless of status.
	plan := testPlan(step(0), step(40), concluded(60), step(100))
	st := Compute(plan)
	if st.RemainingPlanned != 2 {
		t.Errorf("remainingPlanned = %d, want 2", st.RemainingPlanned)
	}
}

func TestDisplayedProbability(t *testing.T) {
	tests := []struct {
		name      string
		remaining int // planned non-end steps
		endProb   int
		want      int
	}{
		{"heuristic wins", 5, 90, 50},     // min(90, 100-50) = 50
		{"end prob wins", 1, 40, 40},      // min(40, 90) = 40
		{"heuristic floors at zero", 12, 90, 0},
		{"nothing remaining", 0, 85, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := make([]models.Step, 0, tt.remaining+2)
			steps = append(steps, concluded(0))
			for i := 0; i < tt.remaining; i++ {
				steps = append(steps, step(50))
			}
			end := step(100)
			end.SuccessProbability = tt.endProb
			steps = append(steps, end)
			// The constructed initial is concluded, so remaining counts
			// exactly the intermediates.
			plan := testPlan(steps...)
			st := Compute(plan)
			if st.DisplayedProbability != tt.want {
				t.Errorf("displayedProbability = %d, want %d", st.DisplayedProbability, tt.want)
			}
		})
	}
}

func TestEmptyStepsEdgeCase(t *testing.T) {
	plan := models.Plan{ID: "p", StartDate: "2026-01-01", EndDate: "2026-02-01"}
	st := Compute(plan)
	if st.CurrentProgress != 0 || st.RemainingPlanned != 0 {
		t.Errorf("got progress=%d remaining=%d, want both 0", st.CurrentProgress, st.RemainingPlanned)
	}
	if st.DisplayedProbability != 100 {
		t.Errorf("displayedProbability = %d, want 100 with no steps", st.DisplayedProbability)
	}
	if len(st.Flags) != 0 {
		t.Errorf("flags = %v, want none", st.Flags)
	}
}

func TestBlankPlanStats(t *testing.T) {
	plan := models.NewBlankPlan()
	st := Compute(plan)
	if st.CurrentProgress != 0 {
		t.Errorf("currentProgress = %d, want 0", st.CurrentProgress)
	}
	if st.RemainingPlanned != 1 {
		t.Errorf("remainingPlanned = %d, want 1 (the planned initial step)", st.RemainingPlanned)
	}
	if st.DisplayedProbability != 90 {
		t.Errorf("displayedProbability = %d, want 90", st.DisplayedProbability)
	}
	if len(st.Flags) != 0 {
		t.Errorf("flags = %v, want none on a fresh plan", st.Flags)
	}
}

func TestDateOrderFlag(t *testing.T) {
	plan := testPlan(step(0), step(100))
	plan.StartDate = "2026-03-01"
	plan.EndDate = "2026-02-01"
	st := Compute(plan)
	if !slices.Contains(st.Flags, "Plan start date is after end date.") {
		t.Errorf("missing date-order flag, got %v", st.Flags)
	}
}

func TestStepDateRangeFlags(t *testing.T) {
	early := step(0)
	early.ActionTitle = "Kickoff"
	early.Date = "2025-12-15"
	late := step(100)
	late.Date = "2026-02-10"
	plan := testPlan(early, late)

	st := Compute(plan)
	if !slices.Contains(st.Flags, "Kickoff is dated before the plan start.") {
		t.Errorf("missing before-start flag, got %v", st.Flags)
	}
	if !slices.Contains(st.Flags, "(Untitled step) is dated after the plan end.") {
		t.Errorf("missing after-end flag with fallback name, got %v", st.Flags)
	}
}

func TestNonMonotonicProgressFlagEmittedOnce(t *testing.T) {
	plan := testPlan(concluded(0), step(40), step(30), step(20), step(100))
	st := Compute(plan)
	count := 0
	for _, f := range st.Flags {
		if strings.HasPrefix(f, "Progress decreases") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("non-monotonic flag emitted %d times, want exactly 1", count)
	}
}

func TestBoundaryProgressFlags(t *testing.T) {
	plan := testPlan(step(10), step(90))
	st := Compute(plan)
	if !slices.Contains(st.Flags, "The initial step should have progress 0.") {
		t.Errorf("missing initial-progress flag, got %v", st.Flags)
	}
	if !slices.Contains(st.Flags, "The end step should have progress 100.") {
		t.Errorf("missing end-progress flag, got %v", st.Flags)
	}
}

func TestFlagOrdering(t *testing.T) {
	bad := step(10)
	bad.Date = "2025-01-01"
	plan := testPlan(bad, step(90))
	plan.StartDate = "2026-03-01"
	plan.EndDate = "2026-02-01"

	st := Compute(plan)
	if len(st.Flags) < 2 || st.Flags[0] != "Plan start date is after end date." {
		t.Fatalf("date-order flag must come first, got %v", st.Flags)
	}
}

func TestTruncateFlags(t *testing.T) {
	t.Run("under the limit", func(t *testing.T) {
		flags := []string{"a", "b"}
		shown, hidden := TruncateFlags(flags)
		if len(shown) != 2 || hidden != 0 {
			t.Errorf("got %d shown, %d hidden, want 2 and 0", len(shown), hidden)
		}
	})
	t.Run("over the limit", func(t *testing.T) {
		flags := []string{"a", "b", "c", "d", "e", "f", "g"}
		shown, hidden := TruncateFlags(flags)
		if len(shown) != 5 || hidden != 2 {
			t.Errorf("got %d shown, %d hidden, want 5 and 2", len(shown), hidden)
		}
	})
}
