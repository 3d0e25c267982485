package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/engage/internal/models"
)

func fourStepPlan() models.Plan {
	plan := models.NewBlankPlan()
	a := models.NewStep(models.StepPatch{})
	a.ActionTitle = "first intermediate"
	a.Progress = 20
	b := models.NewStep(models.StepPatch{})
	b.ActionTitle = "second intermediate"
	b.Progress = 60
	plan.Steps = []models.Step{plan.Steps[0], a, b, plan.Steps[1]}
	return plan
}

func TestInsertStepAtMidpoint(t *testing.T) {
	plan := fourStepPlan()

	// Between progress 20 and 60 the new step lands at 40.
	out, err := InsertStepAt(plan, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Steps) != 5 {
		t.Fatalf("step count = %d, want 5", len(out.Steps))
	}
	inserted := out.Steps[2]
	if inserted.Progress != 40 {
		t.Errorf("inserted progress = %d, want 40", inserted.Progress)
	}
	if inserted.Role != models.RoleIntermediate {
		t.Errorf("inserted role = %q, want intermediate", inserted.Role)
	}
	// Two intermediates existed before the insert: 100 - 2*8 = 84.
	if inserted.SuccessProbability != 84 {
		t.Errorf("inserted probability = %d, want 84", inserted.SuccessProbability)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("plan invalid after insert: %v", err)
	}
}

func TestInsertStepAtRoundsHalfUp(t *testing.T) {
	plan := fourStepPlan()
	plan.Steps[1].Progress = 20
	plan.Steps[2].Progress = 25

	out, err := InsertStepAt(plan, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Midpoint 22.5 rounds to 23, not truncates to 22.
	if out.Steps[2].Progress != 23 {
		t.Errorf("inserted progress = %d, want 23", out.Steps[2].Progress)
	}
}

func TestInsertStepAtRejectsBoundaries(t *testing.T) {
	plan := fourStepPlan()
	for _, index := range []int{0, -1, len(plan.Steps), len(plan.Steps) + 3} {
		if _, err := InsertStepAt(plan, index); err == nil {
			t.Errorf("index %d: expected rejection", index)
		}
	}
}

func TestInsertStepAtEndSlot(t *testing.T) {
	plan := models.NewBlankPlan()
	// len-1 places the step just before the end step.
	out, err := InsertStepAt(plan, len(plan.Steps)-1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Steps[len(out.Steps)-1].Role != models.RoleEnd {
		t.Error("end step lost its final position")
	}
	if err := out.Validate(); err != nil {
		t.Errorf("plan invalid after insert: %v", err)
	}
}

func TestInsertStepAtDoesNotMutateInput(t *testing.T) {
	plan := fourStepPlan()
	before := len(plan.Steps)
	if _, err := InsertStepAt(plan, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != before {
		t.Error("input plan was mutated")
	}
}

func TestRemoveStep(t *testing.T) {
	plan := fourStepPlan()

	t.Run("intermediate", func(t *testing.T) {
		out, err := RemoveStep(plan, plan.Steps[1].ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Steps) != 3 {
			t.Fatalf("step count = %d, want 3", len(out.Steps))
		}
		if out.Steps[1].ActionTitle != "second intermediate" {
			t.Error("remaining steps out of order after removal")
		}
	})

	t.Run("initial refused", func(t *testing.T) {
		_, err := RemoveStep(plan, plan.Steps[0].ID)
		if !errors.Is(err, ErrProtectedStep) {
			t.Errorf("got %v, want ErrProtectedStep", err)
		}
	})

	t.Run("end refused", func(t *testing.T) {
		_, err := RemoveStep(plan, plan.Steps[len(plan.Steps)-1].ID)
		if !errors.Is(err, ErrProtectedStep) {
			t.Errorf("got %v, want ErrProtectedStep", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := RemoveStep(plan, "nope")
		if !errors.Is(err, ErrStepNotFound) {
			t.Errorf("got %v, want ErrStepNotFound", err)
		}
	})
}

func TestMoveStep(t *testing.T) {
	plan := fourStepPlan()
	first := plan.Steps[1].ID
	second := plan.Steps[2].ID

	t.Run("swap right", func(t *testing.T) {
		out, err := MoveStep(plan, first, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[1].ID != second || out.Steps[2].ID != first {
			t.Error("adjacent swap did not happen")
		}
	})

	t.Run("boundary move is a no-op", func(t *testing.T) {
		out, err := MoveStep(plan, first, -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[1].ID != first {
			t.Error("move into the initial slot should leave order unchanged")
		}
		// Repeating the refused move changes nothing either.
		again, err := MoveStep(out, first, -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Steps[1].ID != first {
			t.Error("repeated boundary move is not idempotent")
		}
	})

	t.Run("moving a boundary step is a no-op", func(t *testing.T) {
		out, err := MoveStep(plan, plan.Steps[0].ID, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[0].ID != plan.Steps[0].ID {
			t.Error("initial step moved")
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		if _, err := MoveStep(plan, first, 2); err == nil {
			t.Error("expected error for direction outside {-1,1}")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := MoveStep(plan, "nope", 1)
		if !errors.Is(err, ErrStepNotFound) {
			t.Errorf("got %v, want ErrStepNotFound", err)
		}
	})
}

func TestUpdateStepLocks(t *testing.T) {
	plan := fourStepPlan()

	t.Run("initial progress locked to 0", func(t *testing.T) {
		p := 55
		out, err := UpdateStep(plan, plan.Steps[0].ID, models.StepPatch{Progress: &p})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[0].Progress != 0 {
			t.Errorf("initial progress = %d, want 0", out.Steps[0].Progress)
		}
	})

	t.Run("end progress and probability locked to 100", func(t *testing.T) {
		p, prob := 55, 42
		endID := plan.Steps[len(plan.Steps)-1].ID
		out, err := UpdateStep(plan, endID, models.StepPatch{Progress: &p, SuccessProbability: &prob})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		end := out.Steps[len(out.Steps)-1]
		if end.Progress != 100 || end.SuccessProbability != 100 {
			t.Errorf("end step = progress %d / probability %d, want 100/100", end.Progress, end.SuccessProbability)
		}
	})

	t.Run("intermediate fields pass through", func(t *testing.T) {
		p := 55
		title := "renamed"
		out, err := UpdateStep(plan, plan.Steps[1].ID, models.StepPatch{Progress: &p, ActionTitle: &title})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[1].Progress != 55 || out.Steps[1].ActionTitle != "renamed" {
			t.Errorf("got %+v, want progress=55 title=renamed", out.Steps[1])
		}
	})

	t.Run("role patches ignored", func(t *testing.T) {
		role := models.RoleEnd
		out, err := UpdateStep(plan, plan.Steps[1].ID, models.StepPatch{Role: &role})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[1].Role != models.RoleIntermediate {
			t.Errorf("role = %q, want intermediate", out.Steps[1].Role)
		}
	})

	t.Run("unpatched locked fields untouched", func(t *testing.T) {
		// Patching only the review must not reset anything on the end step.
		review := "done"
		base := plan.Clone()
		endIdx := len(base.Steps) - 1
		base.Steps[endIdx].SuccessProbability = 70
		out, err := UpdateStep(base, base.Steps[endIdx].ID, models.StepPatch{Review: &review})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Steps[endIdx].SuccessProbability != 70 {
			t.Errorf("probability = %d, want 70 left as stored", out.Steps[endIdx].SuccessProbability)
		}
		if out.Steps[endIdx].Review != "done" {
			t.Errorf("review = %q, want %q", out.Steps[endIdx].Review, "done")
		}
	})
}

func TestUpdatePlan(t *testing.T) {
	plan := fourStepPlan()
	title := "New title"
	end := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	out, err := UpdatePlan(plan, models.PlanPatch{Title: &title, EndDate: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title != title || out.EndDate != end {
		t.Errorf("got title=%q end=%q, want %q / %q", out.Title, out.EndDate, title, end)
	}
	if out.StartDate != plan.StartDate {
		t.Error("unpatched start date changed")
	}
}
