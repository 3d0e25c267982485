package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/storage"
)

// SavePlan performs the same full-overwrite write as the SQLite backend:
// upsert the plan row, delete all steps, reinsert in submitted order.
func (s *Store) SavePlan(plan models.Plan) error {
	if err := plan.Validate(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidPlan, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plans (id, title, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at`,
		plan.ID, plan.Title, plan.StartDate, plan.EndDate, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM steps WHERE plan_id = $1", plan.ID); err != nil {
		return fmt.Errorf("failed to clear steps: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO steps (
			id, plan_id, type, action_title, action_description, date,
			progress, success_probability, status, review, step_order,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, step := range plan.Steps {
		_, err = stmt.Exec(
			step.ID, plan.ID, string(step.Role), step.ActionTitle, step.ActionDescription,
			step.Date, step.Progress, step.SuccessProbability, string(step.Status),
			step.Review, i, plan.CreatedAt, plan.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert step %s: %w", step.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetPlan(id string) (models.Plan, error) {
	var plan models.Plan
	err := s.db.QueryRow(
		"SELECT id, title, start_date, end_date, created_at, updated_at FROM plans WHERE id = $1",
		id,
	).Scan(&plan.ID, &plan.Title, &plan.StartDate, &plan.EndDate, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Plan{}, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
		}
		return models.Plan{}, err
	}

	steps, err := s.getSteps(plan.ID)
	if err != nil {
		return models.Plan{}, err
	}
	plan.Steps = steps
	return plan, nil
}

func (s *Store) GetAllPlans() ([]models.Plan, error) {
	rows, err := s.db.Query(
		"SELECT id, title, start_date, end_date, created_at, updated_at FROM plans ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(&plan.ID, &plan.Title, &plan.StartDate, &plan.EndDate, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		steps, err := s.getSteps(plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Steps = steps
	}
	return plans, nil
}

func (s *Store) getSteps(planID string) ([]models.Step, error) {
	rows, err := s.db.Query(`
		SELECT id, type, action_title, action_description, date,
			progress, success_probability, status, review
		FROM steps WHERE plan_id = $1 ORDER BY step_order`,
		planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []models.Step
	for rows.Next() {
		var step models.Step
		var role, status string
		err := rows.Scan(
			&step.ID, &role, &step.ActionTitle, &step.ActionDescription, &step.Date,
			&step.Progress, &step.SuccessProbability, &status, &step.Review,
		)
		if err != nil {
			return nil, err
		}
		step.Role = models.StepRole(role)
		step.Status = models.StepStatus(status)
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (s *Store) DeletePlan(id string) error {
	result, err := s.db.Exec("DELETE FROM plans WHERE id = $1", id)
	if err != nil {
		return err
	}
	count, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}
