package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/engage/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateFilter:
			return m.updateFilter(msg)
		case stateEditStep, stateEditPlan, stateConfirmDelete:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.state == stateEditStep || m.state == stateEditPlan || m.state == stateConfirmDelete {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.selectAdjacentPlan(-1)
		m.stepCursor = 0

	case key.Matches(msg, m.keys.Down):
		m.selectAdjacentPlan(1)
		m.stepCursor = 0

	case key.Matches(msg, m.keys.Left):
		m.stepCursor--
		m.clampStepCursor()

	case key.Matches(msg, m.keys.Right):
		m.stepCursor++
		m.clampStepCursor()

	case key.Matches(msg, m.keys.Filter):
		m.state = stateFilter
		m.filter.SetValue(m.editor.SidebarQuery())
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NewPlan):
		m.editor.CreatePlan()
		m.stepCursor = 0

	case key.Matches(msg, m.keys.DeletePlan):
		if plan, ok := m.activePlan(); ok {
			m.deleteTarget = plan.ID
			m.form = m.buildConfirmForm(plan.Title)
			m.state = stateConfirmDelete
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.AddStep):
		if plan, ok := m.activePlan(); ok {
			// Insert after the cursor, clamped to the interior range.
			index := m.stepCursor + 1
			if index < 1 {
				index = 1
			}
			if index > len(plan.Steps)-1 {
				index = len(plan.Steps) - 1
			}
			if err := m.editor.InsertStepAt(plan.ID, index); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.stepCursor = index
			}
		}

	case key.Matches(msg, m.keys.RemoveStep):
		if plan, ok := m.activePlan(); ok && m.stepCursor < len(plan.Steps) {
			step := plan.Steps[m.stepCursor]
			if step.Role != models.RoleIntermediate {
				m.statusMsg = "initial and end steps cannot be removed"
			} else if err := m.editor.RemoveStep(plan.ID, step.ID); err != nil {
				m.statusMsg = err.Error()
			}
			m.clampStepCursor()
		}

	case key.Matches(msg, m.keys.MoveLeft):
		m.moveStep(-1)

	case key.Matches(msg, m.keys.MoveRight):
		m.moveStep(1)

	case key.Matches(msg, m.keys.Conclude):
		if plan, ok := m.activePlan(); ok && m.stepCursor < len(plan.Steps) {
			step := plan.Steps[m.stepCursor]
			next := models.StatusConcluded
			if step.Status == models.StatusConcluded {
				next = models.StatusPlanned
			}
			if err := m.editor.UpdateStep(plan.ID, step.ID, models.StepPatch{Status: &next}); err != nil {
				m.statusMsg = err.Error()
			}
		}

	case key.Matches(msg, m.keys.EditStep):
		if plan, ok := m.activePlan(); ok && m.stepCursor < len(plan.Steps) {
			step := plan.Steps[m.stepCursor]
			m.editingStep = step.ID
			m.stepForm = &StepFormModel{
				ActionTitle:        step.ActionTitle,
				ActionDescription:  step.ActionDescription,
				Date:               step.Date,
				Progress:           strconv.Itoa(step.Progress),
				SuccessProbability: strconv.Itoa(step.SuccessProbability),
				Concluded:          step.Status == models.StatusConcluded,
				Review:             step.Review,
			}
			m.form = m.buildStepForm()
			m.state = stateEditStep
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.EditPlan):
		if plan, ok := m.activePlan(); ok {
			m.planForm = &PlanFormModel{
				Title:     plan.Title,
				StartDate: plan.StartDate,
				EndDate:   plan.EndDate,
			}
			m.form = m.buildPlanForm()
			m.state = stateEditPlan
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = stateBrowse
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.editor.SetSidebarQuery(m.filter.Value())
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case stateEditStep:
			m.applyStepForm()
		case stateEditPlan:
			m.applyPlanForm()
		case stateConfirmDelete:
			if m.confirmForm != nil && m.confirmForm.Confirmed {
				m.editor.DeletePlan(m.deleteTarget)
				m.stepCursor = 0
			}
			m.deleteTarget = ""
			m.confirmForm = nil
		}
		m.state = stateBrowse
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = stateBrowse
		m.form = nil
		m.deleteTarget = ""
		return m, nil
	}

	return m, cmd
}

func (m *Model) applyStepForm() {
	plan, ok := m.activePlan()
	if !ok || m.stepForm == nil {
		return
	}

	patch := models.StepPatch{
		ActionTitle:       &m.stepForm.ActionTitle,
		ActionDescription: &m.stepForm.ActionDescription,
		Date:              &m.stepForm.Date,
		Review:            &m.stepForm.Review,
	}

	status := models.StatusPlanned
	if m.stepForm.Concluded {
		status = models.StatusConcluded
	}
	patch.Status = &status

	if v, err := strconv.Atoi(m.stepForm.Progress); err == nil {
		patch.Progress = &v
	}
	if v, err := strconv.Atoi(m.stepForm.SuccessProbability); err == nil {
		patch.SuccessProbability = &v
	}

	if err := m.editor.UpdateStep(plan.ID, m.editingStep, patch); err != nil {
		m.statusMsg = err.Error()
	}
	m.editingStep = ""
	m.stepForm = nil
}

func (m *Model) applyPlanForm() {
	plan, ok := m.activePlan()
	if !ok || m.planForm == nil {
		return
	}
	patch := models.PlanPatch{
		Title:     &m.planForm.Title,
		StartDate: &m.planForm.StartDate,
		EndDate:   &m.planForm.EndDate,
	}
	if err := m.editor.UpdatePlan(plan.ID, patch); err != nil {
		m.statusMsg = err.Error()
	}
	m.planForm = nil
}

func (m *Model) moveStep(direction int) {
	plan, ok := m.activePlan()
	if !ok || m.stepCursor >= len(plan.Steps) {
		return
	}
	step := plan.Steps[m.stepCursor]
	before := plan.StepIndex(step.ID)
	if err := m.editor.MoveStep(plan.ID, step.ID, direction); err != nil {
		m.statusMsg = err.Error()
		return
	}
	if after, ok := m.activePlan(); ok {
		if idx := after.StepIndex(step.ID); idx >= 0 && idx != before {
			m.stepCursor = idx
		}
	}
}

// selectAdjacentPlan moves the active selection within the filtered list.
func (m *Model) selectAdjacentPlan(direction int) {
	plans := m.editor.FilteredPlans()
	if len(plans) == 0 {
		return
	}
	idx := 0
	for i, p := range plans {
		if p.ID == m.editor.ActivePlanID() {
			idx = i
			break
		}
	}
	idx += direction
	if idx < 0 {
		idx = 0
	}
	if idx > len(plans)-1 {
		idx = len(plans) - 1
	}
	m.editor.SetActivePlan(plans[idx].ID)
}

func (m *Model) buildStepForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Action title").Value(&m.stepForm.ActionTitle),
			huh.NewText().Title("Description").Value(&m.stepForm.ActionDescription),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&m.stepForm.Date),
			huh.NewInput().Title("Progress (0-100)").Value(&m.stepForm.Progress).Validate(validatePercent),
			huh.NewInput().Title("Success probability (0-100)").Value(&m.stepForm.SuccessProbability).Validate(validatePercent),
			huh.NewConfirm().Title("Concluded?").Value(&m.stepForm.Concluded),
			huh.NewText().Title("Review").Description("Shown once the step is concluded").Value(&m.stepForm.Review),
		),
	)
}

func (m *Model) buildPlanForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&m.planForm.Title),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&m.planForm.StartDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(&m.planForm.EndDate),
		),
	)
}

func (m *Model) buildConfirmForm(title string) *huh.Form {
	m.confirmForm = &ConfirmFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and all its steps?", title)).
				Value(&m.confirmForm.Confirmed),
		),
	)
}

func validatePercent(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}
