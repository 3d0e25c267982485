package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/engage/internal/models"
	"github.com/julianstephens/engage/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil && (m.state == stateEditStep || m.state == stateEditPlan || m.state == stateConfirmDelete) {
		return docStyle.Render(m.form.View())
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.viewSidebar(),
		m.viewPlan(),
	)

	sections := []string{main}
	if m.statusMsg != "" {
		sections = append(sections, warningStyle.Render(m.statusMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Plans"))
	b.WriteString("\n")

	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	} else if q := m.editor.SidebarQuery(); strings.TrimSpace(q) != "" {
		b.WriteString(dimStyle.Render("filter: " + q))
		b.WriteString("\n")
	}

	plans := m.editor.FilteredPlans()
	if len(plans) == 0 {
		b.WriteString(dimStyle.Render("(no plans)"))
	}
	for _, plan := range plans {
		line := plan.Title
		if line == "" {
			line = "(untitled)"
		}
		if m.editor.Dirty(plan.ID) {
			line += dirtyStyle.Render(" *")
		}
		if plan.ID == m.editor.ActivePlanID() {
			b.WriteString(selectedPlanStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return sidebarStyle.Render(b.String())
}

func (m Model) viewPlan() string {
	plan, ok := m.activePlan()
	if !ok {
		return stepStyle.Render("No plan selected. Press n to create one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(plan.Title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s → %s", plan.StartDate, plan.EndDate)))
	b.WriteString("\n\n")

	for i, step := range plan.Steps {
		b.WriteString(m.viewStep(i, step))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewStats(plan))
	return stepStyle.Render(b.String())
}

func (m Model) viewStep(index int, step models.Step) string {
	marker := "·"
	if step.Status == models.StatusConcluded {
		marker = concludedStyle.Render("✓")
	}
	title := step.ActionTitle
	if title == "" {
		title = "(Untitled step)"
	}
	line := fmt.Sprintf("%s %-12s %s", marker, step.Role, title)
	if step.Date != "" {
		line += dimStyle.Render(" " + step.Date)
	}
	line += fmt.Sprintf("  %d%% / p%d%%", step.Progress, step.SuccessProbability)

	if index == m.stepCursor {
		return selectedStepStyle.Render(line)
	}
	return stepStyle.Render(line)
}

func (m Model) viewStats(plan models.Plan) string {
	st := stats.Compute(plan)

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"progress %d%% · probability %d%% · %d planned step(s) remaining",
		st.CurrentProgress, st.DisplayedProbability, st.RemainingPlanned)))

	flags, hidden := stats.TruncateFlags(st.Flags)
	for _, f := range flags {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("⚠ " + f))
	}
	if hidden > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  +%d more", hidden)))
	}
	return b.String()
}
