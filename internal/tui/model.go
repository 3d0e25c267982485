// Package tui is the interactive editor frontend: a plan sidebar with a
// title filter, a step strip with guardrailed editing, and a stats panel
// recomputed from the in-memory snapshot on every render.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/engage/internal/editor"
	"github.com/julianstephens/engage/internal/models"
)

type sessionState int

const (
	stateBrowse sessionState = iota
	stateFilter
	stateEditStep
	stateEditPlan
	stateConfirmDelete
)

// StepFormModel mirrors the editable step fields as form strings.
type StepFormModel struct {
	ActionTitle        string
	ActionDescription  string
	Date               string
	Progress           string
	SuccessProbability string
	Concluded          bool
	Review             string
}

// PlanFormModel mirrors the editable top-level plan fields.
type PlanFormModel struct {
	Title     string
	StartDate string
	EndDate   string
}

// ConfirmFormModel backs the delete confirmation dialog.
type ConfirmFormModel struct {
	Confirmed bool
}

type Model struct {
	editor *editor.Editor

	state      sessionState
	keys       KeyMap
	help       help.Model
	filter     textinput.Model
	stepCursor int

	form         *huh.Form
	stepForm     *StepFormModel
	planForm     *PlanFormModel
	confirmForm  *ConfirmFormModel
	editingStep  string // step id under edit
	deleteTarget string // plan id pending delete confirmation

	statusMsg string
	quitting  bool
	width     int
	height    int
}

// NewModel builds the TUI over an editor session.
func NewModel(ed *editor.Editor) Model {
	filter := textinput.New()
	filter.Placeholder = "filter plans"
	filter.CharLimit = 64

	return Model{
		editor: ed,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		filter: filter,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// activePlan is the selection the step cursor operates on.
func (m *Model) activePlan() (models.Plan, bool) {
	return m.editor.ActivePlan()
}

// clampStepCursor keeps the cursor inside the active plan's sequence
// after inserts, removes, and plan switches.
func (m *Model) clampStepCursor() {
	plan, ok := m.activePlan()
	if !ok || len(plan.Steps) == 0 {
		m.stepCursor = 0
		return
	}
	if m.stepCursor < 0 {
		m.stepCursor = 0
	}
	if m.stepCursor > len(plan.Steps)-1 {
		m.stepCursor = len(plan.Steps) - 1
	}
}

// Run starts the interactive editor.
func Run(ed *editor.Editor) error {
	p := tea.NewProgram(NewModel(ed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
