package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Filter     key.Binding
	NewPlan    key.Binding
	DeletePlan key.Binding
	AddStep    key.Binding
	RemoveStep key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	EditStep   key.Binding
	EditPlan   key.Binding
	Conclude   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous plan")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next plan")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous step")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next step")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter plans")),
		NewPlan:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new plan")),
		DeletePlan: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete plan")),
		AddStep:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add step")),
		RemoveStep: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove step")),
		MoveLeft:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move step left")),
		MoveRight:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move step right")),
		EditStep:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit step")),
		EditPlan:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "edit plan")),
		Conclude:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle concluded")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.EditStep, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Filter},
		{k.NewPlan, k.DeletePlan, k.EditPlan},
		{k.AddStep, k.RemoveStep, k.MoveLeft, k.MoveRight},
		{k.EditStep, k.Conclude, k.Help, k.Quit},
	}
}
