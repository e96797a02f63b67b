package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Submit    key.Binding
	Next      key.Binding
	Prev      key.Binding
	Up        key.Binding
	Down      key.Binding

	// root navigation, disabled on form screens
	Dashboard key.Binding
	Library   key.Binding
	Reports   key.Binding
	AddItem   key.Binding

	ToggleMode key.Binding
	Resend     key.Binding
	Bulk       key.Binding
	Save       key.Binding
	Template   key.Binding
	Filter     key.Binding
	Search     key.Binding
	Assign     key.Binding
	Report     key.Binding
	Status     key.Binding
	Delete     key.Binding
	NewProject key.Binding
	Export     key.Binding
	Reset      key.Binding
	Yes        key.Binding
	No         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),

		Dashboard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Library:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "library")),
		Reports:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reports")),
		AddItem:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),

		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sign up/sign in")),
		Resend:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resend code")),
		Bulk:       key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bulk upload")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Template:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "write template")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter status")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Assign:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "assign to job")),
		Report:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "item report")),
		Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		NewProject: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new project")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export yaml")),
		Reset:      key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "reset demo data")),
		Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) root() []key.Binding {
	return []key.Binding{k.Dashboard, k.Library, k.Reports, k.AddItem}
}
