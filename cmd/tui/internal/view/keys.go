package view

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings shared by every view.
type KeyMap struct {
	Home         key.Binding
	Add          key.Binding
	Transactions key.Binding
	Reports      key.Binding
	PrevMonth    key.Binding
	NextMonth    key.Binding
	Quit         key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:         key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Transactions: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "history")),
		Reports:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reports")),
		PrevMonth:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev month")),
		NextMonth:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next month")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Add, k.Transactions, k.Reports, k.PrevMonth, k.NextMonth, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type addKeyMap struct {
	Next       key.Binding
	ToggleType key.Binding
	Category   key.Binding
	Save       key.Binding
	Back       key.Binding
}

func defaultAddKeyMap() addKeyMap {
	return addKeyMap{
		Next:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		ToggleType: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "expense/income")),
		Category:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select category")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k addKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.ToggleType, k.Category, k.Save, k.Back}
}

func (k addKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
