// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI. Filters, Toggle, and Feedback
// drive the filter sidebar and the session rating form; the rest are shared
// navigation.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Back      key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Cancel    key.Binding
	NewSearch key.Binding
	Filters   key.Binding
	Toggle    key.Binding
	Feedback  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Search:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NewSearch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new search")),
		Filters:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filters")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Feedback:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feedback")),
	}
}

// ShortHelp returns the minimal hint set for the idle status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ResultsHelp returns the hint set shown while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Filters, k.Feedback, k.Back}
}

// FiltersHelp returns the hint set shown while the sidebar has focus.
func (k *KeyMap) FiltersHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.Filters, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Search, k.Filters, k.Toggle},
		{k.Feedback, k.Back, k.Cancel},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
