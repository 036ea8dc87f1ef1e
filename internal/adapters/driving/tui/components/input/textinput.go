// Package input provides the query input component for the TUI.
package input

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
)

// SearchInput wraps a bubbles textinput with a label and an active-filter
// badge so users can see that sidebar filters will constrain the query.
type SearchInput struct {
	textinput   textinput.Model
	styles      *styles.Styles
	width       int
	filterCount int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about project documents..."
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the labelled input with the filter badge.
func (s *SearchInput) View() string {
	parts := []string{
		s.styles.Title.Render("Search: "),
		s.styles.InputField.Render(s.textinput.View()),
	}
	if s.filterCount > 0 {
		parts = append(parts, s.styles.Chip.Render(fmt.Sprintf("%d filters", s.filterCount)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// SetFilterCount sets the number of active filters shown in the badge.
func (s *SearchInput) SetFilterCount(n int) {
	s.filterCount = n
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
