// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// ResultList displays search result documents in a navigable list. Each entry
// shows the document name with metadata chips (project, type, page, score)
// and a content snippet.
type ResultList struct {
	docs     []domain.Document
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		docs:     nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			r.MoveUp()
		case "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.docs) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.docs)*3+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.docs)))
	lines = append(lines, header, "")

	// Each result occupies three lines (name, chips, snippet).
	visibleCount := (r.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.docs) {
		end = len(r.docs)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderDocument(i, &r.docs[i]))
	}

	return strings.Join(lines, "\n")
}

// renderDocument formats a single result document.
func (r *ResultList) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := doc.DisplayName()
	maxNameLen := r.width - 12
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	var nameLine string
	if index == r.selected {
		nameLine = r.styles.Selected.Render(indicator + name)
	} else {
		nameLine = r.styles.Normal.Render(indicator + name)
	}

	chipLine := "  " + r.renderChips(doc)

	snippet := strings.TrimSpace(doc.Content)
	maxSnippetLen := r.width - 6
	if maxSnippetLen < 20 {
		maxSnippetLen = 20
	}
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen-3] + "..."
	}
	snippetLine := r.styles.Muted.Render("    " + snippet)

	return nameLine + "\n" + chipLine + "\n" + snippetLine
}

// renderChips builds the metadata chips for a document.
func (r *ResultList) renderChips(doc *domain.Document) string {
	chips := make([]string, 0, 4)

	if doc.ProjectName != "" {
		chips = append(chips, r.styles.Chip.Render(doc.ProjectName))
	}
	if doc.TypeID != "" {
		chips = append(chips, r.styles.Chip.Render(doc.TypeID))
	}
	if doc.PageNumber != "" {
		chips = append(chips, r.styles.Chip.Render("p."+doc.PageNumber))
	}
	if doc.HasScore() {
		chips = append(chips, r.styles.Chip.Render(fmt.Sprintf("%.2f", doc.ScoreValue())))
	}

	return strings.Join(chips, " ")
}

// SetDocuments updates the result list.
func (r *ResultList) SetDocuments(docs []domain.Document) {
	r.docs = docs
	r.selected = 0
}

// Documents returns the current result documents.
func (r *ResultList) Documents() []domain.Document {
	return r.docs
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.docs) {
		r.selected = index
	}
}

// SelectedDocument returns the currently selected result, or nil if none.
func (r *ResultList) SelectedDocument() *domain.Document {
	if len(r.docs) == 0 || r.selected < 0 || r.selected >= len(r.docs) {
		return nil
	}
	return &r.docs[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.docs)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.docs)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.docs) == 0
}
