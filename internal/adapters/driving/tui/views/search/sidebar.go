package search

import (
	"sort"
	"strings"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// itemKind identifies which filter section a sidebar entry belongs to.
type itemKind int

const (
	itemProject itemKind = iota
	itemDocType
	itemStrategy
)

// sidebarItem is one selectable row in the filter sidebar.
type sidebarItem struct {
	kind  itemKind
	id    string
	label string
}

// Sidebar is the filter panel: project and document type checkboxes plus a
// single-select strategy list.
type Sidebar struct {
	styles *styles.Styles

	items    []sidebarItem
	selected int

	projects   map[string]bool
	docTypes   map[string]bool
	strategyID string

	width  int
	height int
}

// NewSidebar creates an empty filter sidebar.
func NewSidebar(s *styles.Styles) *Sidebar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Sidebar{
		styles:   s,
		projects: make(map[string]bool),
		docTypes: make(map[string]bool),
		width:    30,
		height:   20,
	}
}

// SetData rebuilds the sidebar rows from the reference datasets. Existing
// selections for entries that still exist are preserved.
func (s *Sidebar) SetData(
	projects []domain.Project,
	mappings domain.DocumentTypeMapping,
	strategies []domain.SearchStrategy,
) {
	items := make([]sidebarItem, 0, len(projects)+len(strategies))

	for _, p := range projects {
		items = append(items, sidebarItem{kind: itemProject, id: p.ID, label: p.Name})
	}

	for _, act := range sortedActs(mappings) {
		types := mappings.TypesForAct(act)
		for _, id := range sortedTypeIDs(types) {
			items = append(items, sidebarItem{kind: itemDocType, id: id, label: types[id].Name})
		}
	}

	for _, st := range strategies {
		if !st.Enabled {
			continue
		}
		label := st.Name
		if label == "" {
			label = st.Key
		}
		items = append(items, sidebarItem{kind: itemStrategy, id: st.Key, label: label})
	}

	s.items = items
	if s.selected >= len(items) {
		s.selected = 0
	}
	s.pruneSelections()
}

// pruneSelections drops toggles for entries no longer present.
func (s *Sidebar) pruneSelections() {
	known := make(map[itemKind]map[string]bool)
	for _, it := range s.items {
		if known[it.kind] == nil {
			known[it.kind] = make(map[string]bool)
		}
		known[it.kind][it.id] = true
	}

	for id := range s.projects {
		if !known[itemProject][id] {
			delete(s.projects, id)
		}
	}
	for id := range s.docTypes {
		if !known[itemDocType][id] {
			delete(s.docTypes, id)
		}
	}
	if s.strategyID != "" && !known[itemStrategy][s.strategyID] {
		s.strategyID = ""
	}
}

// MoveUp moves the cursor up.
func (s *Sidebar) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown moves the cursor down.
func (s *Sidebar) MoveDown() {
	if s.selected < len(s.items)-1 {
		s.selected++
	}
}

// Toggle flips the entry under the cursor. Projects and document types are
// multi-select; strategies are single-select and toggling the active one
// reverts to the default.
func (s *Sidebar) Toggle() {
	if s.selected < 0 || s.selected >= len(s.items) {
		return
	}

	it := s.items[s.selected]
	switch it.kind {
	case itemProject:
		if s.projects[it.id] {
			delete(s.projects, it.id)
		} else {
			s.projects[it.id] = true
		}
	case itemDocType:
		if s.docTypes[it.id] {
			delete(s.docTypes, it.id)
		} else {
			s.docTypes[it.id] = true
		}
	case itemStrategy:
		if s.strategyID == it.id {
			s.strategyID = ""
		} else {
			s.strategyID = it.id
		}
	}
}

// ProjectIDs returns the toggled project filters, sorted for stable requests.
func (s *Sidebar) ProjectIDs() []string {
	return sortedKeys(s.projects)
}

// DocumentTypeIDs returns the toggled document type filters, sorted.
func (s *Sidebar) DocumentTypeIDs() []string {
	return sortedKeys(s.docTypes)
}

// StrategyKey returns the selected strategy key, empty for the default.
func (s *Sidebar) StrategyKey() string {
	if s.strategyID == domain.DefaultStrategyKey {
		return ""
	}
	return s.strategyID
}

// ActiveCount returns how many filters are toggled.
func (s *Sidebar) ActiveCount() int {
	n := len(s.projects) + len(s.docTypes)
	if s.StrategyKey() != "" {
		n++
	}
	return n
}

// Reset clears all toggles.
func (s *Sidebar) Reset() {
	s.projects = make(map[string]bool)
	s.docTypes = make(map[string]bool)
	s.strategyID = ""
	s.selected = 0
}

// SetDimensions sets the sidebar dimensions.
func (s *Sidebar) SetDimensions(width, height int) {
	s.width = width
	s.height = height
}

// View renders the sidebar.
func (s *Sidebar) View(focused bool) string {
	lines := make([]string, 0, len(s.items)+6)
	lines = append(lines, s.styles.Subtitle.Render("Filters"))

	if len(s.items) == 0 {
		lines = append(lines, s.styles.Muted.Render("Loading..."))
		return strings.Join(lines, "\n")
	}

	var lastKind itemKind = -1
	for i, it := range s.items {
		if it.kind != lastKind {
			lines = append(lines, "", s.styles.Muted.Render(sectionTitle(it.kind)))
			lastKind = it.kind
		}

		mark := "[ ]"
		if s.checked(it) {
			mark = "[x]"
		}
		if it.kind == itemStrategy {
			mark = "( )"
			if s.checked(it) {
				mark = "(o)"
			}
		}

		label := it.label
		maxLen := s.width - 8
		if maxLen < 8 {
			maxLen = 8
		}
		if len(label) > maxLen {
			label = label[:maxLen-3] + "..."
		}

		row := mark + " " + label
		if focused && i == s.selected {
			lines = append(lines, s.styles.Selected.Render("> "+row))
		} else {
			lines = append(lines, s.styles.Normal.Render("  "+row))
		}
	}

	return strings.Join(lines, "\n")
}

// checked reports whether the entry is toggled on.
func (s *Sidebar) checked(it sidebarItem) bool {
	switch it.kind {
	case itemProject:
		return s.projects[it.id]
	case itemDocType:
		return s.docTypes[it.id]
	case itemStrategy:
		if s.strategyID == "" {
			return it.id == "" || it.id == domain.DefaultStrategyKey
		}
		return s.strategyID == it.id
	}
	return false
}

func sectionTitle(k itemKind) string {
	switch k {
	case itemProject:
		return "Projects"
	case itemDocType:
		return "Document types"
	case itemStrategy:
		return "Strategy"
	default:
		return ""
	}
}

func sortedActs(m domain.DocumentTypeMapping) []string {
	acts := make([]string, 0, len(m))
	for act := range m {
		acts = append(acts, act)
	}
	sort.Strings(acts)
	return acts
}

func sortedTypeIDs(types map[string]domain.DocumentType) []string {
	ids := make([]string, 0, len(types))
	for id := range types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
