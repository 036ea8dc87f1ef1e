// Package search provides the main search view for the TUI: query input,
// filter sidebar, result list, and the feedback overlay.
package search

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/components/input"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/components/list"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/components/status"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/keymap"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/messages"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
)

// focusArea identifies which pane receives keyboard input.
type focusArea int

const (
	focusInput focusArea = iota
	focusResults
	focusFilters
)

// View represents the search view with input, filter sidebar, results list,
// and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	sidebar   *Sidebar
	statusbar *status.Bar

	searchService  driving.SearchService
	refDataService driving.ReferenceDataService
	feedback       driving.FeedbackService
	ctx            context.Context

	// cancelSearch aborts the in-flight search when a new one supersedes it.
	cancelSearch context.CancelFunc
	seq          int

	answer    string
	sessionID string
	lastQuery string

	feedbackForm *feedbackForm

	width  int
	height int
	ready  bool
	err    error
	focus  focusArea
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	refDataService driving.ReferenceDataService,
	feedback driving.FeedbackService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:         s,
		keymap:         km,
		input:          input.NewSearchInput(s),
		list:           list.NewResultList(s),
		sidebar:        NewSidebar(s),
		statusbar:      status.NewBar(s, km),
		searchService:  searchService,
		refDataService: refDataService,
		feedback:       feedback,
		ctx:            context.Background(),
		width:          80,
		height:         24,
		focus:          focusInput,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and starts loading the filter datasets.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadReferenceData())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ReferenceDataLoaded:
		v.sidebar.SetData(msg.Projects, msg.Mappings, msg.Strategies)
		return v, nil

	case messages.FeedbackSubmitted:
		v.handleFeedbackSubmitted(msg)
		return v, nil

	case messages.LocationChanged:
		v.statusbar.SetLocation(msg.Status)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward remaining messages to the input component (cursor blink).
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.feedbackForm != nil {
		return v.handleFeedbackKey(msg)
	}

	// Tab switches between the active pane and the filter sidebar.
	if msg.Type == tea.KeyTab {
		if v.focus == focusFilters {
			v.focus = focusInput
			v.statusbar.SetState(status.StateReady)
			return v, v.input.Focus()
		}
		v.focus = focusFilters
		v.input.Blur()
		v.statusbar.SetState(status.StateFilters)
		return v, nil
	}

	switch v.focus {
	case focusInput:
		return v.handleInputKey(msg)
	case focusResults:
		return v.handleResultsKey(msg)
	case focusFilters:
		return v.handleFiltersKey(msg)
	}
	return v, nil
}

// handleInputKey processes keys while the query input has focus.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return v, func() tea.Msg { return messages.Quit{} }

	case tea.KeyEnter:
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.focus = focusResults
		v.input.Blur()
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(query)
	default:
		// All other keys feed the text input.
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleResultsKey processes keys while the result list has focus.
func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.focus = focusInput
		v.statusbar.SetState(status.StateReady)
		return v, v.input.Focus()
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "n":
		v.focus = focusInput
		v.input.SetValue("")
		v.statusbar.SetState(status.StateReady)
		return v, v.input.Focus()
	case "f":
		if v.feedback != nil && v.sessionID != "" {
			v.feedbackForm = newFeedbackForm(v.styles, v.sessionID)
		} else {
			v.statusbar.SetMessage("No session to rate yet")
		}
	case "?":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// handleFiltersKey processes keys while the filter sidebar has focus.
func (v *View) handleFiltersKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.focus = focusInput
		v.statusbar.SetState(status.StateReady)
		return v, v.input.Focus()
	}

	// Enter re-runs the last query with the updated filters.
	if msg.Type == tea.KeyEnter {
		if v.lastQuery == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		return v, v.performSearch(v.lastQuery)
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.sidebar.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.sidebar.MoveDown()
		return v, nil
	case tea.KeySpace:
		v.sidebar.Toggle()
		return v, nil
	}

	switch msg.String() {
	case "k":
		v.sidebar.MoveUp()
	case "j":
		v.sidebar.MoveDown()
	case " ":
		v.sidebar.Toggle()
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// handleFeedbackKey processes keys while the feedback form is open.
func (v *View) handleFeedbackKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		v.feedbackForm = nil
		return v, nil
	}

	if msg.Type == tea.KeyEnter && v.feedbackForm.focus == focusVote {
		v.feedbackForm.submitting = true
		return v, v.submitFeedback()
	}

	consumed, cmd := v.feedbackForm.handleKey(msg)
	if consumed {
		return v, cmd
	}
	return v, nil
}

// performSearch executes a search, superseding any in-flight one.
func (v *View) performSearch(query string) tea.Cmd {
	if v.cancelSearch != nil {
		v.cancelSearch()
	}
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancelSearch = cancel

	v.seq++
	seq := v.seq
	v.lastQuery = query

	req := domain.SearchRequest{
		Query:           query,
		Strategy:        v.sidebar.StrategyKey(),
		ProjectIDs:      v.sidebar.ProjectIDs(),
		DocumentTypeIDs: v.sidebar.DocumentTypeIDs(),
	}

	return func() tea.Msg {
		resp, err := v.searchService.Search(ctx, req)
		if err != nil {
			return messages.SearchCompleted{Seq: seq, Err: err}
		}
		return messages.SearchCompleted{Seq: seq, Response: resp}
	}
}

// handleSearchCompleted processes a search response, dropping superseded ones.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}

	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.answer = msg.Response.Answer
	v.sessionID = msg.Response.SessionID
	v.list.SetDocuments(msg.Response.Documents)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(len(msg.Response.Documents))

	v.focus = focusResults
	v.input.Blur()
}

// handleFeedbackSubmitted processes the outcome of a feedback submission.
func (v *View) handleFeedbackSubmitted(msg messages.FeedbackSubmitted) {
	v.feedbackForm = nil

	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.statusbar.SetState(status.StateResults)
	if msg.Response != nil && msg.Response.Message != "" {
		v.statusbar.SetMessage(msg.Response.Message)
	} else {
		v.statusbar.SetMessage("Feedback submitted")
	}
}

// loadReferenceData fetches the filter datasets.
func (v *View) loadReferenceData() tea.Cmd {
	return func() tea.Msg {
		msg := messages.ReferenceDataLoaded{}

		projects, err := v.refDataService.Projects(v.ctx)
		if err != nil {
			msg.Err = err
		}
		msg.Projects = projects

		mappings, err := v.refDataService.DocumentTypeMappings(v.ctx)
		if err != nil && msg.Err == nil {
			msg.Err = err
		}
		msg.Mappings = mappings

		strategies, err := v.refDataService.Strategies(v.ctx)
		if err != nil && msg.Err == nil {
			msg.Err = err
		}
		msg.Strategies = strategies

		return msg
	}
}

// submitFeedback sends the feedback form contents.
func (v *View) submitFeedback() tea.Cmd {
	form := v.feedbackForm
	req := domain.FeedbackRequest{
		SessionID:       form.sessionID,
		QueryText:       v.lastQuery,
		ProjectIDs:      v.sidebar.ProjectIDs(),
		DocumentTypeIDs: v.sidebar.DocumentTypeIDs(),
		Feedback:        form.Vote(),
		Comments:        form.Comments(),
	}

	return func() tea.Msg {
		resp, err := v.feedback.Submit(v.ctx, req)
		return messages.FeedbackSubmitted{Response: resp, Err: err}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	sections = append(sections, v.styles.Title.Render("Epic Search"), "")
	v.input.SetFilterCount(v.sidebar.ActiveCount())
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.answer != "" {
		answer := v.styles.Border.Padding(0, 1).Width(v.mainWidth()).Render(v.answer)
		sections = append(sections, v.styles.Subtitle.Render("Answer"), answer, "")
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(v.mainWidth()).Render(v.list.View()),
		" ",
		v.sidebar.View(v.focus == focusFilters),
	)
	sections = append(sections, main)

	if v.feedbackForm != nil {
		sections = append(sections, "", v.feedbackForm.view())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// mainWidth returns the width of the results column.
func (v *View) mainWidth() int {
	w := v.width - sidebarWidth(v.width) - 2
	if w < 20 {
		w = 20
	}
	return w
}

// sidebarWidth allocates roughly a quarter of the terminal to the sidebar.
func sidebarWidth(total int) int {
	w := total / 4
	if w < 24 {
		w = 24
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(v.mainWidth(), height-12)
	v.sidebar.SetDimensions(sidebarWidth(width), height-12)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Answer returns the current answer text.
func (v *View) Answer() string {
	return v.answer
}

// SessionID returns the session of the most recent search.
func (v *View) SessionID() string {
	return v.sessionID
}

// Results returns the current result documents.
func (v *View) Results() []domain.Document {
	return v.list.Documents()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Sidebar returns the filter sidebar.
func (v *View) Sidebar() *Sidebar {
	return v.sidebar
}

// FeedbackOpen reports whether the feedback form is showing.
func (v *View) FeedbackOpen() bool {
	return v.feedbackForm != nil
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// Reset resets the view to initial input mode. In-flight searches are
// cancelled; toggled filters are kept.
func (v *View) Reset() {
	if v.cancelSearch != nil {
		v.cancelSearch()
		v.cancelSearch = nil
	}
	v.focus = focusInput
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetDocuments(nil)
	v.answer = ""
	v.sessionID = ""
	v.feedbackForm = nil
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focus == focusInput
}
