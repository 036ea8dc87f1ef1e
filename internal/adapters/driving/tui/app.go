package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/messages"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/styles"
	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/views/search"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// searchView is the search view component.
	searchView *search.View

	// locationCh receives location status snapshots, nil when the location
	// service is absent.
	locationCh <-chan domain.LocationStatus

	// unsubscribe tears down the location subscription.
	unsubscribe func()

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	searchView := search.NewView(s, nil, ports.Search, ports.ReferenceData, ports.Feedback)

	app := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		searchView:  searchView,
		currentView: messages.ViewSearch,
	}

	if ports.Location != nil {
		app.locationCh, app.unsubscribe = ports.Location.Subscribe()
	}

	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("Epic Search"),
		a.searchView.Init(),
	}

	if a.ports.Location != nil {
		cmds = append(cmds, a.initialLocation(), a.waitForLocation())
	}

	return tea.Batch(cmds...)
}

// initialLocation pushes the current location snapshot into the model.
func (a *App) initialLocation() tea.Cmd {
	return func() tea.Msg {
		return messages.LocationChanged{Status: a.ports.Location.Status(a.ctx)}
	}
}

// waitForLocation blocks on the subscription channel and converts each
// snapshot into a message. It re-arms itself after every delivery.
func (a *App) waitForLocation() tea.Cmd {
	return func() tea.Msg {
		status, ok := <-a.locationCh
		if !ok {
			return nil
		}
		return messages.LocationChanged{Status: status}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.teardown()
			return a, tea.Quit
		}

		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc || msg.String() == "q" || msg.String() == "?" {
				a.currentView = messages.ViewSearch
			}
			return a, nil
		}

		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.LocationChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		// Re-arm the subscription listener.
		return a, tea.Batch(cmd, a.waitForLocation())

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.Quit:
		a.teardown()
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd
	}

	// Forward other messages (search, reference data, feedback outcomes)
	// to the search view.
	a.searchView, cmd = a.searchView.Update(msg)
	a.err = a.searchView.Err()
	return a, cmd
}

// teardown releases the location subscription.
func (a *App) teardown() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSearch:
		return a.searchView.View()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Search:
  (type)      Enter search query
  enter       Submit search
  tab         Toggle filter sidebar

Results:
  j/k, ↑/↓    Navigate results
  n           New search
  f           Rate this search
  q           Quit

Filters:
  j/k, ↑/↓    Navigate entries
  space       Toggle entry
  enter       Re-run search with filters

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SearchView returns the search view component.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
