package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driving/tui/messages"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

type stubSearchService struct{}

func (stubSearchService) Search(context.Context, domain.SearchRequest) (*domain.SearchResponse, error) {
	return &domain.SearchResponse{SessionID: "sess-1"}, nil
}

func (stubSearchService) SearchSimilar(context.Context, string, []string, int) ([]domain.Document, error) {
	return nil, nil
}

type stubRefDataService struct{}

func (stubRefDataService) Projects(context.Context) ([]domain.Project, error) {
	return nil, nil
}

func (stubRefDataService) DocumentTypeMappings(context.Context) (domain.DocumentTypeMapping, error) {
	return nil, nil
}

func (stubRefDataService) Strategies(context.Context) ([]domain.SearchStrategy, error) {
	return domain.FallbackStrategies(), nil
}

type stubLocationService struct {
	ch           chan domain.LocationStatus
	unsubscribed bool
}

func (s *stubLocationService) Enable(context.Context) (*domain.LocationData, error) { return nil, nil }
func (s *stubLocationService) Disable(context.Context) error                        { return nil }
func (s *stubLocationService) Refresh(context.Context) (*domain.LocationData, error) {
	return nil, nil
}
func (s *stubLocationService) Current(context.Context) *domain.LocationData { return nil }
func (s *stubLocationService) Status(context.Context) domain.LocationStatus {
	return domain.LocationStatus{Enabled: true, Permission: domain.PermissionGranted}
}

func (s *stubLocationService) Subscribe() (<-chan domain.LocationStatus, func()) {
	s.ch = make(chan domain.LocationStatus, 1)
	return s.ch, func() {
		if !s.unsubscribed {
			s.unsubscribed = true
			close(s.ch)
		}
	}
}

func newTestApp(t *testing.T) (*App, *stubLocationService) {
	t.Helper()

	loc := &stubLocationService{}
	ports := NewPorts(stubSearchService{}, stubRefDataService{})
	ports.Location = loc

	app, err := NewApp(ports)
	require.NoError(t, err)
	return app, loc
}

func TestNewApp_RequiresSearchService(t *testing.T) {
	_, err := NewApp(&Ports{ReferenceData: stubRefDataService{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewApp_RequiresReferenceDataService(t *testing.T) {
	_, err := NewApp(&Ports{Search: stubSearchService{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingReferenceDataService)
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app, _ := newTestApp(t)
	assert.False(t, app.Ready())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)

	assert.True(t, app.Ready())
	assert.True(t, app.SearchView().Ready())
}

func TestApp_ViewChangedSwitchesToHelp(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Help")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}

func TestApp_QuitUnsubscribesLocation(t *testing.T) {
	app, loc := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.True(t, loc.unsubscribed)
}

func TestApp_LocationChangedRearmsListener(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetDimensions(100, 40)

	status := domain.LocationStatus{
		Enabled:    true,
		Permission: domain.PermissionGranted,
		Location:   &domain.LocationData{City: "Victoria"},
	}
	_, cmd := app.Update(messages.LocationChanged{Status: status})
	require.NotNil(t, cmd, "subscription listener should be re-armed")

	assert.Contains(t, app.SearchView().View(), "Victoria")
}

func TestApp_WaitForLocationDeliversSnapshot(t *testing.T) {
	app, loc := newTestApp(t)

	loc.ch <- domain.LocationStatus{Enabled: true}
	msg := app.waitForLocation()()

	changed, ok := msg.(messages.LocationChanged)
	require.True(t, ok)
	assert.True(t, changed.Status.Enabled)
}
