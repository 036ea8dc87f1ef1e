package cli

import (
	"context"
	"time"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

type mockSearchService struct {
	response    *domain.SearchResponse
	similar     []domain.Document
	err         error
	lastRequest domain.SearchRequest
	lastDocID   string
	lastLimit   int
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockSearchService) SearchSimilar(_ context.Context, documentID string, _ []string, limit int) ([]domain.Document, error) {
	m.lastDocID = documentID
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.similar, nil
}

type mockRefDataService struct {
	projects   []domain.Project
	mappings   domain.DocumentTypeMapping
	strategies []domain.SearchStrategy
	err        error
}

func (m *mockRefDataService) Projects(context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockRefDataService) DocumentTypeMappings(context.Context) (domain.DocumentTypeMapping, error) {
	return m.mappings, m.err
}

func (m *mockRefDataService) Strategies(context.Context) ([]domain.SearchStrategy, error) {
	return m.strategies, m.err
}

type mockFeedbackService struct {
	response    *domain.FeedbackResponse
	err         error
	lastRequest domain.FeedbackRequest
}

func (m *mockFeedbackService) Submit(_ context.Context, req domain.FeedbackRequest) (*domain.FeedbackResponse, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type mockLocationService struct {
	location *domain.LocationData
	status   domain.LocationStatus
	err      error
}

func (m *mockLocationService) Enable(context.Context) (*domain.LocationData, error) {
	return m.location, m.err
}

func (m *mockLocationService) Disable(context.Context) error {
	return m.err
}

func (m *mockLocationService) Refresh(context.Context) (*domain.LocationData, error) {
	return m.location, m.err
}

func (m *mockLocationService) Current(context.Context) *domain.LocationData {
	return m.location
}

func (m *mockLocationService) Status(context.Context) domain.LocationStatus {
	return m.status
}

func (m *mockLocationService) Subscribe() (<-chan domain.LocationStatus, func()) {
	ch := make(chan domain.LocationStatus)
	return ch, func() { close(ch) }
}

// setupTestServices wires mock services into the command tree and returns
// the mocks plus a cleanup that restores the previous wiring.
func setupTestServices() (*mockSearchService, *mockRefDataService, *mockLocationService, *mockFeedbackService, func()) {
	prevSearch := searchService
	prevRefData := refDataService
	prevLocation := locationService
	prevFeedback := feedbackService

	score := 0.88
	searchMock := &mockSearchService{
		response: &domain.SearchResponse{
			Answer:    "The certificate was amended in 2019.",
			SessionID: "sess-77",
			Documents: []domain.Document{
				{
					ID:          "doc-1",
					Name:        "Amendment Decision",
					ProjectName: "Site C",
					PageNumber:  "4",
					Content:     "The amendment allows the realignment of the transmission corridor.",
					Score:       &score,
				},
			},
		},
		similar: []domain.Document{{ID: "doc-2", Name: "Related Order"}},
	}
	refDataMock := &mockRefDataService{
		projects: []domain.Project{{ID: "p1", Name: "Site C"}},
		mappings: domain.DocumentTypeMapping{
			"2002 Act": {"1": {ID: "1", Name: "Certificate Package"}},
		},
		strategies: []domain.SearchStrategy{
			domain.DefaultStrategy(),
			{Key: "semantic", Name: "Semantic", Description: "Embedding search", Enabled: true},
		},
	}
	locationMock := &mockLocationService{
		location: &domain.LocationData{
			Latitude:  48.4284,
			Longitude: -123.3656,
			City:      "Victoria",
			Region:    "British Columbia",
			Country:   "Canada",
			Timestamp: time.Now(),
		},
		status: domain.LocationStatus{Enabled: true, Permission: domain.PermissionGranted},
	}
	feedbackMock := &mockFeedbackService{response: &domain.FeedbackResponse{Message: "Feedback recorded, thanks."}}

	SetServices(&Services{
		Search:        searchMock,
		ReferenceData: refDataMock,
		Location:      locationMock,
		Feedback:      feedbackMock,
	})

	cleanup := func() {
		searchService = prevSearch
		refDataService = prevRefData
		locationService = prevLocation
		feedbackService = prevFeedback
	}
	return searchMock, refDataMock, locationMock, feedbackMock, cleanup
}
