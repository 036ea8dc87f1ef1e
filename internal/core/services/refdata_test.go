package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/adapters/driven/storage/memory"
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockSearchAPI implements driven.SearchAPI for testing.
type mockSearchAPI struct {
	searchResp  *domain.SearchResponse
	searchErr   error
	searchCalls int
	lastRequest domain.SearchRequest

	similarDocs []domain.Document
	similarErr  error

	feedbackResp  *domain.FeedbackResponse
	feedbackErr   error
	feedbackCalls int
	lastFeedback  domain.FeedbackRequest

	projects     []domain.Project
	projectsErr  error
	projectCalls int

	mappings     domain.DocumentTypeMapping
	mappingsErr  error
	mappingCalls int

	strategies    []domain.SearchStrategy
	strategiesErr error
	strategyCalls int
}

func (m *mockSearchAPI) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.searchCalls++
	m.lastRequest = req
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.searchResp != nil {
		return m.searchResp, nil
	}
	return &domain.SearchResponse{Documents: []domain.Document{}}, nil
}

func (m *mockSearchAPI) SearchSimilar(_ context.Context, _ string, _ []string, _ int) ([]domain.Document, error) {
	if m.similarErr != nil {
		return nil, m.similarErr
	}
	return m.similarDocs, nil
}

func (m *mockSearchAPI) SubmitFeedback(_ context.Context, req domain.FeedbackRequest) (*domain.FeedbackResponse, error) {
	m.feedbackCalls++
	m.lastFeedback = req
	if m.feedbackErr != nil {
		return nil, m.feedbackErr
	}
	if m.feedbackResp != nil {
		return m.feedbackResp, nil
	}
	return &domain.FeedbackResponse{}, nil
}

func (m *mockSearchAPI) ListProjects(_ context.Context) ([]domain.Project, error) {
	m.projectCalls++
	if m.projectsErr != nil {
		return nil, m.projectsErr
	}
	return m.projects, nil
}

func (m *mockSearchAPI) DocumentTypeMappings(_ context.Context) (domain.DocumentTypeMapping, error) {
	m.mappingCalls++
	if m.mappingsErr != nil {
		return nil, m.mappingsErr
	}
	return m.mappings, nil
}

func (m *mockSearchAPI) SearchStrategies(_ context.Context) ([]domain.SearchStrategy, error) {
	m.strategyCalls++
	if m.strategiesErr != nil {
		return nil, m.strategiesErr
	}
	return m.strategies, nil
}

// --- Tests ---

func TestReferenceDataService_Projects_FetchAndCache(t *testing.T) {
	api := &mockSearchAPI{projects: []domain.Project{
		{ID: "p-1", Name: "Coastal GasLink"},
		{ID: "p-2", Name: "Site C"},
	}}
	service := NewReferenceDataService(api, memory.NewCacheStore())
	ctx := context.Background()

	projects, err := service.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 1, api.projectCalls)

	// Second call is served from cache, no further network calls.
	projects, err = service.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Equal(t, 1, api.projectCalls)
}

func TestReferenceDataService_Projects_FreshCacheSkipsFetcher(t *testing.T) {
	api := &mockSearchAPI{projects: []domain.Project{{ID: "p-1", Name: "One"}}}
	cache := memory.NewCacheStore()
	service := NewReferenceDataService(api, cache)
	ctx := context.Background()

	_, err := service.Projects(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, api.projectCalls)

	// Even with the API now failing, the fresh cache answers.
	api.projectsErr = errors.New("boom")
	projects, err := service.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{{ID: "p-1", Name: "One"}}, projects)
	assert.Equal(t, 1, api.projectCalls)
}

func TestReferenceDataService_StaleOnError(t *testing.T) {
	now := time.Now()
	clock := now
	api := &mockSearchAPI{projects: []domain.Project{{ID: "p-1", Name: "One"}}}
	service := NewReferenceDataService(api, memory.NewCacheStore()).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	_, err := service.Projects(ctx)
	require.NoError(t, err)

	// Expire the entry and make the fetch fail: the stale copy is served.
	clock = now.Add(2 * time.Hour)
	api.projectsErr = errors.New("api down")

	projects, err := service.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{{ID: "p-1", Name: "One"}}, projects)
	assert.Equal(t, 2, api.projectCalls)
}

func TestReferenceDataService_ExpiredCacheRefetches(t *testing.T) {
	now := time.Now()
	clock := now
	api := &mockSearchAPI{projects: []domain.Project{{ID: "p-1", Name: "One"}}}
	service := NewReferenceDataService(api, memory.NewCacheStore()).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	_, err := service.Projects(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, api.projectCalls)

	clock = now.Add(RefDataTTL + time.Minute)
	api.projects = []domain.Project{{ID: "p-1", Name: "One"}, {ID: "p-2", Name: "Two"}}

	projects, err := service.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Equal(t, 2, api.projectCalls)
}

func TestReferenceDataService_Projects_EmptyFallback(t *testing.T) {
	api := &mockSearchAPI{projectsErr: errors.New("api down")}
	service := NewReferenceDataService(api, memory.NewCacheStore())

	projects, err := service.Projects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.NotNil(t, projects)
}

func TestReferenceDataService_DocumentTypeMappings_ErrorPropagates(t *testing.T) {
	api := &mockSearchAPI{mappingsErr: errors.New("api down")}
	service := NewReferenceDataService(api, memory.NewCacheStore())

	_, err := service.DocumentTypeMappings(context.Background())
	require.Error(t, err)
}

func TestReferenceDataService_DocumentTypeMappings_Cached(t *testing.T) {
	api := &mockSearchAPI{mappings: domain.DocumentTypeMapping{
		"2002 Act": {
			"dt-1": {ID: "dt-1", Name: "Inspection Record"},
		},
	}}
	service := NewReferenceDataService(api, memory.NewCacheStore())
	ctx := context.Background()

	mappings, err := service.DocumentTypeMappings(ctx)
	require.NoError(t, err)
	require.Contains(t, mappings, "2002 Act")

	_, err = service.DocumentTypeMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, api.mappingCalls)
}

func TestReferenceDataService_Strategies_DefaultPrepended(t *testing.T) {
	api := &mockSearchAPI{strategies: []domain.SearchStrategy{
		{Key: "semantic", Name: "Semantic", Enabled: true},
	}}
	service := NewReferenceDataService(api, memory.NewCacheStore())

	strategies, err := service.Strategies(context.Background())
	require.NoError(t, err)
	require.Len(t, strategies, 2)
	assert.True(t, strategies[0].IsDefault())
	assert.Equal(t, "semantic", strategies[1].Key)
}

func TestReferenceDataService_Strategies_FallbackOnError(t *testing.T) {
	api := &mockSearchAPI{strategiesErr: errors.New("api down")}
	service := NewReferenceDataService(api, memory.NewCacheStore())

	strategies, err := service.Strategies(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, strategies)
	assert.True(t, strategies[0].IsDefault())
}

func TestReferenceDataService_NoFetchDeduplication(t *testing.T) {
	// Two sequential misses after expiry both reach the network; the
	// service intentionally does not de-duplicate in-flight fetches.
	now := time.Now()
	clock := now
	api := &mockSearchAPI{strategies: []domain.SearchStrategy{{Key: "s", Enabled: true}}}
	service := NewReferenceDataService(api, memory.NewCacheStore()).
		WithClock(func() time.Time { return clock }).
		WithTTL(0)
	ctx := context.Background()

	_, err := service.Strategies(ctx)
	require.NoError(t, err)
	_, err = service.Strategies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, api.strategyCalls)
}
