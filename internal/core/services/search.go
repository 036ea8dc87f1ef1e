package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSimilarLimit caps similar-document results when the caller passes
// no limit.
const DefaultSimilarLimit = 10

// SearchService orchestrates query submission against the EPIC search API.
// It issues a single network call per search with no client-side retry;
// failures propagate to the caller for display.
type SearchService struct {
	api      driven.SearchAPI
	location driving.LocationService
}

// NewSearchService creates a new search service.
// The location service is optional (can be nil); when present and enabled,
// fresh location data is attached to outgoing searches.
func NewSearchService(api driven.SearchAPI, location driving.LocationService) *SearchService {
	return &SearchService{
		api:      api,
		location: location,
	}
}

// Search submits the request and returns the normalised response.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", req.Query)

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchResponse{Documents: []domain.Document{}}, nil
	}

	if req.Strategy != "" {
		logger.Debug("Strategy: %s", req.Strategy)
	} else {
		logger.Debug("Strategy: server default")
	}
	if len(req.ProjectIDs) > 0 {
		logger.Debug("Project filter: %v", req.ProjectIDs)
	}
	if len(req.DocumentTypeIDs) > 0 {
		logger.Debug("Document type filter: %v", req.DocumentTypeIDs)
	}

	// Opportunistic enrichment: only a fresh, enabled location is attached.
	if req.Location == nil && s.location != nil {
		if loc := s.location.Current(ctx); loc != nil {
			logger.Debug("Attaching location context: %s", loc.City)
			req.Location = loc
		}
	}

	resp, err := s.api.Search(ctx, req)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("Results: %d documents, session %s", len(resp.Documents), resp.SessionID)
	return resp, nil
}

// SearchSimilar returns documents similar to the given document.
func (s *SearchService) SearchSimilar(
	ctx context.Context, documentID string, projectIDs []string, limit int,
) ([]domain.Document, error) {
	if documentID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	logger.Section("Similar Documents")
	logger.Debug("Document: %s, limit: %d", documentID, limit)

	docs, err := s.api.SearchSimilar(ctx, documentID, projectIDs, limit)
	if err != nil {
		logger.Warn("Similar search failed: %v", err)
		return nil, fmt.Errorf("search similar: %w", err)
	}

	logger.Info("Similar results: %d documents", len(docs))
	return docs, nil
}
