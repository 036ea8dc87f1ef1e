package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure ReferenceDataService implements the interface.
var _ driving.ReferenceDataService = (*ReferenceDataService)(nil)

// RefDataTTL is how long cached reference data stays fresh. All three
// datasets share it.
const RefDataTTL = time.Hour

// Cache keys for the reference datasets.
const (
	KeyProjects     = "epic_search_projects"
	KeyDocTypes     = "epic_search_document_type_mappings"
	KeyStrategies   = "epic_search_strategies"
	KeyUserLocation = "epic_search_user_location"
)

// ReferenceDataService serves projects, document type mappings, and search
// strategies from a TTL cache backed by a CacheStore. Fetches are not
// de-duplicated: reference data is idempotent and small, so two concurrent
// misses may both hit the network.
type ReferenceDataService struct {
	api   driven.SearchAPI
	cache driven.CacheStore
	ttl   time.Duration
	now   func() time.Time
}

// NewReferenceDataService creates a reference data service with the default
// one-hour TTL.
func NewReferenceDataService(api driven.SearchAPI, cache driven.CacheStore) *ReferenceDataService {
	return &ReferenceDataService{
		api:   api,
		cache: cache,
		ttl:   RefDataTTL,
		now:   time.Now,
	}
}

// WithTTL overrides the cache TTL. Useful for testing.
func (s *ReferenceDataService) WithTTL(ttl time.Duration) *ReferenceDataService {
	s.ttl = ttl
	return s
}

// WithClock overrides the time source. Useful for testing.
func (s *ReferenceDataService) WithClock(now func() time.Time) *ReferenceDataService {
	s.now = now
	return s
}

// Projects returns the project list. On fetch failure without any cached
// copy it degrades to an empty list rather than raising.
func (s *ReferenceDataService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := getOrFetch(ctx, s, KeyProjects, s.api.ListProjects)
	if err != nil {
		logger.Warn("Projects unavailable, defaulting to empty list: %v", err)
		return []domain.Project{}, nil
	}
	return projects, nil
}

// DocumentTypeMappings returns the act -> type mapping. Fetch failures
// without a cached copy propagate: filters that depend on the mapping
// cannot render without it.
func (s *ReferenceDataService) DocumentTypeMappings(ctx context.Context) (domain.DocumentTypeMapping, error) {
	mapping, err := getOrFetch(ctx, s, KeyDocTypes, s.api.DocumentTypeMappings)
	if err != nil {
		return nil, fmt.Errorf("document type mappings: %w", err)
	}
	return mapping, nil
}

// Strategies returns the server strategies with the Default pseudo-strategy
// prepended. On fetch failure without any cached copy it degrades to the
// built-in fallback list.
func (s *ReferenceDataService) Strategies(ctx context.Context) ([]domain.SearchStrategy, error) {
	strategies, err := getOrFetch(ctx, s, KeyStrategies, s.api.SearchStrategies)
	if err != nil {
		logger.Warn("Strategies unavailable, using fallback list: %v", err)
		return domain.FallbackStrategies(), nil
	}
	return append([]domain.SearchStrategy{domain.DefaultStrategy()}, strategies...), nil
}

// getOrFetch implements the fetch-or-serve-from-cache-with-TTL contract:
// a fresh cache entry short-circuits the fetch entirely; on fetch failure a
// stale entry is served with a warning; only when no entry exists at all
// does the failure propagate.
func getOrFetch[T any](
	ctx context.Context, s *ReferenceDataService, key string, fetch func(context.Context) (T, error),
) (T, error) {
	var zero T

	raw, fetchedAt, cacheErr := s.cache.Get(ctx, key)
	if cacheErr == nil && s.now().Sub(fetchedAt) < s.ttl {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			logger.Debug("Cache hit for %s (age %s)", key, s.now().Sub(fetchedAt))
			return cached, nil
		}
		logger.Warn("Corrupt cache entry for %s, refetching", key)
	} else if cacheErr != nil && !errors.Is(cacheErr, domain.ErrNotFound) {
		logger.Warn("Cache read failed for %s: %v", key, cacheErr)
	}

	value, err := fetch(ctx)
	if err != nil {
		// Stale-on-error: a stale entry beats surfacing the failure.
		if cacheErr == nil {
			var stale T
			if uerr := json.Unmarshal(raw, &stale); uerr == nil {
				logger.Warn("Fetch failed for %s, serving stale cache (age %s): %v",
					key, s.now().Sub(fetchedAt), err)
				return stale, nil
			}
		}
		return zero, fmt.Errorf("fetch %s: %w", key, err)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, encoded, s.now()); err != nil {
		// A write failure only costs the next call a refetch.
		logger.Warn("Cache write failed for %s: %v", key, err)
	}

	return value, nil
}
