package driving

import (
	"context"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// ReferenceDataService serves the cached reference datasets that populate
// search filters. Each dataset is fetched at most once per TTL window; a
// stale cached copy is preferred over surfacing a fetch failure.
type ReferenceDataService interface {
	// Projects returns the project list. Falls back to an empty list when
	// the API fails and no cache exists.
	Projects(ctx context.Context) ([]domain.Project, error)

	// DocumentTypeMappings returns the act -> type mapping. Fetch failures
	// without a cached copy propagate to the caller.
	DocumentTypeMappings(ctx context.Context) (domain.DocumentTypeMapping, error)

	// Strategies returns the server strategies with the Default
	// pseudo-strategy prepended. Falls back to the built-in fallback list
	// when the API fails and no cache exists.
	Strategies(ctx context.Context) ([]domain.SearchStrategy, error)
}
