package driving

import (
	"context"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// SearchService provides search capabilities to external actors (CLI, TUI,
// MCP server).
type SearchService interface {
	// Search submits a query with the selected strategy and filters and
	// returns the normalised response. Cancelling ctx aborts the request;
	// a caller superseding an in-flight search should cancel it.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// SearchSimilar returns documents similar to the given document.
	SearchSimilar(ctx context.Context, documentID string, projectIDs []string, limit int) ([]domain.Document, error)
}
