package driven

import (
	"context"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// SearchAPI is the HTTP boundary to the EPIC search service. Implementations
// normalise heterogeneous wire shapes into domain types; callers never see
// raw response envelopes.
type SearchAPI interface {
	// Search submits a query and returns the normalised response.
	// Documents and document chunks are merged into a single ordered list.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// SearchSimilar returns documents similar to the given document.
	SearchSimilar(ctx context.Context, documentID string, projectIDs []string, limit int) ([]domain.Document, error)

	// SubmitFeedback records a verdict for an earlier search session.
	// An empty response body is an error.
	SubmitFeedback(ctx context.Context, req domain.FeedbackRequest) (*domain.FeedbackResponse, error)

	// ListProjects returns the project reference list.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// DocumentTypeMappings returns the act -> type-id -> type mapping.
	DocumentTypeMappings(ctx context.Context) (domain.DocumentTypeMapping, error)

	// SearchStrategies returns the server-advertised strategies.
	// The Default pseudo-strategy is added by the reference data service,
	// not here.
	SearchStrategies(ctx context.Context) ([]domain.SearchStrategy, error)
}
