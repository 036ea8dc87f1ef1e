package driving

import (
	"context"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// FeedbackService submits user verdicts about earlier search sessions.
// Fire-and-forget: no retry, the caller decides whether to resubmit.
type FeedbackService interface {
	// Submit sends the feedback. An empty response body from the API is
	// an error.
	Submit(ctx context.Context, req domain.FeedbackRequest) (*domain.FeedbackResponse, error)
}
