package services

import (
	"context"
	"fmt"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService submits fire-and-forget feedback correlated to a search
// session. No retry: the caller decides whether to show an error and allow
// resubmission.
type FeedbackService struct {
	api driven.SearchAPI
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(api driven.SearchAPI) *FeedbackService {
	return &FeedbackService{api: api}
}

// Submit sends the feedback to the API.
func (s *FeedbackService) Submit(
	ctx context.Context, req domain.FeedbackRequest,
) (*domain.FeedbackResponse, error) {
	if !req.Feedback.IsValid() {
		return nil, fmt.Errorf("%w: feedback vote %q", domain.ErrInvalidInput, req.Feedback)
	}

	logger.Section("Feedback Submission")
	logger.Debug("Session: %s, vote: %s", req.SessionID, req.Feedback)

	resp, err := s.api.SubmitFeedback(ctx, req)
	if err != nil {
		logger.Warn("Feedback submission failed: %v", err)
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	logger.Info("Feedback acknowledged: session %s", resp.SessionID)
	return resp, nil
}
