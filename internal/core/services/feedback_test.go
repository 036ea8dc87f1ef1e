package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

func TestFeedbackService_Submit(t *testing.T) {
	api := &mockSearchAPI{feedbackResp: &domain.FeedbackResponse{
		SessionID: "sess-1",
		Message:   "thanks",
	}}
	service := NewFeedbackService(api)

	resp, err := service.Submit(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		QueryText: "pipeline safety",
		Feedback:  domain.FeedbackUseful,
		Comments:  "spot on",
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, 1, api.feedbackCalls)
	assert.Equal(t, domain.FeedbackUseful, api.lastFeedback.Feedback)
}

func TestFeedbackService_Submit_InvalidVote(t *testing.T) {
	api := &mockSearchAPI{}
	service := NewFeedbackService(api)

	_, err := service.Submit(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		Feedback:  domain.FeedbackVote("thumbs_sideways"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, api.feedbackCalls)
}

func TestFeedbackService_Submit_EmptyResponseError(t *testing.T) {
	api := &mockSearchAPI{feedbackErr: domain.ErrEmptyFeedbackResponse}
	service := NewFeedbackService(api)

	_, err := service.Submit(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		Feedback:  domain.FeedbackNotUseful,
	})
	require.ErrorIs(t, err, domain.ErrEmptyFeedbackResponse)
}
