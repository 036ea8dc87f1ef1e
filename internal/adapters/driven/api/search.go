package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchAPI = (*Client)(nil)

// resultEnvelope is the outer wrapper every endpoint shares.
type resultEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// searchResult is the raw /search/query result. The documents and
// document_chunks arrays are independently optional and may be malformed;
// both are decoded defensively.
type searchResult struct {
	Response       string          `json:"response"`
	Documents      json.RawMessage `json:"documents"`
	DocumentChunks json.RawMessage `json:"document_chunks"`
	SessionID      string          `json:"sessionId"`
}

// Search submits a query and normalises the response.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/search/query", req)
	if err != nil {
		return nil, err
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	var result searchResult
	if len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, &result); err != nil {
			return nil, fmt.Errorf("decoding search result: %w", err)
		}
	}

	docs := documentsFromResult(result)
	if len(docs) == 0 {
		logger.Warn("Search returned no documents")
	}

	return &domain.SearchResponse{
		Answer:    result.Response,
		Documents: docs,
		SessionID: result.SessionID,
	}, nil
}

// documentsFromResult merges the two optional source arrays into a single
// ordered list: documents first, then document_chunks, relative order
// preserved within each. Missing or malformed fields count as empty; this
// never fails.
func documentsFromResult(result searchResult) []domain.Document {
	docs := decodeDocumentArray(result.Documents, "documents")
	chunks := decodeDocumentArray(result.DocumentChunks, "document_chunks")
	return append(docs, chunks...)
}

// decodeDocumentArray decodes one source array, treating anything that is
// not a document array as empty.
func decodeDocumentArray(raw json.RawMessage, field string) []domain.Document {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.Document{}
	}

	var docs []domain.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		logger.Warn("Malformed %s field in search response, treating as empty: %v", field, err)
		return []domain.Document{}
	}
	return docs
}

// similarRequest is the /search/similar request body.
type similarRequest struct {
	DocumentID string   `json:"documentId"`
	ProjectIDs []string `json:"projectIds,omitempty"`
	Limit      int      `json:"limit"`
}

// similarResult is the raw /search/similar result.
type similarResult struct {
	Documents json.RawMessage `json:"documents"`
}

// SearchSimilar returns documents similar to the given document.
func (c *Client) SearchSimilar(
	ctx context.Context, documentID string, projectIDs []string, limit int,
) ([]domain.Document, error) {
	req := similarRequest{
		DocumentID: documentID,
		ProjectIDs: projectIDs,
		Limit:      limit,
	}

	raw, err := c.do(ctx, http.MethodPost, "/search/similar", req)
	if err != nil {
		return nil, err
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding similar response: %w", err)
	}

	var result similarResult
	if len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, &result); err != nil {
			return nil, fmt.Errorf("decoding similar result: %w", err)
		}
	}

	return decodeDocumentArray(result.Documents, "documents"), nil
}

// SubmitFeedback records a verdict for an earlier search session.
func (c *Client) SubmitFeedback(
	ctx context.Context, req domain.FeedbackRequest,
) (*domain.FeedbackResponse, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/search/feedback", req)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.ErrEmptyFeedbackResponse
	}

	var resp domain.FeedbackResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding feedback response: %w", err)
	}
	return &resp, nil
}
