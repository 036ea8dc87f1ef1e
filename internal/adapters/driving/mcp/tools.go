package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query           string   `json:"query" jsonschema:"the search query to run against project documents"`
	Strategy        string   `json:"strategy,omitempty" jsonschema:"search strategy key (omit or 'Default' for the server default)"`
	ProjectIDs      []string `json:"project_ids,omitempty" jsonschema:"restrict the search to these project IDs"`
	DocumentTypeIDs []string `json:"document_type_ids,omitempty" jsonschema:"restrict the search to these document type IDs"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Answer    string               `json:"answer,omitempty"`
	SessionID string               `json:"session_id,omitempty"`
	Results   []SearchResultOutput `json:"results"`
	Count     int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	Name       string  `json:"name"`
	TypeID     string  `json:"type_id,omitempty"`
	Project    string  `json:"project,omitempty"`
	PageNumber string  `json:"page_number,omitempty"`
	Score      float64 `json:"score,omitempty"`
	Content    string  `json:"content,omitempty"`
}

// SimilarInput is the input schema for the similar_documents tool.
type SimilarInput struct {
	DocumentID string   `json:"document_id" jsonschema:"the document to find similar documents for"`
	ProjectIDs []string `json:"project_ids,omitempty" jsonschema:"restrict the search to these project IDs"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// FeedbackInput is the input schema for the submit_feedback tool.
type FeedbackInput struct {
	SessionID string `json:"session_id" jsonschema:"the search session the feedback refers to"`
	Vote      string `json:"vote" jsonschema:"one of useful, not_useful, neutral"`
	Comments  string `json:"comments,omitempty" jsonschema:"free-text remarks"`
	Query     string `json:"query,omitempty" jsonschema:"the original query text, for context"`
}

// FeedbackOutput is the output schema for the submit_feedback tool.
type FeedbackOutput struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search project documents and get an answer with supporting results",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_documents",
		Description: "Find documents similar to a given document",
	}, s.handleSimilar)

	if s.ports.Feedback != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "submit_feedback",
			Description: "Submit feedback on a previous search session",
		}, s.handleFeedback)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	strategy := input.Strategy
	if strategy == domain.DefaultStrategyKey {
		strategy = ""
	}

	req := domain.SearchRequest{
		Query:           input.Query,
		Strategy:        strategy,
		ProjectIDs:      input.ProjectIDs,
		DocumentTypeIDs: input.DocumentTypeIDs,
	}

	resp, err := s.ports.Search.Search(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Answer:    resp.Answer,
		SessionID: resp.SessionID,
		Results:   resultsOutput(resp.Documents),
		Count:     len(resp.Documents),
	}

	return nil, output, nil
}

// handleSimilar handles the similar_documents tool invocation.
func (s *Server) handleSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SimilarInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	docs, err := s.ports.Search.SearchSimilar(ctx, input.DocumentID, input.ProjectIDs, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: resultsOutput(docs),
		Count:   len(docs),
	}

	return nil, output, nil
}

// handleFeedback handles the submit_feedback tool invocation.
func (s *Server) handleFeedback(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FeedbackInput,
) (*mcp.CallToolResult, FeedbackOutput, error) {
	vote := domain.FeedbackVote(input.Vote)
	if !vote.IsValid() {
		return nil, FeedbackOutput{}, errors.New("vote must be one of useful, not_useful, neutral")
	}

	req := domain.FeedbackRequest{
		SessionID: input.SessionID,
		QueryText: input.Query,
		Feedback:  vote,
		Comments:  input.Comments,
	}

	resp, err := s.ports.Feedback.Submit(ctx, req)
	if err != nil {
		return nil, FeedbackOutput{}, err
	}

	return nil, FeedbackOutput{SessionID: resp.SessionID, Message: resp.Message}, nil
}

func resultsOutput(docs []domain.Document) []SearchResultOutput {
	results := make([]SearchResultOutput, len(docs))
	for i := range docs {
		results[i] = SearchResultOutput{
			DocumentID: docs[i].ID,
			Name:       docs[i].DisplayName(),
			TypeID:     docs[i].TypeID,
			Project:    docs[i].ProjectName,
			PageNumber: docs[i].PageNumber,
			Score:      docs[i].ScoreValue(),
			Content:    docs[i].Content,
		}
	}
	return results
}
