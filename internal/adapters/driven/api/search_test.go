package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

func TestClient_Search_MergesDocumentsThenChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search/query", r.URL.Path)
		w.Write([]byte(`{"result": {
			"response": "The answer.",
			"documents": [{"document_id": "a"}, {"document_id": "b"}],
			"document_chunks": [{"document_id": "c"}, {"document_id": "d"}],
			"sessionId": "sess-7"
		}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, "The answer.", resp.Answer)
	assert.Equal(t, "sess-7", resp.SessionID)
	require.Len(t, resp.Documents, 4)
	ids := make([]string, 0, 4)
	for _, d := range resp.Documents {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestClient_Search_MissingArraysYieldEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result": {}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)
	require.NotNil(t, resp.Documents)
	assert.Empty(t, resp.Documents)
}

func TestClient_Search_MalformedChunksKeepDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result": {
			"documents": [{"document_id": "a"}],
			"document_chunks": "not an array"
		}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "a", resp.Documents[0].ID)
}

func TestClient_Search_NullArraysYieldEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result": {"documents": null, "document_chunks": null}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)
	assert.Empty(t, resp.Documents)
}

func TestClient_Search_DefaultStrategyOmitsField(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"result": {}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)

	_, present := body["searchStrategy"]
	assert.False(t, present, "empty strategy must omit the field entirely")
}

func TestClient_Search_NamedStrategySent(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"result": {}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Search(context.Background(), domain.SearchRequest{Query: "q", Strategy: "semantic"})
	require.NoError(t, err)
	assert.Equal(t, "semantic", body["searchStrategy"])
}

func TestClient_SearchSimilar(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search/similar", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		w.Write([]byte(`{"result": {"documents": [{"document_id": "x"}]}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	docs, err := client.SearchSimilar(context.Background(), "doc-1", []string{"p-1"}, 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "x", docs[0].ID)
	assert.Equal(t, "doc-1", body["documentId"])
	assert.Equal(t, float64(5), body["limit"])
}

func TestClient_SubmitFeedback_UsesPatch(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.Write([]byte(`{"sessionId": "sess-1", "message": "recorded"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SubmitFeedback(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		Feedback:  domain.FeedbackUseful,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/search/feedback", path)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "recorded", resp.Message)
}

func TestClient_SubmitFeedback_EmptyBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// 200 with no body.
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SubmitFeedback(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		Feedback:  domain.FeedbackUseful,
	})
	require.ErrorIs(t, err, domain.ErrEmptyFeedbackResponse)
}

func TestClient_SubmitFeedback_WhitespaceBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("  \n ")) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SubmitFeedback(context.Background(), domain.FeedbackRequest{
		SessionID: "sess-1",
		Feedback:  domain.FeedbackNotUseful,
	})
	require.ErrorIs(t, err, domain.ErrEmptyFeedbackResponse)
}
