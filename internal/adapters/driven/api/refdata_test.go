package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

func TestClient_ListProjects_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/projects", r.URL.Path)
		w.Write([]byte(`{"result": [
			{"project_id": "p-1", "project_name": "One"},
			{"project_id": "p-2", "project_name": "Two"}
		]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p-1", projects[0].ID)
	assert.Equal(t, "One", projects[0].Name)
}

func TestClient_ListProjects_WrappedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result": {"projects": [
			{"project_id": "p-1", "project_name": "One"}
		]}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p-1", projects[0].ID)
}

func TestClient_ListProjects_FallbackEndpoint(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/tools/projects" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"result": {"projects": [
			{"project_id": "p-9", "project_name": "Fallback"}
		]}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p-9", projects[0].ID)
	assert.Equal(t, []string{"/tools/projects", "/stats/processing"}, paths)
}

func TestClient_ListProjects_BothEndpointsFailReportsPrimary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message": "primary down"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary down")
}

func TestClient_DocumentTypeMappings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats/document-type-mappings", r.URL.Path)
		w.Write([]byte(`{"result": {
			"2002 Act": {
				"dt-1": {"name": "Inspection Record", "aliases": ["Inspection"]},
				"dt-2": {"name": "Order"}
			},
			"2018 Act": {
				"dt-3": {"name": "Amendment"}
			}
		}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	mappings, err := client.DocumentTypeMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, mappings, 2)

	types := mappings.TypesForAct("2002 Act")
	require.NotNil(t, types)
	assert.Equal(t, "Inspection Record", types["dt-1"].Name)
	assert.Equal(t, []string{"Inspection"}, types["dt-1"].Aliases)
	assert.Equal(t, "dt-1", types["dt-1"].ID)

	dt, ok := mappings.Lookup("dt-3")
	require.True(t, ok)
	assert.Equal(t, "Amendment", dt.Name)
}

func TestClient_SearchStrategies_DefaultSortsFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/search-strategies", r.URL.Path)
		w.Write([]byte(`{"result": {
			"strategies": {
				"keyword": {"name": "Keyword", "enabled": true},
				"semantic": {"name": "Semantic", "enabled": true},
				"agentic": {"name": "Agentic", "enabled": false}
			},
			"default_strategy": "semantic"
		}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL)
	strategies, err := client.SearchStrategies(context.Background())
	require.NoError(t, err)
	require.Len(t, strategies, 3)

	assert.Equal(t, "semantic", strategies[0].Key)
	assert.Equal(t, "agentic", strategies[1].Key)
	assert.Equal(t, "keyword", strategies[2].Key)
	assert.False(t, strategies[1].Enabled)
}

func TestClient_SearchStrategies_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.SearchStrategies(context.Background())
	require.ErrorIs(t, err, domain.ErrAPIUnavailable)
}
