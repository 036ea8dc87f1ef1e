package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Epic Search resources.
	uriScheme = "epicsearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing projects.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "List of searchable projects",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)

	// Static resource for listing search strategies.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "strategies",
		Name:        "strategies",
		Description: "Available search strategies",
		MIMEType:    "application/json",
	}, s.handleStrategiesResource)

	// Template for document types under a specific act.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "document-types/{act}",
		Name:        "document-types",
		Description: "Document types defined for a specific act",
		MIMEType:    "application/json",
	}, s.handleDocumentTypesResource)
}

// handleProjectsResource returns the list of searchable projects.
func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.ReferenceData == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	projects, err := s.ports.ReferenceData.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling projects: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleStrategiesResource returns the available search strategies.
func (s *Server) handleStrategiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.ReferenceData == nil {
		return emptyJSONResource(req.Params.URI), nil
	}

	strategies, err := s.ports.ReferenceData.Strategies(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing strategies: %w", err)
	}

	data, err := json.MarshalIndent(strategies, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling strategies: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// handleDocumentTypesResource returns the document types for one act.
func (s *Server) handleDocumentTypesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.ReferenceData == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	act := extractAct(req.Params.URI)
	if act == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	mappings, err := s.ports.ReferenceData.DocumentTypeMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching document type mappings: %w", err)
	}

	types := mappings.TypesForAct(act)
	if types == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(types, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document types: %w", err)
	}

	return jsonResource(req.Params.URI, data), nil
}

// extractAct extracts the act from a URI like epicsearch://document-types/{act}.
func extractAct(uri string) string {
	const prefix = uriScheme + "document-types/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

func emptyJSONResource(uri string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
