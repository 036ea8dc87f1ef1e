package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// projectsResult is the raw shape shared by /tools/projects and
// /stats/processing.
type projectsResult struct {
	Projects []domain.Project `json:"projects"`
}

// ListProjects returns the project reference list. The primary endpoint is
// /tools/projects; /stats/processing serves the same list and is used as a
// fallback when the primary fails.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := c.fetchProjects(ctx, "/tools/projects")
	if err == nil {
		return projects, nil
	}

	logger.Warn("Primary projects endpoint failed, trying fallback: %v", err)
	projects, ferr := c.fetchProjects(ctx, "/stats/processing")
	if ferr != nil {
		// Report the primary failure; the fallback is secondary detail.
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// fetchProjects fetches and decodes one projects endpoint. The result is
// either a bare project array or an object with a projects field.
func (c *Client) fetchProjects(ctx context.Context, path string) ([]domain.Project, error) {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding projects response: %w", err)
	}

	var projects []domain.Project
	if err := json.Unmarshal(envelope.Result, &projects); err == nil {
		return projects, nil
	}

	var result projectsResult
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, fmt.Errorf("decoding projects result: %w", err)
	}
	return result.Projects, nil
}

// docTypeEntry is one raw document type in the mappings response.
type docTypeEntry struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// DocumentTypeMappings returns the act -> type-id -> type mapping.
func (c *Client) DocumentTypeMappings(ctx context.Context) (domain.DocumentTypeMapping, error) {
	raw, err := c.do(ctx, http.MethodGet, "/stats/document-type-mappings", nil)
	if err != nil {
		return nil, err
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding mappings response: %w", err)
	}

	var wire map[string]map[string]docTypeEntry
	if err := json.Unmarshal(envelope.Result, &wire); err != nil {
		return nil, fmt.Errorf("decoding mappings result: %w", err)
	}

	mapping := make(domain.DocumentTypeMapping, len(wire))
	for act, types := range wire {
		converted := make(map[string]domain.DocumentType, len(types))
		for id, entry := range types {
			converted[id] = domain.DocumentType{
				ID:      id,
				Name:    entry.Name,
				Aliases: entry.Aliases,
			}
		}
		mapping[act] = converted
	}
	return mapping, nil
}

// strategyEntry is one raw strategy in the strategies response.
type strategyEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// strategiesResult is the raw /tools/search-strategies result.
type strategiesResult struct {
	Strategies      map[string]strategyEntry `json:"strategies"`
	DefaultStrategy string                   `json:"default_strategy"`
}

// SearchStrategies returns the server-advertised strategies. The server's
// own default strategy sorts first, the rest alphabetically by key for a
// stable presentation order.
func (c *Client) SearchStrategies(ctx context.Context) ([]domain.SearchStrategy, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tools/search-strategies", nil)
	if err != nil {
		return nil, err
	}

	var envelope resultEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding strategies response: %w", err)
	}

	var result strategiesResult
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, fmt.Errorf("decoding strategies result: %w", err)
	}

	strategies := make([]domain.SearchStrategy, 0, len(result.Strategies))
	for key, entry := range result.Strategies {
		strategies = append(strategies, domain.SearchStrategy{
			Key:         key,
			Name:        entry.Name,
			Description: entry.Description,
			Enabled:     entry.Enabled,
		})
	}

	sort.Slice(strategies, func(i, j int) bool {
		if (strategies[i].Key == result.DefaultStrategy) != (strategies[j].Key == result.DefaultStrategy) {
			return strategies[i].Key == result.DefaultStrategy
		}
		return strategies[i].Key < strategies[j].Key
	})

	return strategies, nil
}
