package mcp

import (
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// ReferenceData serves the cached filter datasets.
	ReferenceData driving.ReferenceDataService

	// Feedback submits verdicts on search sessions.
	Feedback driving.FeedbackService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// ReferenceData and Feedback are optional; the matching resources and
	// tools degrade gracefully when absent.
	return nil
}
