// Package tui provides an interactive terminal user interface for Epic Search.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// ReferenceData serves the cached datasets that populate the filter
	// sidebar.
	ReferenceData driving.ReferenceDataService

	// Location exposes the opt-in location enrichment state.
	Location driving.LocationService

	// Feedback submits verdicts on search sessions.
	Feedback driving.FeedbackService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	refData driving.ReferenceDataService,
) *Ports {
	return &Ports{
		Search:        search,
		ReferenceData: refData,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.ReferenceData == nil {
		return ErrMissingReferenceDataService
	}
	// Location and Feedback are optional; the status bar indicator and the
	// feedback form degrade gracefully when absent.
	return nil
}
