// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// QueryChanged is sent when the search query input changes.
type QueryChanged struct {
	Query string
}

// SearchRequested is a command to perform a search.
type SearchRequested struct {
	Request domain.SearchRequest
}

// SearchCompleted carries a search response back to the model. Seq matches
// the sequence number assigned when the search started; responses from
// superseded searches carry a stale Seq and are dropped.
type SearchCompleted struct {
	Seq      int
	Response *domain.SearchResponse
	Err      error
}

// ResultSelected is sent when a search result is selected.
type ResultSelected struct {
	Index int
}

// ReferenceDataLoaded carries the filter datasets from the reference data
// service. Individual errors are non-fatal; a dataset that failed to load is
// simply empty.
type ReferenceDataLoaded struct {
	Projects   []domain.Project
	Mappings   domain.DocumentTypeMapping
	Strategies []domain.SearchStrategy
	Err        error
}

// LocationChanged carries a location status snapshot after consent or
// acquisition changes.
type LocationChanged struct {
	Status domain.LocationStatus
}

// FeedbackSubmitted signals a feedback submission finished.
type FeedbackSubmitted struct {
	Response *domain.FeedbackResponse
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input, filters, and results view.
	ViewSearch ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
