package domain

// DefaultStrategyKey is the pseudo-strategy presented to users when the server
// should choose the retrieval algorithm. Selecting it omits the strategy field
// from the search request entirely.
const DefaultStrategyKey = "Default"

// SearchStrategy is a server-advertised retrieval algorithm (semantic, keyword,
// hybrid, etc). The available set is fetched from the API and cached; the
// "Default" pseudo-strategy is always prepended client-side.
type SearchStrategy struct {
	// Key is the wire value sent in search requests. Empty for the Default
	// pseudo-strategy.
	Key string

	// Name is the human-readable strategy name.
	Name string

	// Description explains what the strategy does.
	Description string

	// Enabled indicates the server currently accepts this strategy.
	Enabled bool
}

// IsDefault returns true for the client-side Default pseudo-strategy.
func (s SearchStrategy) IsDefault() bool {
	return s.Key == ""
}

// DefaultStrategy returns the Default pseudo-strategy. Its empty Key causes
// the strategy field to be omitted so the server applies its own default.
func DefaultStrategy() SearchStrategy {
	return SearchStrategy{
		Key:         "",
		Name:        DefaultStrategyKey,
		Description: "Let the server pick the retrieval strategy",
		Enabled:     true,
	}
}

// FallbackStrategies is the strategy list used when the server cannot be
// reached and no cached list exists. It contains only the Default entry.
func FallbackStrategies() []SearchStrategy {
	return []SearchStrategy{DefaultStrategy()}
}

// RankingOptions tunes server-side result ranking.
type RankingOptions struct {
	// MinScore drops results scoring below this threshold.
	MinScore float64 `json:"minScore"`

	// TopN caps the number of returned results.
	TopN int `json:"topN"`
}

// SearchRequest is an immutable value object constructed per search action.
type SearchRequest struct {
	// Query is the user's search text.
	Query string `json:"query"`

	// Strategy is the retrieval strategy key. Empty means server default and
	// the field is omitted from the wire request.
	Strategy string `json:"searchStrategy,omitempty"`

	// ProjectIDs filters results to specific projects.
	ProjectIDs []string `json:"projectIds,omitempty"`

	// DocumentTypeIDs filters results to specific document types.
	DocumentTypeIDs []string `json:"documentTypeIds,omitempty"`

	// Ranking tunes server-side ranking, when set.
	Ranking *RankingOptions `json:"ranking,omitempty"`

	// Agentic enables the server's agentic query pipeline.
	Agentic bool `json:"agentic,omitempty"`

	// Location attaches the user's enriched location, when the feature is
	// enabled and fresh data exists.
	Location *LocationData `json:"userLocation,omitempty"`
}

// SearchResponse is the normalised result of a search.
type SearchResponse struct {
	// Answer is the narrative answer synthesised by the server.
	Answer string `json:"response"`

	// Documents is the merged, ordered result list: entries from the raw
	// `documents` array first, then `document_chunks`, relative order
	// preserved within each.
	Documents []Document `json:"documents"`

	// SessionID correlates this search to later feedback. Assigned by the
	// server, never generated client-side.
	SessionID string `json:"sessionId,omitempty"`
}
