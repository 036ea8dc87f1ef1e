package domain

// Document is a single search result item returned by the EPIC search API.
// It is the canonical representation after response normalisation: hits from
// the `documents` and `document_chunks` arrays both collapse into this type.
type Document struct {
	// ID is the unique document identifier.
	ID string `json:"document_id"`

	// TypeID identifies the document type (links into DocumentTypeMapping).
	TypeID string `json:"document_type"`

	// Name is the human-readable document name.
	Name string `json:"document_name"`

	// PageNumber is the page the hit was found on, when known.
	PageNumber string `json:"page_number,omitempty"`

	// ProjectID links to the Project the document belongs to.
	ProjectID string `json:"project_id"`

	// ProjectName is the display name of the owning project.
	ProjectName string `json:"project_name"`

	// Content is the matched text content.
	Content string `json:"content"`

	// Score is the relevance score assigned by the server, when present.
	Score *float64 `json:"relevance_score,omitempty"`
}

// DisplayName returns the document name, falling back to the ID.
func (d Document) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// HasScore returns true if the server assigned a relevance score.
func (d Document) HasScore() bool {
	return d.Score != nil
}

// ScoreValue returns the relevance score, or 0 when absent.
func (d Document) ScoreValue() float64 {
	if d.Score == nil {
		return 0
	}
	return *d.Score
}
