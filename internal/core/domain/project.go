package domain

// Project is a reference-data entry used to populate the project filter.
type Project struct {
	// ID is the unique project identifier.
	ID string `json:"project_id"`

	// Name is the display name.
	Name string `json:"project_name"`
}

// DocumentType describes one document type within an act's mapping.
type DocumentType struct {
	// ID is the unique document type identifier.
	ID string

	// Name is the display name.
	Name string

	// Aliases are alternative names the type is known by.
	Aliases []string
}

// DocumentTypeMapping maps legislation act name to the document types defined
// under it, keyed by type ID. Mirrors the nested shape served by the API.
type DocumentTypeMapping map[string]map[string]DocumentType

// TypesForAct returns the document types defined under an act, or nil when the
// act is unknown.
func (m DocumentTypeMapping) TypesForAct(act string) map[string]DocumentType {
	return m[act]
}

// Lookup finds a document type by ID across all acts.
func (m DocumentTypeMapping) Lookup(typeID string) (DocumentType, bool) {
	for _, types := range m {
		if dt, ok := types[typeID]; ok {
			return dt, true
		}
	}
	return DocumentType{}, false
}
