package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_DisplayName(t *testing.T) {
	assert.Equal(t, "Inspection Record", Document{ID: "doc-1", Name: "Inspection Record"}.DisplayName())
	assert.Equal(t, "doc-1", Document{ID: "doc-1"}.DisplayName())
}

func TestDocument_Score(t *testing.T) {
	score := 0.87
	scored := Document{Score: &score}
	unscored := Document{}

	assert.True(t, scored.HasScore())
	assert.InDelta(t, 0.87, scored.ScoreValue(), 0.0001)

	assert.False(t, unscored.HasScore())
	assert.Zero(t, unscored.ScoreValue())
}

func TestDocumentTypeMapping_TypesForAct(t *testing.T) {
	m := DocumentTypeMapping{
		"2002 Act": {
			"1": {ID: "1", Name: "Certificate Package"},
		},
	}

	assert.NotNil(t, m.TypesForAct("2002 Act"))
	assert.Nil(t, m.TypesForAct("2018 Act"))
}

func TestDocumentTypeMapping_Lookup(t *testing.T) {
	m := DocumentTypeMapping{
		"2002 Act": {
			"1": {ID: "1", Name: "Certificate Package"},
		},
		"2018 Act": {
			"2": {ID: "2", Name: "Amendment", Aliases: []string{"Amendments"}},
		},
	}

	dt, ok := m.Lookup("2")
	assert.True(t, ok)
	assert.Equal(t, "Amendment", dt.Name)

	_, ok = m.Lookup("99")
	assert.False(t, ok)
}
