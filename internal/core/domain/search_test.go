package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequest_EmptyStrategyOmittedFromJSON(t *testing.T) {
	raw, err := json.Marshal(SearchRequest{Query: "water licence"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.NotContains(t, body, "searchStrategy")
	assert.Equal(t, "water licence", body["query"])
}

func TestSearchRequest_NamedStrategySerialised(t *testing.T) {
	raw, err := json.Marshal(SearchRequest{Query: "q", Strategy: "semantic"})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "semantic", body["searchStrategy"])
}

func TestDefaultStrategy(t *testing.T) {
	s := DefaultStrategy()
	assert.True(t, s.IsDefault())
	assert.Empty(t, s.Key)
	assert.Equal(t, DefaultStrategyKey, s.Name)
	assert.True(t, s.Enabled)

	assert.False(t, SearchStrategy{Key: "keyword"}.IsDefault())
}

func TestFallbackStrategies(t *testing.T) {
	strategies := FallbackStrategies()
	require.Len(t, strategies, 1)
	assert.True(t, strategies[0].IsDefault())
}
