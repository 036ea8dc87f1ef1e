package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
)

func TestLocator_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"latitude": 53.9171, "longitude": -122.7497}`)) //nolint:errcheck
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	pos, err := locator.Locate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 53.9171, pos.Latitude, 0.0001)
	assert.InDelta(t, -122.7497, pos.Longitude, 0.0001)
}

func TestLocator_Locate_ReusesRecentFix(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`{"latitude": 1, "longitude": 2}`)) //nolint:errcheck
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	ctx := context.Background()

	_, err := locator.Locate(ctx)
	require.NoError(t, err)
	_, err = locator.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestLocator_Locate_StaleFixRefetches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Write([]byte(`{"latitude": 1, "longitude": 2}`)) //nolint:errcheck
	}))
	defer server.Close()

	now := time.Now()
	clock := now
	locator := NewLocator().WithLookupURL(server.URL)
	locator.now = func() time.Time { return clock }
	ctx := context.Background()

	_, err := locator.Locate(ctx)
	require.NoError(t, err)

	clock = now.Add(FixMaxAge + time.Second)
	_, err = locator.Locate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLocator_Locate_ForbiddenMeansDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	_, err := locator.Locate(context.Background())
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestLocator_Locate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := locator.Locate(ctx)
	require.ErrorIs(t, err, domain.ErrLocationTimeout)
}

func TestLocator_Locate_ServiceErrorFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error": true, "reason": "quota exceeded"}`)) //nolint:errcheck
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	_, err := locator.Locate(context.Background())
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestLocator_Locate_NullIslandIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"latitude": 0, "longitude": 0}`)) //nolint:errcheck
	}))
	defer server.Close()

	locator := NewLocator().WithLookupURL(server.URL)
	_, err := locator.Locate(context.Background())
	require.ErrorIs(t, err, domain.ErrLocationUnavailable)
}

func TestGeocoder_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		w.Write([]byte(`{"address": {
			"city": "Prince George",
			"state": "British Columbia",
			"country": "Canada"
		}}`)) //nolint:errcheck
	}))
	defer server.Close()

	geocoder := NewGeocoder().WithReverseURL(server.URL)
	place, err := geocoder.Reverse(context.Background(), driven.Position{Latitude: 53.9, Longitude: -122.7})
	require.NoError(t, err)
	assert.Equal(t, "Prince George", place.City)
	assert.Equal(t, "British Columbia", place.Region)
	assert.Equal(t, "Canada", place.Country)
}

func TestGeocoder_Reverse_TownFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"address": {"town": "Smithers", "country": "Canada"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	geocoder := NewGeocoder().WithReverseURL(server.URL)
	place, err := geocoder.Reverse(context.Background(), driven.Position{})
	require.NoError(t, err)
	assert.Equal(t, "Smithers", place.City)
}

func TestGeocoder_Reverse_VillageFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"address": {"village": "Telkwa"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	geocoder := NewGeocoder().WithReverseURL(server.URL)
	place, err := geocoder.Reverse(context.Background(), driven.Position{})
	require.NoError(t, err)
	assert.Equal(t, "Telkwa", place.City)
}

func TestGeocoder_Reverse_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	geocoder := NewGeocoder().WithReverseURL(server.URL)
	_, err := geocoder.Reverse(context.Background(), driven.Position{})
	require.Error(t, err)
}
