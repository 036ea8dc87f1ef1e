// Package geo implements the geolocation ports over public HTTP services:
// an IP-geolocation endpoint for the position fix and a nominatim-style
// endpoint for reverse geocoding.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure Locator implements the interface.
var _ driven.Geolocator = (*Locator)(nil)

// FixMaxAge is how long a position fix is reused before a fresh lookup.
const FixMaxAge = 5 * time.Minute

// DefaultLookupURL is the default IP-geolocation endpoint.
const DefaultLookupURL = "https://ipapi.co/json/"

// Locator acquires a coarse position from an IP-geolocation service.
// A recent fix is served from memory instead of re-querying the service.
type Locator struct {
	mu         sync.Mutex
	httpClient *http.Client
	lookupURL  string
	now        func() time.Time

	lastFix   *driven.Position
	lastFixAt time.Time
}

// NewLocator creates a locator against the default lookup service.
func NewLocator() *Locator {
	return &Locator{
		httpClient: &http.Client{},
		lookupURL:  DefaultLookupURL,
		now:        time.Now,
	}
}

// WithLookupURL overrides the geolocation endpoint.
func (l *Locator) WithLookupURL(u string) *Locator {
	l.lookupURL = u
	return l
}

// WithHTTPClient overrides the HTTP client. Useful for testing.
func (l *Locator) WithHTTPClient(hc *http.Client) *Locator {
	l.httpClient = hc
	return l
}

// lookupResponse is the raw IP-geolocation response.
type lookupResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

// Locate returns the current position, reusing a fix younger than FixMaxAge.
func (l *Locator) Locate(ctx context.Context) (driven.Position, error) {
	l.mu.Lock()
	if l.lastFix != nil && l.now().Sub(l.lastFixAt) < FixMaxAge {
		fix := *l.lastFix
		l.mu.Unlock()
		logger.Debug("Reusing position fix (age %s)", time.Since(l.lastFixAt))
		return fix, nil
	}
	l.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.lookupURL, nil)
	if err != nil {
		return driven.Position{}, fmt.Errorf("building lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return driven.Position{}, domain.ErrLocationTimeout
		}
		return driven.Position{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return driven.Position{}, domain.ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return driven.Position{}, fmt.Errorf("%w: lookup status %d", domain.ErrLocationUnavailable, resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return driven.Position{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if parsed.Error {
		return driven.Position{}, fmt.Errorf("%w: %s", domain.ErrLocationUnavailable, parsed.Reason)
	}
	if parsed.Latitude == 0 && parsed.Longitude == 0 {
		return driven.Position{}, domain.ErrLocationUnavailable
	}

	fix := driven.Position{Latitude: parsed.Latitude, Longitude: parsed.Longitude}

	l.mu.Lock()
	l.lastFix = &fix
	l.lastFixAt = l.now()
	l.mu.Unlock()

	logger.Debug("Position fix: %.4f,%.4f", fix.Latitude, fix.Longitude)
	return fix, nil
}

// Ensure Geocoder implements the interface.
var _ driven.ReverseGeocoder = (*Geocoder)(nil)

// DefaultReverseURL is the default reverse-geocoding endpoint.
const DefaultReverseURL = "https://nominatim.openstreetmap.org/reverse"

// Geocoder resolves place names from coordinates.
type Geocoder struct {
	httpClient *http.Client
	reverseURL string
}

// NewGeocoder creates a geocoder against the default reverse endpoint.
func NewGeocoder() *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{},
		reverseURL: DefaultReverseURL,
	}
}

// WithReverseURL overrides the reverse-geocoding endpoint.
func (g *Geocoder) WithReverseURL(u string) *Geocoder {
	g.reverseURL = u
	return g
}

// WithHTTPClient overrides the HTTP client. Useful for testing.
func (g *Geocoder) WithHTTPClient(hc *http.Client) *Geocoder {
	g.httpClient = hc
	return g
}

// reverseResponse is the raw nominatim-style reverse-geocoding response.
type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse resolves the place name for a position.
func (g *Geocoder) Reverse(ctx context.Context, pos driven.Position) (driven.Place, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", pos.Latitude))
	q.Set("lon", fmt.Sprintf("%f", pos.Longitude))
	q.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.reverseURL+"?"+q.Encode(), nil)
	if err != nil {
		return driven.Place{}, fmt.Errorf("building reverse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return driven.Place{}, fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return driven.Place{}, fmt.Errorf("reverse geocode: status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return driven.Place{}, fmt.Errorf("decoding reverse response: %w", err)
	}

	city := parsed.Address.City
	if city == "" {
		city = parsed.Address.Town
	}
	if city == "" {
		city = parsed.Address.Village
	}

	return driven.Place{
		City:    city,
		Region:  parsed.Address.State,
		Country: parsed.Address.Country,
	}, nil
}
