package driven

import "context"

// Position is a raw latitude/longitude fix before enrichment.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Place is the reverse-geocoded name for a position.
type Place struct {
	City    string
	Region  string
	Country string
}

// Geolocator acquires the user's current position. Implementations apply
// their own acquisition timeout and may serve a recent fix instead of
// performing a fresh lookup.
type Geolocator interface {
	// Locate returns the current position. Timeout and cancellation flow
	// through ctx; mapped failures use domain.ErrLocationTimeout and
	// domain.ErrLocationUnavailable.
	Locate(ctx context.Context) (Position, error)
}

// ReverseGeocoder converts a position into a human-readable place name.
// Failures are non-fatal to callers: location data is simply left without
// city/region/country.
type ReverseGeocoder interface {
	// Reverse resolves the place for a position.
	Reverse(ctx context.Context, pos Position) (Place, error)
}
