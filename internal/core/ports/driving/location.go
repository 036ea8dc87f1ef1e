package driving

import (
	"context"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
)

// LocationService manages the opt-in location enrichment lifecycle: consent,
// acquisition, reverse geocoding, caching, and external consent revocation.
type LocationService interface {
	// Enable turns the feature on and immediately attempts acquisition.
	// Returns the acquired location, or an error describing why acquisition
	// failed (the feature stays enabled unless permission was denied).
	Enable(ctx context.Context) (*domain.LocationData, error)

	// Disable turns the feature off and clears any cached location.
	Disable(ctx context.Context) error

	// Refresh clears the cached location and re-requests. Only meaningful
	// when enabled and permission is granted or unknown.
	Refresh(ctx context.Context) (*domain.LocationData, error)

	// Current returns the cached location when enabled and not expired,
	// otherwise nil. Never triggers a network lookup.
	Current(ctx context.Context) *domain.LocationData

	// Status returns a snapshot for presentation.
	Status(ctx context.Context) domain.LocationStatus

	// Subscribe registers for status change notifications. The returned
	// cancel function deterministically unsubscribes and closes the channel.
	Subscribe() (<-chan domain.LocationStatus, func())
}
