package driven

import (
	"context"
	"time"
)

// CacheStore persists cached values alongside the time they were fetched.
// Values are stored as raw JSON so a single store serves every dataset.
// Staleness policy lives in the services, not here: Get returns whatever
// entry exists and its fetch time, and the caller decides whether it is
// still usable.
type CacheStore interface {
	// Get retrieves the entry under key. Returns domain.ErrNotFound when
	// no entry exists.
	Get(ctx context.Context, key string) (value []byte, fetchedAt time.Time, err error)

	// Set stores value under key, recording fetchedAt.
	Set(ctx context.Context, key string, value []byte, fetchedAt time.Time) error

	// Clear removes the entry under key. Clearing a missing key is not an
	// error.
	Clear(ctx context.Context, key string) error
}
