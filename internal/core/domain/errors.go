package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIUnavailable indicates the search API could not be reached.
	ErrAPIUnavailable = errors.New("search API unavailable")

	// ErrEmptyFeedbackResponse indicates the feedback endpoint returned an
	// empty body, which the API contract treats as a failure.
	ErrEmptyFeedbackResponse = errors.New("empty response from feedback API")

	// Location errors.

	// ErrLocationDisabled indicates the location feature is switched off.
	ErrLocationDisabled = errors.New("location disabled")

	// ErrPermissionDenied indicates the user refused location lookups.
	// Denial is durable: the feature is disabled until re-enabled explicitly.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrLocationTimeout indicates the geolocation lookup timed out.
	ErrLocationTimeout = errors.New("location request timed out")

	// ErrLocationUnavailable indicates no position could be determined.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
