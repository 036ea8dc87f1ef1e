package domain

import "time"

// LocationTTL is how long cached location data stays valid.
const LocationTTL = 30 * time.Minute

// PermissionState tracks the user's location consent as observed by the
// location service. Denied is durable: it disables the feature and clears
// any cached location.
type PermissionState string

// Available permission states.
const (
	// PermissionUnknown means consent has not been requested yet.
	PermissionUnknown PermissionState = "unknown"

	// PermissionGranted means the user allowed location lookups.
	PermissionGranted PermissionState = "granted"

	// PermissionDenied means the user refused location lookups.
	PermissionDenied PermissionState = "denied"
)

// IsValid returns true if the permission state is recognised.
func (p PermissionState) IsValid() bool {
	switch p {
	case PermissionUnknown, PermissionGranted, PermissionDenied:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PermissionState) String() string {
	return string(p)
}

// LocationData is the user's enriched location. It is owned exclusively by
// the location service: never mutated in place, only replaced wholesale.
type LocationData struct {
	// Latitude in decimal degrees.
	Latitude float64 `json:"latitude"`

	// Longitude in decimal degrees.
	Longitude float64 `json:"longitude"`

	// City from reverse geocoding, when available.
	City string `json:"city,omitempty"`

	// Region from reverse geocoding, when available.
	Region string `json:"region,omitempty"`

	// Country from reverse geocoding, when available.
	Country string `json:"country,omitempty"`

	// Timestamp is when the fix was acquired.
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the location data has outlived LocationTTL.
func (l LocationData) Expired(now time.Time) bool {
	return now.Sub(l.Timestamp) >= LocationTTL
}

// HasPlace returns true if reverse geocoding supplied any place name.
func (l LocationData) HasPlace() bool {
	return l.City != "" || l.Region != "" || l.Country != ""
}

// LocationStatus is a snapshot of the location subsystem for presentation.
type LocationStatus struct {
	// Enabled is the user-facing feature toggle.
	Enabled bool

	// Permission is the observed consent state.
	Permission PermissionState

	// Location is the current cached fix, nil when absent or expired.
	Location *LocationData

	// Err is a user-facing error string from the last acquisition attempt.
	Err string
}
