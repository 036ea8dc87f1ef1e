package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driving"
	"github.com/epic-search/epicsearch-cli/internal/logger"
)

// Ensure LocationService implements the interface.
var _ driving.LocationService = (*LocationService)(nil)

// Acquisition timeouts. Reverse geocoding failure is non-fatal, so its
// budget is tighter than the position fix itself.
const (
	LocateTimeout  = 10 * time.Second
	ReverseTimeout = 5 * time.Second
)

// Config keys for location consent. Consent is deliberate user state and
// lives in the config file, not the data cache.
const (
	keyLocationEnabled    = "location.enabled"
	keyLocationPermission = "location.permission"
)

// LocationService manages the opt-in location enrichment lifecycle.
// Permission denial is durable: it disables the feature and clears the
// cached location rather than being treated as a transient error.
type LocationService struct {
	mu          sync.Mutex
	configStore driven.ConfigStore
	cache       driven.CacheStore
	locator     driven.Geolocator
	geocoder    driven.ReverseGeocoder
	now         func() time.Time

	lastErr string

	subMu   sync.Mutex
	subs    map[int]chan domain.LocationStatus
	nextSub int

	watcher  driven.ConsentWatcher
	stopOnce sync.Once
	done     chan struct{}
}

// NewLocationService creates a new location service.
// The geocoder is optional (can be nil); without it location data carries
// coordinates only.
func NewLocationService(
	configStore driven.ConfigStore,
	cache driven.CacheStore,
	locator driven.Geolocator,
	geocoder driven.ReverseGeocoder,
) *LocationService {
	return &LocationService{
		configStore: configStore,
		cache:       cache,
		locator:     locator,
		geocoder:    geocoder,
		now:         time.Now,
		subs:        make(map[int]chan domain.LocationStatus),
		done:        make(chan struct{}),
	}
}

// WithClock overrides the time source. Useful for testing.
func (s *LocationService) WithClock(now func() time.Time) *LocationService {
	s.now = now
	return s
}

// Enable turns the feature on and immediately attempts acquisition.
func (s *LocationService) Enable(ctx context.Context) (*domain.LocationData, error) {
	s.mu.Lock()
	if s.permission() == domain.PermissionDenied {
		// Re-enabling explicitly overrides an earlier denial.
		s.setPermission(domain.PermissionUnknown)
	}
	s.setEnabled(true)
	s.mu.Unlock()

	logger.Info("Location enrichment enabled, requesting position")
	return s.acquire(ctx)
}

// Disable turns the feature off and clears any cached location.
func (s *LocationService) Disable(ctx context.Context) error {
	s.mu.Lock()
	s.setEnabled(false)
	s.lastErr = ""
	err := s.cache.Clear(ctx, KeyUserLocation)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	logger.Info("Location enrichment disabled, cache cleared")
	s.notify(ctx)
	return nil
}

// Refresh clears the cached location and re-requests.
func (s *LocationService) Refresh(ctx context.Context) (*domain.LocationData, error) {
	s.mu.Lock()
	if !s.enabled() {
		s.mu.Unlock()
		return nil, domain.ErrLocationDisabled
	}
	if s.permission() == domain.PermissionDenied {
		s.mu.Unlock()
		return nil, domain.ErrPermissionDenied
	}
	if err := s.cache.Clear(ctx, KeyUserLocation); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	logger.Debug("Location cache cleared, re-requesting")
	return s.acquire(ctx)
}

// Current returns the cached location when enabled and not expired.
// Expired entries are destroyed on read.
func (s *LocationService) Current(ctx context.Context) *domain.LocationData {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled() {
		return nil
	}

	raw, _, err := s.cache.Get(ctx, KeyUserLocation)
	if err != nil {
		return nil
	}

	var loc domain.LocationData
	if err := json.Unmarshal(raw, &loc); err != nil {
		logger.Warn("Corrupt cached location, clearing: %v", err)
		_ = s.cache.Clear(ctx, KeyUserLocation)
		return nil
	}

	if loc.Expired(s.now()) {
		logger.Debug("Cached location expired, clearing")
		_ = s.cache.Clear(ctx, KeyUserLocation)
		return nil
	}

	return &loc
}

// Status returns a snapshot of the location subsystem.
func (s *LocationService) Status(ctx context.Context) domain.LocationStatus {
	loc := s.Current(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.LocationStatus{
		Enabled:    s.enabled(),
		Permission: s.permission(),
		Location:   loc,
		Err:        s.lastErr,
	}
}

// Subscribe registers for status change notifications.
func (s *LocationService) Subscribe() (<-chan domain.LocationStatus, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.LocationStatus, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Watch starts observing externally-made consent changes (the config file
// edited outside this process). A transition to denied or disabled
// force-clears the cached location.
func (s *LocationService) Watch(w driven.ConsentWatcher) error {
	events, err := w.Watch()
	if err != nil {
		return err
	}
	s.watcher = w

	go func() {
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				s.onConfigChanged(context.Background())
			case <-s.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the consent watcher and drops all subscribers.
func (s *LocationService) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
		s.subMu.Lock()
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	})
	return err
}

// acquire performs the position fix plus reverse-geocoding enrichment and
// persists the result.
func (s *LocationService) acquire(ctx context.Context) (*domain.LocationData, error) {
	locateCtx, cancel := context.WithTimeout(ctx, LocateTimeout)
	defer cancel()

	pos, err := s.locator.Locate(locateCtx)
	if err != nil {
		return nil, s.handleAcquireError(ctx, err)
	}

	loc := domain.LocationData{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Timestamp: s.now(),
	}

	// Reverse geocoding is best-effort: failure just omits the place name.
	if s.geocoder != nil {
		reverseCtx, cancelReverse := context.WithTimeout(ctx, ReverseTimeout)
		place, gerr := s.geocoder.Reverse(reverseCtx, pos)
		cancelReverse()
		if gerr != nil {
			logger.Warn("Reverse geocoding failed: %v", gerr)
		} else {
			loc.City = place.City
			loc.Region = place.Region
			loc.Country = place.Country
		}
	}

	s.mu.Lock()
	s.setPermission(domain.PermissionGranted)
	s.lastErr = ""
	encoded, err := json.Marshal(loc)
	if err == nil {
		err = s.cache.Set(ctx, KeyUserLocation, encoded, s.now())
	}
	s.mu.Unlock()

	if err != nil {
		logger.Warn("Persisting location failed: %v", err)
	}

	logger.Info("Location acquired: %.4f,%.4f (%s)", loc.Latitude, loc.Longitude, loc.City)
	s.notify(ctx)
	return &loc, nil
}

// handleAcquireError maps acquisition failures to the documented lifecycle:
// denial is durable and destroys state, timeout/unavailable keep any
// previously cached fix.
func (s *LocationService) handleAcquireError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrPermissionDenied) {
		s.mu.Lock()
		s.setPermission(domain.PermissionDenied)
		s.setEnabled(false)
		s.lastErr = domain.ErrPermissionDenied.Error()
		_ = s.cache.Clear(ctx, KeyUserLocation)
		s.mu.Unlock()

		logger.Warn("Location permission denied, feature disabled")
		s.notify(ctx)
		return domain.ErrPermissionDenied
	}

	mapped := err
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrLocationTimeout):
		mapped = domain.ErrLocationTimeout
	case errors.Is(err, domain.ErrLocationUnavailable):
		mapped = domain.ErrLocationUnavailable
	}

	s.mu.Lock()
	s.lastErr = mapped.Error()
	s.mu.Unlock()

	logger.Warn("Location acquisition failed: %v", mapped)
	s.notify(ctx)
	return mapped
}

// onConfigChanged reloads consent from disk and reconciles cached state.
func (s *LocationService) onConfigChanged(ctx context.Context) {
	s.mu.Lock()
	if err := s.configStore.Load(); err != nil {
		s.mu.Unlock()
		logger.Warn("Reloading config after change failed: %v", err)
		return
	}

	enabled := s.enabled()
	permission := s.permission()

	if permission == domain.PermissionDenied {
		// External revocation: destroy cached data and switch off.
		s.setEnabled(false)
		_ = s.cache.Clear(ctx, KeyUserLocation)
		logger.Warn("Location permission revoked externally, feature disabled")
	} else if !enabled {
		_ = s.cache.Clear(ctx, KeyUserLocation)
		logger.Info("Location disabled externally, cache cleared")
	}
	s.mu.Unlock()

	s.notify(ctx)
}

// notify pushes the current status to all subscribers without blocking.
func (s *LocationService) notify(ctx context.Context) {
	status := s.Status(ctx)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- status:
		default:
			// Slow subscriber keeps only the latest status.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- status:
			default:
			}
		}
	}
}

// Config accessors. Callers hold s.mu.

func (s *LocationService) enabled() bool {
	return s.configStore.GetBool(keyLocationEnabled)
}

func (s *LocationService) setEnabled(v bool) {
	if err := s.configStore.Set(keyLocationEnabled, v); err != nil {
		logger.Warn("Persisting location.enabled failed: %v", err)
	}
}

func (s *LocationService) permission() domain.PermissionState {
	p := domain.PermissionState(s.configStore.GetString(keyLocationPermission))
	if !p.IsValid() {
		return domain.PermissionUnknown
	}
	return p
}

func (s *LocationService) setPermission(p domain.PermissionState) {
	if err := s.configStore.Set(keyLocationPermission, p.String()); err != nil {
		logger.Warn("Persisting location.permission failed: %v", err)
	}
}
