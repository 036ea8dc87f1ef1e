// Package memory provides an in-memory CacheStore for tests and ephemeral
// runs where nothing should touch the filesystem.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/epic-search/epicsearch-cli/internal/core/domain"
	"github.com/epic-search/epicsearch-cli/internal/core/ports/driven"
)

// Ensure CacheStore implements the interface.
var _ driven.CacheStore = (*CacheStore)(nil)

// entry pairs a cached value with its fetch time.
type entry struct {
	value     []byte
	fetchedAt time.Time
}

// CacheStore is an in-memory implementation of driven.CacheStore.
// Entries never expire here: staleness policy belongs to the services,
// which need stale entries to remain readable for the stale-on-error path.
type CacheStore struct {
	c *gocache.Cache
}

// NewCacheStore creates a new in-memory cache store.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		c: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves the entry under key.
func (s *CacheStore) Get(_ context.Context, key string) ([]byte, time.Time, error) {
	raw, ok := s.c.Get(key)
	if !ok {
		return nil, time.Time{}, domain.ErrNotFound
	}
	e := raw.(entry)
	return e.value, e.fetchedAt, nil
}

// Set stores value under key.
func (s *CacheStore) Set(_ context.Context, key string, value []byte, fetchedAt time.Time) error {
	s.c.Set(key, entry{value: value, fetchedAt: fetchedAt}, gocache.NoExpiration)
	return nil
}

// Clear removes the entry under key.
func (s *CacheStore) Clear(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
