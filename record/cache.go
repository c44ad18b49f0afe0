package record

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStore wraps a Store with a short TTL read cache. Dashboard refreshes
// hammer the same filter sets every few seconds; the underlying CRM snapshot
// only changes on sync. Writes elsewhere in the system call Flush.
type CachedStore struct {
	inner Store
	cache *gocache.Cache
}

func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Fetch(ctx context.Context, filters Filters) ([]Record, error) {
	key := fetchKey(filters)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Record), nil
	}

	records, err := s.inner.Fetch(ctx, filters)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, records)
	return records, nil
}

func (s *CachedStore) GetByID(ctx context.Context, id string) (Record, error) {
	return s.inner.GetByID(ctx, id)
}

func (s *CachedStore) FetchActivity(ctx context.Context, recordID string) ([]ActivityEvent, error) {
	key := "activity:" + recordID
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]ActivityEvent), nil
	}

	events, err := s.inner.FetchActivity(ctx, recordID)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, events)
	return events, nil
}

// Flush drops every cached entry. Called after commitment or task writes so
// reads observe the store's read-after-write consistency.
func (s *CachedStore) Flush() {
	s.cache.Flush()
}

func fetchKey(f Filters) string {
	return fmt.Sprintf("fetch:%s|%s|%s|%s|%d-%d|%d/%d",
		f.Kind, f.Pipeline, f.StageCategory, f.OwnerID, f.Year, f.Quarter, f.Page, f.PageSize)
}
