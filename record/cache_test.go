package record

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingStore struct {
	fetches  int
	activity int
	records  []Record
	err      error
}

func (c *countingStore) Fetch(_ context.Context, _ Filters) ([]Record, error) {
	c.fetches++
	return c.records, c.err
}

func (c *countingStore) GetByID(_ context.Context, _ string) (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrNotFound
	}
	return c.records[0], c.err
}

func (c *countingStore) FetchActivity(_ context.Context, _ string) ([]ActivityEvent, error) {
	c.activity++
	return nil, c.err
}

func TestCachedStore_FetchHitsInnerOnce(t *testing.T) {
	inner := &countingStore{records: []Record{{ID: "r1"}}}
	store := NewCachedStore(inner, time.Minute)
	ctx := context.Background()

	filters := Filters{Pipeline: PipelineUpsell}
	for i := 0; i < 3; i++ {
		records, err := store.Fetch(ctx, filters)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(records) != 1 || records[0].ID != "r1" {
			t.Fatalf("fetch %d: unexpected records %+v", i, records)
		}
	}
	if inner.fetches != 1 {
		t.Fatalf("expected one inner fetch, got %d", inner.fetches)
	}

	// A different filter set is a different cache key.
	if _, err := store.Fetch(ctx, Filters{Pipeline: PipelineRenewal}); err != nil {
		t.Fatalf("fetch other filter: %v", err)
	}
	if inner.fetches != 2 {
		t.Fatalf("expected second inner fetch for new filters, got %d", inner.fetches)
	}
}

func TestCachedStore_ErrorsAreNotCached(t *testing.T) {
	inner := &countingStore{err: errors.New("record: fetch: connection refused")}
	store := NewCachedStore(inner, time.Minute)
	ctx := context.Background()

	if _, err := store.Fetch(ctx, Filters{}); err == nil {
		t.Fatal("expected error from inner store")
	}
	if _, err := store.Fetch(ctx, Filters{}); err == nil {
		t.Fatal("expected error on retry")
	}
	if inner.fetches != 2 {
		t.Fatalf("expected both fetches to reach inner store, got %d", inner.fetches)
	}
}

func TestCachedStore_FlushDropsEntries(t *testing.T) {
	inner := &countingStore{}
	store := NewCachedStore(inner, time.Minute)
	ctx := context.Background()

	if _, err := store.FetchActivity(ctx, "r1"); err != nil {
		t.Fatalf("fetch activity: %v", err)
	}
	store.Flush()
	if _, err := store.FetchActivity(ctx, "r1"); err != nil {
		t.Fatalf("fetch activity after flush: %v", err)
	}
	if inner.activity != 2 {
		t.Fatalf("expected flush to force refetch, got %d inner calls", inner.activity)
	}
}
