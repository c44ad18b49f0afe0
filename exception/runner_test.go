package exception

import (
	"context"
	"errors"
	"testing"

	"revtriage/record"
)

type fakeStore struct {
	records     []record.Record
	fetchErr    error
	activity    map[string][]record.ActivityEvent
	activityErr error
}

func (f *fakeStore) Fetch(_ context.Context, _ record.Filters) ([]record.Record, error) {
	return f.records, f.fetchErr
}

func (f *fakeStore) GetByID(_ context.Context, id string) (record.Record, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return record.Record{}, record.ErrNotFound
}

func (f *fakeStore) FetchActivity(_ context.Context, recordID string) ([]record.ActivityEvent, error) {
	if f.activityErr != nil {
		return nil, f.activityErr
	}
	return f.activity[recordID], nil
}

func TestRunner_FetchFailureIsAnError(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("record: fetch: connection refused")}
	runner := NewRunner(store, newTestAggregator())

	_, err := runner.Run(context.Background(), record.Filters{}, nil)
	if err == nil {
		t.Fatal("a store failure must never look like an empty result")
	}
}

func TestRunner_LoadsActivityForDeals(t *testing.T) {
	deal := healthyDeal("deal-1")
	store := &fakeStore{
		records: []record.Record{deal},
		activity: map[string][]record.ActivityEvent{
			"deal-1": {
				{RecordID: "deal-1", Type: record.ActivityCall, OccurredAt: deal.CreatedAt.Add(1)},
			},
		},
	}
	runner := NewRunner(store, newTestAggregator())

	result, err := runner.Run(context.Background(), record.Filters{}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Reports) != 1 {
		t.Fatalf("expected one report, got %d", len(result.Reports))
	}
	if result.Reports[0].Touch.Touches.Calls != 1 {
		t.Fatalf("expected loaded activity to count, got %+v", result.Reports[0].Touch)
	}
}

func TestRunner_ActivityFailurePropagates(t *testing.T) {
	store := &fakeStore{
		records:     []record.Record{healthyDeal("deal-1")},
		activityErr: errors.New("record: fetch activity: timeout"),
	}
	runner := NewRunner(store, newTestAggregator())

	if _, err := runner.Run(context.Background(), record.Filters{}, nil); err == nil {
		t.Fatal("activity fetch failure must propagate")
	}
}
