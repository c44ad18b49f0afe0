package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"revtriage/hygiene"
)

// ErrNoExistingTask signals no reminder has been recorded for the record yet.
var ErrNoExistingTask = errors.New("task: no existing task")

// Sink creates the reminder in the external task system. Failures surface to
// the caller unchanged; the engine never retries.
type Sink interface {
	CreateTask(ctx context.Context, recordID string, signature []string, metadata map[string]any) (string, error)
}

// Repository persists reminder-task records for idempotency comparison.
type Repository interface {
	Latest(ctx context.Context, recordID string) (ExistingTask, error)
	Record(ctx context.Context, t ExistingTask) error
}

// Service resolves and executes reminder creation for one record at a time.
type Service struct {
	repo Repository
	sink Sink
	now  func() time.Time
}

func NewService(repo Repository, sink Sink) *Service {
	return &Service{
		repo: repo,
		sink: sink,
		now:  time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EnsureResult reports what EnsureReminder did.
type EnsureResult struct {
	Decision Decision
	Task     *ExistingTask
}

// EnsureReminder checks the latest recorded task against the current issue
// signature and creates a superseding reminder when needed. The old task
// record is kept; the new row supersedes it by recency.
func (s *Service) EnsureReminder(ctx context.Context, recordID string, current hygiene.Signature, metadata map[string]any, force bool) (EnsureResult, error) {
	if recordID == "" {
		return EnsureResult{}, fmt.Errorf("task: missing record id")
	}

	var existing *ExistingTask
	latest, err := s.repo.Latest(ctx, recordID)
	switch {
	case err == nil:
		existing = &latest
	case errors.Is(err, ErrNoExistingTask):
		// First reminder for this record.
	default:
		return EnsureResult{}, err
	}

	decision := Resolve(existing, current, force)
	if !decision.Create {
		return EnsureResult{Decision: decision, Task: existing}, nil
	}

	sinkID, err := s.sink.CreateTask(ctx, recordID, current, metadata)
	if err != nil {
		return EnsureResult{}, fmt.Errorf("task: create reminder: %w", err)
	}

	created := ExistingTask{
		TaskID:         sinkID,
		RecordID:       recordID,
		CreatedAt:      s.now(),
		IssueSignature: current,
	}
	if err := s.repo.Record(ctx, created); err != nil {
		return EnsureResult{}, err
	}
	return EnsureResult{Decision: decision, Task: &created}, nil
}
