package commitment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"revtriage/calendar"
)

var (
	// ErrInvalidDueDate signals a promise outside the allowed day range. The
	// date is rejected, never clamped.
	ErrInvalidDueDate = errors.New("commitment: due date outside allowed range")
	// ErrNotFound signals no open commitment exists for the record.
	ErrNotFound = errors.New("commitment: not found")
)

// Repository is the persistence surface for open commitments. Concurrent due
// date writes for the same record resolve last-write-wins at this layer.
type Repository interface {
	GetOpen(ctx context.Context, recordID string) (Commitment, error)
	Ensure(ctx context.Context, c Commitment) (Commitment, error)
	SetDueDate(ctx context.Context, recordID string, dueDate, setAt time.Time) (Commitment, error)
	Resolve(ctx context.Context, recordID string) error
}

// Service owns commitment validation and lifecycle reads.
type Service struct {
	repo    Repository
	now     func() time.Time
	idGen   func() string
	minDays int
	maxDays int
}

// NewService wires a commitment service. minDays/maxDays bound how far in the
// future a promise may land, in calendar days.
func NewService(repo Repository, minDays, maxDays int) *Service {
	return &Service{
		repo:    repo,
		now:     time.Now,
		idGen:   func() string { return uuid.NewString() },
		minDays: minDays,
		maxDays: maxDays,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGen = gen
	return s
}

// Ensure opens a commitment in needs_commitment for a record that first
// qualified for hygiene follow-up. Idempotent: an existing open commitment is
// returned unchanged.
func (s *Service) Ensure(ctx context.Context, recordID string) (Commitment, error) {
	if recordID == "" {
		return Commitment{}, fmt.Errorf("commitment: missing record id")
	}
	return s.repo.Ensure(ctx, Commitment{
		ID:        s.idGen(),
		RecordID:  recordID,
		CreatedAt: s.now(),
	})
}

// SetDueDate records a human promise. The due date must land between minDays
// and maxDays calendar days in the future at set time; updating an existing
// promise re-validates the same way and resets escalation eligibility.
func (s *Service) SetDueDate(ctx context.Context, recordID string, dueDate time.Time) (Commitment, error) {
	if recordID == "" {
		return Commitment{}, fmt.Errorf("commitment: missing record id")
	}

	now := s.now()
	days := calendarDays(now, dueDate)
	if days < s.minDays || days > s.maxDays {
		return Commitment{}, fmt.Errorf("%w: %d days out, allowed %d-%d", ErrInvalidDueDate, days, s.minDays, s.maxDays)
	}

	return s.repo.SetDueDate(ctx, recordID, calendar.Day(dueDate), now)
}

// Get returns the record's open commitment.
func (s *Service) Get(ctx context.Context, recordID string) (Commitment, error) {
	return s.repo.GetOpen(ctx, recordID)
}

// View returns the presentation shape for the record's open commitment.
func (s *Service) View(ctx context.Context, recordID string) (View, error) {
	c, err := s.repo.GetOpen(ctx, recordID)
	if err != nil {
		return View{}, err
	}
	return c.ViewAt(s.now()), nil
}

// Resolve closes the record's open commitment once the underlying violation
// cleared. Missing commitments are not an error: absence is the resolution
// signal.
func (s *Service) Resolve(ctx context.Context, recordID string) error {
	if err := s.repo.Resolve(ctx, recordID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func calendarDays(now, due time.Time) int {
	return int(calendar.Day(due).Sub(calendar.Day(now)).Hours() / 24)
}
