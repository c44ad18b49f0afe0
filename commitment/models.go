// Package commitment tracks human-set fix-by promises for records in hygiene
// violation and the escalation that follows a blown promise.
package commitment

import (
	"time"

	"revtriage/calendar"
)

// State is the commitment lifecycle position. It is derived on read, never
// stored: the row only holds the due date.
type State string

const (
	StateNeedsCommitment State = "needs_commitment"
	StatePending         State = "pending"
	StateEscalated       State = "escalated"
)

// Commitment is one record's open fix-by promise. A record has at most one
// open commitment at a time.
type Commitment struct {
	ID        string
	RecordID  string
	DueDate   *time.Time
	SetAt     *time.Time
	CreatedAt time.Time
}

// StateAt derives the lifecycle state as a pure function of the due date and
// now. Escalation triggers once the due day has fully passed.
func (c Commitment) StateAt(now time.Time) State {
	if c.DueDate == nil {
		return StateNeedsCommitment
	}
	if calendar.Day(now).After(calendar.Day(*c.DueDate)) {
		return StateEscalated
	}
	return StatePending
}

// DaysRemaining is the signed business-day delta until the due date, negative
// once escalated. Zero when no due date has been set yet.
func (c Commitment) DaysRemaining(now time.Time) int {
	if c.DueDate == nil {
		return 0
	}
	return calendar.BusinessDaysBetween(now, *c.DueDate)
}

// View is the presentation shape consumed by queue endpoints.
type View struct {
	RecordID      string
	State         State
	DueDate       *time.Time
	DaysRemaining int
}

// ViewAt renders the commitment for display at a given instant.
func (c Commitment) ViewAt(now time.Time) View {
	return View{
		RecordID:      c.RecordID,
		State:         c.StateAt(now),
		DueDate:       c.DueDate,
		DaysRemaining: c.DaysRemaining(now),
	}
}
