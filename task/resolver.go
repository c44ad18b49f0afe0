// Package task decides when an external reminder task needs to be created for
// a record's current issue set and records what was created, so an unchanged
// issue set never produces duplicate reminders.
package task

import (
	"time"

	"revtriage/hygiene"
)

// ExistingTask is the stored record of a previously created reminder and the
// issue signature it was created for. Never mutated; superseded by new rows.
type ExistingTask struct {
	TaskID         string
	RecordID       string
	CreatedAt      time.Time
	IssueSignature hygiene.Signature
}

// Decision is the resolver's verdict for one record.
type Decision struct {
	Create    bool
	CoversAll bool
}

// ShouldCreate applies the idempotency rule: no existing task always creates;
// an existing task that covers every current issue skips; an existing task
// missing newly appeared issues creates a superseding reminder.
func ShouldCreate(existing *ExistingTask, current hygiene.Signature) Decision {
	if existing == nil {
		return Decision{Create: true}
	}
	covers := existing.IssueSignature.Covers(current)
	return Decision{Create: !covers, CoversAll: covers}
}

// Resolve is ShouldCreate with an explicit force override: a covered issue
// set still creates when the caller demands it.
func Resolve(existing *ExistingTask, current hygiene.Signature, force bool) Decision {
	d := ShouldCreate(existing, current)
	if force {
		d.Create = true
	}
	return d
}
