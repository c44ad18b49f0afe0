// Package exception runs every evaluator over a batch of record snapshots and
// merges their findings into the unified exception list behind the triage
// queues and the summary dashboard.
package exception

import (
	"time"

	"revtriage/hygiene"
	"revtriage/nextstep"
	"revtriage/record"
	"revtriage/touch"
)

// Type enumerates the exception kinds. Exceptions for one record always
// appear in this declaration order.
type Type string

const (
	TypeOverdueNextStep Type = "overdue_next_step"
	TypePastCloseDate   Type = "past_close_date"
	TypeActivityDrought Type = "activity_drought"
	TypeNoNextStep      Type = "no_next_step"
	TypeStaleStage      Type = "stale_stage"
	TypeHighValueAtRisk Type = "high_value_at_risk"
)

// typeOrder fixes per-record output ordering. high_value_at_risk depends on
// the other checks and must stay last.
var typeOrder = []Type{
	TypeOverdueNextStep,
	TypePastCloseDate,
	TypeActivityDrought,
	TypeNoNextStep,
	TypeStaleStage,
	TypeHighValueAtRisk,
}

// Severity tags an exception for queue prioritization.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Exception is one detected policy violation. Derived fresh per run, never
// stored.
type Exception struct {
	RecordID   string
	Type       Type
	Severity   Severity
	Detail     string
	DetectedAt time.Time
}

// Input is one record's already-fetched evaluation material. The aggregator
// itself never performs I/O.
type Input struct {
	Record record.Record
	// Activity and ActivityLoaded distinguish "no events" from "not fetched".
	Activity       []record.ActivityEvent
	ActivityLoaded bool
	// NextStep is the stored analysis for the record's next-step text, nil
	// when none exists yet.
	NextStep *nextstep.Analysis
}

// RecordReport is the per-record evaluation outcome consumed by the hygiene
// queue and dashboard endpoints.
type RecordReport struct {
	RecordID       string
	Exceptions     []Exception
	Hygiene        hygiene.Result
	Touch          touch.Analysis
	NextStepStatus nextstep.PresentationStatus
}

// Failure names a record whose evaluation could not complete.
type Failure struct {
	RecordID string
	Err      error
}

// BatchResult is the full batch outcome. Failures are reported explicitly so
// a partial evaluation is never mistaken for "all compliant".
type BatchResult struct {
	Reports    []RecordReport
	Exceptions []Exception
	Counts     map[Type]int
	Failures   []Failure
}
