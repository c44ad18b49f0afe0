// Package record defines the CRM record snapshot the triage engine evaluates
// and the Postgres-backed store that produces it. Snapshots are immutable per
// evaluation: the engine only reads them.
package record

import (
	"sort"
	"strings"
	"time"
)

// Kind distinguishes the two record families pulled from the CRM.
type Kind string

const (
	KindDeal    Kind = "deal"
	KindCompany Kind = "company"
)

// Pipeline identifies which hygiene policy governs a record.
type Pipeline string

const (
	PipelineStandardSales Pipeline = "standard_sales"
	PipelineUpsell        Pipeline = "upsell"
	PipelineRenewal       Pipeline = "renewal"
)

// StageCategory is resolved once at the store boundary from the raw CRM stage
// name. Evaluators branch on the category, never on stage-name substrings.
type StageCategory string

const (
	StageOpen       StageCategory = "open"
	StageClosedWon  StageCategory = "closed_won"
	StageClosedLost StageCategory = "closed_lost"
	StageAtRisk     StageCategory = "at_risk"
)

// Record is an immutable-per-evaluation snapshot of a deal or company.
// Optional CRM fields are pointers; an absent value is nil, never a zero
// coerced in place.
type Record struct {
	ID             string
	CRMID          string
	Kind           Kind
	Name           string
	OwnerID        string
	Pipeline       Pipeline
	Stage          string
	StageCategory  StageCategory
	StageEnteredAt *time.Time
	Amount         *float64
	Products       []string
	CloseDate      *time.Time
	ContractEndsAt *time.Time
	SentimentRisk  bool
	NextStep       string
	CreatedAt      time.Time
	LastActivityAt *time.Time
	NextActivityAt *time.Time
	UpdatedAt      time.Time
}

// ActivityType classifies a logged CRM activity.
type ActivityType string

const (
	ActivityCall     ActivityType = "call"
	ActivityEmailOut ActivityType = "email_out"
	ActivityEmailIn  ActivityType = "email_in"
	ActivityMeeting  ActivityType = "meeting"
	ActivityNote     ActivityType = "note"
)

// ActivityEvent is one logged outreach or interaction against a record.
type ActivityEvent struct {
	ID         string
	RecordID   string
	Type       ActivityType
	OccurredAt time.Time
}

// Filters narrows a record fetch. Zero values are ignored. Quarter filtering
// applies to the close date using fixed calendar-quarter bounds.
type Filters struct {
	Kind          Kind
	Pipeline      Pipeline
	StageCategory StageCategory
	OwnerID       string
	Year          int
	Quarter       int
	Page          int
	PageSize      int
}

// categoryByStage maps well-known CRM stage names onto categories. Unknown
// stages default to open so they stay visible in the triage queues.
var categoryByStage = map[string]StageCategory{
	"closed won":      StageClosedWon,
	"closed lost":     StageClosedLost,
	"at risk":         StageAtRisk,
	"renewal at risk": StageAtRisk,
}

func stageNamesFor(cat StageCategory) []string {
	names := make([]string, 0, len(categoryByStage))
	for name, c := range categoryByStage {
		if c == cat {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func mappedStageNames() []string {
	names := make([]string, 0, len(categoryByStage))
	for name := range categoryByStage {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveStageCategory maps a raw CRM stage name onto its category.
func ResolveStageCategory(stage string) StageCategory {
	if cat, ok := categoryByStage[strings.ToLower(strings.TrimSpace(stage))]; ok {
		return cat
	}
	return StageOpen
}
