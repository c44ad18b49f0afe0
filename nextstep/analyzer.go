// Package nextstep classifies a record's free-text next step and its
// extracted due date. Date extraction itself is an external collaborator; the
// analyzer owns the state machine around its results and the staleness flag
// that tells callers when to re-run it.
package nextstep

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"revtriage/calendar"
)

// Status classifies the next-step text after analysis.
type Status string

const (
	StatusEmpty            Status = "empty"
	StatusNoDate           Status = "no_date"
	StatusDateFound        Status = "date_found"
	StatusDateInferred     Status = "date_inferred"
	StatusDateUnclear      Status = "date_unclear"
	StatusAwaitingExternal Status = "awaiting_external"
	StatusUnparseable      Status = "unparseable"
)

// PresentationStatus is the queue-facing classification derived from an
// analysis and "now".
type PresentationStatus string

const (
	PresentationNone      PresentationStatus = "none"
	PresentationOverdue   PresentationStatus = "overdue"
	PresentationCompliant PresentationStatus = "compliant"
)

// Analysis is the stored outcome of one extraction run over a record's
// next-step text.
type Analysis struct {
	Status     Status
	DueDate    *time.Time
	Confidence float64
	AnalyzedAt time.Time
	TextHash   string
}

// Extraction is the external date-extraction service's verdict for one text.
type Extraction struct {
	Status     Status
	DueDate    *time.Time
	Confidence float64
}

// Extractor is the external date-extraction collaborator. One synchronous
// call per analysis request.
type Extractor interface {
	ExtractDueDate(ctx context.Context, text string) (Extraction, error)
}

// Analyzer runs the next-step state machine for a single record at a time.
type Analyzer struct {
	extractor Extractor
	freshness time.Duration
	now       func() time.Time
}

// NewAnalyzer wires an analyzer with the given extraction collaborator and
// freshness window in calendar days.
func NewAnalyzer(extractor Extractor, freshnessDays int) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		freshness: time.Duration(freshnessDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Hash fingerprints next-step text so staleness can detect edits.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// NeedsAnalysis reports whether the stored analysis is usable for the current
// text: false only when an analysis exists, the text is unchanged, and the
// analysis is inside the freshness window. The caller decides whether to
// actually re-run extraction.
func (a *Analyzer) NeedsAnalysis(text string, prior *Analysis) bool {
	if prior == nil {
		return true
	}
	if prior.TextHash != Hash(text) {
		return true
	}
	return a.now().Sub(prior.AnalyzedAt) > a.freshness
}

// awaitingPhrases mark next steps whose timing belongs to the counterparty.
var awaitingPhrases = []string{
	"waiting on",
	"waiting for",
	"awaiting",
	"pending customer",
	"pending client",
	"pending legal",
	"on their side",
	"ball in their court",
}

func awaitingExternal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range awaitingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Analyze classifies the text, calling the extractor when a date could apply.
// On extractor failure the prior analysis is returned untouched alongside the
// error; the analyzer never invents a status for a failed call.
func (a *Analyzer) Analyze(ctx context.Context, text string, prior *Analysis) (Analysis, error) {
	now := a.now()

	if strings.TrimSpace(text) == "" {
		return Analysis{Status: StatusEmpty, AnalyzedAt: now, TextHash: Hash(text)}, nil
	}

	if awaitingExternal(text) {
		return Analysis{Status: StatusAwaitingExternal, AnalyzedAt: now, TextHash: Hash(text)}, nil
	}

	ext, err := a.extractor.ExtractDueDate(ctx, text)
	if err != nil {
		if prior != nil {
			return *prior, fmt.Errorf("nextstep: extract due date: %w", err)
		}
		return Analysis{}, fmt.Errorf("nextstep: extract due date: %w", err)
	}

	analysis := Analysis{
		Status:     ext.Status,
		DueDate:    ext.DueDate,
		Confidence: ext.Confidence,
		AnalyzedAt: now,
		TextHash:   Hash(text),
	}
	switch ext.Status {
	case StatusDateFound, StatusDateInferred:
		if ext.DueDate == nil {
			// A date status without a date is an extractor contract break.
			analysis.Status = StatusDateUnclear
			analysis.DueDate = nil
		}
	case StatusNoDate, StatusDateUnclear, StatusUnparseable:
		analysis.DueDate = nil
	default:
		analysis.Status = StatusUnparseable
		analysis.DueDate = nil
	}
	return analysis, nil
}

// Presentation derives the queue-facing status: overdue when a due date lies
// strictly before today (day-truncated), compliant when it is today or later.
// awaiting_external is never overdue.
func Presentation(analysis Analysis, now time.Time) PresentationStatus {
	switch analysis.Status {
	case StatusDateFound, StatusDateInferred:
		if analysis.DueDate == nil {
			return PresentationNone
		}
		if calendar.Day(*analysis.DueDate).Before(calendar.Day(now)) {
			return PresentationOverdue
		}
		return PresentationCompliant
	default:
		return PresentationNone
	}
}
