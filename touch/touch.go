// Package touch measures outreach cadence inside the fixed onboarding window
// after a record is created and compares it against the configured target.
package touch

import (
	"time"

	"revtriage/calendar"
	"revtriage/record"
)

// Status summarizes window compliance.
type Status string

const (
	// StatusPending means activity data has not been fetched yet; it is
	// distinct from zero touches.
	StatusPending  Status = "pending"
	StatusOnTrack  Status = "on_track"
	StatusBehind   Status = "behind"
	StatusCritical Status = "critical"
)

// Counts breaks down the qualifying touches inside the window.
type Counts struct {
	Calls  int
	Emails int
	Total  int
}

// Analysis is the full window verdict for one record.
type Analysis struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Touches     Counts
	Target      int
	Gap         int
	Status      Status
}

// Calculator evaluates windows against a fixed target and window length.
type Calculator struct {
	target     int
	windowDays int
}

func NewCalculator(target, windowDays int) *Calculator {
	return &Calculator{target: target, windowDays: windowDays}
}

// Analyze computes the window verdict. loaded distinguishes "activity not
// fetched" from "zero touches"; only calls and outbound emails with a
// timestamp inside [createdAt, windowEnd] count.
func (c *Calculator) Analyze(events []record.ActivityEvent, loaded bool, createdAt, now time.Time) Analysis {
	windowStart := calendar.Day(createdAt)
	windowEnd := calendar.AddBusinessDays(createdAt, c.windowDays)

	analysis := Analysis{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Target:      c.target,
	}

	if !loaded {
		analysis.Status = StatusPending
		analysis.Gap = c.target
		return analysis
	}

	for _, ev := range events {
		if ev.OccurredAt.Before(createdAt) || calendar.Day(ev.OccurredAt).After(windowEnd) {
			continue
		}
		switch ev.Type {
		case record.ActivityCall:
			analysis.Touches.Calls++
		case record.ActivityEmailOut:
			analysis.Touches.Emails++
		default:
			continue
		}
		analysis.Touches.Total++
	}

	analysis.Gap = c.target - analysis.Touches.Total
	if analysis.Gap < 0 {
		analysis.Gap = 0
	}
	analysis.Status = c.status(analysis, now)
	return analysis
}

func (c *Calculator) status(a Analysis, now time.Time) Status {
	if calendar.Day(now).Before(a.WindowEnd) {
		// Window still open: linear pro-ration of the target over elapsed
		// business days, never critical.
		if a.Touches.Total >= c.expectedByNow(a.WindowStart, now) {
			return StatusOnTrack
		}
		return StatusBehind
	}

	if a.Gap == 0 {
		return StatusOnTrack
	}
	if a.Gap >= ceilDiv(c.target, 2) {
		return StatusCritical
	}
	return StatusBehind
}

func (c *Calculator) expectedByNow(windowStart, now time.Time) int {
	elapsed := calendar.BusinessDaysBetween(windowStart, now)
	if elapsed <= 0 {
		return 0
	}
	if elapsed > c.windowDays {
		elapsed = c.windowDays
	}
	return ceilDiv(c.target*elapsed, c.windowDays)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
