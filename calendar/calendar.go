// Package calendar provides business-day date math for triage windows and
// commitment deadlines. Saturdays and Sundays are skipped; there is no holiday
// calendar.
package calendar

import (
	"fmt"
	"time"
)

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDaysBetween counts the business days strictly after start up to and
// including end, both truncated to day. The result is zero for the same day,
// non-negative whenever start <= end, and negative when start is after end so
// callers can surface signed deadline deltas.
func BusinessDaysBetween(start, end time.Time) int {
	from := Day(start)
	to := Day(end)
	if from.After(to) {
		return -BusinessDaysBetween(to, from)
	}

	days := 0
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days++
		}
	}
	return days
}

// AddBusinessDays returns the day n business days after t (n >= 0). Weekend
// days are skipped, so Friday + 1 lands on Monday.
func AddBusinessDays(t time.Time, n int) time.Time {
	d := Day(t)
	for n > 0 {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			n--
		}
	}
	return d
}

// QuarterBounds returns the half-open [start, end) bounds of a calendar
// quarter using fixed three-month boundaries (Q1 = Jan-Mar). The quarter
// number must be 1-4; anything else is a programmer error and panics.
func QuarterBounds(year, quarter int) (time.Time, time.Time) {
	if quarter < 1 || quarter > 4 {
		panic(fmt.Sprintf("calendar: invalid quarter %d", quarter))
	}
	startMonth := time.Month((quarter-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

// QuarterOf returns the year and quarter number containing t.
func QuarterOf(t time.Time) (int, int) {
	return t.Year(), (int(t.Month())-1)/3 + 1
}
