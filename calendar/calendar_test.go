package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysBetween_SameDay(t *testing.T) {
	d := date(2026, time.March, 4)
	if got := BusinessDaysBetween(d, d); got != 0 {
		t.Fatalf("expected 0 for same day, got %d", got)
	}
}

func TestBusinessDaysBetween_SkipsWeekend(t *testing.T) {
	// Friday to Monday crosses one weekend.
	fri := date(2026, time.March, 6)
	mon := date(2026, time.March, 9)
	if got := BusinessDaysBetween(fri, mon); got != 1 {
		t.Fatalf("friday->monday: expected 1, got %d", got)
	}

	// A full week is always 5.
	if got := BusinessDaysBetween(fri, fri.AddDate(0, 0, 7)); got != 5 {
		t.Fatalf("full week: expected 5, got %d", got)
	}
}

func TestBusinessDaysBetween_SignedWhenReversed(t *testing.T) {
	mon := date(2026, time.March, 9)
	tue := date(2026, time.March, 10)
	if got := BusinessDaysBetween(tue, mon); got != -1 {
		t.Fatalf("expected -1 when start is after end, got %d", got)
	}
}

func TestBusinessDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 5, 0, 1, 0, 0, time.UTC)
	if got := BusinessDaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 across midnight, got %d", got)
	}
}

func TestAddBusinessDays(t *testing.T) {
	fri := date(2026, time.March, 6)
	if got := AddBusinessDays(fri, 1); !got.Equal(date(2026, time.March, 9)) {
		t.Fatalf("friday+1: expected monday, got %v", got)
	}
	if got := AddBusinessDays(fri, 5); !got.Equal(date(2026, time.March, 13)) {
		t.Fatalf("friday+5: expected next friday, got %v", got)
	}

	wed := date(2026, time.March, 4)
	if got := AddBusinessDays(wed, 0); !got.Equal(wed) {
		t.Fatalf("n=0: expected same day, got %v", got)
	}
}

func TestQuarterBounds(t *testing.T) {
	start, end := QuarterBounds(2026, 1)
	if !start.Equal(date(2026, time.January, 1)) {
		t.Fatalf("Q1 start: got %v", start)
	}
	if !end.Equal(date(2026, time.April, 1)) {
		t.Fatalf("Q1 end: got %v", end)
	}

	start, end = QuarterBounds(2026, 4)
	if !start.Equal(date(2026, time.October, 1)) {
		t.Fatalf("Q4 start: got %v", start)
	}
	if !end.Equal(date(2027, time.January, 1)) {
		t.Fatalf("Q4 end: got %v", end)
	}
}

func TestQuarterBounds_PanicsOnInvalidQuarter(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for quarter 5")
		}
	}()
	QuarterBounds(2026, 5)
}

func TestQuarterOf(t *testing.T) {
	year, q := QuarterOf(date(2026, time.August, 31))
	if year != 2026 || q != 3 {
		t.Fatalf("expected 2026 Q3, got %d Q%d", year, q)
	}
}
