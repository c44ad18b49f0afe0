package task

import (
	"testing"
	"time"

	"revtriage/hygiene"
)

func existingWith(sig ...string) *ExistingTask {
	return &ExistingTask{
		TaskID:         "task-1",
		RecordID:       "deal-1",
		CreatedAt:      time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC),
		IssueSignature: hygiene.Signature(sig),
	}
}

func TestShouldCreate_NoExistingTask(t *testing.T) {
	d := ShouldCreate(nil, hygiene.Signature{"Amount"})
	if !d.Create || d.CoversAll {
		t.Fatalf("expected create without coverage, got %+v", d)
	}
}

func TestShouldCreate_ExistingCoversCurrent(t *testing.T) {
	d := ShouldCreate(existingWith("Amount", "Close Date"), hygiene.Signature{"Amount"})
	if d.Create {
		t.Fatal("covered issue set must not create")
	}
	if !d.CoversAll {
		t.Fatal("expected coversAll for subset signature")
	}
}

func TestShouldCreate_NewIssuesAppeared(t *testing.T) {
	d := ShouldCreate(existingWith("Amount"), hygiene.Signature{"Amount", "Products"})
	if !d.Create {
		t.Fatal("new issues must create a superseding reminder")
	}
	if d.CoversAll {
		t.Fatal("partial coverage must not report coversAll")
	}
}

func TestShouldCreate_Idempotent(t *testing.T) {
	existing := existingWith("Amount", "Close Date")
	current := hygiene.Signature{"Close Date"}

	first := ShouldCreate(existing, current)
	second := ShouldCreate(existing, current)
	if first != second {
		t.Fatalf("identical inputs must agree: %+v vs %+v", first, second)
	}
}

func TestShouldCreate_CoversAllIsSubsetLaw(t *testing.T) {
	existing := existingWith("Amount", "Close Date")
	cases := []struct {
		current hygiene.Signature
		covers  bool
	}{
		{hygiene.Signature{}, true},
		{hygiene.Signature{"Amount"}, true},
		{hygiene.Signature{"Close Date", "Amount"}, true},
		{hygiene.Signature{"Products"}, false},
		{hygiene.Signature{"Amount", "Products"}, false},
	}
	for _, tc := range cases {
		d := ShouldCreate(existing, tc.current)
		if d.CoversAll != tc.covers {
			t.Errorf("signature %v: coversAll = %v, want %v", tc.current, d.CoversAll, tc.covers)
		}
		if d.CoversAll != existing.IssueSignature.Covers(tc.current) {
			t.Errorf("signature %v: coversAll must equal the subset test", tc.current)
		}
	}
}

func TestResolve_ForceOverridesSkip(t *testing.T) {
	existing := existingWith("Amount")
	current := hygiene.Signature{"Amount"}

	d := Resolve(existing, current, true)
	if !d.Create {
		t.Fatal("force must create even when covered")
	}
	if !d.CoversAll {
		t.Fatal("force must not hide coverage")
	}
}
