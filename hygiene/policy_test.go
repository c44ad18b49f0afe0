package hygiene

import (
	"errors"
	"testing"
	"time"

	"revtriage/record"
)

func ptrFloat(f float64) *float64 { return &f }

func ptrTime(t time.Time) *time.Time { return &t }

func TestEvaluate_UpsellMissingAmountOnly(t *testing.T) {
	rec := record.Record{
		ID:        "deal-1",
		Pipeline:  record.PipelineUpsell,
		CloseDate: ptrTime(time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)),
		Products:  []string{"platform"},
	}

	res, err := Evaluate(record.PipelineUpsell, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsCompliant {
		t.Fatal("expected non-compliant result")
	}
	if len(res.MissingFields) != 1 {
		t.Fatalf("expected exactly one missing field, got %+v", res.MissingFields)
	}
	if res.MissingFields[0].Field != "amount" || res.MissingFields[0].Label != "Amount" {
		t.Fatalf("expected missing amount, got %+v", res.MissingFields[0])
	}
}

func TestEvaluate_CompliantIffNoMissingFields(t *testing.T) {
	complete := record.Record{
		Pipeline:  record.PipelineUpsell,
		Amount:    ptrFloat(12000),
		CloseDate: ptrTime(time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)),
		Products:  []string{"platform", "support"},
	}

	for _, rec := range []record.Record{complete, {Pipeline: record.PipelineUpsell}} {
		res, err := Evaluate(rec.Pipeline, rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsCompliant != (len(res.MissingFields) == 0) {
			t.Fatalf("IsCompliant must mirror empty missing set: %+v", res)
		}
	}
}

func TestEvaluate_DeclaredOrderIsStable(t *testing.T) {
	res, err := Evaluate(record.PipelineStandardSales, record.Record{Pipeline: record.PipelineStandardSales})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Amount", "Close Date", "Products", "Next Step"}
	if len(res.MissingFields) != len(want) {
		t.Fatalf("expected %d missing fields, got %+v", len(want), res.MissingFields)
	}
	for i, label := range want {
		if res.MissingFields[i].Label != label {
			t.Fatalf("position %d: expected %q got %q", i, label, res.MissingFields[i].Label)
		}
	}
}

func TestEvaluate_EmptyCollectionCountsAsMissing(t *testing.T) {
	rec := record.Record{
		Pipeline:  record.PipelineUpsell,
		Amount:    ptrFloat(500),
		CloseDate: ptrTime(time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)),
		Products:  []string{},
	}
	res, err := Evaluate(record.PipelineUpsell, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsCompliant {
		t.Fatal("empty products slice must count as missing")
	}
	if res.MissingFields[0].Label != "Products" {
		t.Fatalf("expected Products missing, got %+v", res.MissingFields)
	}
}

func TestEvaluate_UnknownPipeline(t *testing.T) {
	_, err := Evaluate(record.Pipeline("partner"), record.Record{})
	if !errors.Is(err, ErrUnknownPipeline) {
		t.Fatalf("expected ErrUnknownPipeline, got %v", err)
	}
}

func TestSignature_SortedAndOrderFree(t *testing.T) {
	res := Result{MissingFields: []MissingField{
		{Field: "close_date", Label: "Close Date"},
		{Field: "amount", Label: "Amount"},
	}}
	sig := res.Signature()
	if len(sig) != 2 || sig[0] != "Amount" || sig[1] != "Close Date" {
		t.Fatalf("expected sorted signature, got %v", sig)
	}

	reordered := Result{MissingFields: []MissingField{
		{Field: "amount", Label: "Amount"},
		{Field: "close_date", Label: "Close Date"},
	}}
	if !sig.Equal(reordered.Signature()) {
		t.Fatal("signatures must be order-free")
	}
}

func TestSignature_Covers(t *testing.T) {
	existing := Signature{"Amount", "Close Date"}
	if !existing.Covers(Signature{"Amount"}) {
		t.Fatal("superset must cover subset")
	}
	if existing.Covers(Signature{"Amount", "Products"}) {
		t.Fatal("must not cover a label outside the set")
	}
	if !(Signature{}).Covers(Signature{}) {
		t.Fatal("empty covers empty")
	}
}
