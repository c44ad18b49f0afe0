// Package hygiene evaluates record completeness against per-pipeline required
// field policies and derives the issue signatures used for reminder
// deduplication.
package hygiene

import (
	"errors"
	"fmt"
	"sort"

	"revtriage/record"
)

// ErrUnknownPipeline signals a record carries a pipeline with no declared policy.
var ErrUnknownPipeline = errors.New("hygiene: unknown pipeline")

// requiredField pairs a stable field key with its display label and the
// presence check applied to a record snapshot.
type requiredField struct {
	key     string
	label   string
	present func(record.Record) bool
}

// Policy is the ordered required-field list for one pipeline. The declared
// order is stable and drives display; the signature is order-free.
type Policy struct {
	pipeline record.Pipeline
	fields   []requiredField
}

// MissingField is one required field the record left empty.
type MissingField struct {
	Field string
	Label string
}

// Result is the outcome of evaluating one record against its policy.
type Result struct {
	IsCompliant   bool
	MissingFields []MissingField
}

// Signature returns the unordered label set of the missing fields, sorted for
// canonical comparison.
func (r Result) Signature() Signature {
	labels := make(Signature, 0, len(r.MissingFields))
	for _, mf := range r.MissingFields {
		labels = append(labels, mf.Label)
	}
	sort.Strings(labels)
	return labels
}

func hasAmount(r record.Record) bool    { return r.Amount != nil }
func hasCloseDate(r record.Record) bool { return r.CloseDate != nil }
func hasProducts(r record.Record) bool  { return len(r.Products) > 0 }
func hasNextStep(r record.Record) bool  { return r.NextStep != "" }
func hasContractEnd(r record.Record) bool {
	return r.ContractEndsAt != nil
}

var policies = map[record.Pipeline]Policy{
	record.PipelineStandardSales: {
		pipeline: record.PipelineStandardSales,
		fields: []requiredField{
			{key: "amount", label: "Amount", present: hasAmount},
			{key: "close_date", label: "Close Date", present: hasCloseDate},
			{key: "products", label: "Products", present: hasProducts},
			{key: "next_step", label: "Next Step", present: hasNextStep},
		},
	},
	record.PipelineUpsell: {
		pipeline: record.PipelineUpsell,
		fields: []requiredField{
			{key: "amount", label: "Amount", present: hasAmount},
			{key: "close_date", label: "Close Date", present: hasCloseDate},
			{key: "products", label: "Products", present: hasProducts},
		},
	},
	record.PipelineRenewal: {
		pipeline: record.PipelineRenewal,
		fields: []requiredField{
			{key: "contract_ends_at", label: "Contract End Date", present: hasContractEnd},
			{key: "amount", label: "Amount", present: hasAmount},
			{key: "next_step", label: "Next Step", present: hasNextStep},
		},
	},
}

// PolicyFor returns the declared policy for a pipeline.
func PolicyFor(pipeline record.Pipeline) (Policy, error) {
	p, ok := policies[pipeline]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPipeline, pipeline)
	}
	return p, nil
}

// Evaluate checks the record against its pipeline's policy. Missing fields
// come back in the policy's declared order.
func Evaluate(pipeline record.Pipeline, rec record.Record) (Result, error) {
	policy, err := PolicyFor(pipeline)
	if err != nil {
		return Result{}, err
	}
	return policy.Evaluate(rec), nil
}

// Evaluate applies the policy to a record snapshot.
func (p Policy) Evaluate(rec record.Record) Result {
	var missing []MissingField
	for _, f := range p.fields {
		if !f.present(rec) {
			missing = append(missing, MissingField{Field: f.key, Label: f.label})
		}
	}
	return Result{
		IsCompliant:   len(missing) == 0,
		MissingFields: missing,
	}
}
