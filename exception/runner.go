package exception

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"revtriage/nextstep"
	"revtriage/record"
)

// Runner fetches snapshots and activity from the record store and feeds them
// through the aggregator. A store failure is returned as an error, never as
// an empty result: callers can always tell "evaluation failed" from "zero
// exceptions".
type Runner struct {
	store record.Store
	agg   *Aggregator
}

func NewRunner(store record.Store, agg *Aggregator) *Runner {
	return &Runner{store: store, agg: agg}
}

// Run evaluates every record matching the filters. analyses maps record id to
// its stored next-step analysis; records without one are evaluated with the
// staleness path left to the caller.
func (r *Runner) Run(ctx context.Context, filters record.Filters, analyses map[string]*nextstep.Analysis) (BatchResult, error) {
	records, err := r.store.Fetch(ctx, filters)
	if err != nil {
		return BatchResult{}, fmt.Errorf("exception: fetch records: %w", err)
	}

	inputs := make([]Input, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.agg.parallelism)
	for i := range records {
		g.Go(func() error {
			rec := records[i]
			input := Input{Record: rec, NextStep: analyses[rec.ID]}
			if rec.Kind == record.KindDeal {
				events, err := r.store.FetchActivity(gctx, rec.ID)
				if err != nil {
					return fmt.Errorf("exception: fetch activity for %s: %w", rec.ID, err)
				}
				input.Activity = events
				input.ActivityLoaded = true
			}
			inputs[i] = input
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	return r.agg.EvaluateBatch(ctx, inputs)
}
