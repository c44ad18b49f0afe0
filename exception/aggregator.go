package exception

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"revtriage/calendar"
	"revtriage/config"
	"revtriage/hygiene"
	"revtriage/nextstep"
	"revtriage/record"
	"revtriage/touch"
)

// Aggregator evaluates record snapshots against every triage rule in one
// pass. It is stateless: all mutable inputs arrive per call.
type Aggregator struct {
	thresholds  config.Thresholds
	touch       *touch.Calculator
	now         func() time.Time
	log         logrus.FieldLogger
	parallelism int
}

func NewAggregator(th config.Thresholds) *Aggregator {
	return &Aggregator{
		thresholds:  th,
		touch:       touch.NewCalculator(th.TouchTarget, th.TouchWindowDays),
		now:         time.Now,
		log:         logrus.StandardLogger(),
		parallelism: 8,
	}
}

func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

func (a *Aggregator) WithLogger(log logrus.FieldLogger) *Aggregator {
	a.log = log
	return a
}

// WithParallelism bounds the batch fan-out.
func (a *Aggregator) WithParallelism(n int) *Aggregator {
	if n > 0 {
		a.parallelism = n
	}
	return a
}

// EvaluateRecord runs every applicable check for one snapshot. Checks append
// in the fixed type-enumeration order.
func (a *Aggregator) EvaluateRecord(in Input) (RecordReport, error) {
	now := a.now()
	rec := in.Record
	report := RecordReport{RecordID: rec.ID, NextStepStatus: nextstep.PresentationNone}

	hygieneResult, err := hygiene.Evaluate(rec.Pipeline, rec)
	if err != nil {
		return RecordReport{}, fmt.Errorf("exception: evaluate %s: %w", rec.ID, err)
	}
	report.Hygiene = hygieneResult

	if rec.Kind == record.KindDeal {
		report.Touch = a.touch.Analyze(in.Activity, in.ActivityLoaded, rec.CreatedAt, now)
	}
	if in.NextStep != nil {
		report.NextStepStatus = nextstep.Presentation(*in.NextStep, now)
	}

	// Closed records are off the triage queues entirely.
	if rec.StageCategory == record.StageClosedWon || rec.StageCategory == record.StageClosedLost {
		return report, nil
	}

	highValue := rec.Amount != nil && *rec.Amount > a.thresholds.HighValueAmount

	add := func(t Type, detail string) {
		report.Exceptions = append(report.Exceptions, Exception{
			RecordID:   rec.ID,
			Type:       t,
			Severity:   severityFor(t, highValue),
			Detail:     detail,
			DetectedAt: now,
		})
	}

	for _, t := range typeOrder {
		switch t {
		case TypeOverdueNextStep:
			if report.NextStepStatus == nextstep.PresentationOverdue {
				add(t, fmt.Sprintf("next step due %s", in.NextStep.DueDate.Format("2006-01-02")))
			}
		case TypePastCloseDate:
			if rec.CloseDate != nil && calendar.Day(*rec.CloseDate).Before(calendar.Day(now)) {
				add(t, fmt.Sprintf("close date %s has passed", rec.CloseDate.Format("2006-01-02")))
			}
		case TypeActivityDrought:
			last := rec.CreatedAt
			if rec.LastActivityAt != nil {
				last = *rec.LastActivityAt
			}
			if days := calendar.BusinessDaysBetween(last, now); days > a.thresholds.ActivityDroughtDays {
				add(t, fmt.Sprintf("%d business days without activity", days))
			}
		case TypeNoNextStep:
			if rec.NextStep == "" {
				add(t, "no next step recorded")
			}
		case TypeStaleStage:
			if rec.StageEnteredAt != nil {
				if days := calendar.BusinessDaysBetween(*rec.StageEnteredAt, now); days > a.thresholds.StaleStageDays {
					add(t, fmt.Sprintf("in stage %q for %d business days", rec.Stage, days))
				}
			}
		case TypeHighValueAtRisk:
			if highValue && len(report.Exceptions) > 0 {
				add(t, fmt.Sprintf("%.0f at risk with %d open exceptions", *rec.Amount, len(report.Exceptions)))
			}
		}
	}

	return report, nil
}

// EvaluateBatch fans the per-record evaluation out across the batch. Output
// ordering is the input order regardless of scheduling; failed records land
// in BatchResult.Failures instead of silently vanishing.
func (a *Aggregator) EvaluateBatch(ctx context.Context, inputs []Input) (BatchResult, error) {
	reports := make([]*RecordReport, len(inputs))
	errs := make([]error, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := a.EvaluateRecord(inputs[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			reports[i] = &report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, fmt.Errorf("exception: batch evaluation: %w", err)
	}

	result := BatchResult{Counts: make(map[Type]int)}
	for i := range inputs {
		if errs[i] != nil {
			result.Failures = append(result.Failures, Failure{RecordID: inputs[i].Record.ID, Err: errs[i]})
			a.log.WithFields(logrus.Fields{
				"record_id": inputs[i].Record.ID,
			}).WithError(errs[i]).Warn("record evaluation failed")
			continue
		}
		result.Reports = append(result.Reports, *reports[i])
		result.Exceptions = append(result.Exceptions, reports[i].Exceptions...)
		for _, ex := range reports[i].Exceptions {
			result.Counts[ex.Type]++
		}
	}

	a.log.WithFields(logrus.Fields{
		"records":    len(inputs),
		"exceptions": len(result.Exceptions),
		"failures":   len(result.Failures),
	}).Info("batch evaluation complete")

	return result, nil
}

// severityFor is the fixed priority table. Past close dates and overdue next
// steps on high-value deals are always critical.
func severityFor(t Type, highValue bool) Severity {
	switch t {
	case TypeOverdueNextStep, TypePastCloseDate:
		if highValue {
			return SeverityCritical
		}
		return SeverityHigh
	case TypeActivityDrought, TypeNoNextStep:
		return SeverityMedium
	case TypeStaleStage:
		return SeverityLow
	case TypeHighValueAtRisk:
		return SeverityCritical
	default:
		return SeverityLow
	}
}
