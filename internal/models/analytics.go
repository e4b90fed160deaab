package models

import (
	"context"
	"runtime"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"golang.org/x/sync/errgroup"
)

// Report is a scored snapshot together with its headline metrics
type Report struct {
	Analysis   analysis.Analysis `json:"analysis" yaml:"analysis"`
	Metrics    []analysis.Metric `json:"metrics" yaml:"metrics"`
	LevelLabel string            `json:"levelLabel" yaml:"levelLabel"`
	Locale     analysis.Locale   `json:"locale" yaml:"locale"`
}

// NewReport scores s in the given locale.
func NewReport(s analysis.Snapshot, loc analysis.Locale) Report {
	a := analysis.Compute(s, loc)
	return Report{
		Analysis:   a,
		Metrics:    analysis.Metrics(a, loc),
		LevelLabel: a.HealthLevel.Label(loc),
		Locale:     loc,
	}
}

// ScoreBatch scores snapshots concurrently. Results keep the input order.
func ScoreBatch(ctx context.Context, snaps []analysis.Snapshot, loc analysis.Locale) ([]Report, error) {
	reports := make([]Report, len(snaps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, snap := range snaps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = NewReport(snap, loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
