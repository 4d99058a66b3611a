package review

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vampirenirmal/redline/internal/schema"
)

// SweepResult pairs an act with the review passes produced for it.
type SweepResult struct {
	ActID  string
	Passes []schema.ReviewPass
}

// Sweep reviews a batch of raw acts with bounded concurrency. Acts are
// independent aggregates, so passes run in parallel without cross-act
// locking; each act's review is atomic in memory, which makes cancellation
// between acts always safe. On cancellation the completed results are
// returned alongside ctx's error, and in-flight acts are simply discarded.
func (o *Orchestrator) Sweep(ctx context.Context, rawActs []map[string]any, persona schema.ReviewPersona, concurrency int) ([]SweepResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]SweepResult, len(rawActs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, raw := range rawActs {
		// Stop scheduling new acts once the caller aborts.
		if err := gctx.Err(); err != nil {
			break
		}
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			passes := o.ReviewAct(gctx, raw, persona)
			actID := ""
			if len(passes) > 0 {
				actID = passes[0].ActID
			}
			results[i] = SweepResult{ActID: actID, Passes: passes}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	completed := results[:0]
	for _, r := range results {
		if r.Passes != nil {
			completed = append(completed, r)
		}
	}

	o.logger.Info("review sweep finished",
		"requested", len(rawActs),
		"completed", len(completed),
		"persona", persona,
		"cancelled", err != nil,
	)
	return completed, err
}
