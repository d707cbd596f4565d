// internal/app/cycle.go
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/law-makers/pricewatch/internal/alert"
	"github.com/law-makers/pricewatch/internal/catalog"
	"github.com/law-makers/pricewatch/internal/reqctx"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/rs/zerolog/log"
)

// RunCycle loads the product list, extracts every product, prints the report, appends the
// history and sends mail when something notable happened. A returned error means the
// cycle produced no records; history and mail failures are logged and do not fail it.
func (a *Application) RunCycle(ctx context.Context) (*models.CycleResult, error) {
	ctx = reqctx.WithCycle(ctx)
	cycle := reqctx.GetCycle(ctx)
	logger := reqctx.Logger(ctx)

	products, err := catalog.Load(a.Config.ProductsFile)
	if err != nil {
		return nil, reqctx.NewCycleError(ctx, err)
	}
	logger.Info().Int("products", len(products)).Msg("Checking products")

	records, err := a.Pipeline.ProcessBatch(ctx, products)
	if err != nil {
		return nil, reqctx.NewCycleError(ctx, err)
	}

	evals := alert.Evaluate(records)
	fmt.Fprint(a.stdout, a.Renderer.Console(evals))

	checkedAt := time.Now()
	if a.History != nil {
		if err := a.History.Append(ctx, checkedAt, records); err != nil {
			logger.Error().Err(err).Msg("Failed to save history")
		}
	}

	result := &models.CycleResult{
		CycleID:   cycle.ID,
		StartedAt: cycle.StartTime,
		Records:   records,
	}

	if alert.ShouldNotify(a.Config.SendMail, records) {
		if msg, ok := a.Renderer.Email(evals); ok {
			if err := a.Notifier.Notify(ctx, msg); err != nil {
				logger.Error().Err(err).Msg("Failed to send alert mail")
			} else {
				result.Notified = true
			}
		}
	}

	result.Duration = time.Since(cycle.StartTime)
	logger.Info().
		Int("records", len(records)).
		Bool("notified", result.Notified).
		Dur("duration", result.Duration).
		Msg("Cycle complete")
	return result, nil
}

// Watch runs cycles until ctx is cancelled, sleeping a random interval between them.
// Failed cycles are logged and never stop the loop.
func (a *Application) Watch(ctx context.Context) error {
	for {
		if _, err := a.RunCycle(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			var ce *reqctx.CycleError
			if errors.As(err, &ce) {
				log.Error().
					Str("cycle", ce.CycleID).
					Time("started_at", ce.StartTime).
					Err(ce.Err).
					Msg("Cycle failed")
			} else {
				log.Error().Err(err).Msg("Cycle failed")
			}
		}

		wait := a.nextInterval()
		log.Info().Msg(waitMessage(wait))
		if err := a.sleep(ctx, wait); err != nil {
			return nil
		}
	}
}

func waitMessage(d time.Duration) string {
	return fmt.Sprintf("Waiting %.2f minutes to check again...", d.Minutes())
}

// nextInterval draws the pause before the next cycle
func (a *Application) nextInterval() time.Duration {
	lo, hi := a.Config.IntervalMin, a.Config.IntervalMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo)+1))
}
