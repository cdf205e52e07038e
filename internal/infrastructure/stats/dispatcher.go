package stats

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/matchdayhq/matchday-api/internal/platform/logging"
	"github.com/matchdayhq/matchday-api/internal/usecase"
	"github.com/sourcegraph/conc"
)

// Dispatcher decorates a notifier with background redelivery. The first
// publish attempt stays synchronous so callers can report the warning; when
// it fails with a transient error the update is retried off the request
// path. Close drains the in-flight retries.
type Dispatcher struct {
	next       usecase.StatsNotifier
	logger     *logging.Logger
	retryDelay time.Duration
	maxRetries int
	wg         conc.WaitGroup
}

func NewDispatcher(next usecase.StatsNotifier, retryDelay time.Duration, maxRetries int, logger *logging.Logger) *Dispatcher {
	if retryDelay <= 0 {
		retryDelay = 5 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		next:       next,
		logger:     logger,
		retryDelay: retryDelay,
		maxRetries: maxRetries,
	}
}

func (d *Dispatcher) PublishResult(ctx context.Context, update usecase.StatsUpdate) error {
	err := d.next.PublishResult(ctx, update)
	if err == nil {
		return nil
	}
	if d.maxRetries > 0 && isRedeliverable(err) {
		d.scheduleRetry(update)
	}
	return err
}

func (d *Dispatcher) scheduleRetry(update usecase.StatsUpdate) {
	d.wg.Go(func() {
		// Detached from the request context: the caller has already been
		// answered by the time these run.
		ctx := context.Background()
		for attempt := 1; attempt <= d.maxRetries; attempt++ {
			time.Sleep(d.retryDelay * time.Duration(attempt))
			err := d.next.PublishResult(ctx, update)
			if err == nil {
				d.logger.Info("stats update redelivered",
					"match_id", update.MatchID,
					"attempt", attempt,
				)
				return
			}
			if !isRedeliverable(err) {
				d.logger.Warn("stats redelivery rejected", "match_id", update.MatchID, "error", err)
				return
			}
		}
		d.logger.Warn("stats redelivery exhausted", "match_id", update.MatchID, "retries", d.maxRetries)
	})
}

// Close waits for pending redeliveries to finish.
func (d *Dispatcher) Close() {
	d.wg.Wait()
}

func isRedeliverable(err error) bool {
	return crerr.Is(err, errAggregatorTransient) || crerr.Is(err, usecase.ErrDependencyUnavailable)
}
