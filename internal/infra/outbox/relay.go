// Package outbox moves committed appointment events to Kafka. Events are written in the
// booking transaction; the relay publishes them afterwards, so no network call happens
// while a booking key is held.
package outbox

import (
	"context"
	"log/slog"

	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/robfig/cron/v3"
)

// PendingSource locks up to limit unpublished events, hands them to fn and marks them
// published only if fn succeeds.
type PendingSource interface {
	WithPending(ctx context.Context, limit int, fn func(ctx context.Context, events []shared.OutboxEvent) error) (int, error)
}

type Relay struct {
	source    PendingSource
	publisher Publisher
	batchSize int
	logger    *slog.Logger
}

func NewRelay(source PendingSource, publisher Publisher, batchSize int, logger *slog.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{source: source, publisher: publisher, batchSize: batchSize, logger: logger}
}

// RunOnce drains batches until the outbox is empty or a batch fails.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := r.source.WithPending(ctx, r.batchSize, r.publisher.Publish)
		total += n
		if err != nil {
			return total, errs.Wrap(err, "outbox relay")
		}
		if n < r.batchSize {
			return total, nil
		}
	}
}

// NewScheduler returns a cron whose jobs skip a tick while the previous run is still
// in flight.
func NewScheduler(logger *slog.Logger) *cron.Cron {
	if logger == nil {
		logger = slog.Default()
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn))
	return cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// Schedule registers the relay on a cron spec such as "@every 5s".
func (r *Relay) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		n, err := r.RunOnce(ctx)
		if err != nil {
			r.logger.Error("outbox relay failed", "published", n, "error", err.Error())
			return
		}
		if n > 0 {
			r.logger.Info("outbox relay published events", "count", n)
		}
	})
	if err != nil {
		return 0, errs.Wrapf(err, "invalid outbox schedule %q", spec)
	}
	return id, nil
}
