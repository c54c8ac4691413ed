package components

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository"
	"booking-engine/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Invoke(StartOutboxRelay),
)

// StartOutboxRelay runs only with postgres storage and at least one broker; otherwise
// events stay in outbox_events until a relay is configured.
func StartOutboxRelay(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, q *pgsql.Queries, logger *slog.Logger) error {
	if pool == nil || len(cfg.Kafka.Brokers) == 0 {
		logger.Info("outbox relay disabled", "driver", cfg.Booking.StorageDriver, "brokers", len(cfg.Kafka.Brokers))
		return nil
	}

	publisher := outbox.NewKafkaPublisher(cfg.Kafka)
	relay := outbox.NewRelay(repository.NewOutboxRelayStore(pool, q), publisher, cfg.Outbox.BatchSize, logger)

	ctx, cancel := context.WithCancel(context.Background())
	c := outbox.NewScheduler(logger)
	if _, err := relay.Schedule(ctx, c, cfg.Outbox.Schedule); err != nil {
		cancel()
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			logger.Info("outbox relay started", "schedule", cfg.Outbox.Schedule, "topic", cfg.Kafka.Topic)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-c.Stop().Done():
			case <-stopCtx.Done():
			}
			return publisher.Close()
		},
	})
	return nil
}
