package components

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra/cache"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewOccupancyCache,
	),
)

func NewOccupancyCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.OccupancyCache {
	rdb := cache.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Info("occupancy cache disabled")
		return shared.NoopOccupancyCache{}
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// a cold cache is fine, so an unreachable redis only warns
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return cache.NewRedisOccupancyCache(rdb, cfg.Redis.TTL)
}
