package components

import (
	"booking-engine/internal/infra/memstore"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/uow"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		pgsql.New,
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the storage driver. Postgres serializes bookings across
// instances; memory only within this process.
func NewUnitOfWork(cfg config.Config, pool *pgxpool.Pool, q *pgsql.Queries) shared.UnitOfWork {
	if pool == nil {
		return memstore.NewMemoryUoW(memstore.NewStore(), cfg)
	}
	return uow.NewPostgresUoW(pool, q, cfg)
}
