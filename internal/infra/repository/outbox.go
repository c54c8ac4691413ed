package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OutboxQueries interface {
	InsertOutboxEvent(ctx context.Context, db pgsql.DBTX, arg pgsql.OutboxEvents) error
	FetchUnpublishedOutbox(ctx context.Context, db pgsql.DBTX, limit int32) ([]pgsql.OutboxEvents, error)
	MarkOutboxPublished(ctx context.Context, db pgsql.DBTX, seqs []int64, at time.Time) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      pgsql.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db pgsql.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, evt shared.OutboxEvent) error {
	err := r.queries.InsertOutboxEvent(ctx, r.db, pgsql.OutboxEvents{
		ID:          evt.ID,
		AggregateID: evt.AggregateID,
		EventType:   evt.Type,
		Payload:     evt.Payload,
		CreatedAt:   evt.CreatedAt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}

// OutboxRelayStore hands pending events to the relay inside one transaction. Rows are
// locked with SKIP LOCKED so several relays never publish the same batch, and they are
// marked published only when fn succeeds.
type OutboxRelayStore struct {
	pool    *pgxpool.Pool
	queries OutboxQueries
}

func NewOutboxRelayStore(pool *pgxpool.Pool, queries OutboxQueries) *OutboxRelayStore {
	return &OutboxRelayStore{pool: pool, queries: queries}
}

func (s *OutboxRelayStore) WithPending(ctx context.Context, limit int, fn func(ctx context.Context, events []shared.OutboxEvent) error) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to begin outbox transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("outbox rollback failed", "error", rbErr.Error())
		}
	}()

	rows, err := s.queries.FetchUnpublishedOutbox(ctx, tx, pgconv.IntToInt32(limit))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to fetch outbox events", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	events := make([]shared.OutboxEvent, len(rows))
	seqs := make([]int64, len(rows))
	for i, row := range rows {
		events[i] = shared.OutboxEvent{
			ID:          row.ID,
			AggregateID: row.AggregateID,
			Type:        row.EventType,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		}
		seqs[i] = row.Seq
	}
	if err := fn(ctx, events); err != nil {
		return 0, err
	}

	if err := s.queries.MarkOutboxPublished(ctx, tx, seqs, time.Now()); err != nil {
		return 0, infra.WrapRepoErr("failed to mark outbox events", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, errs.Wrap(err, "failed to commit outbox batch")
	}
	return len(events), nil
}
