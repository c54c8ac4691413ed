package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool          *pgxpool.Pool
	q             *pgsql.Queries
	lockTimeout   time.Duration
	commitTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgsql.Queries, cfg config.Config) shared.UnitOfWork {
	return &PostgresUoW{
		pool:          pool,
		q:             q,
		lockTimeout:   cfg.Booking.LockTimeout,
		commitTimeout: cfg.Booking.CommitTimeout,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, nil, fn)
}

// WithinKeys takes one transaction-scoped advisory lock per key, in sorted order, before
// running fn. The caller's ctx only governs BEGIN and the lock waits.
func (u *PostgresUoW) WithinKeys(ctx context.Context, keys []shared.BookingKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, shared.NormalizeKeys(keys), fn)
}

func (u *PostgresUoW) Reads() shared.Reads {
	return repository.NewReadStore(u.q, u.pool)
}

func (u *PostgresUoW) runInTx(ctx context.Context, keys []shared.BookingKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := u.attempt(ctx, keys, fn)
		if err == nil {
			return nil
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// attempt scopes the rollback defer to a single try so retries never stack deferred calls.
func (u *PostgresUoW) attempt(ctx context.Context, keys []shared.BookingKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rollbackErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	workCtx := ctx
	if len(keys) > 0 {
		if err := u.lockKeys(ctx, pgxTx, keys); err != nil {
			return err
		}
		var cancel context.CancelFunc
		workCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), u.commitTimeout)
		defer cancel()
	}

	if err := fn(workCtx, &pgTx{dbtx: pgxTx, q: u.q}); err != nil {
		return err
	}
	if err := pgxTx.Commit(workCtx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// lockKeys bounds each wait with lock_timeout; a timeout is transient for the caller,
// distinct from the slot being taken.
func (u *PostgresUoW) lockKeys(ctx context.Context, db pgsql.DBTX, keys []shared.BookingKey) error {
	if err := u.q.SetLocalLockTimeout(ctx, db, u.lockTimeout); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}
	for _, k := range keys {
		err := u.q.AcquireXactLock(ctx, db, k.String())
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if infra.IsLockNotAvailable(err) {
			return errs.Mark(infra.WrapRepoErr("timed out waiting for key "+k.String(), err, infra.KindLockTimeout), errs.ErrTransientUnavailable)
		}
		return infra.WrapRepoErr("failed to acquire key lock", err)
	}
	return nil
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgsql.DBTX
	q    *pgsql.Queries

	// Lazy-initialized repositories
	appointmentRepo shared.AppointmentRepository
	businessRepo    shared.BusinessRepository
	serviceRepo     shared.ServiceRepository
	hoursRepo       shared.BusinessHoursRepository
	outboxRepo      shared.OutboxRepository
	reads           shared.Reads
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointmentRepo == nil {
		t.appointmentRepo = repository.NewAppointmentRepository(t.q, t.dbtx)
	}
	return t.appointmentRepo
}

func (t *pgTx) Businesses() shared.BusinessRepository {
	if t.businessRepo == nil {
		t.businessRepo = repository.NewBusinessRepository(t.q, t.dbtx)
	}
	return t.businessRepo
}

func (t *pgTx) Services() shared.ServiceRepository {
	if t.serviceRepo == nil {
		t.serviceRepo = repository.NewServiceRepository(t.q, t.dbtx)
	}
	return t.serviceRepo
}

func (t *pgTx) Hours() shared.BusinessHoursRepository {
	if t.hoursRepo == nil {
		t.hoursRepo = repository.NewBusinessHoursRepository(t.q, t.dbtx)
	}
	return t.hoursRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.q, t.dbtx)
	}
	return t.outboxRepo
}

// Reads inside a transaction see its own uncommitted writes.
func (t *pgTx) Reads() shared.Reads {
	if t.reads == nil {
		t.reads = repository.NewReadStore(t.q, t.dbtx)
	}
	return t.reads
}
