package pgsql

import (
	"context"
	"fmt"
	"time"
)

// SetLocalLockTimeout bounds every lock wait until the end of the current transaction.
func (q *Queries) SetLocalLockTimeout(ctx context.Context, db DBTX, timeout time.Duration) error {
	_, err := db.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, fmt.Sprintf("%dms", timeout.Milliseconds()))
	return err
}

// AcquireXactLock takes the advisory lock for key; it is released at commit or rollback.
func (q *Queries) AcquireXactLock(ctx context.Context, db DBTX, key string) error {
	_, err := db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	return err
}
