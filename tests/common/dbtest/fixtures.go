//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestBusiness(t *testing.T, db DBLike, ownerID uuid.UUID, slug string) uuid.UUID {
	t.Helper()

	businessID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO businesses (id, owner_id, name, slug, auto_confirm, slot_step_minutes, created_at) VALUES ($1, $2, $3, $4, false, 0, now())",
		businessID, ownerID, "Business "+slug, slug)
	require.NoError(t, err)
	return businessID
}

func CreateTestService(t *testing.T, db DBLike, businessID uuid.UUID, name string, durationMinutes int) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, business_id, name, description, duration_minutes, price_cents, created_at) VALUES ($1, $2, $3, '', $4, 0, now())",
		serviceID, businessID, name, durationMinutes)
	require.NoError(t, err)
	return serviceID
}

// SetTestHours stores hours as the JSON the API accepts, e.g. {"1":{"isOpen":true,"intervals":[...]}}.
func SetTestHours(t *testing.T, db DBLike, businessID uuid.UUID, hours any) {
	t.Helper()

	raw, err := json.Marshal(hours)
	require.NoError(t, err)
	_, err = db.Exec(context.Background(),
		"INSERT INTO business_hours (business_id, hours, updated_at) VALUES ($1, $2, now()) ON CONFLICT (business_id) DO UPDATE SET hours = EXCLUDED.hours",
		businessID, raw)
	require.NoError(t, err)
}

func CountOutboxEvents(t *testing.T, db DBLike, eventType string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM outbox_events WHERE event_type = $1", eventType).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
