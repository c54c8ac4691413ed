package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createBusiness = `
INSERT INTO businesses (id, owner_id, name, slug, auto_confirm, slot_step_minutes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (q *Queries) CreateBusiness(ctx context.Context, db DBTX, arg Businesses) error {
	_, err := db.Exec(ctx, createBusiness,
		arg.ID,
		arg.OwnerID,
		arg.Name,
		arg.Slug,
		arg.AutoConfirm,
		arg.SlotStepMinutes,
		arg.CreatedAt,
	)
	return err
}

const findBusinessByID = `
SELECT id, owner_id, name, slug, auto_confirm, slot_step_minutes, created_at
FROM businesses
WHERE id = $1
`

func (q *Queries) FindBusinessByID(ctx context.Context, db DBTX, id uuid.UUID) (Businesses, error) {
	row := db.QueryRow(ctx, findBusinessByID, id)
	var i Businesses
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Slug,
		&i.AutoConfirm,
		&i.SlotStepMinutes,
		&i.CreatedAt,
	)
	return i, err
}

const upsertBusinessHours = `
INSERT INTO business_hours (business_id, hours, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (business_id) DO UPDATE
SET hours = EXCLUDED.hours, updated_at = EXCLUDED.updated_at
`

func (q *Queries) UpsertBusinessHours(ctx context.Context, db DBTX, businessID uuid.UUID, hours []byte, updatedAt time.Time) error {
	_, err := db.Exec(ctx, upsertBusinessHours, businessID, hours, updatedAt)
	return err
}

// findBusinessHours returns no row for an unknown business and a NULL document for a
// business that never saved its hours.
const findBusinessHours = `
SELECT h.hours
FROM businesses b
LEFT JOIN business_hours h ON h.business_id = b.id
WHERE b.id = $1
`

func (q *Queries) FindBusinessHours(ctx context.Context, db DBTX, businessID uuid.UUID) ([]byte, error) {
	row := db.QueryRow(ctx, findBusinessHours, businessID)
	var hours []byte
	err := row.Scan(&hours)
	return hours, err
}
