package pgsql

import (
	"context"

	"github.com/google/uuid"
)

const createService = `
INSERT INTO services (id, business_id, name, description, duration_minutes, price_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (q *Queries) CreateService(ctx context.Context, db DBTX, arg Services) error {
	_, err := db.Exec(ctx, createService,
		arg.ID,
		arg.BusinessID,
		arg.Name,
		arg.Description,
		arg.DurationMinutes,
		arg.PriceCents,
		arg.CreatedAt,
	)
	return err
}

const findService = `
SELECT id, business_id, name, description, duration_minutes, price_cents, created_at
FROM services
WHERE business_id = $1 AND id = $2
`

func (q *Queries) FindService(ctx context.Context, db DBTX, businessID, serviceID uuid.UUID) (Services, error) {
	row := db.QueryRow(ctx, findService, businessID, serviceID)
	var i Services
	err := row.Scan(
		&i.ID,
		&i.BusinessID,
		&i.Name,
		&i.Description,
		&i.DurationMinutes,
		&i.PriceCents,
		&i.CreatedAt,
	)
	return i, err
}

const listServicesByBusiness = `
SELECT id, business_id, name, description, duration_minutes, price_cents, created_at
FROM services
WHERE business_id = $1
ORDER BY name ASC, id ASC
`

func (q *Queries) ListServicesByBusiness(ctx context.Context, db DBTX, businessID uuid.UUID) ([]Services, error) {
	rows, err := db.Query(ctx, listServicesByBusiness, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Services{}
	for rows.Next() {
		var i Services
		if err := rows.Scan(
			&i.ID,
			&i.BusinessID,
			&i.Name,
			&i.Description,
			&i.DurationMinutes,
			&i.PriceCents,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
