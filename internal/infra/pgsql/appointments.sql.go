package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentColumns = `id, business_id, service_id, appointment_date, start_minute, end_minute, status,
	client_name, client_phone, client_email, rescheduled_from, created_at, updated_at`

const createAppointment = `
INSERT INTO appointments (` + appointmentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

func (q *Queries) CreateAppointment(ctx context.Context, db DBTX, arg Appointments) error {
	_, err := db.Exec(ctx, createAppointment,
		arg.ID,
		arg.BusinessID,
		arg.ServiceID,
		arg.AppointmentDate,
		arg.StartMinute,
		arg.EndMinute,
		arg.Status,
		arg.ClientName,
		arg.ClientPhone,
		arg.ClientEmail,
		arg.RescheduledFrom,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateAppointmentStatus = `
UPDATE appointments
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2
`

type UpdateAppointmentStatusParams struct {
	ID         uuid.UUID
	FromStatus string
	ToStatus   string
	UpdatedAt  time.Time
}

// UpdateAppointmentStatus returns the number of rows moved; zero means the row is gone or
// no longer in FromStatus.
func (q *Queries) UpdateAppointmentStatus(ctx context.Context, db DBTX, arg UpdateAppointmentStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateAppointmentStatus, arg.ID, arg.FromStatus, arg.ToStatus, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const appointmentExists = `SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`

func (q *Queries) AppointmentExists(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, appointmentExists, id).Scan(&exists)
	return exists, err
}

const findAppointmentByID = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

func (q *Queries) FindAppointmentByID(ctx context.Context, db DBTX, id uuid.UUID) (Appointments, error) {
	return scanAppointment(db.QueryRow(ctx, findAppointmentByID, id))
}

type OccupiedIntervalRow struct {
	ID          uuid.UUID
	StartMinute int32
	EndMinute   int32
}

const listOccupiedIntervals = `
SELECT id, start_minute, end_minute
FROM appointments
WHERE business_id = $1
  AND appointment_date = $2
  AND status IN ('pending', 'confirmed')
ORDER BY start_minute ASC
`

func (q *Queries) ListOccupiedIntervals(ctx context.Context, db DBTX, businessID uuid.UUID, date pgtype.Date) ([]OccupiedIntervalRow, error) {
	rows, err := db.Query(ctx, listOccupiedIntervals, businessID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OccupiedIntervalRow{}
	for rows.Next() {
		var i OccupiedIntervalRow
		if err := rows.Scan(&i.ID, &i.StartMinute, &i.EndMinute); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAppointments = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE business_id = $1
  AND ($2::date IS NULL OR appointment_date = $2::date)
  AND ($3::text IS NULL OR status = $3::text)
  AND ($4::timestamptz IS NULL OR (created_at, id) < ($4::timestamptz, $5::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $6
`

type ListAppointmentsParams struct {
	BusinessID   uuid.UUID
	Date         pgtype.Date
	Status       pgtype.Text
	AfterCreated pgtype.Timestamptz
	AfterID      pgtype.UUID
	Limit        int32
}

func (q *Queries) ListAppointments(ctx context.Context, db DBTX, arg ListAppointmentsParams) ([]Appointments, error) {
	rows, err := db.Query(ctx, listAppointments,
		arg.BusinessID,
		arg.Date,
		arg.Status,
		arg.AfterCreated,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Appointments{}
	for rows.Next() {
		i, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanAppointment(row pgx.Row) (Appointments, error) {
	var i Appointments
	err := row.Scan(
		&i.ID,
		&i.BusinessID,
		&i.ServiceID,
		&i.AppointmentDate,
		&i.StartMinute,
		&i.EndMinute,
		&i.Status,
		&i.ClientName,
		&i.ClientPhone,
		&i.ClientEmail,
		&i.RescheduledFrom,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
