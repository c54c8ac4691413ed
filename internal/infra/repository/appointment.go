package repository

import (
	"context"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type AppointmentWriteQueries interface {
	CreateAppointment(ctx context.Context, db pgsql.DBTX, arg pgsql.Appointments) error
	UpdateAppointmentStatus(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateAppointmentStatusParams) (int64, error)
	AppointmentExists(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (bool, error)
}

type AppointmentRepository struct {
	queries AppointmentWriteQueries
	db      pgsql.DBTX
}

func NewAppointmentRepository(queries AppointmentWriteQueries, db pgsql.DBTX) *AppointmentRepository {
	return &AppointmentRepository{
		queries: queries,
		db:      db,
	}
}

// Create relies on the appointments_no_overlap exclusion constraint as the last line of
// defense; a violation comes back as KindConflict.
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.queries.CreateAppointment(ctx, r.db, converter.AppointmentToRow(a)); err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to appointment.Status, at time.Time) error {
	n, err := r.queries.UpdateAppointmentStatus(ctx, r.db, pgsql.UpdateAppointmentStatusParams{
		ID:         id,
		FromStatus: from.String(),
		ToStatus:   to.String(),
		UpdatedAt:  at,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if n > 0 {
		return nil
	}

	exists, err := r.queries.AppointmentExists(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to check appointment", err)
	}
	if !exists {
		return infra.NewRepoErr(infra.KindNotFound, "appointment not found")
	}
	return infra.NewRepoErr(infra.KindConflict, "appointment status changed concurrently")
}
