package repository

import (
	"context"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository/converter"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReadQueries interface {
	FindBusinessByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Businesses, error)
	FindService(ctx context.Context, db pgsql.DBTX, businessID, serviceID uuid.UUID) (pgsql.Services, error)
	ListServicesByBusiness(ctx context.Context, db pgsql.DBTX, businessID uuid.UUID) ([]pgsql.Services, error)
	FindBusinessHours(ctx context.Context, db pgsql.DBTX, businessID uuid.UUID) ([]byte, error)
	FindAppointmentByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Appointments, error)
	ListOccupiedIntervals(ctx context.Context, db pgsql.DBTX, businessID uuid.UUID, date pgtype.Date) ([]pgsql.OccupiedIntervalRow, error)
	ListAppointments(ctx context.Context, db pgsql.DBTX, arg pgsql.ListAppointmentsParams) ([]pgsql.Appointments, error)
}

// ReadStore serves shared.Reads from either the pool or an open transaction.
type ReadStore struct {
	queries ReadQueries
	db      pgsql.DBTX
}

func NewReadStore(queries ReadQueries, db pgsql.DBTX) *ReadStore {
	return &ReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReadStore) BusinessByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	row, err := r.queries.FindBusinessByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("business not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find business", err)
	}
	return converter.BusinessFromRow(row), nil
}

func (r *ReadStore) ServiceByID(ctx context.Context, businessID, serviceID uuid.UUID) (*catalog.Service, error) {
	row, err := r.queries.FindService(ctx, r.db, businessID, serviceID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return converter.ServiceFromRow(row), nil
}

func (r *ReadStore) ServicesByBusiness(ctx context.Context, businessID uuid.UUID) ([]*catalog.Service, error) {
	rows, err := r.queries.ListServicesByBusiness(ctx, r.db, businessID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	out := make([]*catalog.Service, len(rows))
	for i, row := range rows {
		out[i] = converter.ServiceFromRow(row)
	}
	return out, nil
}

func (r *ReadStore) WeeklyHours(ctx context.Context, businessID uuid.UUID) (schedule.WeeklyHours, error) {
	doc, err := r.queries.FindBusinessHours(ctx, r.db, businessID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return schedule.WeeklyHours{}, infra.WrapRepoErr("business not found", err, infra.KindNotFound)
		}
		return schedule.WeeklyHours{}, infra.WrapRepoErr("failed to load business hours", err)
	}
	return converter.HoursFromJSON(doc), nil
}

func (r *ReadStore) AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.queries.FindAppointmentByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	return converter.AppointmentFromRow(row), nil
}

func (r *ReadStore) OccupiedIntervals(ctx context.Context, businessID uuid.UUID, date schedule.Date) ([]shared.Occupancy, error) {
	rows, err := r.queries.ListOccupiedIntervals(ctx, r.db, businessID, converter.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupied intervals", err)
	}
	return converter.OccupancyFromRows(rows), nil
}

func (r *ReadStore) ListAppointments(ctx context.Context, filter shared.AppointmentFilter) ([]*appointment.Appointment, error) {
	rows, err := r.queries.ListAppointments(ctx, r.db, converter.ListParams(filter))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	out := make([]*appointment.Appointment, len(rows))
	for i, row := range rows {
		out[i] = converter.AppointmentFromRow(row)
	}
	return out, nil
}
