package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentView struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	AppointmentDate string
	StartTime       string
	EndTime         string
	Status          string
	ClientName      string
	ClientPhone     string
	ClientEmail     string
	RescheduledFrom *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AppointmentFilters struct {
	Date   string
	Status string
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	GetForOwner(ctx context.Context, id, actorID uuid.UUID) (*AppointmentView, error)
	ListByBusiness(ctx context.Context, businessID, actorID uuid.UUID, filters AppointmentFilters, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error)
}

type appointmentQueriesImpl struct {
	reads shared.Reads
}

func NewAppointmentQueries(uow shared.UnitOfWork) AppointmentQueries {
	return &appointmentQueriesImpl{reads: uow.Reads()}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	a, err := q.reads.AppointmentByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return toAppointmentView(a), nil
}

func (q *appointmentQueriesImpl) GetForOwner(ctx context.Context, id, actorID uuid.UUID) (*AppointmentView, error) {
	a, err := q.reads.AppointmentByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	if err := q.ensureOwner(ctx, a.BusinessID(), actorID); err != nil {
		return nil, err
	}
	return toAppointmentView(a), nil
}

func (q *appointmentQueriesImpl) ListByBusiness(ctx context.Context, businessID, actorID uuid.UUID, filters AppointmentFilters, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error) {
	if err := q.ensureOwner(ctx, businessID, actorID); err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	filter := shared.AppointmentFilter{BusinessID: businessID, Limit: limit + 1}
	if filters.Date != "" {
		d, err := schedule.ParseDate(filters.Date)
		if err != nil {
			return nil, nil, err
		}
		filter.Date = &d
	}
	if filters.Status != "" {
		st := appointment.Status(filters.Status)
		if !st.IsValid() {
			return nil, nil, errs.Mark(errs.Newf("unknown status %q", filters.Status), errs.ErrValidation)
		}
		filter.Status = &st
	}
	if cursor != nil && cursor.After != "" {
		lastCreatedAt, lastID, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, ErrInvalidCursor
		}
		filter.AfterCreated = &lastCreatedAt
		filter.AfterID = lastID
	}

	rows, err := q.reads.ListAppointments(ctx, filter)
	if err != nil {
		return nil, nil, mapReadErr(err)
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
		rows = rows[:limit]
	}
	views := make([]*AppointmentView, len(rows))
	for i, a := range rows {
		views[i] = toAppointmentView(a)
	}
	return views, next, nil
}

func (q *appointmentQueriesImpl) ensureOwner(ctx context.Context, businessID, actorID uuid.UUID) error {
	biz, err := q.reads.BusinessByID(ctx, businessID)
	if err != nil {
		return mapReadErr(err)
	}
	if !biz.OwnedBy(actorID) {
		return errs.Mark(errs.Newf("business %s belongs to another owner", businessID), errs.ErrForbidden)
	}
	return nil
}

func toAppointmentView(a *appointment.Appointment) *AppointmentView {
	c := a.Client()
	return &AppointmentView{
		ID:              a.ID(),
		BusinessID:      a.BusinessID(),
		ServiceID:       a.ServiceID(),
		AppointmentDate: a.Date().String(),
		StartTime:       schedule.FormatClock(a.StartMinute()),
		EndTime:         schedule.FormatClock(a.EndMinute()),
		Status:          a.Status().String(),
		ClientName:      c.Name,
		ClientPhone:     c.Phone,
		ClientEmail:     c.Email,
		RescheduledFrom: a.RescheduledFrom(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}
