package shared

import (
	"context"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: transaction for writes that do not touch the booking ledger ordering
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinKeys: transaction serialized on every key. The caller's ctx bounds the wait for
	// the keys; once they are held fn runs on a detached ctx bounded by the commit timeout.
	WithinKeys(ctx context.Context, keys []BookingKey, fn func(ctx context.Context, tx Tx) error) error
	// Reads: lock-free reads outside any transaction
	Reads() Reads
}

type Tx interface {
	Appointments() AppointmentRepository
	Businesses() BusinessRepository
	Services() ServiceRepository
	Hours() BusinessHoursRepository
	Outbox() OutboxRepository
	Reads() Reads
}

type Reads interface {
	BusinessByID(ctx context.Context, id uuid.UUID) (*business.Business, error)
	ServiceByID(ctx context.Context, businessID, serviceID uuid.UUID) (*catalog.Service, error)
	ServicesByBusiness(ctx context.Context, businessID uuid.UUID) ([]*catalog.Service, error)
	WeeklyHours(ctx context.Context, businessID uuid.UUID) (schedule.WeeklyHours, error)
	AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// OccupiedIntervals lists pending and confirmed appointments for the key, ordered by start.
	OccupiedIntervals(ctx context.Context, businessID uuid.UUID, date schedule.Date) ([]Occupancy, error)
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*appointment.Appointment, error)
}

type Occupancy struct {
	AppointmentID uuid.UUID         `json:"id"`
	Interval      schedule.Interval `json:"interval"`
}

func Intervals(occ []Occupancy, exclude uuid.UUID) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(occ))
	for _, o := range occ {
		if o.AppointmentID == exclude {
			continue
		}
		out = append(out, o.Interval)
	}
	return out
}

// AppointmentFilter pages by (created_at DESC, id DESC).
type AppointmentFilter struct {
	BusinessID   uuid.UUID
	Date         *schedule.Date
	Status       *appointment.Status
	AfterCreated *time.Time
	AfterID      uuid.UUID
	Limit        int
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	// UpdateStatus writes to only while the row is still in from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to appointment.Status, at time.Time) error
}

type BusinessRepository interface {
	Create(ctx context.Context, b *business.Business) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *catalog.Service) error
}

type BusinessHoursRepository interface {
	Replace(ctx context.Context, businessID uuid.UUID, hours schedule.WeeklyHours) error
}

type OutboxRepository interface {
	Append(ctx context.Context, evt OutboxEvent) error
}
