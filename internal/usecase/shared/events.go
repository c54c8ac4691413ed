package shared

import (
	"context"
	"time"

	"booking-engine/internal/domain/schedule"

	"github.com/google/uuid"
)

const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentConfirmed   = "appointment.confirmed"
	EventAppointmentRejected    = "appointment.rejected"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentRescheduled = "appointment.rescheduled"
)

type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
	CreatedAt   time.Time
}

// OccupancyCache fronts OccupiedIntervals on the read path only.
type OccupancyCache interface {
	Get(ctx context.Context, key BookingKey) ([]Occupancy, bool, error)
	Set(ctx context.Context, key BookingKey, occ []Occupancy) error
	Invalidate(ctx context.Context, keys ...BookingKey) error
}

type NoopOccupancyCache struct{}

func (NoopOccupancyCache) Get(context.Context, BookingKey) ([]Occupancy, bool, error) {
	return nil, false, nil
}

func (NoopOccupancyCache) Set(context.Context, BookingKey, []Occupancy) error { return nil }

func (NoopOccupancyCache) Invalidate(context.Context, ...BookingKey) error { return nil }

// KeyOf is a small helper used by commands after commit.
func KeyOf(businessID uuid.UUID, date schedule.Date) BookingKey {
	return BookingKey{BusinessID: businessID, Date: date}
}
