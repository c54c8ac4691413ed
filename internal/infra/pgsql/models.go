package pgsql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Businesses struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Slug            string
	AutoConfirm     bool
	SlotStepMinutes int32
	CreatedAt       time.Time
}

type Services struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	Description     string
	DurationMinutes int32
	PriceCents      int64
	CreatedAt       time.Time
}

type Appointments struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	AppointmentDate pgtype.Date
	StartMinute     int32
	EndMinute       int32
	Status          string
	ClientName      string
	ClientPhone     string
	ClientEmail     pgtype.Text
	RescheduledFrom pgtype.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OutboxEvents struct {
	Seq         int64
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}
