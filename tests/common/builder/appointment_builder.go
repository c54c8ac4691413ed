//go:build unit || e2e

package builder

import (
	"time"

	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	AppointmentDate string
	AppointmentTime string
	EndTime         string
	Status          string
	ClientName      string
	ClientPhone     string
	ClientEmail     string
	CreatedAt       time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		ServiceID:       uuid.New(),
		AppointmentDate: "2026-10-19",
		AppointmentTime: "08:00",
		EndTime:         "09:00",
		Status:          "pending",
		ClientName:      "Maria Souza",
		ClientPhone:     "+55 11 91234-5678",
		ClientEmail:     "maria@example.com",
		CreatedAt:       time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC),
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) WithBusinessID(id uuid.UUID) *AppointmentBuilder {
	b.BusinessID = id
	return b
}

func (b *AppointmentBuilder) WithServiceID(id uuid.UUID) *AppointmentBuilder {
	b.ServiceID = id
	return b
}

func (b *AppointmentBuilder) WithSlot(date, clock string) *AppointmentBuilder {
	b.AppointmentDate = date
	b.AppointmentTime = clock
	return b
}

func (b *AppointmentBuilder) BuildBookRequestDTO() reqdto.BookAppointmentRequest {
	return reqdto.BookAppointmentRequest{
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		ClientEmail:     b.ClientEmail,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
	}
}

func (b *AppointmentBuilder) BuildRescheduleRequestDTO() reqdto.RescheduleRequest {
	return reqdto.RescheduleRequest{
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		ServiceID:       b.ServiceID,
		AppointmentDate: b.AppointmentDate,
		StartTime:       b.AppointmentTime,
		EndTime:         b.EndTime,
		Status:          b.Status,
		ClientName:      b.ClientName,
		ClientPhone:     b.ClientPhone,
		ClientEmail:     b.ClientEmail,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}
