package request

import (
	"booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	ClientName      string    `json:"clientName" binding:"required,max=120"`
	ClientPhone     string    `json:"clientPhone" binding:"required,max=40"`
	ClientEmail     string    `json:"clientEmail" binding:"omitempty,email,max=254"`
	AppointmentDate string    `json:"appointmentDate" binding:"required,calendardate"`
	AppointmentTime string    `json:"appointmentTime" binding:"required,clock"`
}

func (r *BookAppointmentRequest) ToInput(businessID uuid.UUID) commands.BookSlotInput {
	return commands.BookSlotInput{
		BusinessID:      businessID,
		ServiceID:       r.ServiceID,
		AppointmentDate: r.AppointmentDate,
		AppointmentTime: r.AppointmentTime,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		ClientEmail:     r.ClientEmail,
	}
}

type RescheduleRequest struct {
	AppointmentDate string `json:"appointmentDate" binding:"required,calendardate"`
	AppointmentTime string `json:"appointmentTime" binding:"required,clock"`
}

func (r *RescheduleRequest) ToInput() commands.RescheduleInput {
	return commands.RescheduleInput{
		AppointmentDate: r.AppointmentDate,
		AppointmentTime: r.AppointmentTime,
	}
}

type AvailableSlotsQuery struct {
	ServiceID string `form:"serviceId" binding:"required,uuid"`
	Date      string `form:"date" binding:"required"`
}

// ServiceUUID is safe to call after binding succeeded.
func (q *AvailableSlotsQuery) ServiceUUID() uuid.UUID {
	return uuid.MustParse(q.ServiceID)
}

type ListAppointmentsQuery struct {
	Date   string `form:"date" binding:"omitempty,calendardate"`
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed rejected rescheduled cancelled"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
