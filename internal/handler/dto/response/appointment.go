package response

import (
	"booking-engine/internal/usecase/queries"
)

type AppointmentResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"businessId"`
	ServiceID       string  `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientPhone     string  `json:"clientPhone"`
	ClientEmail     string  `json:"clientEmail,omitempty"`
	RescheduledFrom *string `json:"rescheduledFrom,omitempty" copier:"-"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) (*AppointmentResponse, error) {
	res, err := copyInto[AppointmentResponse](v)
	if err != nil {
		return nil, err
	}
	if v.RescheduledFrom != nil {
		from := v.RescheduledFrom.String()
		res.RescheduledFrom = &from
	}
	return res, nil
}

type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	NextCursor   string                 `json:"nextCursor,omitempty"`
}

func FromAppointmentList(items []*queries.AppointmentView, next *queries.Cursor) (*AppointmentListResponse, error) {
	res := &AppointmentListResponse{Appointments: make([]*AppointmentResponse, len(items))}
	for i, it := range items {
		item, err := FromAppointmentView(it)
		if err != nil {
			return nil, err
		}
		res.Appointments[i] = item
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

type AvailableSlotsResponse struct {
	AvailableSlots  []SlotResponse `json:"availableSlots"`
	HoursConfigured bool           `json:"hoursConfigured"`
}

type SlotResponse struct {
	StartTime string `json:"startTime"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailableSlotsResponse {
	res := &AvailableSlotsResponse{AvailableSlots: []SlotResponse{}}
	if v == nil {
		return res
	}
	res.HoursConfigured = v.HoursConfigured
	for _, s := range v.AvailableSlots {
		res.AvailableSlots = append(res.AvailableSlots, SlotResponse{StartTime: s.StartTime})
	}
	return res
}
