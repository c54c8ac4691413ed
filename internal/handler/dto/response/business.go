package response

import (
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/usecase/queries"
)

type BusinessResponse struct {
	ID              string `json:"id"`
	OwnerID         string `json:"ownerId"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	AutoConfirm     bool   `json:"autoConfirm"`
	SlotStepMinutes int    `json:"slotStepMinutes,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"businessId"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

type BusinessProfileResponse struct {
	Business        *BusinessResponse          `json:"business"`
	Services        []*ServiceResponse         `json:"services"`
	BusinessHours   map[string]schedule.RawDay `json:"businessHours"`
	HoursConfigured bool                       `json:"hoursConfigured"`
}

func FromBusinessProfile(v *queries.BusinessProfileView) (*BusinessProfileResponse, error) {
	biz, err := copyInto[BusinessResponse](&v.Business)
	if err != nil {
		return nil, err
	}
	res := &BusinessProfileResponse{
		Business:        biz,
		Services:        make([]*ServiceResponse, len(v.Services)),
		BusinessHours:   v.BusinessHours,
		HoursConfigured: v.HoursConfigured,
	}
	for i := range v.Services {
		svc, err := FromServiceView(&v.Services[i])
		if err != nil {
			return nil, err
		}
		res.Services[i] = svc
	}
	return res, nil
}

func FromServiceView(v *queries.ServiceView) (*ServiceResponse, error) {
	return copyInto[ServiceResponse](v)
}

type CreatedResponse struct {
	ID string `json:"id"`
}
