package request

import (
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/usecase/commands"
)

type CreateBusinessRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	Slug            string `json:"slug" binding:"required,max=80"`
	AutoConfirm     bool   `json:"autoConfirm"`
	SlotStepMinutes int    `json:"slotStepMinutes" binding:"omitempty,min=5,max=240"`
}

func (r *CreateBusinessRequest) ToInput() commands.CreateBusinessInput {
	return commands.CreateBusinessInput{
		Name:            r.Name,
		Slug:            r.Slug,
		AutoConfirm:     r.AutoConfirm,
		SlotStepMinutes: r.SlotStepMinutes,
	}
}

type IntervalRequest struct {
	Start string `json:"start" binding:"required,clock"`
	End   string `json:"end" binding:"required,clock"`
}

type DayRequest struct {
	IsOpen    bool              `json:"isOpen"`
	Intervals []IntervalRequest `json:"intervals" binding:"dive"`
}

type SetBusinessHoursRequest struct {
	BusinessHours map[string]DayRequest `json:"businessHours" binding:"required,dive,keys,oneof=0 1 2 3 4 5 6,endkeys,required"`
}

func (r *SetBusinessHoursRequest) ToRaw() map[string]schedule.RawDay {
	raw := make(map[string]schedule.RawDay, len(r.BusinessHours))
	for key, day := range r.BusinessHours {
		intervals := make([]schedule.RawInterval, len(day.Intervals))
		for i, iv := range day.Intervals {
			intervals[i] = schedule.RawInterval{Start: iv.Start, End: iv.End}
		}
		raw[key] = schedule.RawDay{IsOpen: day.IsOpen, Intervals: intervals}
	}
	return raw
}

type AddServiceRequest struct {
	Name            string  `json:"name" binding:"required,max=120"`
	Description     string  `json:"description" binding:"max=1000"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=1,max=1440"`
	Price           float64 `json:"price" binding:"min=0"`
}

func (r *AddServiceRequest) ToInput() commands.AddServiceInput {
	return commands.AddServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}
