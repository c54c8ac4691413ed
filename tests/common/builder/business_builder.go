//go:build unit || e2e

package builder

import (
	"time"

	"booking-engine/internal/domain/schedule"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type BusinessBuilder struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Slug     string
	Hours    map[string]reqdto.DayRequest
	Services []queries.ServiceView
}

// NewBusinessBuilder starts with Monday open 08:00-12:00 and every other day closed.
func NewBusinessBuilder() *BusinessBuilder {
	id := uuid.New()
	return &BusinessBuilder{
		ID:      id,
		OwnerID: uuid.New(),
		Name:    "Studio Bela",
		Slug:    "studio-bela",
		Hours: map[string]reqdto.DayRequest{
			"1": {IsOpen: true, Intervals: []reqdto.IntervalRequest{{Start: "08:00", End: "12:00"}}},
		},
		Services: []queries.ServiceView{
			{ID: uuid.New(), BusinessID: id, Name: "Corte", DurationMinutes: 60, Price: 80},
		},
	}
}

func (b *BusinessBuilder) With(mutate func(*BusinessBuilder)) *BusinessBuilder {
	mutate(b)
	return b
}

func (b *BusinessBuilder) BuildCreateRequestDTO() reqdto.CreateBusinessRequest {
	return reqdto.CreateBusinessRequest{Name: b.Name, Slug: b.Slug}
}

func (b *BusinessBuilder) BuildHoursRequestDTO() reqdto.SetBusinessHoursRequest {
	return reqdto.SetBusinessHoursRequest{BusinessHours: b.Hours}
}

func (b *BusinessBuilder) BuildAddServiceRequestDTO() reqdto.AddServiceRequest {
	svc := b.Services[0]
	return reqdto.AddServiceRequest{Name: svc.Name, Description: svc.Description, DurationMinutes: svc.DurationMinutes, Price: svc.Price}
}

func (b *BusinessBuilder) BuildProfileView() *queries.BusinessProfileView {
	req := b.BuildHoursRequestDTO()
	return &queries.BusinessProfileView{
		Business: queries.BusinessView{
			ID:        b.ID,
			OwnerID:   b.OwnerID,
			Name:      b.Name,
			Slug:      b.Slug,
			CreatedAt: time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC),
		},
		Services:        b.Services,
		BusinessHours:   req.ToRaw(),
		HoursConfigured: len(b.Hours) > 0,
	}
}

func (b *BusinessBuilder) BuildRawHours() map[string]schedule.RawDay {
	req := b.BuildHoursRequestDTO()
	return req.ToRaw()
}
