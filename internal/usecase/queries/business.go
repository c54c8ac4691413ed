package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BusinessView struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Name            string
	Slug            string
	AutoConfirm     bool
	SlotStepMinutes int
	CreatedAt       time.Time
}

type ServiceView struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

// BusinessProfileView is everything a booking page needs to render before choosing a slot.
type BusinessProfileView struct {
	Business        BusinessView
	Services        []ServiceView
	BusinessHours   map[string]schedule.RawDay
	HoursConfigured bool
}

type BusinessQueries interface {
	GetProfile(ctx context.Context, businessID uuid.UUID) (*BusinessProfileView, error)
	GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*ServiceView, error)
}

type businessQueriesImpl struct {
	reads shared.Reads
}

func NewBusinessQueries(uow shared.UnitOfWork) BusinessQueries {
	return &businessQueriesImpl{reads: uow.Reads()}
}

func (q *businessQueriesImpl) GetProfile(ctx context.Context, businessID uuid.UUID) (*BusinessProfileView, error) {
	biz, err := q.reads.BusinessByID(ctx, businessID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	services, err := q.reads.ServicesByBusiness(ctx, businessID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	hours, err := q.reads.WeeklyHours(ctx, businessID)
	if err != nil {
		return nil, mapReadErr(err)
	}

	view := &BusinessProfileView{
		Business:        toBusinessView(biz),
		Services:        make([]ServiceView, len(services)),
		BusinessHours:   hours.Encode(),
		HoursConfigured: hours.Configured(),
	}
	for i, s := range services {
		view.Services[i] = toServiceView(s)
	}
	return view, nil
}

func (q *businessQueriesImpl) GetService(ctx context.Context, businessID, serviceID uuid.UUID) (*ServiceView, error) {
	svc, err := q.reads.ServiceByID(ctx, businessID, serviceID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	v := toServiceView(svc)
	return &v, nil
}

func toBusinessView(b *business.Business) BusinessView {
	return BusinessView{
		ID:              b.ID(),
		OwnerID:         b.OwnerID(),
		Name:            b.Name(),
		Slug:            b.Slug(),
		AutoConfirm:     b.AutoConfirm(),
		SlotStepMinutes: b.SlotStepMinutes(),
		CreatedAt:       b.CreatedAt(),
	}
}

func toServiceView(s *catalog.Service) ServiceView {
	return ServiceView{
		ID:              s.ID(),
		BusinessID:      s.BusinessID(),
		Name:            s.Name(),
		Description:     s.Description(),
		DurationMinutes: s.DurationMinutes(),
		Price:           s.Price().Decimal(),
	}
}
