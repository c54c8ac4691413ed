package catalog

import (
	"strings"
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

const maxServiceNameLength = 120

type Service struct {
	id              uuid.UUID
	businessID      uuid.UUID
	name            string
	description     string
	durationMinutes int
	price           Money
	createdAt       time.Time
}

func NewService(businessID uuid.UUID, name, description string, durationMinutes int, price Money, now time.Time) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Mark(errs.New("service name is required"), errs.ErrValidation)
	}
	if len(name) > maxServiceNameLength {
		return nil, errs.Mark(errs.Newf("service name exceeds %d characters", maxServiceNameLength), errs.ErrValidation)
	}
	if durationMinutes <= 0 {
		return nil, errs.Mark(errs.Newf("service duration must be positive, got %d", durationMinutes), errs.ErrValidation)
	}
	return &Service{
		id:              uuid.New(),
		businessID:      businessID,
		name:            name,
		description:     strings.TrimSpace(description),
		durationMinutes: durationMinutes,
		price:           price,
		createdAt:       now,
	}, nil
}

func ReconstructService(id, businessID uuid.UUID, name, description string, durationMinutes int, price Money, createdAt time.Time) *Service {
	return &Service{
		id:              id,
		businessID:      businessID,
		name:            name,
		description:     description,
		durationMinutes: durationMinutes,
		price:           price,
		createdAt:       createdAt,
	}
}

func (s *Service) ID() uuid.UUID         { return s.id }
func (s *Service) BusinessID() uuid.UUID { return s.businessID }
func (s *Service) Name() string          { return s.name }
func (s *Service) Description() string   { return s.description }
func (s *Service) DurationMinutes() int  { return s.durationMinutes }
func (s *Service) Price() Money          { return s.price }
func (s *Service) CreatedAt() time.Time  { return s.createdAt }
