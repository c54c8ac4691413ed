package commands

import (
	"context"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBusinessInput struct {
	Name            string
	Slug            string
	AutoConfirm     bool
	SlotStepMinutes int
}

type AddServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

type CreatedResult struct {
	ID uuid.UUID
}

// BusinessCommands covers the owner-side setup the booking engine reads from.
type BusinessCommands interface {
	CreateBusiness(ctx context.Context, in CreateBusinessInput, ownerID uuid.UUID) (*CreatedResult, error)
	SetBusinessHours(ctx context.Context, businessID, actorID uuid.UUID, raw map[string]schedule.RawDay) error
	AddService(ctx context.Context, businessID, actorID uuid.UUID, in AddServiceInput) (*CreatedResult, error)
}

type businessCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBusinessCommands(uow shared.UnitOfWork, clk clock.Clock) BusinessCommands {
	return &businessCommandsImpl{uow: uow, clock: clk}
}

func (uc *businessCommandsImpl) CreateBusiness(ctx context.Context, in CreateBusinessInput, ownerID uuid.UUID) (*CreatedResult, error) {
	b, err := business.New(business.NewParams{
		OwnerID:         ownerID,
		Name:            in.Name,
		Slug:            in.Slug,
		AutoConfirm:     in.AutoConfirm,
		SlotStepMinutes: in.SlotStepMinutes,
		Now:             uc.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return mapRepoErr(tx.Businesses().Create(ctx, b), errs.ErrAlreadyExists)
	})
	if err != nil {
		return nil, finish(err, errs.ErrAlreadyExists)
	}
	return &CreatedResult{ID: b.ID()}, nil
}

// SetBusinessHours replaces all seven weekdays at once; absent weekdays become closed.
func (uc *businessCommandsImpl) SetBusinessHours(ctx context.Context, businessID, actorID uuid.UUID, raw map[string]schedule.RawDay) error {
	hours, err := schedule.DecodeWeeklyHours(raw, true)
	if err != nil {
		return err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), businessID, actorID); err != nil {
			return err
		}
		return mapRepoErr(tx.Hours().Replace(ctx, businessID, hours), errs.ErrValidation)
	})
	return finish(err, errs.ErrValidation)
}

func (uc *businessCommandsImpl) AddService(ctx context.Context, businessID, actorID uuid.UUID, in AddServiceInput) (*CreatedResult, error) {
	price, err := catalog.MoneyFromDecimal(in.Price)
	if err != nil {
		return nil, err
	}
	svc, err := catalog.NewService(businessID, in.Name, in.Description, in.DurationMinutes, price, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), businessID, actorID); err != nil {
			return err
		}
		return mapRepoErr(tx.Services().Create(ctx, svc), errs.ErrAlreadyExists)
	})
	if err != nil {
		return nil, finish(err, errs.ErrAlreadyExists)
	}
	return &CreatedResult{ID: svc.ID()}, nil
}

func ensureOwner(ctx context.Context, reads shared.Reads, businessID, actorID uuid.UUID) error {
	biz, err := reads.BusinessByID(ctx, businessID)
	if err != nil {
		return mapRepoErr(err, errs.ErrNotFound)
	}
	if !biz.OwnedBy(actorID) {
		return errs.Mark(errs.Newf("business %s belongs to another owner", businessID), errs.ErrForbidden)
	}
	return nil
}
