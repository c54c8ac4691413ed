package commands

import (
	"context"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentCommands interface {
	Confirm(ctx context.Context, appointmentID, actorID uuid.UUID) error
	Reject(ctx context.Context, appointmentID, actorID uuid.UUID) error
	Cancel(ctx context.Context, appointmentID, actorID uuid.UUID) error
}

type appointmentCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	cache    shared.OccupancyCache
	settings Settings
}

func NewAppointmentCommands(uow shared.UnitOfWork, clk clock.Clock, cache shared.OccupancyCache, settings Settings) AppointmentCommands {
	return &appointmentCommandsImpl{uow: uow, clock: clk, cache: cache, settings: settings}
}

func (uc *appointmentCommandsImpl) Confirm(ctx context.Context, appointmentID, actorID uuid.UUID) error {
	return uc.transition(ctx, appointmentID, actorID, appointment.StatusConfirmed, shared.EventAppointmentConfirmed)
}

func (uc *appointmentCommandsImpl) Reject(ctx context.Context, appointmentID, actorID uuid.UUID) error {
	return uc.transition(ctx, appointmentID, actorID, appointment.StatusRejected, shared.EventAppointmentRejected)
}

func (uc *appointmentCommandsImpl) Cancel(ctx context.Context, appointmentID, actorID uuid.UUID) error {
	return uc.transition(ctx, appointmentID, actorID, appointment.StatusCancelled, shared.EventAppointmentCancelled)
}

// transition is a conditional status write; it never changes the interval, so it does not
// need the per-key lock. Losing a race on the status surfaces as ErrInvalidTransition.
func (uc *appointmentCommandsImpl) transition(ctx context.Context, appointmentID, actorID uuid.UUID, next appointment.Status, eventType string) error {
	var key shared.BookingKey
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Reads().AppointmentByID(ctx, appointmentID)
		if err != nil {
			return mapRepoErr(err, errs.ErrNotFound)
		}
		biz, err := tx.Reads().BusinessByID(ctx, a.BusinessID())
		if err != nil {
			return mapRepoErr(err, errs.ErrNotFound)
		}
		if !biz.OwnedBy(actorID) {
			return errs.Mark(errs.Newf("appointment %s belongs to another business", appointmentID), errs.ErrForbidden)
		}

		now := uc.clock.Now().In(uc.settings.Location)
		prev, err := a.Transition(next, now)
		if err != nil {
			return err
		}
		if err = tx.Appointments().UpdateStatus(ctx, a.ID(), prev, next, now); err != nil {
			return mapRepoErr(err, errs.ErrInvalidTransition)
		}
		evt, err := newAppointmentEvent(eventType, a, prev, now)
		if err != nil {
			return err
		}
		if err = tx.Outbox().Append(ctx, evt); err != nil {
			return mapRepoErr(err, errs.ErrInvalidTransition)
		}
		key = shared.KeyOf(a.BusinessID(), a.Date())
		return nil
	})
	if err != nil {
		return finish(err, errs.ErrInvalidTransition)
	}

	if !next.Occupies() {
		invalidate(ctx, uc.cache, key)
	}
	return nil
}
