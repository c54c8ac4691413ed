package commands

import (
	"context"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookSlotInput struct {
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	AppointmentDate string
	AppointmentTime string
	ClientName      string
	ClientPhone     string
	ClientEmail     string
}

type RescheduleInput struct {
	AppointmentDate string
	AppointmentTime string
}

type BookingResult struct {
	AppointmentID uuid.UUID
	Status        appointment.Status
}

type BookingCommands interface {
	// BookSlot re-validates the slot against the ledger while holding the (business, date) key.
	BookSlot(ctx context.Context, in BookSlotInput) (*BookingResult, error)
	// Reschedule retires the appointment and books its replacement as one unit.
	Reschedule(ctx context.Context, appointmentID, actorID uuid.UUID, in RescheduleInput) (*BookingResult, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	cache    shared.OccupancyCache
	settings Settings
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, cache shared.OccupancyCache, settings Settings) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk, cache: cache, settings: settings}
}

type slotRequest struct {
	date  schedule.Date
	start int
}

func parseSlotRequest(date, clockTime string) (slotRequest, error) {
	d, err := schedule.ParseDate(date)
	if err != nil {
		return slotRequest{}, err
	}
	start, err := schedule.ParseClock(clockTime)
	if err != nil {
		return slotRequest{}, err
	}
	if start >= schedule.MinutesPerDay {
		return slotRequest{}, errs.Mark(errs.Newf("appointment time %q out of range", clockTime), errs.ErrValidation)
	}
	return slotRequest{date: d, start: start}, nil
}

func (uc *bookingCommandsImpl) BookSlot(ctx context.Context, in BookSlotInput) (*BookingResult, error) {
	req, err := parseSlotRequest(in.AppointmentDate, in.AppointmentTime)
	if err != nil {
		return nil, err
	}
	client, err := appointment.NewClient(in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.Reads()
	biz, err := reads.BusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	svc, err := reads.ServiceByID(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	hours, err := reads.WeeklyHours(ctx, in.BusinessID)
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	if !hours.Configured() {
		return nil, errs.ErrHoursNotConfigured
	}

	key := shared.KeyOf(in.BusinessID, req.date)
	var created *appointment.Appointment
	err = uc.uow.WithinKeys(ctx, []shared.BookingKey{key}, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now().In(uc.settings.Location)

		occ, rerr := tx.Reads().OccupiedIntervals(ctx, in.BusinessID, req.date)
		if rerr != nil {
			return mapRepoErr(rerr, errs.ErrSlotUnavailable)
		}
		if !availability.Bookable(hours.ForDate(req.date), shared.Intervals(occ, uuid.Nil), req.start, svc.DurationMinutes(), req.date, now) {
			return errs.Mark(errs.Newf("slot %s %s is not available", req.date, schedule.FormatClock(req.start)), errs.ErrSlotUnavailable)
		}

		a, derr := appointment.New(appointment.NewParams{
			BusinessID:      in.BusinessID,
			ServiceID:       in.ServiceID,
			Date:            req.date,
			StartMinute:     req.start,
			DurationMinutes: svc.DurationMinutes(),
			Client:          client,
			AutoConfirm:     biz.AutoConfirm(),
			Now:             now,
		})
		if derr != nil {
			return derr
		}
		if werr := tx.Appointments().Create(ctx, a); werr != nil {
			return mapRepoErr(werr, errs.ErrSlotUnavailable)
		}
		evt, eerr := newAppointmentEvent(shared.EventAppointmentCreated, a, "", now)
		if eerr != nil {
			return eerr
		}
		if werr := tx.Outbox().Append(ctx, evt); werr != nil {
			return mapRepoErr(werr, errs.ErrSlotUnavailable)
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, finish(err, errs.ErrSlotUnavailable)
	}

	invalidate(ctx, uc.cache, key)
	return &BookingResult{AppointmentID: created.ID(), Status: created.Status()}, nil
}

func (uc *bookingCommandsImpl) Reschedule(ctx context.Context, appointmentID, actorID uuid.UUID, in RescheduleInput) (*BookingResult, error) {
	req, err := parseSlotRequest(in.AppointmentDate, in.AppointmentTime)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.Reads()
	current, err := reads.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	biz, err := reads.BusinessByID(ctx, current.BusinessID())
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	if !biz.OwnedBy(actorID) {
		return nil, errs.Mark(errs.Newf("appointment %s belongs to another business", appointmentID), errs.ErrForbidden)
	}
	hours, err := reads.WeeklyHours(ctx, biz.ID())
	if err != nil {
		return nil, mapRepoErr(err, errs.ErrNotFound)
	}
	if !hours.Configured() {
		return nil, errs.ErrHoursNotConfigured
	}

	oldKey := shared.KeyOf(biz.ID(), current.Date())
	newKey := shared.KeyOf(biz.ID(), req.date)
	var replacement *appointment.Appointment
	err = uc.uow.WithinKeys(ctx, []shared.BookingKey{oldKey, newKey}, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now().In(uc.settings.Location)

		// Re-read under the keys: the status may have moved since the pre-check.
		old, rerr := tx.Reads().AppointmentByID(ctx, appointmentID)
		if rerr != nil {
			return mapRepoErr(rerr, errs.ErrNotFound)
		}
		duration := old.EndMinute() - old.StartMinute()
		prev, terr := old.Transition(appointment.StatusRescheduled, now)
		if terr != nil {
			return terr
		}

		occ, rerr := tx.Reads().OccupiedIntervals(ctx, biz.ID(), req.date)
		if rerr != nil {
			return mapRepoErr(rerr, errs.ErrSlotUnavailable)
		}
		if !availability.Bookable(hours.ForDate(req.date), shared.Intervals(occ, old.ID()), req.start, duration, req.date, now) {
			return errs.Mark(errs.Newf("slot %s %s is not available", req.date, schedule.FormatClock(req.start)), errs.ErrSlotUnavailable)
		}
		oldID := old.ID()
		next, derr := appointment.New(appointment.NewParams{
			BusinessID:      old.BusinessID(),
			ServiceID:       old.ServiceID(),
			Date:            req.date,
			StartMinute:     req.start,
			DurationMinutes: duration,
			Client:          old.Client(),
			RescheduledFrom: &oldID,
			Now:             now,
		})
		if derr != nil {
			return derr
		}

		if werr := tx.Appointments().UpdateStatus(ctx, oldID, prev, appointment.StatusRescheduled, now); werr != nil {
			return mapRepoErr(werr, errs.ErrInvalidTransition)
		}
		if werr := tx.Appointments().Create(ctx, next); werr != nil {
			return mapRepoErr(werr, errs.ErrSlotUnavailable)
		}

		evt, eerr := encodeEvent(shared.EventAppointmentRescheduled, oldID, appointmentEvent{
			ID:             oldID,
			BusinessID:     old.BusinessID(),
			ServiceID:      old.ServiceID(),
			Date:           old.Date().String(),
			StartTime:      schedule.FormatClock(old.StartMinute()),
			EndTime:        schedule.FormatClock(old.EndMinute()),
			Status:         appointment.StatusRescheduled.String(),
			PreviousStatus: prev.String(),
			RescheduledTo:  ptrTo(next.ID()),
			OccurredAt:     now,
		}, now)
		if eerr != nil {
			return eerr
		}
		if werr := tx.Outbox().Append(ctx, evt); werr != nil {
			return mapRepoErr(werr, errs.ErrSlotUnavailable)
		}
		created, eerr := newAppointmentEvent(shared.EventAppointmentCreated, next, "", now)
		if eerr != nil {
			return eerr
		}
		if werr := tx.Outbox().Append(ctx, created); werr != nil {
			return mapRepoErr(werr, errs.ErrSlotUnavailable)
		}
		replacement = next
		return nil
	})
	if err != nil {
		return nil, finish(err, errs.ErrSlotUnavailable)
	}

	invalidate(ctx, uc.cache, oldKey, newKey)
	return &BookingResult{AppointmentID: replacement.ID(), Status: replacement.Status()}, nil
}

func ptrTo[T any](v T) *T {
	return &v
}
