package queries

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotView struct {
	StartTime string `json:"startTime"`
}

type AvailabilityView struct {
	AvailableSlots  []SlotView `json:"availableSlots"`
	HoursConfigured bool       `json:"hoursConfigured"`
}

type AvailabilityQueries interface {
	// AvailableSlots is advisory; the booking path re-validates under the key.
	AvailableSlots(ctx context.Context, businessID, serviceID uuid.UUID, date string) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	reads       shared.Reads
	cache       shared.OccupancyCache
	clock       clock.Clock
	granularity int
	location    *time.Location
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.OccupancyCache, clk clock.Clock, cfg config.Config) AvailabilityQueries {
	return &availabilityQueriesImpl{
		reads:       uow.Reads(),
		cache:       cache,
		clock:       clk,
		granularity: cfg.Booking.SlotGranularity,
		location:    cfg.Booking.Location(),
	}
}

func (q *availabilityQueriesImpl) AvailableSlots(ctx context.Context, businessID, serviceID uuid.UUID, date string) (*AvailabilityView, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}
	empty := &AvailabilityView{AvailableSlots: []SlotView{}}
	biz, err := q.reads.BusinessByID(ctx, businessID)
	if err != nil {
		return empty, mapSlotReadErr(err)
	}
	svc, err := q.reads.ServiceByID(ctx, businessID, serviceID)
	if err != nil {
		return empty, mapSlotReadErr(err)
	}

	hours, err := q.reads.WeeklyHours(ctx, businessID)
	if err != nil {
		return empty, errs.Mark(err, errs.ErrTransientUnavailable)
	}
	if !hours.Configured() {
		return empty, nil
	}
	empty.HoursConfigured = true

	occ, err := q.occupied(ctx, shared.KeyOf(businessID, day))
	if err != nil {
		return empty, errs.Mark(err, errs.ErrTransientUnavailable)
	}

	now := q.clock.Now().In(q.location)
	starts := availability.AvailableSlots(hours.ForDate(day), shared.Intervals(occ, uuid.Nil), svc.DurationMinutes(), day, biz.Granularity(q.granularity), now)

	view := &AvailabilityView{AvailableSlots: make([]SlotView, len(starts)), HoursConfigured: true}
	for i, s := range starts {
		view.AvailableSlots[i] = SlotView{StartTime: schedule.FormatClock(s)}
	}
	return view, nil
}

// occupied prefers the cache and falls back to storage on a miss or a cache failure.
func (q *availabilityQueriesImpl) occupied(ctx context.Context, key shared.BookingKey) ([]shared.Occupancy, error) {
	occ, hit, err := q.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("occupancy cache read failed", "key", key.String(), "error", err.Error())
	}
	if hit {
		return occ, nil
	}

	occ, err = q.reads.OccupiedIntervals(ctx, key.BusinessID, key.Date)
	if err != nil {
		return nil, err
	}
	if err := q.cache.Set(ctx, key, occ); err != nil {
		slog.Warn("occupancy cache write failed", "key", key.String(), "error", err.Error())
	}
	return occ, nil
}
