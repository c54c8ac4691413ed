package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// Settings is the slice of configuration the write path needs.
type Settings struct {
	Granularity int
	Location    *time.Location
}

func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		Granularity: cfg.Booking.SlotGranularity,
		Location:    cfg.Booking.Location(),
	}
}

type appointmentEvent struct {
	ID              uuid.UUID  `json:"id"`
	BusinessID      uuid.UUID  `json:"businessId"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	Date            string     `json:"appointmentDate"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	Status          string     `json:"status"`
	PreviousStatus  string     `json:"previousStatus,omitempty"`
	RescheduledFrom *uuid.UUID `json:"rescheduledFrom,omitempty"`
	RescheduledTo   *uuid.UUID `json:"rescheduledTo,omitempty"`
	OccurredAt      time.Time  `json:"occurredAt"`
}

func newAppointmentEvent(eventType string, a *appointment.Appointment, prev appointment.Status, now time.Time) (shared.OutboxEvent, error) {
	body := appointmentEvent{
		ID:              a.ID(),
		BusinessID:      a.BusinessID(),
		ServiceID:       a.ServiceID(),
		Date:            a.Date().String(),
		StartTime:       schedule.FormatClock(a.StartMinute()),
		EndTime:         schedule.FormatClock(a.EndMinute()),
		Status:          a.Status().String(),
		PreviousStatus:  prev.String(),
		RescheduledFrom: a.RescheduledFrom(),
		OccurredAt:      now,
	}
	return encodeEvent(eventType, a.ID(), body, now)
}

func encodeEvent(eventType string, aggregateID uuid.UUID, body any, now time.Time) (shared.OutboxEvent, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return shared.OutboxEvent{}, errs.Wrap(err, "failed to encode outbox payload")
	}
	return shared.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}

// invalidate runs after commit; a stale cache only affects the advisory read path.
func invalidate(ctx context.Context, cache shared.OccupancyCache, keys ...shared.BookingKey) {
	if err := cache.Invalidate(context.WithoutCancel(ctx), keys...); err != nil {
		slog.Warn("occupancy cache invalidation failed", "keys", len(keys), "error", err.Error())
	}
}
