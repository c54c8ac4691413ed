package appointment

import (
	"strings"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Client struct {
	Name  string
	Phone string
	Email string
}

func NewClient(name, phone, email string) (Client, error) {
	c := Client{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if c.Name == "" {
		return Client{}, errs.Mark(errs.New("client name is required"), errs.ErrValidation)
	}
	if c.Phone == "" {
		return Client{}, errs.Mark(errs.New("client phone is required"), errs.ErrValidation)
	}
	return c, nil
}

type Appointment struct {
	id              uuid.UUID
	businessID      uuid.UUID
	serviceID       uuid.UUID
	date            schedule.Date
	slot            schedule.Interval
	status          Status
	client          Client
	rescheduledFrom *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

type NewParams struct {
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	Date            schedule.Date
	StartMinute     int
	DurationMinutes int
	Client          Client
	AutoConfirm     bool
	RescheduledFrom *uuid.UUID
	Now             time.Time
}

// New derives the end minute from the service duration once; later service edits do not touch it.
func New(p NewParams) (*Appointment, error) {
	if p.DurationMinutes <= 0 {
		return nil, errs.Mark(errs.Newf("duration must be positive, got %d", p.DurationMinutes), errs.ErrValidation)
	}
	if p.Date.IsZero() {
		return nil, errs.Mark(errs.New("appointment date is required"), errs.ErrValidation)
	}
	slot, err := schedule.NewInterval(p.StartMinute, p.StartMinute+p.DurationMinutes)
	if err != nil {
		return nil, err
	}
	status := StatusPending
	if p.AutoConfirm && p.RescheduledFrom == nil {
		status = StatusConfirmed
	}
	return &Appointment{
		id:              uuid.New(),
		businessID:      p.BusinessID,
		serviceID:       p.ServiceID,
		date:            p.Date,
		slot:            slot,
		status:          status,
		client:          p.Client,
		rescheduledFrom: p.RescheduledFrom,
		createdAt:       p.Now,
		updatedAt:       p.Now,
	}, nil
}

func Reconstruct(
	id, businessID, serviceID uuid.UUID,
	date schedule.Date,
	startMinute, endMinute int,
	status Status,
	client Client,
	rescheduledFrom *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:              id,
		businessID:      businessID,
		serviceID:       serviceID,
		date:            date,
		slot:            schedule.Interval{Start: startMinute, End: endMinute},
		status:          status,
		client:          client,
		rescheduledFrom: rescheduledFrom,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Transition validates the move and returns the status it moved from.
func (a *Appointment) Transition(next Status, now time.Time) (Status, error) {
	prev := a.status
	if !prev.CanTransitionTo(next) {
		return prev, errs.Mark(errs.Newf("cannot move appointment from %s to %s", prev, next), errs.ErrInvalidTransition)
	}
	a.status = next
	a.updatedAt = now
	return prev, nil
}

func (a *Appointment) Occupies() bool {
	return a.status.Occupies()
}

func (a *Appointment) ID() uuid.UUID               { return a.id }
func (a *Appointment) BusinessID() uuid.UUID       { return a.businessID }
func (a *Appointment) ServiceID() uuid.UUID        { return a.serviceID }
func (a *Appointment) Date() schedule.Date         { return a.date }
func (a *Appointment) Slot() schedule.Interval     { return a.slot }
func (a *Appointment) StartMinute() int            { return a.slot.Start }
func (a *Appointment) EndMinute() int              { return a.slot.End }
func (a *Appointment) Status() Status              { return a.status }
func (a *Appointment) Client() Client              { return a.client }
func (a *Appointment) RescheduledFrom() *uuid.UUID { return a.rescheduledFrom }
func (a *Appointment) CreatedAt() time.Time        { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time        { return a.updatedAt }
