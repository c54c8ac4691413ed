// Package memstore is the single-instance storage driver. It keeps the same guarantees as
// the PostgreSQL driver: per-key serialization, conditional status writes and an
// overlap check on insert that plays the role of the exclusion constraint.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type appointmentRecord struct {
	id              uuid.UUID
	businessID      uuid.UUID
	serviceID       uuid.UUID
	date            schedule.Date
	start, end      int
	status          appointment.Status
	client          appointment.Client
	rescheduledFrom *uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

func recordOf(a *appointment.Appointment) appointmentRecord {
	return appointmentRecord{
		id:              a.ID(),
		businessID:      a.BusinessID(),
		serviceID:       a.ServiceID(),
		date:            a.Date(),
		start:           a.StartMinute(),
		end:             a.EndMinute(),
		status:          a.Status(),
		client:          a.Client(),
		rescheduledFrom: a.RescheduledFrom(),
		createdAt:       a.CreatedAt(),
		updatedAt:       a.UpdatedAt(),
	}
}

func (r appointmentRecord) toDomain() *appointment.Appointment {
	return appointment.Reconstruct(r.id, r.businessID, r.serviceID, r.date, r.start, r.end, r.status, r.client, r.rescheduledFrom, r.createdAt, r.updatedAt)
}

type Store struct {
	mu           sync.RWMutex
	businesses   map[uuid.UUID]*business.Business
	slugs        map[string]uuid.UUID
	services     map[uuid.UUID]*catalog.Service
	hours        map[uuid.UUID]schedule.WeeklyHours
	appointments map[uuid.UUID]appointmentRecord
	outbox       []shared.OutboxEvent
}

func NewStore() *Store {
	return &Store{
		businesses:   make(map[uuid.UUID]*business.Business),
		slugs:        make(map[string]uuid.UUID),
		services:     make(map[uuid.UUID]*catalog.Service),
		hours:        make(map[uuid.UUID]schedule.WeeklyHours),
		appointments: make(map[uuid.UUID]appointmentRecord),
	}
}

// OutboxEvents returns a copy of every appended event in commit order.
func (s *Store) OutboxEvents() []shared.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.OutboxEvent, len(s.outbox))
	copy(out, s.outbox)
	return out
}

type reads struct {
	s *Store
}

func (r reads) BusinessByID(_ context.Context, id uuid.UUID) (*business.Business, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.businesses[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "business not found")
	}
	return b, nil
}

func (r reads) ServiceByID(_ context.Context, businessID, serviceID uuid.UUID) (*catalog.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[serviceID]
	if !ok || svc.BusinessID() != businessID {
		return nil, infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return svc, nil
}

func (r reads) ServicesByBusiness(_ context.Context, businessID uuid.UUID) ([]*catalog.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*catalog.Service{}
	for _, svc := range r.s.services {
		if svc.BusinessID() == businessID {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r reads) WeeklyHours(_ context.Context, businessID uuid.UUID) (schedule.WeeklyHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.businesses[businessID]; !ok {
		return schedule.WeeklyHours{}, infra.NewRepoErr(infra.KindNotFound, "business not found")
	}
	h, ok := r.s.hours[businessID]
	if !ok {
		return schedule.NewWeeklyHours(), nil
	}
	return h, nil
}

func (r reads) AppointmentByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.appointments[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "appointment not found")
	}
	return rec.toDomain(), nil
}

func (r reads) OccupiedIntervals(_ context.Context, businessID uuid.UUID, date schedule.Date) ([]shared.Occupancy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.occupiedLocked(businessID, date), nil
}

func (s *Store) occupiedLocked(businessID uuid.UUID, date schedule.Date) []shared.Occupancy {
	out := []shared.Occupancy{}
	for _, rec := range s.appointments {
		if rec.businessID == businessID && rec.date == date && rec.status.Occupies() {
			out = append(out, shared.Occupancy{AppointmentID: rec.id, Interval: schedule.Interval{Start: rec.start, End: rec.end}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Interval.Start < out[j].Interval.Start })
	return out
}

func (r reads) ListAppointments(_ context.Context, f shared.AppointmentFilter) ([]*appointment.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []appointmentRecord{}
	for _, rec := range r.s.appointments {
		if rec.businessID != f.BusinessID {
			continue
		}
		if f.Date != nil && rec.date != *f.Date {
			continue
		}
		if f.Status != nil && rec.status != *f.Status {
			continue
		}
		if f.AfterCreated != nil && !before(rec, *f.AfterCreated, f.AfterID) {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool {
		return before(matched[j], matched[i].createdAt, matched[i].id)
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	out := make([]*appointment.Appointment, len(matched))
	for i, rec := range matched {
		out[i] = rec.toDomain()
	}
	return out, nil
}

// before reports whether rec sorts after the (createdAt, id) cursor in DESC order.
func before(rec appointmentRecord, createdAt time.Time, id uuid.UUID) bool {
	c := rec.createdAt.Truncate(time.Microsecond)
	at := createdAt.Truncate(time.Microsecond)
	if !c.Equal(at) {
		return c.Before(at)
	}
	return rec.id.String() < id.String()
}
