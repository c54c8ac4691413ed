package memstore

import (
	"context"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type MemoryUoW struct {
	store         *Store
	locks         *KeyedMutex
	lockTimeout   time.Duration
	commitTimeout time.Duration
}

func NewMemoryUoW(store *Store, cfg config.Config) *MemoryUoW {
	return &MemoryUoW{
		store:         store,
		locks:         NewKeyedMutex(),
		lockTimeout:   cfg.Booking.LockTimeout,
		commitTimeout: cfg.Booking.CommitTimeout,
	}
}

func (u *MemoryUoW) Reads() shared.Reads {
	return reads{s: u.store}
}

func (u *MemoryUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func (u *MemoryUoW) WithinKeys(ctx context.Context, keys []shared.BookingKey, fn func(ctx context.Context, tx shared.Tx) error) error {
	// One deadline covers every key so a multi-key call waits no longer than a single one.
	waitCtx, cancelWait := context.WithTimeout(ctx, u.lockTimeout)
	defer cancelWait()

	for _, k := range shared.NormalizeKeys(keys) {
		unlock, err := u.locks.Lock(waitCtx, k.String(), u.lockTimeout)
		if err != nil {
			if ctx.Err() == nil && waitCtx.Err() != nil {
				err = errs.Mark(infra.NewRepoErr(infra.KindLockTimeout, "timed out waiting for key "+k.String()), errs.ErrTransientUnavailable)
			}
			return err
		}
		defer unlock()
	}

	workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.commitTimeout)
	defer cancel()
	return u.Within(workCtx, fn)
}

type opKind int

const (
	opCreateAppointment opKind = iota
	opUpdateStatus
	opCreateBusiness
	opCreateService
	opReplaceHours
	opAppendEvent
)

type op struct {
	kind        opKind
	appointment appointmentRecord
	id          uuid.UUID
	from, to    appointment.Status
	at          time.Time
	business    *business.Business
	service     *catalog.Service
	hours       schedule.WeeklyHours
	event       shared.OutboxEvent
}

// memTx stages writes and applies them in order under the store lock at commit.
type memTx struct {
	store *Store
	ops   []op
}

func (t *memTx) Appointments() shared.AppointmentRepository { return appointmentRepo{t} }
func (t *memTx) Businesses() shared.BusinessRepository      { return businessRepo{t} }
func (t *memTx) Services() shared.ServiceRepository         { return serviceRepo{t} }
func (t *memTx) Hours() shared.BusinessHoursRepository      { return hoursRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t} }
func (t *memTx) Reads() shared.Reads                        { return reads{s: t.store} }

func (t *memTx) commit() error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate against a scratch view so a failing op leaves the store untouched.
	scratch := make(map[uuid.UUID]appointmentRecord)
	lookup := func(id uuid.UUID) (appointmentRecord, bool) {
		if r, ok := scratch[id]; ok {
			return r, true
		}
		r, ok := s.appointments[id]
		return r, ok
	}
	slugs := map[string]struct{}{}

	for _, o := range t.ops {
		switch o.kind {
		case opUpdateStatus:
			rec, ok := lookup(o.id)
			if !ok {
				return infra.NewRepoErr(infra.KindNotFound, "appointment not found")
			}
			if rec.status != o.from {
				return infra.NewRepoErr(infra.KindConflict, "appointment status changed concurrently")
			}
			rec.status, rec.updatedAt = o.to, o.at
			scratch[o.id] = rec
		case opCreateAppointment:
			if _, ok := lookup(o.appointment.id); ok {
				return infra.NewRepoErr(infra.KindDuplicateKey, "appointment already exists")
			}
			if o.appointment.status.Occupies() && s.overlapsLocked(o.appointment, scratch) {
				return infra.NewRepoErr(infra.KindConflict, "appointment overlaps an occupied interval")
			}
			scratch[o.appointment.id] = o.appointment
		case opCreateBusiness:
			if _, taken := s.slugs[o.business.Slug()]; taken {
				return infra.NewRepoErr(infra.KindDuplicateKey, "business slug already taken")
			}
			if _, taken := slugs[o.business.Slug()]; taken {
				return infra.NewRepoErr(infra.KindDuplicateKey, "business slug already taken")
			}
			slugs[o.business.Slug()] = struct{}{}
		case opCreateService, opReplaceHours:
			bizID := o.id
			if _, ok := s.businesses[bizID]; !ok {
				return infra.NewRepoErr(infra.KindForeignKeyViolated, "business does not exist")
			}
		}
	}

	for _, o := range t.ops {
		switch o.kind {
		case opCreateBusiness:
			s.businesses[o.business.ID()] = o.business
			s.slugs[o.business.Slug()] = o.business.ID()
		case opCreateService:
			s.services[o.service.ID()] = o.service
		case opReplaceHours:
			s.hours[o.id] = o.hours
		case opAppendEvent:
			s.outbox = append(s.outbox, o.event)
		}
	}
	for id, rec := range scratch {
		s.appointments[id] = rec
	}
	return nil
}

func (s *Store) overlapsLocked(candidate appointmentRecord, scratch map[uuid.UUID]appointmentRecord) bool {
	slot := schedule.Interval{Start: candidate.start, End: candidate.end}
	blocks := func(rec appointmentRecord) bool {
		return rec.businessID == candidate.businessID && rec.date == candidate.date &&
			rec.status.Occupies() && slot.Overlaps(schedule.Interval{Start: rec.start, End: rec.end})
	}
	for id, rec := range s.appointments {
		if staged, ok := scratch[id]; ok {
			rec = staged
		}
		if blocks(rec) {
			return true
		}
	}
	for id, rec := range scratch {
		if _, ok := s.appointments[id]; !ok && blocks(rec) {
			return true
		}
	}
	return false
}

type appointmentRepo struct{ tx *memTx }

func (r appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	r.tx.ops = append(r.tx.ops, op{kind: opCreateAppointment, appointment: recordOf(a)})
	return nil
}

func (r appointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to appointment.Status, at time.Time) error {
	r.tx.store.mu.RLock()
	rec, ok := r.tx.store.appointments[id]
	r.tx.store.mu.RUnlock()
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "appointment not found")
	}
	if rec.status != from {
		return infra.NewRepoErr(infra.KindConflict, "appointment status changed concurrently")
	}
	r.tx.ops = append(r.tx.ops, op{kind: opUpdateStatus, id: id, from: from, to: to, at: at})
	return nil
}

type businessRepo struct{ tx *memTx }

func (r businessRepo) Create(_ context.Context, b *business.Business) error {
	r.tx.ops = append(r.tx.ops, op{kind: opCreateBusiness, business: b})
	return nil
}

type serviceRepo struct{ tx *memTx }

func (r serviceRepo) Create(_ context.Context, svc *catalog.Service) error {
	r.tx.ops = append(r.tx.ops, op{kind: opCreateService, id: svc.BusinessID(), service: svc})
	return nil
}

type hoursRepo struct{ tx *memTx }

func (r hoursRepo) Replace(_ context.Context, businessID uuid.UUID, hours schedule.WeeklyHours) error {
	r.tx.ops = append(r.tx.ops, op{kind: opReplaceHours, id: businessID, hours: hours})
	return nil
}

type outboxRepo struct{ tx *memTx }

func (r outboxRepo) Append(_ context.Context, evt shared.OutboxEvent) error {
	r.tx.ops = append(r.tx.ops, op{kind: opAppendEvent, event: evt})
	return nil
}
