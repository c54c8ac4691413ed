//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/memstore"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"
	"booking-engine/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monday = "2026-10-19"

type stubCache struct {
	shared.NoopOccupancyCache
	occ    []shared.Occupancy
	hit    bool
	getErr error
	sets   int
}

func (c *stubCache) Get(context.Context, shared.BookingKey) ([]shared.Occupancy, bool, error) {
	return c.occ, c.hit, c.getErr
}

func (c *stubCache) Set(_ context.Context, _ shared.BookingKey, occ []shared.Occupancy) error {
	c.sets++
	c.occ, c.hit = occ, true
	return nil
}

// failingStore breaks one named read ("business", "service" or "occupancy") with a
// database failure and delegates the rest.
type failingStore struct {
	shared.UnitOfWork
	failOn string
}

func (u failingStore) Reads() shared.Reads {
	return failingReads{Reads: u.UnitOfWork.Reads(), failOn: u.failOn}
}

type failingReads struct {
	shared.Reads
	failOn string
}

func dbDown() error {
	return infra.NewRepoErr(infra.KindDBFailure, "connection refused")
}

func (r failingReads) BusinessByID(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	if r.failOn == "business" {
		return nil, dbDown()
	}
	return r.Reads.BusinessByID(ctx, id)
}

func (r failingReads) ServiceByID(ctx context.Context, businessID, serviceID uuid.UUID) (*catalog.Service, error) {
	if r.failOn == "service" {
		return nil, dbDown()
	}
	return r.Reads.ServiceByID(ctx, businessID, serviceID)
}

func (r failingReads) OccupiedIntervals(ctx context.Context, businessID uuid.UUID, date schedule.Date) ([]shared.Occupancy, error) {
	if r.failOn == "occupancy" {
		return nil, dbDown()
	}
	return r.Reads.OccupiedIntervals(ctx, businessID, date)
}

type env struct {
	cfg        config.Config
	uow        *memstore.MemoryUoW
	clock      *clock.MockClock
	booking    commands.BookingCommands
	businesses commands.BusinessCommands
	ownerID    uuid.UUID
	businessID uuid.UUID
	serviceID  uuid.UUID
}

func newEnv(t *testing.T, withHours bool) *env {
	t.Helper()
	cfg := config.NewTestConfig()
	settings := commands.SettingsFromConfig(cfg)
	e := &env{
		cfg:     cfg,
		uow:     memstore.NewMemoryUoW(memstore.NewStore(), cfg),
		clock:   clock.NewMockClock(time.Date(2026, time.October, 16, 12, 0, 0, 0, settings.Location)),
		ownerID: uuid.New(),
	}
	e.booking = commands.NewBookingCommands(e.uow, e.clock, shared.NoopOccupancyCache{}, settings)
	e.businesses = commands.NewBusinessCommands(e.uow, e.clock)

	ctx := context.Background()
	biz, err := e.businesses.CreateBusiness(ctx, commands.CreateBusinessInput{Name: "Barber", Slug: "barber"}, e.ownerID)
	require.NoError(t, err)
	e.businessID = biz.ID
	svc, err := e.businesses.AddService(ctx, e.businessID, e.ownerID, commands.AddServiceInput{Name: "Cut", DurationMinutes: 60, Price: 40})
	require.NoError(t, err)
	e.serviceID = svc.ID

	if withHours {
		require.NoError(t, e.businesses.SetBusinessHours(ctx, e.businessID, e.ownerID, map[string]schedule.RawDay{
			"1": {IsOpen: true, Intervals: []schedule.RawInterval{{Start: "08:00", End: "12:00"}}},
		}))
	}
	return e
}

func starts(v *queries.AvailabilityView) []string {
	out := make([]string, len(v.AvailableSlots))
	for i, s := range v.AvailableSlots {
		out[i] = s.StartTime
	}
	return out
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("empty morning", func(t *testing.T) {
		e := newEnv(t, true)
		q := queries.NewAvailabilityQueries(e.uow, shared.NoopOccupancyCache{}, e.clock, e.cfg)

		view, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
		require.NoError(t, err)
		assert.True(t, view.HoursConfigured)
		want := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00"}
		if diff := cmp.Diff(want, starts(view)); diff != "" {
			t.Errorf("slots mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("booked hour removed", func(t *testing.T) {
		e := newEnv(t, true)
		_, err := e.booking.BookSlot(ctx, commands.BookSlotInput{
			BusinessID: e.businessID, ServiceID: e.serviceID,
			AppointmentDate: monday, AppointmentTime: "09:00",
			ClientName: "Ana", ClientPhone: "1",
		})
		require.NoError(t, err)

		q := queries.NewAvailabilityQueries(e.uow, shared.NoopOccupancyCache{}, e.clock, e.cfg)
		view, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
		require.NoError(t, err)
		assert.Equal(t, []string{"08:00", "10:00", "10:30", "11:00"}, starts(view))
	})

	t.Run("hours not configured", func(t *testing.T) {
		e := newEnv(t, false)
		q := queries.NewAvailabilityQueries(e.uow, shared.NoopOccupancyCache{}, e.clock, e.cfg)

		view, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
		require.NoError(t, err)
		assert.False(t, view.HoursConfigured)
		assert.Empty(t, view.AvailableSlots)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		e := newEnv(t, true)
		cache := &stubCache{hit: true, occ: []shared.Occupancy{{AppointmentID: uuid.New(), Interval: schedule.Interval{Start: 480, End: 660}}}}
		q := queries.NewAvailabilityQueries(failingStore{UnitOfWork: e.uow, failOn: "occupancy"}, cache, e.clock, e.cfg)

		view, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
		require.NoError(t, err)
		assert.Equal(t, []string{"11:00"}, starts(view))
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		e := newEnv(t, true)
		cache := &stubCache{}
		q := queries.NewAvailabilityQueries(e.uow, cache, e.clock, e.cfg)

		_, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.sets)
	})

	for _, failOn := range []string{"business", "service", "occupancy"} {
		t.Run("storage failure reading "+failOn+" is transient with empty slots", func(t *testing.T) {
			e := newEnv(t, true)
			q := queries.NewAvailabilityQueries(failingStore{UnitOfWork: e.uow, failOn: failOn}, shared.NoopOccupancyCache{}, e.clock, e.cfg)

			view, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, monday)
			assert.True(t, errs.Is(err, errs.ErrTransientUnavailable))
			assert.False(t, errs.Is(err, errs.ErrNotFound))
			require.NotNil(t, view)
			assert.NotNil(t, view.AvailableSlots)
			assert.Empty(t, view.AvailableSlots)
		})
	}

	t.Run("error: unknown service", func(t *testing.T) {
		e := newEnv(t, true)
		q := queries.NewAvailabilityQueries(e.uow, shared.NoopOccupancyCache{}, e.clock, e.cfg)

		_, err := q.AvailableSlots(ctx, e.businessID, uuid.New(), monday)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("error: malformed date", func(t *testing.T) {
		e := newEnv(t, true)
		q := queries.NewAvailabilityQueries(e.uow, shared.NoopOccupancyCache{}, e.clock, e.cfg)

		_, err := q.AvailableSlots(ctx, e.businessID, e.serviceID, "19/10/2026")
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestListByBusiness(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, true)
	for _, at := range []string{"08:00", "09:00", "10:00"} {
		_, err := e.booking.BookSlot(ctx, commands.BookSlotInput{
			BusinessID: e.businessID, ServiceID: e.serviceID,
			AppointmentDate: monday, AppointmentTime: at,
			ClientName: "Ana", ClientPhone: "1",
		})
		require.NoError(t, err)
		e.clock.Add(time.Second)
	}
	q := queries.NewAppointmentQueries(e.uow)

	page, next, err := q.ListByBusiness(ctx, e.businessID, e.ownerID, queries.AppointmentFilters{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, "10:00", page[0].StartTime)

	rest, next, err := q.ListByBusiness(ctx, e.businessID, e.ownerID, queries.AppointmentFilters{}, next, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, next)
	assert.Equal(t, "08:00", rest[0].StartTime)

	_, _, err = q.ListByBusiness(ctx, e.businessID, uuid.New(), queries.AppointmentFilters{}, nil, 2)
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	_, _, err = q.ListByBusiness(ctx, e.businessID, e.ownerID, queries.AppointmentFilters{Status: "bogus"}, nil, 2)
	assert.True(t, errs.Is(err, errs.ErrValidation))

	confirmed, _, err := q.ListByBusiness(ctx, e.businessID, e.ownerID, queries.AppointmentFilters{Status: "confirmed"}, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, confirmed)
}
