//go:build unit

package shared_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeys(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	d1 := schedule.NewDate(2026, time.October, 19)
	d2 := schedule.NewDate(2026, time.October, 20)

	got := shared.NormalizeKeys([]shared.BookingKey{
		{BusinessID: b, Date: d1},
		{BusinessID: a, Date: d2},
		{BusinessID: a, Date: d1},
		{BusinessID: b, Date: d1},
	})

	assert.Equal(t, []shared.BookingKey{
		{BusinessID: a, Date: d1},
		{BusinessID: a, Date: d2},
		{BusinessID: b, Date: d1},
	}, got)
}

func TestIntervalsExcludes(t *testing.T) {
	keep, drop := uuid.New(), uuid.New()
	occ := []shared.Occupancy{
		{AppointmentID: keep, Interval: schedule.Interval{Start: 540, End: 600}},
		{AppointmentID: drop, Interval: schedule.Interval{Start: 600, End: 660}},
	}
	assert.Equal(t, []schedule.Interval{{Start: 540, End: 600}}, shared.Intervals(occ, drop))
	assert.Len(t, shared.Intervals(occ, uuid.Nil), 2)
}
