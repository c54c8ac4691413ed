//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	all := []appointment.Status{
		appointment.StatusPending,
		appointment.StatusConfirmed,
		appointment.StatusRejected,
		appointment.StatusRescheduled,
		appointment.StatusCancelled,
	}
	allowed := map[appointment.Status]map[appointment.Status]bool{
		appointment.StatusPending: {
			appointment.StatusConfirmed:   true,
			appointment.StatusRejected:    true,
			appointment.StatusRescheduled: true,
		},
		appointment.StatusConfirmed: {
			appointment.StatusRescheduled: true,
			appointment.StatusCancelled:   true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, appointment.StatusRejected.IsTerminal())
	assert.True(t, appointment.StatusCancelled.IsTerminal())
	assert.True(t, appointment.StatusRescheduled.IsTerminal())
	assert.False(t, appointment.StatusPending.IsTerminal())
}

func TestStatusOccupies(t *testing.T) {
	assert.True(t, appointment.StatusPending.Occupies())
	assert.True(t, appointment.StatusConfirmed.Occupies())
	assert.False(t, appointment.StatusRejected.Occupies())
	assert.False(t, appointment.StatusCancelled.Occupies())
	assert.False(t, appointment.StatusRescheduled.Occupies())
	assert.False(t, appointment.Status("archived").IsValid())
}

func TestNewClient(t *testing.T) {
	c, err := appointment.NewClient("  Ana ", "11 99999-0000", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)

	_, err = appointment.NewClient("", "123", "")
	assert.True(t, errs.Is(err, errs.ErrValidation))

	_, err = appointment.NewClient("Ana", " ", "")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestNew(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	base := appointment.NewParams{
		BusinessID:      uuid.New(),
		ServiceID:       uuid.New(),
		Date:            schedule.NewDate(2026, time.October, 19),
		StartMinute:     9 * 60,
		DurationMinutes: 45,
		Client:          appointment.Client{Name: "Ana", Phone: "123"},
		Now:             now,
	}

	t.Run("derives end minute and starts pending", func(t *testing.T) {
		a, err := appointment.New(base)
		require.NoError(t, err)
		assert.Equal(t, 9*60+45, a.EndMinute())
		assert.Equal(t, appointment.StatusPending, a.Status())
		assert.Equal(t, now, a.CreatedAt())
	})

	t.Run("auto confirm", func(t *testing.T) {
		p := base
		p.AutoConfirm = true
		a, err := appointment.New(p)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusConfirmed, a.Status())
	})

	t.Run("rescheduled appointment always starts pending", func(t *testing.T) {
		p := base
		p.AutoConfirm = true
		old := uuid.New()
		p.RescheduledFrom = &old
		a, err := appointment.New(p)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusPending, a.Status())
		assert.Equal(t, &old, a.RescheduledFrom())
	})

	t.Run("non-positive duration", func(t *testing.T) {
		p := base
		p.DurationMinutes = 0
		_, err := appointment.New(p)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("runs past midnight", func(t *testing.T) {
		p := base
		p.StartMinute = 23 * 60
		p.DurationMinutes = 90
		_, err := appointment.New(p)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	a := appointment.Reconstruct(uuid.New(), uuid.New(), uuid.New(), schedule.NewDate(2026, time.October, 19),
		540, 600, appointment.StatusPending, appointment.Client{Name: "Ana", Phone: "1"}, nil, now, now)

	prev, err := a.Transition(appointment.StatusConfirmed, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusPending, prev)
	assert.Equal(t, appointment.StatusConfirmed, a.Status())
	assert.Equal(t, now.Add(time.Minute), a.UpdatedAt())

	_, err = a.Transition(appointment.StatusRejected, now)
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	assert.Equal(t, appointment.StatusConfirmed, a.Status())
}
