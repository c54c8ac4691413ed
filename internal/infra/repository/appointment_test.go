//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository"
	repositorymock "booking-engine/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newDomainAppointment(t *testing.T) *appointment.Appointment {
	t.Helper()
	a, err := appointment.New(appointment.NewParams{
		BusinessID:      uuid.New(),
		ServiceID:       uuid.New(),
		Date:            schedule.NewDate(2026, time.October, 19),
		StartMinute:     540,
		DurationMinutes: 60,
		Client:          appointment.Client{Name: "Ana", Phone: "1"},
		Now:             time.Now(),
	})
	require.NoError(t, err)
	return a
}

// =============================================================================
// Create Appointment Tests
// =============================================================================

func TestAppointmentRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		queryErr      error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: appointment created",
		},
		{
			name:          "error: exclusion constraint rejects overlap",
			queryErr:      &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name:          "error: unknown service",
			queryErr:      &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name:          "error: database error occurs",
			queryErr:      errors.New("database connection error"),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewAppointmentRepository(mockQueries, mockDB)
			a := newDomainAppointment(t)

			mockQueries.EXPECT().CreateAppointment(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ pgsql.DBTX, row pgsql.Appointments) error {
					assert.Equal(t, a.ID(), row.ID)
					assert.Equal(t, int32(540), row.StartMinute)
					assert.Equal(t, int32(600), row.EndMinute)
					assert.Equal(t, "pending", row.Status)
					assert.False(t, row.ClientEmail.Valid)
					assert.False(t, row.RescheduledFrom.Valid)
					return tc.queryErr
				})

			actualError := repo.Create(ctx, a)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Update Status Tests
// =============================================================================

func TestAppointmentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	at := time.Now()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockAppointmentWriteQueries, pgsql.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: row moved",
			setupMock: func(mock *repositorymock.MockAppointmentWriteQueries, db pgsql.DBTX) {
				mock.EXPECT().UpdateAppointmentStatus(ctx, db, pgsql.UpdateAppointmentStatusParams{
					ID: id, FromStatus: "pending", ToStatus: "confirmed", UpdatedAt: at,
				}).Return(int64(1), nil)
			},
		},
		{
			name: "error: status changed concurrently",
			setupMock: func(mock *repositorymock.MockAppointmentWriteQueries, db pgsql.DBTX) {
				mock.EXPECT().UpdateAppointmentStatus(ctx, db, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().AppointmentExists(ctx, db, id).Return(true, nil)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: appointment not found",
			setupMock: func(mock *repositorymock.MockAppointmentWriteQueries, db pgsql.DBTX) {
				mock.EXPECT().UpdateAppointmentStatus(ctx, db, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().AppointmentExists(ctx, db, id).Return(false, nil)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: lock timeout",
			setupMock: func(mock *repositorymock.MockAppointmentWriteQueries, db pgsql.DBTX) {
				mock.EXPECT().UpdateAppointmentStatus(ctx, db, gomock.Any()).
					Return(int64(0), &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"})
			},
			expectedError: true,
			expectKind:    infra.KindLockTimeout,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockAppointmentWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewAppointmentRepository(mockQueries, mockDB)
			tc.setupMock(mockQueries, mockDB)

			actualError := repo.UpdateStatus(ctx, id, appointment.StatusPending, appointment.StatusConfirmed, at)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the queries mock instead.")
}
