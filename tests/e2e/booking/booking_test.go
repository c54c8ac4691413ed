//go:build e2e

package booking

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"booking-engine/internal/handler/dto/request"
	"booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase/shared"
	"booking-engine/tests/common/dbtest"
	"booking-engine/tests/common/httptest"
	"booking-engine/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// 2030-01-07 is a Monday.
const bookingDate = "2030-01-07"

type BookingSuite struct {
	e2e.SharedSuite
	businessID uuid.UUID
	serviceID  uuid.UUID
	ownerToken string
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	owner := s.SeedOwner(60, e2e.OpenDay("1", "08:00", "12:00"))
	s.businessID = owner.BusinessID
	s.serviceID = owner.ServiceID
	s.ownerToken = owner.Token
}

func (s *BookingSuite) bookPath() string {
	return fmt.Sprintf("/api/business/%s/appointments", s.businessID)
}

func (s *BookingSuite) slotsPath(date string) string {
	return fmt.Sprintf("/api/business/%s/available-slots?serviceId=%s&date=%s", s.businessID, s.serviceID, date)
}

func (s *BookingSuite) bookRequest(clock string) request.BookAppointmentRequest {
	return request.BookAppointmentRequest{
		ServiceID:       s.serviceID,
		ClientName:      "Maria Souza",
		ClientPhone:     "+55 11 98888-0000",
		AppointmentDate: bookingDate,
		AppointmentTime: clock,
	}
}

func (s *BookingSuite) book(clock string) response.AppointmentResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, s.bookPath(), s.bookRequest(clock), "")
	var resp response.AppointmentResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
	return resp
}

func (s *BookingSuite) slotStarts(date string) []string {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, s.slotsPath(date), nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	resp := httptest.DecodeJSON[response.AvailableSlotsResponse](s.T(), w)
	starts := make([]string, 0, len(resp.AvailableSlots))
	for _, slot := range resp.AvailableSlots {
		starts = append(starts, slot.StartTime)
	}
	return starts
}

func (s *BookingSuite) TestBookAndAvailability() {
	s.Run("open day lists every 30 minute start that fits", func() {
		assert.Equal(s.T(), []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00"}, s.slotStarts(bookingDate))
	})

	s.Run("closed day has no slots", func() {
		assert.Empty(s.T(), s.slotStarts("2030-01-08"))
	})

	s.Run("booking removes overlapping starts and writes an outbox event", func() {
		created := s.book("09:00")
		assert.Equal(s.T(), "pending", created.Status)
		assert.Equal(s.T(), "09:00", created.StartTime)
		assert.Equal(s.T(), "10:00", created.EndTime)

		assert.Equal(s.T(), []string{"08:00", "10:00", "10:30", "11:00"}, s.slotStarts(bookingDate))
		assert.Equal(s.T(), 1, dbtest.CountOutboxEvents(s.T(), s.DB, shared.EventAppointmentCreated))
	})

	s.Run("overlapping booking is rejected", func() {
		s.book("09:00")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, s.bookPath(), s.bookRequest("09:30"), "")
		httptest.AssertErrorCode(s.T(), w, httperr.CodeSlotUnavailable)
		assert.Equal(s.T(), http.StatusConflict, w.Code)
	})

	s.Run("booking outside business hours is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, s.bookPath(), s.bookRequest("11:30"), "")
		assert.Equal(s.T(), http.StatusConflict, w.Code)
	})

	s.Run("business without hours returns 422", func() {
		_, err := s.DB.Exec(s.T().Context(), "DELETE FROM business_hours WHERE business_id = $1", s.businessID)
		require.NoError(s.T(), err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, s.bookPath(), s.bookRequest("09:00"), "")
		assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
		httptest.AssertErrorCode(s.T(), w, httperr.CodeHoursNotConfigured)
	})
}

func (s *BookingSuite) TestConcurrentBooking() {
	s.Run("only one of many simultaneous requests for a slot wins", func() {
		const attempts = 8
		codes := make([]int, attempts)

		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, s.bookPath(), s.bookRequest("10:00"), "")
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict, http.StatusServiceUnavailable:
				conflicts++
			}
		}
		assert.Equal(s.T(), 1, created)
		assert.Equal(s.T(), attempts-1, conflicts)
		assert.Equal(s.T(), 1, dbtest.CountOutboxEvents(s.T(), s.DB, shared.EventAppointmentCreated))
	})
}

func (s *BookingSuite) TestOwnerLifecycle() {
	s.Run("owner confirms then reschedules", func() {
		created := s.book("08:00")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/appointments/"+created.ID+"/confirm", nil, s.ownerToken)
		var confirmed response.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &confirmed)
		assert.Equal(s.T(), "confirmed", confirmed.Status)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/appointments/"+created.ID+"/reschedule",
			request.RescheduleRequest{AppointmentDate: bookingDate, AppointmentTime: "11:00"}, s.ownerToken)
		var moved response.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &moved)
		assert.Equal(s.T(), "pending", moved.Status)
		assert.Equal(s.T(), "11:00", moved.StartTime)
		require.NotNil(s.T(), moved.RescheduledFrom)
		assert.Equal(s.T(), created.ID, *moved.RescheduledFrom)

		assert.Contains(s.T(), s.slotStarts(bookingDate), "08:00")
		assert.Equal(s.T(), 1, dbtest.CountOutboxEvents(s.T(), s.DB, shared.EventAppointmentConfirmed))
		assert.Equal(s.T(), 1, dbtest.CountOutboxEvents(s.T(), s.DB, shared.EventAppointmentRescheduled))
	})

	s.Run("another owner cannot confirm", func() {
		created := s.book("08:00")
		stranger := s.Tokens.GenerateToken(s.T(), uuid.New())

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/appointments/"+created.ID+"/confirm", nil, stranger)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("pending appointment cannot be cancelled", func() {
		created := s.book("08:00")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch,
			"/api/appointments/"+created.ID+"/cancel", nil, s.ownerToken)
		assert.Equal(s.T(), http.StatusConflict, w.Code)
	})

	s.Run("owner listing requires a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, s.bookPath(), nil, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("owner lists bookings newest first", func() {
		first := s.book("08:00")
		second := s.book("10:00")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, s.bookPath(), nil, s.ownerToken)
		var list response.AppointmentListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		require.Len(s.T(), list.Appointments, 2)
		assert.Equal(s.T(), second.ID, list.Appointments[0].ID)
		assert.Equal(s.T(), first.ID, list.Appointments[1].ID)
	})
}
