//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"booking-engine/internal/handler/api"
	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"
	"booking-engine/tests/common/builder"
	"booking-engine/tests/common/httptest"
	"booking-engine/tests/common/testutil"
	commandsmock "booking-engine/tests/mock/commands"
	queriesmock "booking-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockBooking *commandsmock.MockBookingCommands
	mockCmds    *commandsmock.MockAppointmentCommands
	mockQueries *queriesmock.MockAppointmentQueries
	handler     *api.AppointmentHandler
	ownerID     uuid.UUID
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	reqdto.RegisterValidators()
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBooking = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockCmds = commandsmock.NewMockAppointmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockBooking, s.mockCmds, s.mockQueries, config.NewTestConfig())
	s.ownerID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.ownerID)
		c.Next()
	}

	s.router.POST("/business/:id/appointments", s.handler.Book)
	s.router.GET("/business/:id/appointments", authMiddleware, s.handler.ListByBusiness)
	s.router.GET("/appointments/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/appointments/:id/confirm", authMiddleware, s.handler.Confirm)
	s.router.PATCH("/appointments/:id/reject", authMiddleware, s.handler.Reject)
	s.router.PATCH("/appointments/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.PATCH("/appointments/:id/reschedule", authMiddleware, s.handler.Reschedule)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

type testCaseAppointment struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestBook
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestBook() {
	b := builder.NewAppointmentBuilder()
	url := "/business/" + b.BusinessID.String() + "/appointments"
	reqBody := b.BuildBookRequestDTO()
	view := b.BuildView()
	result := &commands.BookingResult{AppointmentID: view.ID, Status: "pending"}

	s.Run("success: returns 201 with the stored appointment", func() {
		s.mockBooking.EXPECT().BookSlot(gomock.Any(), reqBody.ToInput(b.BusinessID)).Return(result, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Equal("08:00", body.StartTime)
		s.Equal("09:00", body.EndTime)
		s.Equal("pending", body.Status)
		s.Equal("2026-10-19", body.AppointmentDate)
		s.Equal("2026-10-16T12:00:00Z", body.CreatedAt)
		s.Nil(body.RescheduledFrom)
	})

	cases := []testCaseAppointment{
		{name: "missing serviceId", mutate: testutil.Field("serviceId", nil), expectCode: http.StatusBadRequest},
		{name: "missing clientName", mutate: testutil.Field("clientName", nil), expectCode: http.StatusBadRequest},
		{name: "missing clientPhone", mutate: testutil.Field("clientPhone", nil), expectCode: http.StatusBadRequest},
		{name: "clientName too long", mutate: testutil.Field("clientName", strings.Repeat("a", 121)), expectCode: http.StatusBadRequest},
		{name: "invalid email", mutate: testutil.Field("clientEmail", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "malformed date", mutate: testutil.Field("appointmentDate", "19/10/2026"), expectCode: http.StatusBadRequest},
		{name: "impossible date", mutate: testutil.Field("appointmentDate", "2026-02-30"), expectCode: http.StatusBadRequest},
		{name: "malformed time", mutate: testutil.Field("appointmentTime", "8am"), expectCode: http.StatusBadRequest},
		{name: "time out of range", mutate: testutil.Field("appointmentTime", "24:30"), expectCode: http.StatusBadRequest},
		{name: "email is optional", mutate: testutil.Field("clientEmail", nil), expectCode: http.StatusCreated},
	}

	s.Run("validation", func() {
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockBooking.EXPECT().BookSlot(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
					s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: invalid business id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/business/nope/appointments", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid business id")
	})

	s.Run("error: maps usecase errors to statuses and codes", func() {
		testCases := []struct {
			name       string
			err        error
			status     int
			code       string
			retryAfter string
		}{
			{"slot taken", errs.Mark(errs.New("overlap"), errs.ErrSlotUnavailable), http.StatusConflict, "SLOT_UNAVAILABLE", ""},
			{"no hours", errs.Mark(errs.New("closed"), errs.ErrHoursNotConfigured), http.StatusUnprocessableEntity, "HOURS_NOT_CONFIGURED", ""},
			{"lock timeout", errs.Mark(errs.New("lock"), errs.ErrTransientUnavailable), http.StatusServiceUnavailable, "TRANSIENT_UNAVAILABLE", "1"},
			{"unknown service", errs.Mark(errs.New("service"), errs.ErrNotFound), http.StatusNotFound, "", ""},
			{"past slot", errs.Mark(errs.New("slot is in the past"), errs.ErrValidation), http.StatusBadRequest, "", ""},
			{"unexpected", errs.New("boom"), http.StatusInternalServerError, "", ""},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockBooking.EXPECT().BookSlot(gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
				httptest.AssertErrorCode(s.T(), rec, tc.code)
				httptest.AssertRetryAfter(s.T(), rec, tc.retryAfter)
			})
		}
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestTransitions() {
	view := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) { b.Status = "confirmed" }).BuildView()
	base := "/appointments/" + view.ID.String()

	s.Run("confirm returns the updated appointment", func() {
		s.mockCmds.EXPECT().Confirm(gomock.Any(), view.ID, s.ownerID).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/confirm", nil, "token")
		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("reject of a non-pending appointment is 409", func() {
		s.mockCmds.EXPECT().Reject(gomock.Any(), view.ID, s.ownerID).
			Return(errs.Mark(errs.New("confirmed -> rejected"), errs.ErrInvalidTransition)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/reject", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Invalid status transition")
	})

	s.Run("cancel by another owner is 403", func() {
		s.mockCmds.EXPECT().Cancel(gomock.Any(), view.ID, s.ownerID).
			Return(errs.Mark(errs.New("not yours"), errs.ErrForbidden)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/cancel", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("unauthenticated is 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/confirm", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("invalid appointment id is 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/appointments/123/confirm", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid appointment id")
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestReschedule() {
	oldID := uuid.New()
	b := builder.NewAppointmentBuilder().WithSlot("2026-10-19", "10:00")
	view := b.BuildView()
	view.RescheduledFrom = &oldID
	url := "/appointments/" + oldID.String() + "/reschedule"
	reqBody := b.BuildRescheduleRequestDTO()

	s.Run("success: returns the replacement", func() {
		s.mockBooking.EXPECT().Reschedule(gomock.Any(), oldID, s.ownerID, reqBody.ToInput()).
			Return(&commands.BookingResult{AppointmentID: view.ID, Status: "pending"}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body.ID)
		s.Require().NotNil(body.RescheduledFrom)
		s.Equal(oldID.String(), *body.RescheduledFrom)
	})

	s.Run("target slot taken is 409", func() {
		s.mockBooking.EXPECT().Reschedule(gomock.Any(), oldID, s.ownerID, gomock.Any()).
			Return(nil, errs.Mark(errs.New("taken"), errs.ErrSlotUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "token")
		httptest.AssertErrorCode(s.T(), rec, "SLOT_UNAVAILABLE")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("missing time is 400", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("appointmentTime", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, requestMap, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestGetAndList
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestGetAndList() {
	b := builder.NewAppointmentBuilder()
	view := b.BuildView()

	s.Run("get checks ownership through the query", func() {
		s.mockQueries.EXPECT().GetForOwner(gomock.Any(), view.ID, s.ownerID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("get unknown is 404", func() {
		s.mockQueries.EXPECT().GetForOwner(gomock.Any(), view.ID, s.ownerID).
			Return(nil, errs.Mark(errs.New("missing"), errs.ErrNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	listURL := "/business/" + b.BusinessID.String() + "/appointments"

	s.Run("list passes filters and returns the next cursor", func() {
		s.mockQueries.EXPECT().ListByBusiness(gomock.Any(), b.BusinessID, s.ownerID,
			queries.AppointmentFilters{Date: "2026-10-19", Status: "pending"}, &queries.Cursor{After: "abc"}, 10).
			Return([]*queries.AppointmentView{view}, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL+"?date=2026-10-19&status=pending&cursor=abc&limit=10", nil, "token")
		var body resdto.AppointmentListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Appointments, 1)
		s.Equal("next", body.NextCursor)
	})

	s.Run("list rejects an unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL+"?status=done", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("list rejects a bad limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, listURL+"?limit=1000", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
