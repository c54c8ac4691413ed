package api

import (
	"context"
	"net/http"
	"time"

	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	booking    commands.BookingCommands
	cmds       commands.AppointmentCommands
	q          queries.AppointmentQueries
	retryAfter time.Duration
}

func NewAppointmentHandler(booking commands.BookingCommands, cmds commands.AppointmentCommands, q queries.AppointmentQueries, cfg config.Config) *AppointmentHandler {
	return &AppointmentHandler{booking: booking, cmds: cmds, q: q, retryAfter: cfg.Booking.RetryAfter}
}

// @Summary Book appointment
// @Description Book a slot. The slot is re-validated against committed appointments under the business/date key.
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body reqdto.BookAppointmentRequest true "Booking request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /business/{id}/appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	var req reqdto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	result, err := h.booking.BookSlot(c.Request.Context(), req.ToInput(businessID))
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	h.respond(c, http.StatusCreated, result.AppointmentID)
}

// @Summary List business appointments
// @Description List a business's appointments, newest first, with keyset pagination
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param status query string false "Status"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Max items (default 50)"
// @Success 200 {object} resdto.AppointmentListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /business/{id}/appointments [get]
func (h *AppointmentHandler) ListByBusiness(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var query reqdto.ListAppointmentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBinding(c, err)
		return
	}
	var cursor *queries.Cursor
	if query.Cursor != "" {
		cursor = &queries.Cursor{After: query.Cursor}
	}

	items, next, err := h.q.ListByBusiness(c.Request.Context(), businessID, actorID,
		queries.AppointmentFilters{Date: query.Date, Status: query.Status}, cursor, query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	res, err := resdto.FromAppointmentList(items, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get appointment
// @Description Get an appointment of a business the caller owns
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, actorID, ok := h.ownerRequest(c)
	if !ok {
		return
	}
	view, err := h.q.GetForOwner(c.Request.Context(), id, actorID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	h.render(c, http.StatusOK, view)
}

// @Summary Confirm appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/confirm [patch]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.Confirm)
}

// @Summary Reject appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/reject [patch]
func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.transition(c, h.cmds.Reject)
}

// @Summary Cancel appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /appointments/{id}/cancel [patch]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

// @Summary Reschedule appointment
// @Description Retire the appointment and book a replacement at the new date/time atomically
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleRequest true "New date and time"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /appointments/{id}/reschedule [patch]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, actorID, ok := h.ownerRequest(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	result, err := h.booking.Reschedule(c.Request.Context(), id, actorID, req.ToInput())
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	h.respond(c, http.StatusOK, result.AppointmentID)
}

func (h *AppointmentHandler) transition(c *gin.Context, fn func(ctx context.Context, appointmentID, actorID uuid.UUID) error) {
	id, actorID, ok := h.ownerRequest(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id, actorID); err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	h.respond(c, http.StatusOK, id)
}

func (h *AppointmentHandler) ownerRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := pathUUID(c, "id", "appointment")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, actorID, true
}

// respond reloads the appointment a command just wrote.
func (h *AppointmentHandler) respond(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load appointment", nil)
		return
	}
	h.render(c, status, view)
}

func (h *AppointmentHandler) render(c *gin.Context, status int, view *queries.AppointmentView) {
	res, err := resdto.FromAppointmentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
