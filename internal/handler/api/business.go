package api

import (
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
)

type BusinessHandler struct {
	cmds       commands.BusinessCommands
	q          queries.BusinessQueries
	retryAfter time.Duration
}

func NewBusinessHandler(cmds commands.BusinessCommands, q queries.BusinessQueries, cfg config.Config) *BusinessHandler {
	return &BusinessHandler{cmds: cmds, q: q, retryAfter: cfg.Booking.RetryAfter}
}

// @Summary Business profile
// @Description Business, its services and weekly hours, as loaded by the booking page
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} resdto.BusinessProfileResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /business/{id} [get]
func (h *BusinessHandler) GetProfile(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	view, err := h.q.GetProfile(c.Request.Context(), businessID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	res, err := resdto.FromBusinessProfile(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Create business
// @Description Register a business owned by the caller
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBusinessRequest true "Business"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /businesses [post]
func (h *BusinessHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	result, err := h.cmds.CreateBusiness(c.Request.Context(), req.ToInput(), ownerID)
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: result.ID.String()})
}

// @Summary Save business hours
// @Description Replace the weekly hours; keys "0" (Sunday) to "6"
// @Tags businesses
// @Accept json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param request body reqdto.SetBusinessHoursRequest true "Weekly hours"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /business/{id}/hours [put]
func (h *BusinessHandler) SetHours(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.SetBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	if err := h.cmds.SetBusinessHours(c.Request.Context(), businessID, actorID, req.ToRaw()); err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add service
// @Tags businesses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business ID"
// @Param request body reqdto.AddServiceRequest true "Service"
// @Success 201 {object} resdto.ServiceResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /business/{id}/services [post]
func (h *BusinessHandler) AddService(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}
	result, err := h.cmds.AddService(c.Request.Context(), businessID, actorID, req.ToInput())
	if err != nil {
		httperr.AbortWithDomainError(c, err, h.retryAfter)
		return
	}
	view, err := h.q.GetService(c.Request.Context(), businessID, result.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	res, err := resdto.FromServiceView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}
