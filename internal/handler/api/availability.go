package api

import (
	"net/http"
	"time"

	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q          queries.AvailabilityQueries
	retryAfter time.Duration
}

func NewAvailabilityHandler(q queries.AvailabilityQueries, cfg config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{q: q, retryAfter: cfg.Booking.RetryAfter}
}

// @Summary Available slots
// @Description List bookable start times for a service on a date. Advisory only; booking re-validates.
// @Tags availability
// @Produce json
// @Param id path string true "Business ID"
// @Param serviceId query string true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailableSlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /business/{id}/available-slots [get]
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	businessID, ok := pathUUID(c, "id", "business")
	if !ok {
		return
	}
	var query reqdto.AvailableSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortBinding(c, err)
		return
	}

	view, err := h.q.AvailableSlots(c.Request.Context(), businessID, query.ServiceUUID(), query.Date)
	if err != nil {
		// storage trouble still answers with an empty list so the page can render
		httperr.AbortWithDomainErrorDetail(c, err, h.retryAfter, resdto.FromAvailabilityView(view))
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
