package httperr

import (
	"net/http"
	"strconv"
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	CodeSlotUnavailable      = "SLOT_UNAVAILABLE"
	CodeHoursNotConfigured   = "HOURS_NOT_CONFIGURED"
	CodeTransientUnavailable = "TRANSIENT_UNAVAILABLE"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, msg, "", detail)
}

func abort(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target  error
	status  int
	message string
	code    string
}

// Order matters: an error marked with more than one sentinel takes the first match.
var mappings = []mapping{
	{errs.ErrTransientUnavailable, http.StatusServiceUnavailable, "Temporarily unavailable, retry shortly", CodeTransientUnavailable},
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request", ""},
	{errs.ErrNotFound, http.StatusNotFound, "Not found", ""},
	{errs.ErrForbidden, http.StatusForbidden, "Access denied", ""},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot unavailable", CodeSlotUnavailable},
	{errs.ErrInvalidTransition, http.StatusConflict, "Invalid status transition", ""},
	{errs.ErrAlreadyExists, http.StatusConflict, "Already exists", ""},
	{errs.ErrHoursNotConfigured, http.StatusUnprocessableEntity, "Business hours not configured", CodeHoursNotConfigured},
}

var internalError = mapping{nil, http.StatusInternalServerError, "Internal server error", ""}

func lookup(err error) mapping {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m
		}
	}
	return internalError
}

// Status reports the HTTP status an error would be rendered with.
func Status(err error) int {
	return lookup(err).status
}

// AbortWithDomainError renders a usecase error through the shared taxonomy. Validation
// messages are passed through since they describe the caller's own input.
func AbortWithDomainError(c *gin.Context, err error, retryAfter time.Duration) {
	AbortWithDomainErrorDetail(c, err, retryAfter, nil)
}

// AbortWithDomainErrorDetail also attaches a body detail; the slots endpoint uses it to
// return an empty list alongside a 503.
func AbortWithDomainErrorDetail(c *gin.Context, err error, retryAfter time.Duration, detail any) {
	m := lookup(err)
	msg := m.message
	if m.target == errs.ErrValidation {
		msg = err.Error()
	}
	if m.status == http.StatusServiceUnavailable {
		SetRetryAfter(c, retryAfter)
	}
	abort(c, m.status, err, msg, m.code, detail)
}

func SetRetryAfter(c *gin.Context, d time.Duration) {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.Itoa(secs))
}
