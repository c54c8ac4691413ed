package api

import (
	"net/http"

	"booking-engine/internal/handler/httperr"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// abortBinding reports which fields failed validation; other bind errors are malformed bodies.
func abortBinding(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		detail := make([]fieldError, len(verrs))
		for i, fe := range verrs {
			detail[i] = fieldError{Field: fe.Field(), Rule: fe.Tag()}
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", detail)
		return
	}
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
}

func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+label+" id", nil)
		return uuid.Nil, false
	}
	return id, true
}
