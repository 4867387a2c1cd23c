package delivery

import (
	"errors"
	"net/http"

	"github.com/NogueiraLn/dscatalog/internal/domain"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error       string              `json:"error"`
	FieldErrors []domain.FieldError `json:"field_errors,omitempty"`
}

// WriteError translates a domain error into an HTTP status and a structured
// error body. Raw store errors never reach the client: anything outside the
// domain taxonomy collapses to a generic 500.
func WriteError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, ErrorBody{
			Error:       "validation failed",
			FieldErrors: ve.Errors,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, ErrorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}
