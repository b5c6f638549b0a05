package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// EnvelopeForError maps typed service errors onto the wire contract: field
// validation failures to 400, payment rejection to 402, unrecognized tracking
// codes to 404, and everything else to 500 carrying the underlying error text
// for diagnostics. Shared by the HTTP router and the Lambda dispatcher.
func EnvelopeForError(err error, fallback string) (int, ErrorResponse) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		return http.StatusBadRequest, ErrorResponse{Error: "Invalid or missing " + validErr.Field}
	}

	switch {
	case errors.Is(err, service.ErrPaymentFailed):
		return http.StatusPaymentRequired, ErrorResponse{Error: "Payment failed"}

	case errors.Is(err, service.ErrTrackingNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Tracking number not found or unrecognized"}

	default:
		return http.StatusInternalServerError, ErrorResponse{Error: fallback, Details: err.Error()}
	}
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	status, body := EnvelopeForError(err, fallback)
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return false
	}
	return true
}
