package service

import "errors"

var (
	// ErrPaymentFailed marks a domain rejection: the order's payment did not
	// go through. Mapped to 402 by the HTTP layer.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrTrackingNotFound means no known carrier format matched the code.
	// Mapped to 404 by the HTTP layer.
	ErrTrackingNotFound = errors.New("tracking number not found or unrecognized")
)

// ValidationError reports the first request field that is missing or of the
// wrong type. Mapped to 400 by the HTTP layer.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid or missing " + e.Field
}
