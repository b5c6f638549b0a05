package service

import (
	"strings"

	"go.uber.org/zap"
)

type PaymentInfo struct {
	Status string `json:"status"`
}

type OrderValidationRequest struct {
	Payment *PaymentInfo `json:"payment"`
}

// ValidationService decides whether an order's payment cleared.
type ValidationService struct {
	log *zap.Logger
}

func NewValidationService(log *zap.Logger) *ValidationService {
	return &ValidationService{log: log}
}

// ValidateOrder accepts the order when payment.status equals "success",
// case-insensitively. Missing payment info counts as a failed payment.
func (s *ValidationService) ValidateOrder(req OrderValidationRequest) error {
	status := "Failed"
	if req.Payment != nil && req.Payment.Status != "" {
		status = req.Payment.Status
	}

	if !strings.EqualFold(status, "success") {
		s.log.Info("payment rejected", zap.String("status", status))
		return ErrPaymentFailed
	}

	s.log.Info("payment successful, order validation completed")
	return nil
}
