package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/carrier"
)

type TrackingRequest struct {
	TrackingNumber any `json:"tracking_number"`
}

// TrackingStatus is the resolved carrier metadata for a tracking code.
type TrackingStatus struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
	TrackingURL    string `json:"tracking_url"`
}

// TrackingService resolves carrier identity for tracking codes.
type TrackingService struct {
	lookup carrier.Lookup
	log    *zap.Logger
}

func NewTrackingService(lookup carrier.Lookup, log *zap.Logger) *TrackingService {
	return &TrackingService{lookup: lookup, log: log}
}

// Track validates the tracking number and resolves its carrier. Returns a
// ValidationError for a missing or non-string code and ErrTrackingNotFound
// when no carrier format matches.
func (s *TrackingService) Track(req TrackingRequest) (TrackingStatus, error) {
	code, ok := stringField(req.TrackingNumber)
	if !ok {
		return TrackingStatus{}, &ValidationError{Field: "tracking_number"}
	}

	match, err := s.lookup.Lookup(code)
	if err != nil {
		return TrackingStatus{}, fmt.Errorf("carrier lookup for %s: %w", code, err)
	}
	if match == nil {
		return TrackingStatus{}, ErrTrackingNotFound
	}

	status := TrackingStatus{
		TrackingNumber: code,
		Carrier:        match.Carrier,
		TrackingURL:    match.TrackingURL,
	}
	if status.Carrier == "" {
		status.Carrier = "Unknown"
	}
	if status.TrackingURL == "" {
		status.TrackingURL = "N/A"
	}

	s.log.Info("tracking code resolved",
		zap.String("tracking_number", code),
		zap.String("carrier", status.Carrier))

	return status, nil
}

// stringField extracts a non-empty string from a decoded JSON value.
func stringField(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// numberField extracts a positive number from a decoded JSON value.
// encoding/json decodes every JSON number into float64.
func numberField(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok && n > 0
}
