package service

import (
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/carrier"
)

// ShippingRequest carries the raw decoded fields so each one can be
// type-checked independently and the first failing field reported by name.
type ShippingRequest struct {
	TrackingNumber any `json:"tracking_number"`
	Weight         any `json:"weight"`
	Destination    any `json:"destination"`
}

// Validate checks tracking_number, weight, and destination in that order and
// returns the typed values or a ValidationError naming the first bad field.
func (r ShippingRequest) Validate() (code string, weight float64, destination string, err error) {
	code, ok := stringField(r.TrackingNumber)
	if !ok {
		return "", 0, "", &ValidationError{Field: "tracking_number"}
	}
	weight, ok = numberField(r.Weight)
	if !ok {
		return "", 0, "", &ValidationError{Field: "weight"}
	}
	destination, ok = stringField(r.Destination)
	if !ok {
		return "", 0, "", &ValidationError{Field: "destination"}
	}
	return code, weight, destination, nil
}

// Suggestion is a shipping method with its flat-rate cost estimate.
type Suggestion struct {
	Method        string `json:"method"`
	EstimatedCost int    `json:"estimated_cost"`
}

// SuggestMethod picks a method and cost from carrier and weight alone.
// Shipments over 10 weight units always go freight at base cost plus 20.
func SuggestMethod(carrierName string, weight float64) Suggestion {
	var s Suggestion
	switch carrierName {
	case "UPS", "FedEx":
		s = Suggestion{Method: "Express Shipping", EstimatedCost: 30}
	case "USPS":
		s = Suggestion{Method: "Standard Postal Delivery", EstimatedCost: 15}
	default:
		s = Suggestion{Method: "Generic Carrier Shipping", EstimatedCost: 20}
	}

	if weight > 10 {
		s.Method = "Freight"
		s.EstimatedCost += 20
	}

	return s
}

// ShippingAdvice is the full suggestion response, echoing the inputs.
type ShippingAdvice struct {
	TrackingNumber string     `json:"tracking_number"`
	Carrier        string     `json:"carrier"`
	TrackingURL    string     `json:"tracking_url"`
	Weight         float64    `json:"weight"`
	Destination    string     `json:"destination"`
	Suggestion     Suggestion `json:"suggestion"`
}

// ShippingService combines carrier recognition with the suggestion rule.
type ShippingService struct {
	lookup carrier.Lookup
	log    *zap.Logger
}

func NewShippingService(lookup carrier.Lookup, log *zap.Logger) *ShippingService {
	return &ShippingService{lookup: lookup, log: log}
}

// Suggest resolves the carrier for the code and derives the shipping
// suggestion. Lookup failures and unrecognized codes degrade the carrier to
// "Unknown" instead of failing the request.
func (s *ShippingService) Suggest(code string, weight float64, destination string) ShippingAdvice {
	carrierName := "Unknown"
	trackingURL := "N/A"

	match, err := s.lookup.Lookup(code)
	switch {
	case err != nil:
		s.log.Warn("carrier lookup failed, degrading to Unknown",
			zap.String("tracking_number", code), zap.Error(err))
	case match != nil:
		if match.Carrier != "" {
			carrierName = match.Carrier
		}
		if match.TrackingURL != "" {
			trackingURL = match.TrackingURL
		}
	}

	return ShippingAdvice{
		TrackingNumber: code,
		Carrier:        carrierName,
		TrackingURL:    trackingURL,
		Weight:         weight,
		Destination:    destination,
		Suggestion:     SuggestMethod(carrierName, weight),
	}
}
