package carrier

import (
	"fmt"
	"regexp"
	"strings"
)

type rule struct {
	name    string
	pattern *regexp.Regexp
	urlFmt  string
}

// Recognizer matches tracking codes against known carrier number formats.
// Rules are tried in order; the first match wins, so more specific formats
// come before the all-digit ones.
type Recognizer struct {
	rules []rule
}

// NewRecognizer builds a recognizer covering the carrier formats the shipping
// handlers care about: UPS 1Z codes, USPS IMpb and international labels,
// FedEx Express/Ground, and DHL Express waybills.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		rules: []rule{
			{
				name:    "UPS",
				pattern: regexp.MustCompile(`^1Z[0-9A-Z]{16}$`),
				urlFmt:  "https://www.ups.com/track?tracknum=%s",
			},
			{
				name:    "USPS",
				pattern: regexp.MustCompile(`^9[0-9]{19,21}$`),
				urlFmt:  "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s",
			},
			{
				name:    "USPS",
				pattern: regexp.MustCompile(`^[A-Z]{2}[0-9]{9}US$`),
				urlFmt:  "https://tools.usps.com/go/TrackConfirmAction?tLabels=%s",
			},
			{
				name:    "FedEx",
				pattern: regexp.MustCompile(`^[0-9]{12}$|^[0-9]{15}$`),
				urlFmt:  "https://www.fedex.com/fedextrack/?trknbr=%s",
			},
			{
				name:    "DHL",
				pattern: regexp.MustCompile(`^[0-9]{10}$`),
				urlFmt:  "https://www.dhl.com/en/express/tracking.html?AWB=%s",
			},
		},
	}
}

// Lookup matches the code against the known formats. Codes are normalized by
// trimming whitespace and upper-casing before matching.
func (r *Recognizer) Lookup(code string) (*Match, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}

	for _, rule := range r.rules {
		if rule.pattern.MatchString(normalized) {
			return &Match{
				Carrier:     rule.name,
				TrackingURL: fmt.Sprintf(rule.urlFmt, normalized),
			}, nil
		}
	}

	return nil, nil
}
