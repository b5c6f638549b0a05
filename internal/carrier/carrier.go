// Package carrier recognizes shipping carriers from the format of a tracking
// code and produces a public tracking URL for the match.
package carrier

// Match is the result of a successful recognition.
type Match struct {
	Carrier     string
	TrackingURL string
}

// Lookup resolves a tracking code to carrier metadata. A nil Match with a nil
// error means the code format is not recognized by any known carrier.
type Lookup interface {
	Lookup(code string) (*Match, error)
}
