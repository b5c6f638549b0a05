package order

import "time"

// Record is the persisted order row. It is written once when an invoice is
// requested and never mutated afterwards.
type Record struct {
	OrderID      string `json:"order_id" dynamodbav:"order_id"`
	OrderedAt    string `json:"ordered_at" dynamodbav:"OrderedAt"`
	CustomerName string `json:"customer_name,omitempty" dynamodbav:"customer_name,omitempty"`
}

// NewRecord stamps a record with the given identity and the current UTC time
// in RFC 3339 form.
func NewRecord(orderID, customerName string, now time.Time) Record {
	return Record{
		OrderID:      orderID,
		OrderedAt:    now.UTC().Format(time.RFC3339),
		CustomerName: customerName,
	}
}
