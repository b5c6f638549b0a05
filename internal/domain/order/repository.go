package order

import "context"

type Repository interface {
	// Put persists a new order record. Records are write-once; Put is never
	// used to mutate an existing row.
	Put(ctx context.Context, rec Record) error

	// LatestByID retrieves the most recent record for the given order ID,
	// newest first, limited to one result. Returns ErrNotFound when the row
	// is not yet visible (eventual-consistency lag).
	LatestByID(ctx context.Context, orderID string) (Record, error)
}
