package payment

import "context"

// Repository defines data access for payment transactions. The table is
// append-only: rows are inserted at checkout completion and never mutated.
type Repository interface {
	// ListByOrder returns the transactions recorded for an order.
	ListByOrder(ctx context.Context, orderID string) ([]*Transaction, error)

	// GetByReference retrieves a transaction by its provider reference.
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
}
