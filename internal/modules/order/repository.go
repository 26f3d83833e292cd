package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// CreateFromCheckout persists a new order, its payment-transaction record,
	// and the stock decrement (floored at zero) in a single transaction.
	CreateFromCheckout(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// GetOrderByPaymentReference retrieves an order by its idempotency key.
	GetOrderByPaymentReference(ctx context.Context, reference string) (*Order, error)

	// UpdateStatusIf conditionally advances the order's status and delivery
	// status. Returns false when the order is no longer in expected status.
	UpdateStatusIf(ctx context.Context, id string, expected, next Status, delivery DeliveryStatus) (bool, error)

	// ConfirmDelivery marks the order delivered and creates the seller's
	// pending payout in a single transaction. Returns false when a payout for
	// the order already exists.
	ConfirmDelivery(ctx context.Context, o *Order) (bool, error)

	// ListByBuyer returns orders placed by a buyer, newest first.
	ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error)

	// ListBySeller returns orders received by a seller, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*Order, error)
}
