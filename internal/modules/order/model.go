package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a marketplace order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// DeliveryStatus is derived from, but distinct from, the order status.
type DeliveryStatus string

const (
	DeliveryPending    DeliveryStatus = "pending"
	DeliveryProcessing DeliveryStatus = "processing"
	DeliveryShipped    DeliveryStatus = "shipped"
	DeliveryDelivered  DeliveryStatus = "delivered"
)

// validTransitions defines the seller-initiated status state machine.
// Terminal states (completed, cancelled, refunded) have no outgoing edges, so
// a retried transition from a terminal state is rejected, not absorbed.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransition reports whether current -> next is an allowed transition.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// DeliveryStatusFor derives the delivery status accompanying a status
// transition. Statuses without a mapping leave the current value unchanged.
func DeliveryStatusFor(next Status, current DeliveryStatus) DeliveryStatus {
	switch next {
	case StatusProcessing:
		return DeliveryProcessing
	case StatusShipped:
		return DeliveryShipped
	case StatusCompleted:
		return DeliveryDelivered
	default:
		return current
	}
}

// Order is a single buyer-seller transaction record.
type Order struct {
	ID               uuid.UUID      `json:"id"`
	BuyerID          uuid.UUID      `json:"buyer_id"`
	SellerID         uuid.UUID      `json:"seller_id"`
	ProductID        uuid.UUID      `json:"product_id"`
	Quantity         int            `json:"quantity"`
	UnitPrice        float64        `json:"unit_price"`
	TotalPrice       float64        `json:"total_price"`
	Currency         string         `json:"currency"`
	Status           Status         `json:"status"`
	PaymentStatus    string         `json:"payment_status"`
	PaymentMethod    string         `json:"payment_method,omitempty"`
	PaymentReference string         `json:"payment_reference"`
	DeliveryStatus   DeliveryStatus `json:"delivery_status"`
	ShippingAddress  string         `json:"shipping_address,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// CheckoutRequest is the payload for completing a checkout after the payment
// provider has confirmed the charge. payment_reference is the idempotency key.
type CheckoutRequest struct {
	PaymentReference string  `json:"payment_reference"`
	ProductID        string  `json:"product_id"`
	SellerID         string  `json:"seller_id"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	Currency         string  `json:"currency,omitempty"` // defaults to NGN
	PaymentMethod    string  `json:"payment_method,omitempty"`
	ShippingAddress  string  `json:"shipping_address,omitempty"`
}

// UpdateStatusRequest is the payload for a seller advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse is returned by the status transition endpoint.
type StatusResponse struct {
	Success        bool           `json:"success"`
	Status         Status         `json:"status"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
}
