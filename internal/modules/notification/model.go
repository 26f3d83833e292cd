package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type categorizes what a notification is about.
type Type string

const (
	TypeOrderPlaced     Type = "order_placed"
	TypeOrderStatus     Type = "order_status"
	TypeDelivery        Type = "delivery_confirmed"
	TypePayoutProcessed Type = "payout_processed"
)

// Notification is a durable per-user event row. Live delivery over the
// websocket hub is best-effort; the row is the source of truth.
type Notification struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Type        Type       `json:"type"`
	Body        string     `json:"body"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
	Read        bool       `json:"read"`
	CreatedAt   time.Time  `json:"created_at"`
}
