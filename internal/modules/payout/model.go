package payout

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the payout lifecycle: pending -> processed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
)

// Payout is a scheduled transfer of marketplace proceeds to a seller. One is
// created per order when the buyer confirms delivery.
type Payout struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	SellerID        uuid.UUID  `json:"seller_id"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Status          Status     `json:"status"`
	PayoutReference string     `json:"payout_reference,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProcessRequest is the payload for marking a payout as processed.
type ProcessRequest struct {
	PayoutReference string `json:"payout_reference"`
	Notes           string `json:"notes,omitempty"`
}
