package payment

import (
	"time"

	"github.com/google/uuid"
)

// Provider represents a supported payment gateway.
type Provider string

const (
	ProviderPaystack Provider = "paystack"
	ProviderStripe   Provider = "stripe"
)

// Transaction is the append-only record of a verified payment, linked to an
// order by reference.
type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
	Provider   string     `json:"provider"`
	Reference  string     `json:"reference"`
	Amount     float64    `json:"amount"` // major units
	Currency   string     `json:"currency"`
	VerifiedAt time.Time  `json:"verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// InitializeRequest is the payload for starting a payment with a provider.
type InitializeRequest struct {
	Provider string  `json:"provider"`
	Amount   float64 `json:"amount"` // major units
	Currency string  `json:"currency,omitempty"`
	Email    string  `json:"email"`
}

// InitializeResult is the normalized response from a provider initialize call.
// Paystack (redirect-based) fills AuthorizationURL; Stripe (intent-based)
// fills ClientSecret.
type InitializeResult struct {
	Provider         Provider `json:"provider"`
	Reference        string   `json:"reference"`
	AuthorizationURL string   `json:"authorization_url,omitempty"`
	ClientSecret     string   `json:"client_secret,omitempty"`
}

// VerifyResult is the normalized response from a provider verify call.
// Amount is in major units; Currency is uppercase.
type VerifyResult struct {
	Success  bool    `json:"success"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
