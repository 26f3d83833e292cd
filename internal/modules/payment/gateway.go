package payment

import (
	"context"
	"math"
	"net/http"
	"time"
)

// Gateway is the provider-agnostic interface every payment adapter must
// implement. Adapters normalize provider responses into the common shapes in
// model.go: amounts come back in major units, currencies in uppercase.
type Gateway interface {
	// Initialize starts a payment and returns the provider reference plus the
	// provider's continuation handle (redirect URL or client secret).
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)

	// Verify queries the provider for the current state of a transaction.
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// GatewayRegistry maps provider names to their Gateway implementations.
type GatewayRegistry map[Provider]Gateway

// Providers charge in minor units (x100): kobo for Paystack, cents for
// Stripe. Initialize multiplies out, verify divides back.

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}

// newHTTPClient returns the client gateway adapters share. 10s bounds a hung
// provider.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
