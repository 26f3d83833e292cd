package payout

import "context"

// Repository defines data access for seller payouts. Rows are created by the
// order module's delivery confirmation; this module reads and processes them.
type Repository interface {
	// GetByID retrieves a payout by UUID.
	GetByID(ctx context.Context, id string) (*Payout, error)

	// ListBySeller returns a seller's payouts, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*Payout, error)

	// MarkProcessed conditionally moves a pending payout to processed,
	// recording the external reference and notes. Returns false when the
	// payout was not pending.
	MarkProcessed(ctx context.Context, id string, reference, notes string) (bool, error)
}
