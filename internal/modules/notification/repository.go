package notification

import "context"

// Repository defines data access for notifications.
type Repository interface {
	// Create persists a notification row.
	Create(ctx context.Context, n *Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)

	// MarkRead marks a notification read. Returns false when no row matches
	// the id/owner pair.
	MarkRead(ctx context.Context, id string, userID string) (bool, error)
}
