// Package identity carries the authenticated user through the request context.
package identity

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const userKey = contextKey("user_id")

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// UserID extracts the authenticated user's id from the context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey).(uuid.UUID)
	return id, ok
}
