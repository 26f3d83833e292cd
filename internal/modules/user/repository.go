package user

import "context"

// Repository defines data access for users.
type Repository interface {
	// CreateUser persists a new user. Returns an error on duplicate email.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByID retrieves a user by UUID.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail retrieves a user by email, password hash included.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// UpdatePresence sets a user's presence string.
	UpdatePresence(ctx context.Context, id string, presence Presence) error
}
