package user

import (
	"time"

	"github.com/google/uuid"
)

// Presence is a user's self-reported availability, shown in chat and call UIs.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceAway    Presence = "away"
	PresenceBusy    Presence = "busy"
	PresenceOffline Presence = "offline"
)

// ValidPresence reports whether s is one of the accepted presence values.
func ValidPresence(s Presence) bool {
	switch s {
	case PresenceOnline, PresenceAway, PresenceBusy, PresenceOffline:
		return true
	}
	return false
}

// User is an account on the platform. The same account buys, sells, and posts.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Presence     Presence  `json:"presence"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdatePresenceRequest is the payload for setting the caller's presence.
type UpdatePresenceRequest struct {
	Status string `json:"status"`
}
