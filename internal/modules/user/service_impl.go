package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, apperr.Wrap(apperr.ErrInvalid, "a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Wrap(apperr.ErrInvalid, "password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Presence:     PresenceOffline,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, apperr.Wrap(apperr.ErrConflict, "email %s is already registered", u.Email)
		}
		return nil, err
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", id)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) UpdatePresence(ctx context.Context, id string, status string) error {
	p := Presence(strings.ToLower(status))
	if !ValidPresence(p) {
		return apperr.Wrap(apperr.ErrInvalid, "unknown presence status %q", status)
	}
	return s.repo.UpdatePresence(ctx, id, p)
}
