package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// Service defines notification business logic.
type Service interface {
	// Notify writes a durable notification row and fans it out to the owner's
	// live websocket connections.
	Notify(ctx context.Context, userID uuid.UUID, typ Type, body string, referenceID *uuid.UUID) error

	// ListForUser returns a user's notifications, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)

	// MarkRead marks one of the caller's notifications read.
	MarkRead(ctx context.Context, callerID uuid.UUID, id string) error
}

type service struct {
	repo Repository
	hub  *Hub
}

// NewService creates a new notification service. hub may be nil.
func NewService(repo Repository, hub *Hub) Service {
	return &service{repo: repo, hub: hub}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, typ Type, body string, referenceID *uuid.UUID) error {
	n := &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        typ,
		Body:        body,
		ReferenceID: referenceID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Broadcast(n)
	}
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID.String())
}

func (s *service) MarkRead(ctx context.Context, callerID uuid.UUID, id string) error {
	marked, err := s.repo.MarkRead(ctx, id, callerID.String())
	if err != nil {
		return err
	}
	if !marked {
		return apperr.Wrap(apperr.ErrNotFound, "notification %s not found", id)
	}
	return nil
}
