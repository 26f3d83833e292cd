package payout

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// Service defines payout business logic.
type Service interface {
	// ProcessPayout marks a pending payout processed with a caller-supplied
	// external payout reference. Only the payout's seller may call it.
	ProcessPayout(ctx context.Context, callerID uuid.UUID, id string, req ProcessRequest) (*Payout, error)

	// ListMine returns the caller's payouts, newest first.
	ListMine(ctx context.Context, callerID uuid.UUID) ([]*Payout, error)
}

// Notifier receives a best-effort hook after a payout is processed.
type Notifier interface {
	PayoutProcessed(ctx context.Context, p *Payout)
}

// NopNotifier discards the hook.
type NopNotifier struct{}

func (NopNotifier) PayoutProcessed(context.Context, *Payout) {}

type service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a new payout service.
func NewService(repo Repository, notifier Notifier) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{repo: repo, notifier: notifier}
}

func (s *service) ProcessPayout(ctx context.Context, callerID uuid.UUID, id string, req ProcessRequest) (*Payout, error) {
	if strings.TrimSpace(req.PayoutReference) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "payout_reference is required")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "payout %s not found", id)
		}
		return nil, err
	}
	if p.SellerID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "payout %s does not belong to you", id)
	}

	processed, err := s.repo.MarkProcessed(ctx, id, req.PayoutReference, req.Notes)
	if err != nil {
		return nil, err
	}
	if !processed {
		return nil, apperr.Wrap(apperr.ErrConflict, "payout %s is already processed", id)
	}

	p, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.PayoutProcessed(ctx, p)
	return p, nil
}

func (s *service) ListMine(ctx context.Context, callerID uuid.UUID) ([]*Payout, error) {
	return s.repo.ListBySeller(ctx, callerID.String())
}
