package payment

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// PartyLookup resolves an order's buyer and seller. The order module supplies
// it at wiring time; transactions are only visible to those two parties.
type PartyLookup func(ctx context.Context, orderID string) (buyerID, sellerID uuid.UUID, err error)

// Service defines the payment bridge business logic.
type Service interface {
	// Initialize starts a payment with the named provider.
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)

	// Verify queries the named provider and returns the normalized result.
	Verify(ctx context.Context, provider string, reference string) (*VerifyResult, error)

	// ListByOrder returns the transactions recorded against an order, visible
	// only to the order's buyer or seller.
	ListByOrder(ctx context.Context, callerID uuid.UUID, orderID string) ([]*Transaction, error)
}

type service struct {
	repo     Repository
	gateways GatewayRegistry
	parties  PartyLookup
}

// NewService creates a new payment service.
func NewService(repo Repository, gateways GatewayRegistry, parties PartyLookup) Service {
	return &service{repo: repo, gateways: gateways, parties: parties}
}

func (s *service) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if req.Amount <= 0 {
		return nil, apperr.Wrap(apperr.ErrInvalid, "amount must be greater than 0")
	}

	gw, err := s.gateway(req.Provider)
	if err != nil {
		return nil, err
	}
	return gw.Initialize(ctx, req)
}

func (s *service) Verify(ctx context.Context, provider string, reference string) (*VerifyResult, error) {
	if reference == "" {
		return nil, apperr.Wrap(apperr.ErrInvalid, "reference is required")
	}

	gw, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}
	return gw.Verify(ctx, reference)
}

func (s *service) ListByOrder(ctx context.Context, callerID uuid.UUID, orderID string) ([]*Transaction, error) {
	buyerID, sellerID, err := s.parties(ctx, orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order %s not found", orderID)
		}
		return nil, err
	}
	if callerID != buyerID && callerID != sellerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "order %s does not involve you", orderID)
	}

	txs, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return txs, nil
}

func (s *service) gateway(name string) (Gateway, error) {
	p := Provider(strings.ToLower(name))
	gw, ok := s.gateways[p]
	if !ok {
		return nil, apperr.Wrap(apperr.ErrInvalid, "unknown payment provider %q", name)
	}
	return gw, nil
}
