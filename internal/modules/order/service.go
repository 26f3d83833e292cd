package order

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// Service defines the marketplace order business logic.
type Service interface {
	// CompleteCheckout creates the order for a confirmed payment, or returns
	// the existing order unchanged when the payment reference was already
	// used. The boolean reports whether a new order was created.
	CompleteCheckout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*Order, bool, error)

	// UpdateStatus advances an order through the status state machine. Only
	// the recorded seller may call it.
	UpdateStatus(ctx context.Context, callerID uuid.UUID, id string, req UpdateStatusRequest) (*Order, error)

	// ConfirmDelivery marks the order delivered and schedules the seller's
	// payout. Only the recorded buyer may call it.
	ConfirmDelivery(ctx context.Context, callerID uuid.UUID, id string) (*Order, error)

	// GetOrder retrieves an order visible to its buyer or seller.
	GetOrder(ctx context.Context, callerID uuid.UUID, id string) (*Order, error)

	// ListBought returns the caller's purchases, newest first.
	ListBought(ctx context.Context, callerID uuid.UUID) ([]*Order, error)

	// ListSold returns the caller's sales, newest first.
	ListSold(ctx context.Context, callerID uuid.UUID) ([]*Order, error)
}

// Notifier receives best-effort hooks after order mutations commit. Failures
// are the notifier's problem; the order flow never blocks on them.
type Notifier interface {
	OrderCompleted(ctx context.Context, o *Order)
	StatusChanged(ctx context.Context, o *Order)
	DeliveryConfirmed(ctx context.Context, o *Order)
}

// NopNotifier discards all hooks.
type NopNotifier struct{}

func (NopNotifier) OrderCompleted(context.Context, *Order)    {}
func (NopNotifier) StatusChanged(context.Context, *Order)     {}
func (NopNotifier) DeliveryConfirmed(context.Context, *Order) {}

type service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a new order service.
func NewService(repo Repository, notifier Notifier) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{repo: repo, notifier: notifier}
}

func (s *service) CompleteCheckout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (*Order, bool, error) {
	if req.PaymentReference == "" {
		return nil, false, apperr.Wrap(apperr.ErrInvalid, "payment_reference is required")
	}
	if req.Quantity <= 0 {
		return nil, false, apperr.Wrap(apperr.ErrInvalid, "quantity must be greater than 0")
	}
	if req.UnitPrice <= 0 {
		return nil, false, apperr.Wrap(apperr.ErrInvalid, "unit_price must be greater than 0")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.ErrInvalid, "invalid product_id")
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return nil, false, apperr.Wrap(apperr.ErrInvalid, "invalid seller_id")
	}

	// Idempotent replay: an order for this reference already exists.
	existing, err := s.repo.GetOrderByPaymentReference(ctx, req.PaymentReference)
	if err == nil {
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "NGN"
	}

	o := &Order{
		ID:               uuid.New(),
		BuyerID:          buyerID,
		SellerID:         sellerID,
		ProductID:        productID,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		TotalPrice:       req.UnitPrice * float64(req.Quantity),
		Currency:         currency,
		Status:           StatusConfirmed,
		PaymentStatus:    "completed",
		PaymentMethod:    strings.ToLower(req.PaymentMethod),
		PaymentReference: req.PaymentReference,
		DeliveryStatus:   DeliveryPending,
		ShippingAddress:  req.ShippingAddress,
	}

	if err := s.repo.CreateFromCheckout(ctx, o); err != nil {
		// A concurrent replay can win the unique race on payment_reference;
		// return whatever it created.
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			existing, lookupErr := s.repo.GetOrderByPaymentReference(ctx, req.PaymentReference)
			if lookupErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	s.notifier.OrderCompleted(ctx, o)
	return o, true, nil
}

func (s *service) UpdateStatus(ctx context.Context, callerID uuid.UUID, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.SellerID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only the seller may update order status")
	}

	next := Status(strings.ToLower(req.Status))
	if !CanTransition(o.Status, next) {
		return nil, apperr.Wrap(apperr.ErrInvalid, "invalid transition from %s to %s", o.Status, next)
	}

	delivery := DeliveryStatusFor(next, o.DeliveryStatus)
	updated, err := s.repo.UpdateStatusIf(ctx, id, o.Status, next, delivery)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.Wrap(apperr.ErrConflict, "order status changed concurrently, retry")
	}

	o.Status = next
	o.DeliveryStatus = delivery
	s.notifier.StatusChanged(ctx, o)
	return o, nil
}

func (s *service) ConfirmDelivery(ctx context.Context, callerID uuid.UUID, id string) (*Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "only the buyer may confirm delivery")
	}
	if o.Status != StatusShipped && o.Status != StatusCompleted {
		return nil, apperr.Wrap(apperr.ErrInvalid, "cannot confirm delivery of a %s order", o.Status)
	}

	created, err := s.repo.ConfirmDelivery(ctx, o)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.Wrap(apperr.ErrConflict, "delivery already confirmed for order %s", id)
	}

	o.DeliveryStatus = DeliveryDelivered
	s.notifier.DeliveryConfirmed(ctx, o)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, callerID uuid.UUID, id string) (*Order, error) {
	o, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != callerID && o.SellerID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "order %s does not involve you", id)
	}
	return o, nil
}

func (s *service) ListBought(ctx context.Context, callerID uuid.UUID) ([]*Order, error) {
	return s.repo.ListByBuyer(ctx, callerID.String())
}

func (s *service) ListSold(ctx context.Context, callerID uuid.UUID) ([]*Order, error) {
	return s.repo.ListBySeller(ctx, callerID.String())
}

func (s *service) getOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.Wrap(apperr.ErrNotFound, "order %s not found", id)
		}
		return nil, err
	}
	return o, nil
}
