package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/sokoline/sokoline-backend/internal/modules/order"
	"github.com/sokoline/sokoline-backend/internal/modules/payout"
	"github.com/sokoline/sokoline-backend/internal/modules/user"
)

// Events implements the order and payout notifier hooks: it writes
// notification rows for both parties and emails the buyer a receipt. Every
// step is best-effort; failures are logged and swallowed so the commerce flow
// never fails on a notification.
type Events struct {
	svc    Service
	mailer *Mailer
	users  user.Repository
}

// NewEvents wires the notifier hooks. mailer may be nil.
func NewEvents(svc Service, mailer *Mailer, users user.Repository) *Events {
	return &Events{svc: svc, mailer: mailer, users: users}
}

func (e *Events) OrderCompleted(ctx context.Context, o *order.Order) {
	e.notify(ctx, o.BuyerID, TypeOrderPlaced,
		fmt.Sprintf("Your order for %.2f %s is confirmed.", o.TotalPrice, o.Currency), o.ID)
	e.notify(ctx, o.SellerID, TypeOrderPlaced,
		fmt.Sprintf("You sold an item for %.2f %s.", o.TotalPrice, o.Currency), o.ID)

	buyer, err := e.users.GetUserByID(ctx, o.BuyerID.String())
	if err != nil {
		log.Printf("notification: lookup buyer %s: %v", o.BuyerID, err)
		return
	}
	if err := e.mailer.SendOrderConfirmation(buyer.Email, o.ID.String(), o.TotalPrice, o.Currency); err != nil {
		log.Printf("notification: order confirmation email: %v", err)
	}
}

func (e *Events) StatusChanged(ctx context.Context, o *order.Order) {
	e.notify(ctx, o.BuyerID, TypeOrderStatus,
		fmt.Sprintf("Your order is now %s.", o.Status), o.ID)
}

func (e *Events) DeliveryConfirmed(ctx context.Context, o *order.Order) {
	e.notify(ctx, o.SellerID, TypeDelivery,
		"The buyer confirmed delivery. Your payout is pending.", o.ID)
}

func (e *Events) PayoutProcessed(ctx context.Context, p *payout.Payout) {
	e.notify(ctx, p.SellerID, TypePayoutProcessed,
		fmt.Sprintf("Your payout of %.2f %s was processed (ref %s).", p.Amount, p.Currency, p.PayoutReference), p.OrderID)
}

func (e *Events) notify(ctx context.Context, userID uuid.UUID, typ Type, body string, refID uuid.UUID) {
	if err := e.svc.Notify(ctx, userID, typ, body, &refID); err != nil {
		log.Printf("notification: %s for user %s: %v", typ, userID, err)
	}
}
