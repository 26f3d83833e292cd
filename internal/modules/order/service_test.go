package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

// fakeRepo is an in-memory Repository honoring the same contracts as the
// Postgres implementation: unique payment_reference, conditional status
// update, stock decrement floored at zero, one payout per order.
type fakeRepo struct {
	orders  map[uuid.UUID]*Order
	byRef   map[string]*Order
	stock   map[uuid.UUID]int
	payouts map[uuid.UUID]bool // keyed by order id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:  make(map[uuid.UUID]*Order),
		byRef:   make(map[string]*Order),
		stock:   make(map[uuid.UUID]int),
		payouts: make(map[uuid.UUID]bool),
	}
}

func (r *fakeRepo) CreateFromCheckout(_ context.Context, o *Order) error {
	if _, exists := r.byRef[o.PaymentReference]; exists {
		return errors.New(`duplicate key value violates unique constraint "orders_payment_reference_key"`)
	}
	cp := *o
	r.orders[o.ID] = &cp
	r.byRef[o.PaymentReference] = &cp
	left := r.stock[o.ProductID] - o.Quantity
	if left < 0 {
		left = 0
	}
	r.stock[o.ProductID] = left
	return nil
}

func (r *fakeRepo) GetOrderByID(_ context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	o, ok := r.orders[uid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) GetOrderByPaymentReference(_ context.Context, reference string) (*Order, error) {
	o, ok := r.byRef[reference]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) UpdateStatusIf(_ context.Context, id string, expected, next Status, delivery DeliveryStatus) (bool, error) {
	uid, _ := uuid.Parse(id)
	o, ok := r.orders[uid]
	if !ok || o.Status != expected {
		return false, nil
	}
	o.Status = next
	o.DeliveryStatus = delivery
	return true, nil
}

func (r *fakeRepo) ConfirmDelivery(_ context.Context, o *Order) (bool, error) {
	if r.payouts[o.ID] {
		return false, nil
	}
	r.payouts[o.ID] = true
	if stored, ok := r.orders[o.ID]; ok {
		stored.DeliveryStatus = DeliveryDelivered
	}
	return true, nil
}

func (r *fakeRepo) ListByBuyer(_ context.Context, buyerID string) ([]*Order, error) {
	var out []*Order
	for _, o := range r.orders {
		if o.BuyerID.String() == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBySeller(_ context.Context, sellerID string) ([]*Order, error) {
	var out []*Order
	for _, o := range r.orders {
		if o.SellerID.String() == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func seedOrder(repo *fakeRepo, status Status) (*Order, uuid.UUID, uuid.UUID) {
	buyerID := uuid.New()
	sellerID := uuid.New()
	o := &Order{
		ID:               uuid.New(),
		BuyerID:          buyerID,
		SellerID:         sellerID,
		ProductID:        uuid.New(),
		Quantity:         1,
		UnitPrice:        50,
		TotalPrice:       50,
		Currency:         "NGN",
		Status:           status,
		PaymentStatus:    "completed",
		PaymentReference: "ref-" + uuid.New().String(),
		DeliveryStatus:   DeliveryPending,
	}
	repo.orders[o.ID] = o
	repo.byRef[o.PaymentReference] = o
	return o, buyerID, sellerID
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusCompleted, StatusCancelled, StatusRefunded,
	}
	allowed := map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s_to_%s", from, to), func(t *testing.T) {
				repo := newFakeRepo()
				svc := NewService(repo, nil)
				o, _, sellerID := seedOrder(repo, from)

				updated, err := svc.UpdateStatus(context.Background(), sellerID, o.ID.String(), UpdateStatusRequest{Status: string(to)})

				valid := false
				for _, s := range allowed[from] {
					if s == to {
						valid = true
					}
				}

				if valid {
					require.NoError(t, err)
					assert.Equal(t, to, updated.Status)
				} else {
					require.Error(t, err)
					assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
					assert.Contains(t, err.Error(), string(from))
					assert.Contains(t, err.Error(), string(to))
				}
			})
		}
	}
}

func TestUpdateStatus_DeliveryStatusDerivation(t *testing.T) {
	cases := []struct {
		from, to Status
		want     DeliveryStatus
	}{
		{StatusConfirmed, StatusProcessing, DeliveryProcessing},
		{StatusProcessing, StatusShipped, DeliveryShipped},
		{StatusShipped, StatusCompleted, DeliveryDelivered},
		{StatusPending, StatusConfirmed, DeliveryPending},  // unchanged
		{StatusPending, StatusCancelled, DeliveryPending},  // unchanged
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_to_%s", tc.from, tc.to), func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo, nil)
			o, _, sellerID := seedOrder(repo, tc.from)

			updated, err := svc.UpdateStatus(context.Background(), sellerID, o.ID.String(), UpdateStatusRequest{Status: string(tc.to)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, updated.DeliveryStatus)
		})
	}
}

func TestUpdateStatus_NonSellerForbidden(t *testing.T) {
	for _, target := range []Status{StatusConfirmed, StatusCancelled, StatusCompleted} {
		repo := newFakeRepo()
		svc := NewService(repo, nil)
		o, buyerID, _ := seedOrder(repo, StatusPending)

		_, err := svc.UpdateStatus(context.Background(), buyerID, o.ID.String(), UpdateStatusRequest{Status: string(target)})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
	}
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New().String(), UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}

func TestUpdateStatus_TerminalRetryRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	o, _, sellerID := seedOrder(repo, StatusShipped)

	updated, err := svc.UpdateStatus(context.Background(), sellerID, o.ID.String(), UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivered, updated.DeliveryStatus)

	// Source state is re-read per request: a retry now starts from completed,
	// which has no outgoing transitions.
	_, err = svc.UpdateStatus(context.Background(), sellerID, o.ID.String(), UpdateStatusRequest{Status: "completed"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
}

func TestUpdateStatus_ConcurrentTransitionConflicts(t *testing.T) {
	repo := newFakeRepo()
	o, _, sellerID := seedOrder(repo, StatusPending)

	// Another request wins the race between this request's read and its
	// conditional write; the write must fail loudly, not clobber.
	svc := NewService(&racingRepo{fakeRepo: repo, flipTo: StatusCancelled}, nil)

	_, err := svc.UpdateStatus(context.Background(), sellerID, o.ID.String(), UpdateStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(err))
}

// racingRepo flips the order's status between the service's read and its
// conditional write.
type racingRepo struct {
	*fakeRepo
	flipTo Status
}

func (r *racingRepo) UpdateStatusIf(ctx context.Context, id string, expected, next Status, delivery DeliveryStatus) (bool, error) {
	uid, _ := uuid.Parse(id)
	r.orders[uid].Status = r.flipTo
	return r.fakeRepo.UpdateStatusIf(ctx, id, expected, next, delivery)
}

func TestCompleteCheckout_CreatesOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	buyerID := uuid.New()
	productID := uuid.New()
	repo.stock[productID] = 10

	req := CheckoutRequest{
		PaymentReference: "PSK-123",
		ProductID:        productID.String(),
		SellerID:         uuid.New().String(),
		Quantity:         2,
		UnitPrice:        19.99,
		Currency:         "usd",
		PaymentMethod:    "paystack",
	}

	o, created, err := svc.CompleteCheckout(context.Background(), buyerID, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, StatusConfirmed, o.Status)
	assert.Equal(t, "completed", o.PaymentStatus)
	assert.Equal(t, DeliveryPending, o.DeliveryStatus)
	assert.Equal(t, "USD", o.Currency)
	assert.InDelta(t, 39.98, o.TotalPrice, 0.001)
	assert.Equal(t, 8, repo.stock[productID])
}

func TestCompleteCheckout_IdempotentReplay(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	buyerID := uuid.New()
	productID := uuid.New()
	repo.stock[productID] = 5

	req := CheckoutRequest{
		PaymentReference: "PSK-replay",
		ProductID:        productID.String(),
		SellerID:         uuid.New().String(),
		Quantity:         1,
		UnitPrice:        10,
	}

	first, created, err := svc.CompleteCheckout(context.Background(), buyerID, req)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := svc.CompleteCheckout(context.Background(), buyerID, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	// No duplicate insert, no double stock decrement.
	assert.Len(t, repo.orders, 1)
	assert.Equal(t, 4, repo.stock[productID])
}

func TestCompleteCheckout_StockFloorsAtZero(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	productID := uuid.New()
	repo.stock[productID] = 3

	req := CheckoutRequest{
		PaymentReference: "PSK-overbuy",
		ProductID:        productID.String(),
		SellerID:         uuid.New().String(),
		Quantity:         10,
		UnitPrice:        5,
	}

	_, _, err := svc.CompleteCheckout(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.stock[productID])
}

func TestCompleteCheckout_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	base := CheckoutRequest{
		PaymentReference: "ref",
		ProductID:        uuid.New().String(),
		SellerID:         uuid.New().String(),
		Quantity:         1,
		UnitPrice:        10,
	}

	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
	}{
		{"missing reference", func(r *CheckoutRequest) { r.PaymentReference = "" }},
		{"zero quantity", func(r *CheckoutRequest) { r.Quantity = 0 }},
		{"zero price", func(r *CheckoutRequest) { r.UnitPrice = 0 }},
		{"bad product id", func(r *CheckoutRequest) { r.ProductID = "nope" }},
		{"bad seller id", func(r *CheckoutRequest) { r.SellerID = "nope" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, _, err := svc.CompleteCheckout(context.Background(), uuid.New(), req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
		})
	}
}

func TestConfirmDelivery(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	o, buyerID, sellerID := seedOrder(repo, StatusShipped)

	// Seller may not confirm delivery.
	_, err := svc.ConfirmDelivery(context.Background(), sellerID, o.ID.String())
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))

	updated, err := svc.ConfirmDelivery(context.Background(), buyerID, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, DeliveryDelivered, updated.DeliveryStatus)
	assert.True(t, repo.payouts[o.ID])

	// A second confirmation conflicts instead of creating a second payout.
	_, err = svc.ConfirmDelivery(context.Background(), buyerID, o.ID.String())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(err))
}

func TestConfirmDelivery_RequiresShippedOrCompleted(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusCancelled, StatusRefunded} {
		repo := newFakeRepo()
		svc := NewService(repo, nil)
		o, buyerID, _ := seedOrder(repo, status)

		_, err := svc.ConfirmDelivery(context.Background(), buyerID, o.ID.String())
		require.Error(t, err, "status %s", status)
		assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
	}
}

func TestGetOrder_OnlyParties(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	o, buyerID, sellerID := seedOrder(repo, StatusConfirmed)

	_, err := svc.GetOrder(context.Background(), buyerID, o.ID.String())
	require.NoError(t, err)
	_, err = svc.GetOrder(context.Background(), sellerID, o.ID.String())
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), uuid.New(), o.ID.String())
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
}
