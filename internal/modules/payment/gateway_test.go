package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoline/sokoline-backend/internal/apperr"
)

func TestMinorUnits_RoundTrip(t *testing.T) {
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
	assert.Equal(t, int64(100), toMinorUnits(1.00))
	assert.Equal(t, int64(5), toMinorUnits(0.05))

	assert.InDelta(t, 19.99, fromMinorUnits(1999), 0.0001)
	assert.InDelta(t, 0.05, fromMinorUnits(5), 0.0001)
}

func TestPaystack_Initialize(t *testing.T) {
	var gotBody paystackInitBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "PSK-REF-1",
			},
		})
	}))
	defer srv.Close()

	gw := NewPaystackGateway("sk_test_abc", srv.URL)
	result, err := gw.Initialize(context.Background(), InitializeRequest{
		Amount:   19.99,
		Currency: "usd",
		Email:    "buyer@example.com",
	})
	require.NoError(t, err)

	// Amount goes out in minor units, currency uppercased.
	assert.Equal(t, int64(1999), gotBody.Amount)
	assert.Equal(t, "USD", gotBody.Currency)
	assert.Equal(t, "buyer@example.com", gotBody.Email)

	assert.Equal(t, ProviderPaystack, result.Provider)
	assert.Equal(t, "PSK-REF-1", result.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Empty(t, result.ClientSecret)
}

func TestPaystack_Initialize_RequiresEmail(t *testing.T) {
	gw := NewPaystackGateway("sk", "http://unused.invalid")
	_, err := gw.Initialize(context.Background(), InitializeRequest{Amount: 10})
	require.Error(t, err)
}

func TestPaystack_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/PSK-REF-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":   "success",
				"amount":   1999,
				"currency": "usd",
			},
		})
	}))
	defer srv.Close()

	gw := NewPaystackGateway("sk_test_abc", srv.URL)
	result, err := gw.Verify(context.Background(), "PSK-REF-1")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "success", result.Status)
	assert.InDelta(t, 19.99, result.Amount, 0.0001) // minor units divided back
	assert.Equal(t, "USD", result.Currency)         // uppercased on output
}

func TestPaystack_Verify_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":   "abandoned",
				"amount":   1999,
				"currency": "NGN",
			},
		})
	}))
	defer srv.Close()

	gw := NewPaystackGateway("sk", srv.URL)
	result, err := gw.Verify(context.Background(), "PSK-REF-2")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "abandoned", result.Status)
}

func TestStripe_Initialize(t *testing.T) {
	var gotAmount, gotCurrency string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_stripe", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_xyz",
			"status":        "requires_payment_method",
			"amount":        1999,
			"currency":      "usd",
		})
	}))
	defer srv.Close()

	gw := NewStripeGateway("sk_stripe", srv.URL)
	result, err := gw.Initialize(context.Background(), InitializeRequest{
		Amount:   19.99,
		Currency: "USD",
	})
	require.NoError(t, err)

	// Amount in cents, currency lowercased for Stripe.
	assert.Equal(t, "1999", gotAmount)
	assert.Equal(t, "usd", gotCurrency)

	assert.Equal(t, ProviderStripe, result.Provider)
	assert.Equal(t, "pi_123", result.Reference)
	assert.Equal(t, "pi_123_secret_xyz", result.ClientSecret)
	assert.Empty(t, result.AuthorizationURL)
}

func TestStripe_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_xyz",
			"status":        "succeeded",
			"amount":        1999,
			"currency":      "usd",
		})
	}))
	defer srv.Close()

	gw := NewStripeGateway("sk_stripe", srv.URL)
	result, err := gw.Verify(context.Background(), "pi_123")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "succeeded", result.Status)
	assert.InDelta(t, 19.99, result.Amount, 0.0001)
	assert.Equal(t, "USD", result.Currency)
}

func TestStripe_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Your card was declined."},
		})
	}))
	defer srv.Close()

	gw := NewStripeGateway("sk_stripe", srv.URL)
	_, err := gw.Verify(context.Background(), "pi_declined")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

func TestService_UnknownProvider(t *testing.T) {
	svc := NewService(nil, GatewayRegistry{}, nil)
	_, err := svc.Verify(context.Background(), "cashapp", "ref")
	require.Error(t, err)

	_, err = svc.Initialize(context.Background(), InitializeRequest{Provider: "cashapp", Amount: 10})
	require.Error(t, err)
}

type fakeTxRepo struct{ txs []*Transaction }

func (r *fakeTxRepo) ListByOrder(context.Context, string) ([]*Transaction, error) {
	return r.txs, nil
}

func (r *fakeTxRepo) GetByReference(context.Context, string) (*Transaction, error) {
	return nil, sql.ErrNoRows
}

func TestListByOrder_OnlyParties(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()
	parties := func(context.Context, string) (uuid.UUID, uuid.UUID, error) {
		return buyerID, sellerID, nil
	}
	svc := NewService(&fakeTxRepo{txs: []*Transaction{{Reference: "PSK-1"}}}, GatewayRegistry{}, parties)

	txs, err := svc.ListByOrder(context.Background(), buyerID, uuid.New().String())
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	_, err = svc.ListByOrder(context.Background(), sellerID, uuid.New().String())
	require.NoError(t, err)

	_, err = svc.ListByOrder(context.Background(), uuid.New(), uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
}

func TestListByOrder_UnknownOrder(t *testing.T) {
	parties := func(context.Context, string) (uuid.UUID, uuid.UUID, error) {
		return uuid.Nil, uuid.Nil, sql.ErrNoRows
	}
	svc := NewService(&fakeTxRepo{}, GatewayRegistry{}, parties)

	_, err := svc.ListByOrder(context.Background(), uuid.New(), uuid.New().String())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}
