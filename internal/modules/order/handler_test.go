package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoline/sokoline-backend/internal/identity"
)

func newTestServer(repo Repository, callerID uuid.UUID) http.Handler {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(identity.WithUserID(req.Context(), callerID)))
			})
		})
		NewHandler(NewService(repo, nil)).RegisterProtectedRoutes(r)
	})
	return router
}

func patchStatus(t *testing.T, h http.Handler, orderID, status string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+orderID+"/status",
		strings.NewReader(`{"status":"`+status+`"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStatusEndpoint_Success(t *testing.T) {
	repo := newFakeRepo()
	o, _, sellerID := seedOrder(repo, StatusShipped)
	h := newTestServer(repo, sellerID)

	rec := patchStatus(t, h, o.ID.String(), "completed")
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, StatusCompleted, body.Status)
	assert.Equal(t, DeliveryDelivered, body.DeliveryStatus)
}

func TestStatusEndpoint_InvalidTransitionIs400(t *testing.T) {
	repo := newFakeRepo()
	o, _, sellerID := seedOrder(repo, StatusPending)
	h := newTestServer(repo, sellerID)

	rec := patchStatus(t, h, o.ID.String(), "shipped")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending")
	assert.Contains(t, rec.Body.String(), "shipped")
}

func TestStatusEndpoint_NonSellerIs403(t *testing.T) {
	repo := newFakeRepo()
	o, buyerID, _ := seedOrder(repo, StatusPending)
	h := newTestServer(repo, buyerID)

	rec := patchStatus(t, h, o.ID.String(), "confirmed")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStatusEndpoint_UnknownOrderIs404(t *testing.T) {
	repo := newFakeRepo()
	h := newTestServer(repo, uuid.New())

	rec := patchStatus(t, h, uuid.New().String(), "confirmed")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutEndpoint_ReplayReturns200NotDuplicate(t *testing.T) {
	repo := newFakeRepo()
	buyerID := uuid.New()
	h := newTestServer(repo, buyerID)

	body := `{"payment_reference":"PSK-http","product_id":"` + uuid.New().String() +
		`","seller_id":"` + uuid.New().String() + `","quantity":1,"unit_price":25}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var first Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var second Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)
}
