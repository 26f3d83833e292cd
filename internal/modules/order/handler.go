package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokoline/sokoline-backend/internal/apperr"
	"github.com/sokoline/sokoline-backend/internal/identity"
)

// Handler exposes order HTTP endpoints. All of them require a bearer token.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/checkout", h.completeCheckout)              // POST  /api/v1/orders/checkout
		r.Get("/bought", h.listBought)                       // GET   /api/v1/orders/bought
		r.Get("/sold", h.listSold)                           // GET   /api/v1/orders/sold
		r.Get("/{id}", h.getOrder)                           // GET   /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)              // PATCH /api/v1/orders/{id}/status
		r.Post("/{id}/confirm-delivery", h.confirmDelivery)  // POST  /api/v1/orders/{id}/confirm-delivery
	})
}

func (h *Handler) completeCheckout(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, created, err := h.service.CompleteCheckout(r.Context(), callerID, req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(w, status, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), callerID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, StatusResponse{Success: true, Status: o.Status, DeliveryStatus: o.DeliveryStatus})
}

func (h *Handler) confirmDelivery(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	o, err := h.service.ConfirmDelivery(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	o, err := h.service.GetOrder(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listBought(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	orders, err := h.service.ListBought(r.Context(), callerID)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listSold(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	orders, err := h.service.ListSold(r.Context(), callerID)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
