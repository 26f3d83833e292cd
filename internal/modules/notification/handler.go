package notification

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokoline/sokoline-backend/internal/apperr"
	"github.com/sokoline/sokoline-backend/internal/identity"
)

// Handler exposes notification HTTP and websocket endpoints.
type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/api/v1/notifications", h.list)
	r.Patch("/api/v1/notifications/{id}/read", h.markRead)
	r.Get("/ws/notifications", h.ServeWS)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	notifications, err := h.service.ListForUser(r.Context(), callerID)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, notifications)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	if err := h.service.MarkRead(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "read"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
