package payout

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokoline/sokoline-backend/internal/apperr"
	"github.com/sokoline/sokoline-backend/internal/identity"
)

// Handler exposes payout HTTP endpoints. All of them require a bearer token.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/api/v1/payouts", func(r chi.Router) {
		r.Get("/", h.listMine)                  // GET  /api/v1/payouts
		r.Post("/{id}/process", h.process)      // POST /api/v1/payouts/{id}/process
	})
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.ProcessPayout(r.Context(), callerID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	payouts, err := h.service.ListMine(r.Context(), callerID)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, payouts)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
