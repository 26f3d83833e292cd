package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sokoline/sokoline-backend/internal/apperr"
	"github.com/sokoline/sokoline-backend/internal/identity"
)

// Handler exposes social feed HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the public feed endpoints.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/posts", h.listRecent)
	r.Get("/api/v1/posts/{id}", h.getPost)
	r.Get("/api/v1/posts/{id}/comments", h.listComments)
}

// RegisterProtectedRoutes mounts endpoints that require a bearer token.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/api/v1/posts", h.createPost)
	r.Delete("/api/v1/posts/{id}", h.deletePost)
	r.Post("/api/v1/posts/{id}/comments", h.addComment)
	r.Post("/api/v1/posts/{id}/like", h.toggleLike)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.CreatePost(r.Context(), callerID, req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listRecent(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListRecent(r.Context())
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	if err := h.service.DeletePost(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "post deleted"})
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.service.AddComment(r.Context(), callerID, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, comments)
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	callerID, ok := identity.UserID(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		return
	}

	result, err := h.service.ToggleLike(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": apperr.Message(err)})
		return
	}
	respond(w, http.StatusOK, result)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
