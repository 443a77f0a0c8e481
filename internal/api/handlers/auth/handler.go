package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Blogview/internal/api/handlers"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/authors"
)

// Handler issues and clears actor sessions. Identity is declared, not
// verified: the login endpoint only checks that the claimed id exists in
// the catalog's author namespace.
type Handler struct {
	sessions      *middleware.SessionAuth
	authorService authors.Service
}

// NewHandler creates a new auth handler
func NewHandler(sessions *middleware.SessionAuth, authorService authors.Service) *Handler {
	return &Handler{sessions: sessions, authorService: authorService}
}

// HandleLogin starts a session for the given catalog author
// POST /auth/login  body: {"userId": 5}
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "userId must be a positive integer")
		return
	}

	author, err := h.authorService.Get(r.Context(), req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.sessions.SetActor(w, r, author.ID); err != nil {
		log.Printf("Failed to save session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, author)
}

// HandleLogout drops the current session
// POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearActor(w, r); err != nil {
		log.Printf("Failed to clear session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// HandleMe returns the current actor, or 401 for anonymous requests
// GET /auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r)
	if actorID == nil {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	author, err := h.authorService.Get(r.Context(), *actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, author)
}
