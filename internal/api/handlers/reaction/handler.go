package reaction

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Blogview/internal/api/handlers"
	"Blogview/internal/api/middleware"
	"Blogview/internal/core/comments"
	"Blogview/internal/core/posts"
	"Blogview/internal/core/reactions"
)

// Handler serves reaction toggles on local posts and comments
type Handler struct {
	service reactions.Service
}

// NewHandler creates a new reaction handler
func NewHandler(service reactions.Service) *Handler {
	return &Handler{service: service}
}

// HandleReactToPost toggles the actor's like/dislike on a post
// POST /api/posts/{id}/reactions  body: {"type": "like" | "dislike"}
func (h *Handler) HandleReactToPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Type posts.ReactionKind `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	result, err := h.service.ReactToPost(r.Context(), middleware.ActorID(r), postID, req.Type)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleLikeComment toggles the actor's like on a comment
// POST /api/comments/{id}/like
func (h *Handler) HandleLikeComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := h.service.LikeComment(r.Context(), middleware.ActorID(r), commentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// handleServiceError converts reconciler errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reactions.ErrNotAuthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, reactions.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "Reactions are only allowed on custom content")
	case errors.Is(err, reactions.ErrInvalidKind):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "type must be 'like' or 'dislike'")
	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
	default:
		log.Printf("Reaction handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "id must be an integer")
		return 0, false
	}
	return id, true
}
