package post

import (
	"errors"
	"log"
	"net/http"

	"Blogview/internal/api/handlers"
	"Blogview/internal/core/posts"
)

// handleServiceError converts post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError

	switch {
	case errors.Is(err, posts.ErrNotAuthenticated):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
	case errors.Is(err, posts.ErrForbidden):
		handlers.WriteError(w, http.StatusForbidden, "Forbidden", "You cannot modify this post")
	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, posts.ErrUpstreamUnavailable):
		handlers.WriteError(w, http.StatusBadGateway, "UpstreamUnavailable", "Remote catalog is unavailable")
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Message)
	default:
		log.Printf("Post handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
